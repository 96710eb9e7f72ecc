package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-vref/dsp/core"
	"github.com/cwbudde/algo-vref/dsp/stagechain"
	"github.com/cwbudde/algo-vref/dsp/virtualref"
	"github.com/cwbudde/algo-vref/internal/cli"
	"github.com/cwbudde/algo-vref/stats/level"
)

const refNodeID = "ref"

type processCmd struct {
	Channels  int      `short:"n" required:"" help:"Number of interleaved channels"`
	State     string   `short:"s" required:"" type:"existingfile" help:"State file with the reference matrix"`
	BlockSize int      `name:"block-size" default:"1024" help:"Frames per processing block"`
	Gain      *float64 `help:"Override the global gain stored in the state file"`
	Report    bool     `help:"Print per-channel DC and RMS before and after re-referencing"`
	In        string   `arg:"" type:"existingfile" help:"Input: interleaved little-endian float32 frames"`
	Out       string   `arg:"" type:"path" help:"Output file"`
}

func (c *processCmd) Run(app *appContext) error {
	if c.Channels <= 0 {
		return fmt.Errorf("channel count must be > 0: %d", c.Channels)
	}

	if c.BlockSize <= 0 {
		return fmt.Errorf("block size must be > 0: %d", c.BlockSize)
	}

	cfg := core.ApplyProcessorOptions(
		core.WithNumChannels(c.Channels),
		core.WithBlockSize(c.BlockSize),
	)

	chain, err := c.buildChain(cfg, app)
	if err != nil {
		return err
	}

	in, err := os.Open(c.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	var meters *levelMeters
	if c.Report {
		meters = &levelMeters{in: level.NewMeter(cfg.NumChannels), out: level.NewMeter(cfg.NumChannels)}
	}

	frames, err := runBlocks(app, chain, bufio.NewReader(in), out, cfg.NumChannels, cfg.BlockSize, meters)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}

	if err != nil {
		return err
	}

	app.logger.Debug("processing finished", "frames", frames, "channels", cfg.NumChannels)

	if meters != nil {
		fmt.Fprintln(app.stdout, cli.RenderLevelReport(meters.in.Results(), meters.out.Results()))
	}

	return nil
}

// levelMeters records the stream before and after the chain.
type levelMeters struct {
	in, out *level.Meter
}

// buildChain loads a one-node pipeline and restores the state file into it.
func (c *processCmd) buildChain(cfg core.ProcessorConfig, app *appContext) (*stagechain.Chain, error) {
	chain := stagechain.New(stagechain.ContextFrom(cfg),
		stagechain.DefaultRegistry(stagechain.WithLogger(app.logger)))

	graph, err := pipelineJSON()
	if err != nil {
		return nil, err
	}

	err = chain.LoadGraph(graph)
	if err != nil {
		return nil, err
	}

	f, err := openState(c.State)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	err = chain.LoadNodeState(refNodeID, f)
	if err != nil {
		return nil, err
	}

	if c.Gain != nil {
		stage, ok := chain.NodeRuntime(refNodeID).(interface{ Stage() *virtualref.Stage })
		if !ok {
			return nil, errors.New("virtual reference node does not expose its stage")
		}

		stage.Stage().SetGlobalGain(float32(*c.Gain))
	}

	return chain, nil
}

func pipelineJSON() (string, error) {
	type node struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}

	type conn struct {
		From string `json:"from"`
		To   string `json:"to"`
	}

	data, err := json.Marshal(struct {
		Nodes       []node `json:"nodes"`
		Connections []conn `json:"connections"`
	}{
		Nodes: []node{
			{ID: stagechain.InputNodeID, Type: stagechain.InputNodeID},
			{ID: refNodeID, Type: stagechain.StageTypeVirtualRef},
			{ID: stagechain.OutputNodeID, Type: stagechain.OutputNodeID},
		},
		Connections: []conn{
			{From: stagechain.InputNodeID, To: refNodeID},
			{From: refNodeID, To: stagechain.OutputNodeID},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode pipeline: %w", err)
	}

	return string(data), nil
}

// runBlocks streams r through chain in blocks of blockSize frames and writes
// the result to w. It stops between blocks when the context is cancelled.
// meters may be nil.
func runBlocks(app *appContext, chain *stagechain.Chain, r io.Reader, w io.Writer, numChannels, blockSize int, meters *levelMeters) (int, error) {
	frames := newFrameBuffer(numChannels, blockSize)
	bw := bufio.NewWriter(w)
	total := 0

	for {
		err := app.ctx.Err()
		if err != nil {
			return total, err
		}

		n, err := frames.read(r)
		if n > 0 {
			block := frames.block(n)

			if meters != nil {
				meters.in.Update(block)
			}

			chain.Process(block)

			if meters != nil {
				meters.out.Update(block)
			}

			werr := frames.write(bw, n)
			if werr != nil {
				return total, werr
			}

			total += n
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return total, err
		}
	}

	err := bw.Flush()
	if err != nil {
		return total, fmt.Errorf("write output: %w", err)
	}

	return total, nil
}

func openState(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open state file: %w", err)
	}

	return f, nil
}
