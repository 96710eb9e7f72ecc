package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/algo-vref/dsp/core"
	"github.com/cwbudde/algo-vref/dsp/signal"
)

type genCmd struct {
	Channels   int     `short:"n" required:"" help:"Number of channels"`
	Samples    int     `required:"" help:"Frames to generate"`
	SampleRate float64 `name:"sample-rate" default:"30000" help:"Sample rate in Hz"`
	Freq       float64 `default:"50" help:"Frequency of the common-mode sine in Hz"`
	Amplitude  float64 `default:"1" help:"Amplitude of the common-mode sine"`
	Noise      float64 `default:"0.1" help:"Amplitude of the independent per-channel noise"`
	Seed       int64   `default:"1" help:"Noise seed"`
	Out        string  `arg:"" type:"path" help:"Output file: interleaved little-endian float32 frames"`
}

func (c *genCmd) Run(app *appContext) error {
	g := signal.NewGenerator([]core.ProcessorOption{
		core.WithSampleRate(c.SampleRate),
		core.WithNumChannels(c.Channels),
	}, signal.WithSeed(c.Seed))

	rec, err := g.Recording(signal.CommonMode{
		FreqHz:         c.Freq,
		Amplitude:      c.Amplitude,
		NoiseAmplitude: c.Noise,
	}, c.Samples)
	if err != nil {
		return err
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	bw := bufio.NewWriter(f)

	err = writeInterleaved(bw, rec)
	if err == nil {
		err = bw.Flush()
	}

	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}

	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	app.logger.Debug("recording written", "path", c.Out, "channels", c.Channels, "frames", c.Samples)

	return nil
}
