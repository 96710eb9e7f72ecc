package main

import (
	"fmt"

	"github.com/cwbudde/algo-vref/dsp/virtualref"
	"github.com/cwbudde/algo-vref/internal/cli"
)

type showCmd struct {
	Channels int    `short:"n" required:"" help:"Number of channels the matrix is sized for"`
	Raw      bool   `help:"Print the plain whitespace-separated matrix"`
	File     string `arg:"" type:"existingfile" help:"State file to read"`
}

func (c *showCmd) Run(app *appContext) error {
	stage, err := loadStage(c.File, c.Channels, app)
	if err != nil {
		return err
	}

	m := stage.Matrix()

	if c.Raw {
		return m.Format(app.stdout)
	}

	fmt.Fprintln(app.stdout, cli.RenderMatrix(m))
	cli.PrintKeyValue(app.stdout, "Channels", m.NumChannels())
	cli.PrintKeyValue(app.stdout, "Global gain", stage.GlobalGain())
	cli.PrintKeyValue(app.stdout, "Active entries", len(m.ActiveEntries()))

	return nil
}

// loadStage creates a stage for numChannels and restores the state file into it.
func loadStage(path string, numChannels int, app *appContext) (*virtualref.Stage, error) {
	stage, err := virtualref.NewStage(numChannels, virtualref.WithLogger(app.logger))
	if err != nil {
		return nil, err
	}

	f, err := openState(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	err = stage.LoadState(f)
	if err != nil {
		return nil, err
	}

	return stage, nil
}
