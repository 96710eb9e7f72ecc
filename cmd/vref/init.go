package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-vref/dsp/virtualref"
)

const (
	modeNone = "none"
	modeAll  = "all"
)

type initCmd struct {
	Channels    int     `short:"n" required:"" help:"Number of channels"`
	Mode        string  `enum:"none,all" default:"none" help:"Initial matrix: none or all (common average)"`
	MaxChannels int     `name:"max-channels" default:"0" help:"Limit the common average to the first K channels (0 = all)"`
	Gain        float64 `default:"1" help:"Global gain applied to every reference average"`
	ExcludeSelf bool    `name:"exclude-self" help:"Do not reference a channel to itself"`
	Out         string  `short:"o" required:"" type:"path" help:"State file to write"`
}

func (c *initCmd) Run(app *appContext) error {
	stage, err := virtualref.NewStage(c.Channels,
		virtualref.WithGlobalGain(c.Gain),
		virtualref.WithLogger(app.logger),
	)
	if err != nil {
		return err
	}

	m := stage.Matrix()

	if c.Mode == modeAll {
		k := c.MaxChannels
		if k <= 0 {
			k = c.Channels
		}

		m.SetAllWithin(1, k)
	}

	if c.ExcludeSelf {
		for i := range m.NumChannels() {
			_ = m.SetValue(i, i, 0)
		}
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("create state file: %w", err)
	}

	err = stage.SaveState(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close state file: %w", cerr)
	}

	if err != nil {
		return err
	}

	app.logger.Debug("state file written", "path", c.Out, "channels", c.Channels, "mode", c.Mode,
		"active_entries", len(m.ActiveEntries()))

	return nil
}
