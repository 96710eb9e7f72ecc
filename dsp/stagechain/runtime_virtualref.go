package stagechain

import (
	"io"

	"github.com/cwbudde/algo-vref/dsp/virtualref"
)

// Params keys understood by the virtual reference runtime.
const paramGlobalGain = "globalGain"

type virtualRefRuntime struct {
	stage *virtualref.Stage
}

// Configure adopts the context channel count and applies the optional
// globalGain parameter. A missing parameter keeps the current gain so that
// reconfiguring does not undo a loaded state.
func (r *virtualRefRuntime) Configure(ctx Context, params Params) error {
	r.stage.UpdateSettings(ctx.NumChannels)

	if params.HasNum(paramGlobalGain) {
		r.stage.SetGlobalGain(float32(params.GetNum(paramGlobalGain, 1)))
	}

	return nil
}

func (r *virtualRefRuntime) Process(block [][]float32) {
	r.stage.Process(block)
}

func (r *virtualRefRuntime) UpdateSettings(numChannels int) {
	r.stage.UpdateSettings(numChannels)
}

func (r *virtualRefRuntime) SaveState(w io.Writer) error {
	return r.stage.SaveState(w)
}

func (r *virtualRefRuntime) LoadState(rd io.Reader) error {
	return r.stage.LoadState(rd)
}

// Stage exposes the wrapped stage for hosts that edit the matrix directly.
func (r *virtualRefRuntime) Stage() *virtualref.Stage {
	return r.stage
}
