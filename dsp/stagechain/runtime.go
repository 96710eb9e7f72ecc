package stagechain

import "io"

// Runtime is the per-node processing and configuration contract.
type Runtime interface {
	Configure(ctx Context, params Params) error
	Process(block [][]float32)
}

// ChannelCountListener is implemented by runtimes that must react when the
// upstream channel count changes.
type ChannelCountListener interface {
	UpdateSettings(numChannels int)
}

// StateSaver is implemented by runtimes with persistent configuration.
type StateSaver interface {
	SaveState(w io.Writer) error
}

// StateLoader restores what a StateSaver wrote.
type StateLoader interface {
	LoadState(r io.Reader) error
}
