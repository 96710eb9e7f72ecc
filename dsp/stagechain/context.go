package stagechain

import "github.com/cwbudde/algo-vref/dsp/core"

// Context provides the stream settings that stage runtimes need.
type Context struct {
	SampleRate  float64
	BlockSize   int
	NumChannels int
}

// ContextFrom converts processor settings into a chain context.
func ContextFrom(cfg core.ProcessorConfig) Context {
	return Context{
		SampleRate:  cfg.SampleRate,
		BlockSize:   cfg.BlockSize,
		NumChannels: cfg.NumChannels,
	}
}
