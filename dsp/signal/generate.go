// Package signal generates deterministic multichannel test recordings.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vref/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a signal generator from processor options and
// signal-specific options.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}

	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("signal: sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	out := make([]float32, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude]
// for one channel. Each channel draws from its own source so channels are
// independent but reproducible.
func (g *Generator) WhiteNoise(amplitude float64, samples, channel int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float32, samples)
	rng := rand.New(rand.NewSource(g.seed + int64(channel)))

	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}

	return out, nil
}

// CommonMode describes a recording whose channels share one interfering
// sine on top of independent noise.
type CommonMode struct {
	FreqHz         float64
	Amplitude      float64
	NoiseAmplitude float64
}

// Recording returns Config().NumChannels channels of samples frames, indexed
// [channel][sample]. Every channel is the shared sine plus its own noise.
func (g *Generator) Recording(cm CommonMode, samples int) ([][]float32, error) {
	if g.cfg.NumChannels <= 0 {
		return nil, fmt.Errorf("signal: channel count must be > 0: %d", g.cfg.NumChannels)
	}

	common, err := g.Sine(cm.FreqHz, cm.Amplitude, samples)
	if err != nil {
		return nil, err
	}

	block := make([][]float32, g.cfg.NumChannels)

	for ch := range block {
		noise, err := g.WhiteNoise(cm.NoiseAmplitude, samples, ch)
		if err != nil {
			return nil, err
		}

		for i := range noise {
			noise[i] += common[i]
		}

		block[ch] = noise
	}

	return block, nil
}
