package stagechain

import (
	"log/slog"

	"github.com/cwbudde/algo-vref/dsp/virtualref"
)

// StageTypeVirtualRef is the registry name of the virtual reference stage.
const StageTypeVirtualRef = "virtual-ref"

type registryConfig struct {
	logger *slog.Logger
}

// RegistryOption configures the default registry.
type RegistryOption func(*registryConfig)

// WithLogger sets the logger handed to every stage the registry builds.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(c *registryConfig) { c.logger = logger }
}

// DefaultRegistry returns a Registry pre-populated with the built-in stage runtimes.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := NewRegistry()

	r.MustRegister(StageTypeVirtualRef, func(ctx Context) (Runtime, error) {
		opts := []virtualref.StageOption{virtualref.WithLogger(cfg.logger)}
		if ctx.BlockSize > 0 {
			opts = append(opts, virtualref.WithBlockSize(ctx.BlockSize))
		}

		stage, err := virtualref.NewStage(ctx.NumChannels, opts...)
		if err != nil {
			return nil, err
		}

		return &virtualRefRuntime{stage: stage}, nil
	})

	return r
}
