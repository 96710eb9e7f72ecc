package virtualref

import (
	"fmt"
	"log/slog"
	"math"
)

const (
	defaultGlobalGain = 1.0
	defaultBlockSize  = 1024
)

// StageOption mutates stage construction parameters.
type StageOption func(*stageConfig) error

type stageConfig struct {
	gain      float32
	blockSize int
	logger    *slog.Logger
}

func defaultStageConfig() stageConfig {
	return stageConfig{
		gain:      defaultGlobalGain,
		blockSize: defaultBlockSize,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// WithGlobalGain sets the initial gain applied to every reference average.
func WithGlobalGain(gain float64) StageOption {
	return func(cfg *stageConfig) error {
		if math.IsNaN(gain) || math.IsInf(gain, 0) {
			return fmt.Errorf("virtualref: global gain must be finite: %f", gain)
		}

		cfg.gain = float32(gain)

		return nil
	}
}

// WithBlockSize sets the largest block the host delivers. Working buffers are
// sized for it up front.
func WithBlockSize(blockSize int) StageOption {
	return func(cfg *stageConfig) error {
		if blockSize <= 0 {
			return fmt.Errorf("virtualref: block size must be > 0: %d", blockSize)
		}

		cfg.blockSize = blockSize

		return nil
	}
}

// WithLogger sets the logger used for non-fatal diagnostics such as skipped
// state entries. A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) StageOption {
	return func(cfg *stageConfig) error {
		if logger != nil {
			cfg.logger = logger
		}

		return nil
	}
}
