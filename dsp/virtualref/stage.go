package virtualref

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-vref/dsp/refmatrix"
)

// Stage is one virtual reference processing node: it owns the reference
// matrix, the global gain and the engine working buffers.
type Stage struct {
	matrix    *refmatrix.Matrix
	engine    *Engine
	gain      float32
	blockSize int
	logger    *slog.Logger
}

// NewStage creates a stage for numChannels input channels with an empty
// reference matrix and a gain of 1 unless overridden.
func NewStage(numChannels int, opts ...StageOption) (*Stage, error) {
	if numChannels < 0 {
		return nil, fmt.Errorf("virtualref: channel count must be >= 0: %d", numChannels)
	}

	cfg := defaultStageConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Stage{
		matrix:    refmatrix.New(numChannels),
		engine:    NewEngine(numChannels, cfg.blockSize),
		gain:      cfg.gain,
		blockSize: cfg.blockSize,
		logger:    cfg.logger,
	}, nil
}

// UpdateSettings handles a channel-count change from the host. A different
// count resets the whole matrix; the same count keeps it.
func (s *Stage) UpdateSettings(numChannels int) {
	before := s.matrix.NumChannels()
	s.matrix.SetNumberOfChannels(numChannels)

	if s.matrix.NumChannels() != before {
		s.logger.Debug("virtualref: reference matrix reset",
			"channels_before", before, "channels", s.matrix.NumChannels())
	}

	s.engine.Reserve(s.matrix.NumChannels(), s.blockSize)
}

// Matrix returns the stage's reference matrix. Edits take effect with the next block.
func (s *Stage) Matrix() *refmatrix.Matrix {
	return s.matrix
}

// GlobalGain returns the gain applied to every reference average.
func (s *Stage) GlobalGain() float32 {
	return s.gain
}

// SetGlobalGain sets the gain applied to every reference average.
func (s *Stage) SetGlobalGain(gain float32) {
	s.gain = gain
}

// NumChannels returns the channel count the stage is configured for.
func (s *Stage) NumChannels() int {
	return s.matrix.NumChannels()
}

// Process re-references block in place. See Engine.Process for the
// preconditions on block.
func (s *Stage) Process(block [][]float32) {
	s.engine.Process(block, s.matrix, s.gain)
}
