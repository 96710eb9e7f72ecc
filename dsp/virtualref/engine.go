package virtualref

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vref/dsp/buffer"
	"github.com/cwbudde/algo-vref/dsp/core"
	"github.com/cwbudde/algo-vref/dsp/refmatrix"
)

// Engine subtracts per-channel reference averages from a block in place.
//
// It keeps a widened snapshot of the incoming block and one scratch average
// reused for every channel. Both keep their capacity across calls, so once the
// engine has seen the host's largest block it no longer allocates.
type Engine struct {
	input *buffer.Block
	avg   []float64
}

// NewEngine returns an engine with working buffers sized for maxChannels
// channels of blockSize samples.
func NewEngine(maxChannels, blockSize int) *Engine {
	e := &Engine{input: buffer.New(0, 0)}
	e.Reserve(maxChannels, blockSize)

	return e
}

// Reserve grows the working buffers to hold numChannels × blockSize samples.
// Capacity is never released.
func (e *Engine) Reserve(numChannels, blockSize int) {
	numChannels = max(numChannels, 0)
	blockSize = max(blockSize, 0)

	e.input.Resize(numChannels, blockSize)

	if cap(e.avg) < blockSize {
		e.avg = make([]float64, blockSize)
	}
}

// Process re-references block in place using the reference sets in m.
//
// block is indexed [channel][sample]. The channel count is taken from m: the
// caller guarantees len(block) >= m.NumChannels() and that every channel
// holds len(block[0]) samples. Violations are not detected and panic with an
// index out of range.
//
// Every reference average is computed from the block as delivered, never from
// channels already rewritten in this call.
func (e *Engine) Process(block [][]float32, m *refmatrix.Matrix, gain float32) {
	numChan := m.NumChannels()
	if numChan == 0 {
		return
	}

	numSamples := len(block[0])
	e.input.LoadFloat32(block, numChan, numSamples)

	avg := core.EnsureLen(e.avg, numSamples)
	if cap(avg) > cap(e.avg) {
		e.avg = avg
	}

	for i := range numChan {
		row, _ := m.Channel(i)
		weights, _ := row.Values()

		numRefs := 0

		for _, w := range weights {
			if w > 0 {
				numRefs++
			}
		}

		if numRefs == 0 {
			continue
		}

		core.Zero(avg)

		for j, w := range weights {
			if w > 0 {
				vecmath.AddBlockInPlace(avg, e.input.Channel(j))
			}
		}

		vecmath.ScaleBlockInPlace(avg, float64(gain)/float64(numRefs))

		src := e.input.Channel(i)
		dst := block[i][:numSamples]

		for s := range dst {
			dst[s] = float32(src[s] - avg[s])
		}
	}
}
