package buffer

import "github.com/cwbudde/algo-vref/dsp/core"

// Block is a multichannel float64 buffer laid out as one contiguous backing
// array with per-channel views.
type Block struct {
	data     []float64
	channels [][]float64
	samples  int
}

// New returns a zero-filled Block with the given shape. Negative sizes are treated as 0.
func New(numChannels, numSamples int) *Block {
	b := &Block{}
	b.Resize(numChannels, numSamples)
	b.Zero()

	return b
}

// NumChannels returns the current channel count.
func (b *Block) NumChannels() int {
	return len(b.channels)
}

// NumSamples returns the current per-channel length.
func (b *Block) NumSamples() int {
	return b.samples
}

// Cap returns the number of samples the backing array holds without reallocating.
func (b *Block) Cap() int {
	return cap(b.data)
}

// Channel returns the samples of channel ch. The slice is only valid until the
// next Resize.
func (b *Block) Channel(ch int) []float64 {
	return b.channels[ch]
}

// Resize sets the shape, reusing the backing array when it is large enough.
// Contents are unspecified afterwards; callers either overwrite or Zero.
func (b *Block) Resize(numChannels, numSamples int) {
	numChannels = max(numChannels, 0)
	numSamples = max(numSamples, 0)

	if numChannels == len(b.channels) && numSamples == b.samples {
		return
	}

	b.data = core.EnsureLen(b.data, numChannels*numSamples)
	b.samples = numSamples

	if cap(b.channels) >= numChannels {
		b.channels = b.channels[:numChannels]
	} else {
		b.channels = make([][]float64, numChannels)
	}

	for ch := range b.channels {
		b.channels[ch] = b.data[ch*numSamples : (ch+1)*numSamples : (ch+1)*numSamples]
	}
}

// Zero sets all samples to 0.
func (b *Block) Zero() {
	core.Zero(b.data)
}

// LoadFloat32 resizes the block to numChannels × numSamples and copies the
// first numSamples of each src channel into it. src must hold at least
// numChannels channels of at least numSamples samples each.
func (b *Block) LoadFloat32(src [][]float32, numChannels, numSamples int) {
	b.Resize(numChannels, numSamples)

	for ch := range b.channels {
		core.Widen(b.channels[ch], src[ch][:numSamples])
	}
}
