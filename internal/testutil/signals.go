package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}

	return out
}

// DeterministicBlock generates numChannels channels of seeded white noise.
// Every channel draws from its own source seeded with seed+channel.
func DeterministicBlock(seed int64, amplitude float64, numChannels, length int) [][]float32 {
	block := make([][]float32, numChannels)

	for ch := range block {
		rng := rand.New(rand.NewSource(seed + int64(ch)))
		block[ch] = make([]float32, length)

		for i := range block[ch] {
			block[ch][i] = float32((rng.Float64()*2 - 1) * amplitude)
		}
	}

	return block
}

// CloneBlock returns a deep copy of block.
func CloneBlock(block [][]float32) [][]float32 {
	out := make([][]float32, len(block))
	for ch := range block {
		out[ch] = append([]float32(nil), block[ch]...)
	}

	return out
}
