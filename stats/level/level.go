// Package level accumulates per-channel level statistics over a stream of
// [channel][sample] float32 blocks.
package level

import "math"

// Level holds the statistics of one channel.
type Level struct {
	Length  int
	DC      float64 // mean
	RMS     float64
	RMS_dB  float64 //nolint:revive
	Peak    float64 // max |x|
	Peak_dB float64 //nolint:revive
	StdDev  float64 // population standard deviation (AC part of RMS)
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyLevel() Level {
	return Level{
		RMS_dB:  math.Inf(-1),
		Peak_dB: math.Inf(-1),
	}
}

// Accumulator collects statistics of one channel incrementally. The mean and
// variance use Welford's online update, so blocks of any size give the same
// result as a single pass.
type Accumulator struct {
	n     int
	mean  float64
	m2    float64
	sumSq float64
	peak  float64
}

// Update adds a block of samples to the running statistics.
func (a *Accumulator) Update(samples []float32) {
	for _, v := range samples {
		x := float64(v)

		a.n++
		delta := x - a.mean
		a.mean += delta / float64(a.n)
		a.m2 += delta * (x - a.mean)

		a.sumSq += x * x

		if abs := math.Abs(x); abs > a.peak {
			a.peak = abs
		}
	}
}

// Result computes the statistics of everything seen so far.
func (a *Accumulator) Result() Level {
	if a.n == 0 {
		return emptyLevel()
	}

	nf := float64(a.n)
	rms := math.Sqrt(a.sumSq / nf)

	return Level{
		Length:  a.n,
		DC:      a.mean,
		RMS:     rms,
		RMS_dB:  ampTodB(rms),
		Peak:    a.peak,
		Peak_dB: ampTodB(a.peak),
		StdDev:  math.Sqrt(max(a.m2/nf, 0)),
	}
}

// Reset clears all accumulated data.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// Meter holds one Accumulator per channel.
type Meter struct {
	channels []Accumulator
}

// NewMeter returns a meter for numChannels channels. Negative counts are treated as 0.
func NewMeter(numChannels int) *Meter {
	return &Meter{channels: make([]Accumulator, max(numChannels, 0))}
}

// NumChannels returns the number of metered channels.
func (m *Meter) NumChannels() int {
	return len(m.channels)
}

// Update adds block to the statistics. Channels beyond the meter's count are
// ignored; missing channels are left as they are.
func (m *Meter) Update(block [][]float32) {
	for ch := range min(len(block), len(m.channels)) {
		m.channels[ch].Update(block[ch])
	}
}

// Results returns one Level per channel.
func (m *Meter) Results() []Level {
	out := make([]Level, len(m.channels))
	for ch := range m.channels {
		out[ch] = m.channels[ch].Result()
	}

	return out
}

// Reset clears every channel.
func (m *Meter) Reset() {
	for ch := range m.channels {
		m.channels[ch].Reset()
	}
}
