package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const bytesPerSample = 4

var errPartialFrame = errors.New("input ends inside a frame")

// frameBuffer converts between interleaved little-endian float32 frames and
// [channel][sample] blocks. All buffers are allocated once.
type frameBuffer struct {
	numChannels int
	raw         []byte
	channels    [][]float32
	views       [][]float32
}

func newFrameBuffer(numChannels, blockSize int) *frameBuffer {
	fb := &frameBuffer{
		numChannels: numChannels,
		raw:         make([]byte, numChannels*blockSize*bytesPerSample),
		channels:    make([][]float32, numChannels),
		views:       make([][]float32, numChannels),
	}

	for ch := range fb.channels {
		fb.channels[ch] = make([]float32, blockSize)
	}

	return fb
}

// read fills the buffer with up to one block of frames. It returns the number
// of whole frames read and io.EOF once the input is exhausted.
func (fb *frameBuffer) read(r io.Reader) (int, error) {
	if fb.numChannels == 0 {
		return 0, io.EOF
	}

	n, err := io.ReadFull(r, fb.raw)

	frameBytes := fb.numChannels * bytesPerSample
	if n%frameBytes != 0 {
		return 0, fmt.Errorf("read input: %w", errPartialFrame)
	}

	frames := n / frameBytes

	for f := range frames {
		for ch := range fb.numChannels {
			off := (f*fb.numChannels + ch) * bytesPerSample
			fb.channels[ch][f] = math.Float32frombits(binary.LittleEndian.Uint32(fb.raw[off:]))
		}
	}

	switch {
	case err == nil:
		return frames, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return frames, io.EOF
	default:
		return frames, fmt.Errorf("read input: %w", err)
	}
}

// block returns [channel][sample] views of the first n frames.
func (fb *frameBuffer) block(n int) [][]float32 {
	for ch := range fb.channels {
		fb.views[ch] = fb.channels[ch][:n]
	}

	return fb.views
}

// write interleaves the first n frames back into w.
func (fb *frameBuffer) write(w io.Writer, n int) error {
	for f := range n {
		for ch := range fb.numChannels {
			off := (f*fb.numChannels + ch) * bytesPerSample
			binary.LittleEndian.PutUint32(fb.raw[off:], math.Float32bits(fb.channels[ch][f]))
		}
	}

	_, err := w.Write(fb.raw[:n*fb.numChannels*bytesPerSample])
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// writeInterleaved writes a whole [channel][sample] block as interleaved frames.
func writeInterleaved(w io.Writer, block [][]float32) error {
	if len(block) == 0 {
		return nil
	}

	var buf [bytesPerSample]byte

	for f := range block[0] {
		for ch := range block {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(block[ch][f]))

			_, err := w.Write(buf[:])
			if err != nil {
				return err
			}
		}
	}

	return nil
}
