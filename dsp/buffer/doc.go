// Package buffer provides a reusable multichannel float64 working block for
// allocation-free block processing. Hosts deliver [channel][sample] float32
// data; a Block keeps a widened copy whose capacity survives across blocks so
// steady-state processing never allocates.
package buffer
