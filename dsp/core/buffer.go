// Package core holds slice helpers and processor settings shared by the
// reference stage packages.
package core

// Sample is the set of element types the helpers operate on. Host blocks are
// float32; internal working buffers are float64.
type Sample interface {
	~float32 | ~float64
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// Reused elements keep their previous contents.
func EnsureLen[T Sample](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]T, n)
}

// Zero sets all values in buf to 0.
func Zero[T Sample](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
}

// Widen copies src into dst converting each sample to float64 and returns the
// number of copied elements.
func Widen[T Sample](dst []float64, src []T) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i])
	}

	return n
}
