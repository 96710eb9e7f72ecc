// Package refmatrix provides the reference-weight matrix used by virtual
// referencing.
//
// A [Matrix] is square: row i describes the reference set of channel i and
// column j the weight of channel j in that set. Only the sign of an entry
// matters to processing; any value > 0 marks the source channel as active.
//
// Changing the channel count reallocates the matrix and zeroes every entry.
// Overlapping indices are not preserved:
//
//	m := refmatrix.New(4)
//	_ = m.SetValue(0, 1, 1)
//	m.SetNumberOfChannels(8) // all 64 entries are 0 again
//
// Row views returned by [Matrix.Channel] borrow the current allocation and
// report [ErrStaleRow] once the matrix has been reallocated.
//
// Matrix is not safe for concurrent use. Hosts serialize configuration and
// processing access.
package refmatrix
