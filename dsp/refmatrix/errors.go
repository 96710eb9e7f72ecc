package refmatrix

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is wrapped by every bounds failure of a Matrix accessor.
	ErrIndexOutOfRange = errors.New("refmatrix: index out of range")

	// ErrStaleRow is returned by Row accessors after the matrix was reallocated.
	ErrStaleRow = errors.New("refmatrix: row view invalidated by resize")
)

// IndexError describes an out-of-range access. Col is -1 for row-only accessors.
type IndexError struct {
	Row, Col int
	N        int
}

func (e *IndexError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("refmatrix: row %d out of range for %d channels", e.Row, e.N)
	}

	return fmt.Sprintf("refmatrix: index (row=%d, col=%d) out of range for %d channels", e.Row, e.Col, e.N)
}

// Unwrap makes errors.Is(err, ErrIndexOutOfRange) hold.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
