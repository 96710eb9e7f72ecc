package refmatrix

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// InvalidValue is returned by Get for out-of-range indices. It cannot be told
// apart from a stored -1; use Value when that matters.
const InvalidValue float32 = -1

// Entry is one active matrix cell.
type Entry struct {
	Row   int
	Col   int
	Value float32
}

// Matrix is a square, row-major matrix of reference weights.
type Matrix struct {
	n          int
	values     []float32
	generation uint64
}

// New returns an n×n matrix with all entries set to 0. Negative n is treated as 0.
func New(n int) *Matrix {
	m := &Matrix{}
	m.allocate(n)

	return m
}

func (m *Matrix) allocate(n int) {
	if n < 0 {
		n = 0
	}

	m.n = n
	m.values = make([]float32, n*n)
	m.generation++
}

// SetNumberOfChannels resizes the matrix to n×n. A changed size discards all
// previous contents and every entry reads 0 afterwards. An unchanged size is a no-op.
func (m *Matrix) SetNumberOfChannels(n int) {
	if n < 0 {
		n = 0
	}

	if n == m.n {
		return
	}

	m.allocate(n)
}

// NumChannels returns the current matrix dimension.
func (m *Matrix) NumChannels() int {
	return m.n
}

func (m *Matrix) inRange(row, col int) bool {
	return row >= 0 && row < m.n && col >= 0 && col < m.n
}

// SetValue stores v at (row, col). Out-of-range indices leave the matrix
// unchanged and return an *IndexError.
func (m *Matrix) SetValue(row, col int, v float32) error {
	if !m.inRange(row, col) {
		return &IndexError{Row: row, Col: col, N: m.n}
	}

	m.values[row*m.n+col] = v

	return nil
}

// Value returns the entry at (row, col) or an *IndexError.
func (m *Matrix) Value(row, col int) (float32, error) {
	if !m.inRange(row, col) {
		return 0, &IndexError{Row: row, Col: col, N: m.n}
	}

	return m.values[row*m.n+col], nil
}

// Get returns the entry at (row, col), or InvalidValue when out of range.
func (m *Matrix) Get(row, col int) float32 {
	v, err := m.Value(row, col)
	if err != nil {
		return InvalidValue
	}

	return v
}

// Channel returns a view of row index.
func (m *Matrix) Channel(index int) (Row, error) {
	if index < 0 || index >= m.n {
		return Row{}, &IndexError{Row: index, Col: -1, N: m.n}
	}

	return Row{m: m, index: index, generation: m.generation}, nil
}

// ActiveCount returns the number of entries > 0 in row index, or 0 if the row
// does not exist.
func (m *Matrix) ActiveCount(index int) int {
	if index < 0 || index >= m.n {
		return 0
	}

	count := 0

	for _, v := range m.row(index) {
		if v > 0 {
			count++
		}
	}

	return count
}

// AllReferencesActive reports whether every entry of row index is > 0.
func (m *Matrix) AllReferencesActive(index int) bool {
	if index < 0 || index >= m.n {
		return false
	}

	return m.ActiveCount(index) == m.n
}

// SetAll sets every entry to v.
func (m *Matrix) SetAll(v float32) {
	for i := range m.values {
		m.values[i] = v
	}
}

// SetAllWithin sets the top-left k×k block to v, where k = min(NumChannels, maxChan).
// Entries outside the block keep their values.
func (m *Matrix) SetAllWithin(v float32, maxChan int) {
	k := min(m.n, maxChan)
	for i := 0; i < k; i++ {
		row := m.row(i)
		for j := 0; j < k; j++ {
			row[j] = v
		}
	}
}

// Clear sets every entry to 0.
func (m *Matrix) Clear() {
	m.SetAll(0)
}

// ActiveEntries returns every entry > 0 in row-major order.
func (m *Matrix) ActiveEntries() []Entry {
	var entries []Entry

	for i := 0; i < m.n; i++ {
		for j, v := range m.row(i) {
			if v > 0 {
				entries = append(entries, Entry{Row: i, Col: j, Value: v})
			}
		}
	}

	return entries
}

// Format writes one line per row with space-separated values, followed by a
// blank line.
func (m *Matrix) Format(w io.Writer) error {
	var sb strings.Builder

	for i := 0; i < m.n; i++ {
		for j, v := range m.row(i) {
			if j > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		}

		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("refmatrix: format: %w", err)
	}

	return nil
}

// String returns the Format dump.
func (m *Matrix) String() string {
	var sb strings.Builder

	_ = m.Format(&sb)

	return sb.String()
}

func (m *Matrix) row(index int) []float32 {
	return m.values[index*m.n : (index+1)*m.n]
}
