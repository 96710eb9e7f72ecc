package refmatrix

// Row is a borrowed view of one matrix row. It stays usable until the matrix
// is reallocated by SetNumberOfChannels; after that every accessor reports
// ErrStaleRow. The zero Row is never valid.
type Row struct {
	m          *Matrix
	index      int
	generation uint64
}

// Index returns the row index the view was created for.
func (r Row) Index() int {
	return r.index
}

// Valid reports whether the view still refers to the current allocation.
func (r Row) Valid() bool {
	return r.m != nil && r.m.generation == r.generation
}

// Len returns the row length, or 0 for a stale view.
func (r Row) Len() int {
	if !r.Valid() {
		return 0
	}

	return r.m.n
}

// Values returns the row's backing slice. Writes through it modify the matrix.
// The slice must not be retained across a resize.
func (r Row) Values() ([]float32, error) {
	if !r.Valid() {
		return nil, ErrStaleRow
	}

	return r.m.row(r.index), nil
}

// At returns the weight of column col.
func (r Row) At(col int) (float32, error) {
	if !r.Valid() {
		return 0, ErrStaleRow
	}

	return r.m.Value(r.index, col)
}
