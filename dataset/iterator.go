package dataset

// Iterator is the row-source contract the executor consumes: pull one Row
// at a time so an embedder can hand the executor a stream without this
// module needing to know where it came from.
type Iterator interface {
	// Next returns the next row. ok is false once the source is exhausted;
	// err is non-nil only on a genuine read failure, not on exhaustion.
	Next() (row Row, ok bool, err error)
}

type sliceIterator struct {
	rows []Row
	pos  int
}

// NewIterator adapts an already-loaded slice of rows (e.g. the result of
// Load) into an Iterator.
func NewIterator(rows []Row) Iterator {
	return &sliceIterator{rows: rows}
}

func (it *sliceIterator) Next() (Row, bool, error) {
	if it.pos >= len(it.rows) {
		return nil, false, nil
	}
	row := it.rows[it.pos]
	it.pos++
	return row, true, nil
}
