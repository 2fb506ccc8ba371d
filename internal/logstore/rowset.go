package logstore

// RowSet is an ordered, immutable view over a subset of rows. Two row sets
// never share mutable state: every filter below builds a fresh slice rather
// than re-slicing or mutating its input, so a RowSet handed to a tool can be
// reused by the caller afterward without surprises.
type RowSet struct {
	rows []Row
}

// NewRowSet builds a RowSet from rows, copying the slice header but not the
// Row values (Rows are themselves immutable, so this is safe).
func NewRowSet(rows []Row) RowSet {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return RowSet{rows: cp}
}

// Len returns the number of rows.
func (rs RowSet) Len() int { return len(rs.rows) }

// At returns the row at index i. Callers must not hold onto the returned
// value across a mutation of rs — in practice this never matters since Row
// values are immutable.
func (rs RowSet) At(i int) Row { return rs.rows[i] }

// Rows returns a read-only copy of the underlying rows. Callers get their
// own slice header; mutating the returned slice never affects rs.
func (rs RowSet) Rows() []Row {
	cp := make([]Row, len(rs.rows))
	copy(cp, rs.rows)
	return cp
}

// Empty reports whether the row set has zero rows.
func (rs RowSet) Empty() bool { return len(rs.rows) == 0 }
