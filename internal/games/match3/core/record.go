package core

import "slices"

// ColumnCascadeRecord collects, for one cascade round, the distinct rows
// removed in each column. It drives gravity shift and spawn counts.
type ColumnCascadeRecord struct {
	rows map[int][]int
}

// NewColumnCascadeRecord creates an empty record.
func NewColumnCascadeRecord() *ColumnCascadeRecord {
	return &ColumnCascadeRecord{rows: make(map[int][]int)}
}

// Add records a removal at c. Repeated rows in a column are kept once.
func (r *ColumnCascadeRecord) Add(c Coord) {
	rows := r.rows[c.Col]
	if slices.Contains(rows, c.Row) {
		return
	}
	rows = append(rows, c.Row)
	slices.Sort(rows)
	r.rows[c.Col] = rows
}

// Reset clears the record for the next round.
func (r *ColumnCascadeRecord) Reset() {
	clear(r.rows)
}

// Empty returns true if nothing was recorded.
func (r *ColumnCascadeRecord) Empty() bool {
	return len(r.rows) == 0
}

// Columns returns the affected columns in ascending order.
func (r *ColumnCascadeRecord) Columns() []int {
	cols := make([]int, 0, len(r.rows))
	for c := range r.rows {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols
}

// Rows returns the removed rows of col in ascending order.
func (r *ColumnCascadeRecord) Rows(col int) []int {
	return slices.Clone(r.rows[col])
}

// Removed returns how many tiles were removed from col.
func (r *ColumnCascadeRecord) Removed(col int) int {
	return len(r.rows[col])
}

// Total returns the number of removals across all columns.
func (r *ColumnCascadeRecord) Total() int {
	n := 0
	for _, rows := range r.rows {
		n += len(rows)
	}
	return n
}

// Shift returns how far a surviving tile at c falls: the number of removed
// rows in its column at or below its own row.
func (r *ColumnCascadeRecord) Shift(c Coord) int {
	n := 0
	for _, row := range r.rows[c.Col] {
		if row >= c.Row {
			n++
		}
	}
	return n
}
