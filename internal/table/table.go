// Package table implements the row-oriented wide table exchanged between the
// source adapters, the reconciliation engine, and the report writer. Columns
// keep their first-seen order so repeated runs over identical inputs produce
// byte-identical output.
// See docs/ARCHITECTURE.md § Data Model.
package table

// Row maps a column name to its string value. Missing columns read as "".
type Row map[string]string

// Get returns the value for col, or "" when the row does not carry it.
func (r Row) Get(col string) string {
	return r[col]
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// Table is an ordered set of columns over string rows. The column slice is
// the single source of ordering truth; row maps may carry values for any
// registered column.
type Table struct {
	Columns []string
	Rows    []Row

	seen map[string]bool
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	t := &Table{seen: make(map[string]bool, len(columns))}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t == nil || len(t.Rows) == 0 }

// HasColumn reports whether name is a registered column.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	return t.seen[name]
}

// AddColumn registers a column if it is not already present, preserving
// first-seen order. Re-adding an existing column is a no-op.
func (t *Table) AddColumn(name string) {
	if t.seen == nil {
		t.seen = make(map[string]bool)
	}
	if t.seen[name] {
		return
	}
	t.seen[name] = true
	t.Columns = append(t.Columns, name)
}

// Append adds a row, registering any columns the table has not seen yet in
// the row's insertion-independent declared order. Callers that care about
// column order register columns explicitly before appending.
func (t *Table) Append(r Row, columnOrder ...string) {
	for _, c := range columnOrder {
		if _, ok := r[c]; ok {
			t.AddColumn(c)
		}
	}
	t.Rows = append(t.Rows, r)
}

// Copy returns a deep copy of the table. The reconciliation engine copies
// the primary source so later merges never mutate adapter output.
func (t *Table) Copy() *Table {
	cp := New(t.Columns...)
	cp.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		cp.Rows[i] = r.Clone()
	}
	return cp
}

// RenameColumn renames a column in place, updating every row. A no-op when
// from is absent or to already exists.
func (t *Table) RenameColumn(from, to string) {
	if !t.seen[from] || t.seen[to] {
		return
	}
	for i, c := range t.Columns {
		if c == from {
			t.Columns[i] = to
			break
		}
	}
	delete(t.seen, from)
	t.seen[to] = true
	for _, r := range t.Rows {
		if v, ok := r[from]; ok {
			r[to] = v
			delete(r, from)
		}
	}
}

// Reorder rearranges the column slice so that the preferred names that are
// present come first, in the given order, followed by the remaining columns
// in their first-seen order. Row data is untouched.
func (t *Table) Reorder(preferred []string) {
	prefix := make([]string, 0, len(preferred))
	inPrefix := make(map[string]bool, len(preferred))
	for _, c := range preferred {
		if t.seen[c] && !inPrefix[c] {
			prefix = append(prefix, c)
			inPrefix[c] = true
		}
	}
	rest := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !inPrefix[c] {
			rest = append(rest, c)
		}
	}
	t.Columns = append(prefix, rest...)
}
