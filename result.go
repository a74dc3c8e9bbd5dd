package store

import (
	"fmt"
	"strings"
)

// Row maps a column name to its value. Text columns returned as []byte by the
// driver are converted to string.
type Row map[string]any

// ResultSet is a fully materialized select result. Columns follow the order
// requested in the statement, or the driver's order for SELECT *.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

func (rs *ResultSet) Len() int {
	return len(rs.Rows)
}

// Values returns row i as a slice ordered like Columns.
func (rs *ResultSet) Values(i int) []any {
	row := rs.Rows[i]
	vals := make([]any, len(rs.Columns))
	for c, name := range rs.Columns {
		vals[c] = row[name]
	}

	return vals
}

// RowIterator reads rows lazily from the driver. It can be consumed once and
// must be closed.
type RowIterator struct {
	cursor  Cursor
	query   string
	columns []string
	index   []int
	width   int
	row     Row
	err     error
	closed  bool
}

func (it *RowIterator) Columns() []string {
	return it.columns
}

func (it *RowIterator) Next() bool {
	if it.closed || it.err != nil {
		return false
	}

	if !it.cursor.Next() {
		if err := it.cursor.Err(); err != nil {
			it.err = wrapDriverError("read", it.query, err)
		}
		return false
	}

	vals := make([]any, it.width)
	ptrs := make([]any, it.width)
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	if err := it.cursor.Scan(ptrs...); err != nil {
		it.err = wrapDriverError("read", it.query, err)
		return false
	}

	row := make(Row, len(it.columns))
	for i, name := range it.columns {
		row[name] = normalizeValue(vals[it.index[i]])
	}
	it.row = row

	return true
}

func (it *RowIterator) Row() Row {
	return it.row
}

func (it *RowIterator) Err() error {
	return it.err
}

func (it *RowIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true

	return wrapDriverError("close", it.query, it.cursor.Close())
}

// mapColumns resolves every requested column against the columns reported by
// the driver, exactly first and then case insensitively.
func mapColumns(requested []string, got []string) ([]string, []int, error) {
	if len(requested) == 0 {
		index := make([]int, len(got))
		for i := range got {
			index[i] = i
		}
		return got, index, nil
	}

	exact := make(map[string]int, len(got))
	folded := make(map[string]int, len(got))
	for i, name := range got {
		exact[name] = i
		folded[strings.ToUpper(name)] = i
	}

	index := make([]int, len(requested))
	for i, name := range requested {
		if pos, ok := exact[name]; ok {
			index[i] = pos
			continue
		}

		pos, ok := folded[strings.ToUpper(name)]
		if !ok {
			return nil, nil, fmt.Errorf("column %q missing from result columns %v", name, got)
		}
		index[i] = pos
	}

	return requested, index, nil
}

func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}

	return v
}
