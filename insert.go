package store

import (
	"fmt"
	"strings"
)

// BuildInsert produces INSERT INTO table [(columns)] VALUES (?, ...). columns
// may be nil, in which case values must follow the table's column order.
func BuildInsert(table string, columns []string, values []any) (Statement, error) {
	tb, err := ParseTableName(table)
	if err != nil {
		return Statement{}, err
	}

	if len(values) == 0 {
		return Statement{}, validationErrorf("values", "must not be empty")
	}

	if columns != nil && len(columns) != len(values) {
		return Statement{}, validationErrorf("columns", "has %d entries but %d values were given", len(columns), len(values))
	}

	if err := validateColumns("column", columns); err != nil {
		return Statement{}, err
	}

	var qry strings.Builder
	qry.WriteString("INSERT INTO ")
	qry.WriteString(tb.FullTableName())
	if len(columns) > 0 {
		qry.WriteString(fmt.Sprintf(" (%s)", strings.Join(columns, ", ")))
	}
	qry.WriteString(" VALUES (")
	qry.WriteString(placeholders(len(values)))
	qry.WriteString(")")

	args := make([]any, len(values))
	copy(args, values)

	return newStatement(KindInsert, qry.String(), args, nil)
}

// BuildInsertFrom derives the column list and values from model, which may be
// a struct (or pointer to one), a map[string]any or a SQLInsertGenerator.
func BuildInsertFrom(table string, model any) (Statement, error) {
	columns, values, err := insertPartsFromModel(model)
	if err != nil {
		return Statement{}, err
	}

	return BuildInsert(table, columns, values)
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}

	return "?" + strings.Repeat(", ?", n-1)
}
