package store

import (
	"fmt"
	"strings"
)

// BuildSelect produces
//
//	SELECT columns FROM table [WHERE p] [ORDER BY c dir, ...] [LIMIT n] [OFFSET n]
//
// The parameters are the predicate's, in its own order. LIMIT and OFFSET are
// written as integers rather than bound, since not every driver accepts
// placeholders there.
func BuildSelect(table string, options ...SelectOption) (Statement, error) {
	opt := &selectOption{}
	for _, op := range options {
		op(opt)
	}

	tb, err := ParseTableName(table)
	if err != nil {
		return Statement{}, err
	}

	columns := opt.columns
	if len(columns) == 1 && columns[0] == "*" {
		columns = nil
	}

	if err := validateColumns("column", columns); err != nil {
		return Statement{}, err
	}

	if err := validatePredicate(opt.where); err != nil {
		return Statement{}, err
	}

	if opt.hasLimit && opt.limit < 0 {
		return Statement{}, validationErrorf("limit", "must not be negative, got %d", opt.limit)
	}

	if opt.hasOffset && opt.offset < 0 {
		return Statement{}, validationErrorf("offset", "must not be negative, got %d", opt.offset)
	}

	sortClause, err := makeSortClause(opt.orders)
	if err != nil {
		return Statement{}, err
	}

	selected := "*"
	if len(columns) > 0 {
		selected = strings.Join(columns, ", ")
	}

	var qry strings.Builder
	qry.WriteString(fmt.Sprintf("SELECT %s FROM %s", selected, tb.FullTableName()))

	var args []any
	if !opt.where.IsZero() {
		qry.WriteString(" WHERE ")
		qry.WriteString(opt.where.Text)
		args = append(args, opt.where.Args...)
	}

	if sortClause != "" {
		qry.WriteString(" ORDER BY ")
		qry.WriteString(sortClause)
	}

	if opt.hasLimit {
		qry.WriteString(fmt.Sprintf(" LIMIT %d", opt.limit))
	}

	if opt.hasOffset {
		qry.WriteString(fmt.Sprintf(" OFFSET %d", opt.offset))
	}

	var requested []string
	if len(columns) > 0 {
		requested = make([]string, len(columns))
		copy(requested, columns)
	}

	return newStatement(KindSelect, qry.String(), args, requested)
}

func makeSortClause(orders []order) (string, error) {
	if len(orders) == 0 {
		return "", nil
	}

	srt := make([]string, 0, len(orders))
	for _, o := range orders {
		if err := validateIdentifier("order column", o.column); err != nil {
			return "", err
		}

		dir, err := ParseDirection(string(o.direction))
		if err != nil {
			return "", err
		}

		srt = append(srt, fmt.Sprintf("%s %s", o.column, dir))
	}

	return strings.Join(srt, ", "), nil
}
