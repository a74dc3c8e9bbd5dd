package store

import (
	"strings"

	"github.com/rs/zerolog"
)

type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// ParseDirection accepts asc/ascending and desc/descending in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}

	return "", validationErrorf("order direction", "%q is not one of ASC, DESC", s)
}

type order struct {
	column    string
	direction Direction
}

type SelectOption func(o *selectOption)

type selectOption struct {
	columns   []string
	where     Predicate
	orders    []order
	limit     int64
	hasLimit  bool
	offset    int64
	hasOffset bool
}

// Columns restricts the selected columns. Without it, or with a single "*",
// every column is selected.
func Columns(columns ...string) SelectOption {
	return func(o *selectOption) {
		o.columns = columns
	}
}

func Filter(p Predicate) SelectOption {
	return func(o *selectOption) {
		o.where = p
	}
}

func OrderBy(column string, direction Direction) SelectOption {
	return func(o *selectOption) {
		o.orders = append(o.orders, order{column: column, direction: direction})
	}
}

// SortBy adds orderings written as "name", "+name" or "-name".
func SortBy(fields ...string) SelectOption {
	return func(o *selectOption) {
		for _, f := range fields {
			col, dir := parseSortField(f)
			o.orders = append(o.orders, order{column: col, direction: dir})
		}
	}
}

func Limit(n int64) SelectOption {
	return func(o *selectOption) {
		o.limit = n
		o.hasLimit = true
	}
}

func Offset(n int64) SelectOption {
	return func(o *selectOption) {
		o.offset = n
		o.hasOffset = true
	}
}

type WriteOption func(o *writeOption)

type writeOption struct {
	where         Predicate
	unconditional bool
}

func FilterBy(p Predicate) WriteOption {
	return func(o *writeOption) {
		o.where = p
	}
}

// AllowUnconditional confirms that an update or delete without a predicate is
// meant to touch every row of the table.
func AllowUnconditional() WriteOption {
	return func(o *writeOption) {
		o.unconditional = true
	}
}

type ExecutorOption func(o *executorOption)

type executorOption struct {
	logger zerolog.Logger
}

func WithLogger(logger zerolog.Logger) ExecutorOption {
	return func(o *executorOption) {
		o.logger = logger
	}
}
