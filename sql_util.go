package store

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

type FilterNull interface {
	IsNull() bool
}

type filterNull bool

func (fn filterNull) IsNull() bool {
	return bool(fn)
}

func FilterNullFrom(isNull bool) FilterNull {
	return filterNull(isNull)
}

type FilterStringContains interface {
	Contains() string
}

type filterStringContains string

func (fs filterStringContains) Contains() string {
	return fmt.Sprintf("%%%s%%", fs)
}

func FilterStringContainsFrom(str string) FilterStringContains {
	return filterStringContains(str)
}

// PredicateFromFilter turns a column to value map into an AND joined
// predicate. Columns are emitted in sorted order so the same filter always
// produces the same text. Slice values become IN lists, FilterNull values
// become IS [NOT] NULL and FilterStringContains values become LIKE.
func PredicateFromFilter(filterMap map[string]any) (Predicate, error) {
	keys := make([]string, 0, len(filterMap))
	for k := range filterMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var where []string
	var args []any
	for _, k := range keys {
		if err := validateIdentifier("filter column", k); err != nil {
			return Predicate{}, err
		}

		val := filterMap[k]
		if fnull, ok := val.(FilterNull); ok {
			isNot := ""
			if !fnull.IsNull() {
				isNot = "NOT "
			}
			where = append(where, fmt.Sprintf("%s IS %sNULL", k, isNot))
			continue
		}

		if fcontain, ok := val.(FilterStringContains); ok {
			where = append(where, fmt.Sprintf("%s LIKE ?", k))
			args = append(args, fcontain.Contains())
			continue
		}

		if val == nil {
			where = append(where, fmt.Sprintf("%s IS NULL", k))
			continue
		}

		vval := reflect.ValueOf(val)
		if vval.Kind() != reflect.Slice || vval.Type().Elem().Kind() == reflect.Uint8 {
			where = append(where, k+" = ?")
			args = append(args, val)
			continue
		}

		f, arg, err := parameterizedFilterCriteriaSlice(k, vval)
		if err != nil {
			return Predicate{}, err
		}

		where = append(where, f)
		args = append(args, arg)
	}

	text, args, err := sqlx.In(strings.Join(where, " AND "), args...)
	if err != nil {
		return Predicate{}, validationErrorf("filter", "%s", err)
	}

	return Predicate{Text: text, Args: args}, nil
}

func parameterizedFilterCriteriaSlice(fieldname string, s reflect.Value) (string, any, error) {
	if s.Len() == 0 {
		return "", nil, validationErrorf("filter column", "%q has an empty value list", fieldname)
	}

	if s.Len() > 1 {
		return fieldname + " IN (?)", s.Interface(), nil
	}

	return fieldname + " = ?", s.Index(0).Interface(), nil
}

// parseSortField reads "name", "+name" (ascending) or "-name" (descending).
func parseSortField(s string) (string, Direction) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", Ascending
	}

	switch s[:1] {
	case "-":
		return s[1:], Descending
	case "+":
		return s[1:], Ascending
	}

	return s, Ascending
}
