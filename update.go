package store

import (
	"fmt"
	"sort"
	"strings"
)

type Assignment struct {
	Column string
	Value  any
}

// Assignments is an ordered list of column = value pairs. The order is kept
// in the SET clause and in the bound parameters.
type Assignments []Assignment

func Set(column string, value any) Assignments {
	return Assignments{{Column: column, Value: value}}
}

func (a Assignments) Set(column string, value any) Assignments {
	return append(a, Assignment{Column: column, Value: value})
}

func (a Assignments) Columns() []string {
	return Map(a, func(val Assignment) string {
		return val.Column
	})
}

// AssignmentsFromMap orders the map by column name.
func AssignmentsFromMap(keyvals map[string]any) Assignments {
	keys := make([]string, 0, len(keyvals))
	for k := range keyvals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var a Assignments
	for _, k := range keys {
		a = a.Set(k, keyvals[k])
	}

	return a
}

// BuildUpdate produces UPDATE table SET a = ?, ... [WHERE p]. The parameters
// are the assignment values followed by the predicate's. Without a predicate
// AllowUnconditional must be given.
func BuildUpdate(table string, assignments Assignments, options ...WriteOption) (Statement, error) {
	opt := &writeOption{}
	for _, op := range options {
		op(opt)
	}

	tb, err := ParseTableName(table)
	if err != nil {
		return Statement{}, err
	}

	if len(assignments) == 0 {
		return Statement{}, validationErrorf("assignments", "must not be empty")
	}

	if err := validateColumns("column", assignments.Columns()); err != nil {
		return Statement{}, err
	}

	if err := checkConditional(KindUpdate, opt); err != nil {
		return Statement{}, err
	}

	sets := make([]string, len(assignments))
	args := make([]any, 0, len(assignments)+len(opt.where.Args))
	for i, as := range assignments {
		sets[i] = as.Column + " = ?"
		args = append(args, as.Value)
	}

	qry := fmt.Sprintf("UPDATE %s SET %s", tb.FullTableName(), strings.Join(sets, ", "))
	if !opt.where.IsZero() {
		qry += " WHERE " + opt.where.Text
		args = append(args, opt.where.Args...)
	}

	return newStatement(KindUpdate, qry, args, nil)
}

func checkConditional(kind Kind, opt *writeOption) error {
	if err := validatePredicate(opt.where); err != nil {
		return err
	}

	if opt.where.IsZero() && !opt.unconditional {
		return validationErrorf("predicate", "is required for %s unless AllowUnconditional is given", kind)
	}

	return nil
}
