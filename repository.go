package store

import (
	"context"
	"errors"
)

// Table binds an Executor to a single table name so callers do not repeat it
// on every call.
type Table struct {
	exec *Executor
	name string
}

func (e *Executor) Table(name string) *Table {
	return &Table{exec: e, name: name}
}

func (t *Table) Name() string {
	return t.name
}

// Insert stores model, see BuildInsertFrom for the accepted shapes.
func (t *Table) Insert(ctx context.Context, model any) (int64, error) {
	stmt, err := BuildInsertFrom(t.name, model)
	if err != nil {
		return 0, err
	}

	return t.exec.ExecuteWrite(ctx, stmt)
}

// Get returns the single row whose keyField equals key. ErrKeyNotFound is
// returned when no row matches.
func (t *Table) Get(ctx context.Context, keyField string, key any, columns ...string) (Row, error) {
	if err := validateIdentifier("key field", keyField); err != nil {
		return nil, err
	}

	rs, err := t.exec.Select(ctx, t.name,
		Columns(columns...),
		Filter(Where(keyField+" = ?", key)),
		Limit(1),
	)
	if err != nil {
		return nil, err
	}

	if rs.Len() == 0 {
		return nil, ErrKeyNotFound
	}

	return rs.Rows[0], nil
}

// Find selects the rows matching filterMap, see PredicateFromFilter. Extra
// options such as ordering and paging are applied after the filter.
func (t *Table) Find(ctx context.Context, filterMap map[string]any, options ...SelectOption) (*ResultSet, error) {
	pred, err := PredicateFromFilter(filterMap)
	if err != nil {
		return nil, err
	}

	opts := append([]SelectOption{Filter(pred)}, options...)
	return t.exec.Select(ctx, t.name, opts...)
}

func (t *Table) Update(ctx context.Context, assignments Assignments, options ...WriteOption) (int64, error) {
	return t.exec.Update(ctx, t.name, assignments, options...)
}

func (t *Table) Delete(ctx context.Context, options ...WriteOption) (int64, error) {
	return t.exec.Delete(ctx, t.name, options...)
}

// IsNotFound reports whether err means that no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrNoRow)
}
