package store

import (
	"context"

	"github.com/rs/zerolog"
)

// Executor sends built statements to a Driver and normalizes the outcome into
// row counts, rows and *DriverError. It never retries.
type Executor struct {
	driver Driver
	logger zerolog.Logger
}

func NewExecutor(driver Driver, options ...ExecutorOption) *Executor {
	opt := &executorOption{logger: zerolog.Nop()}
	for _, op := range options {
		op(opt)
	}

	return &Executor{
		driver: driver,
		logger: opt.logger.With().Str("component", "sqlstore_executor").Logger(),
	}
}

// ExecuteWrite runs an insert, update or delete and returns the affected row
// count.
func (e *Executor) ExecuteWrite(ctx context.Context, stmt Statement) (int64, error) {
	if stmt.IsZero() {
		return 0, validationErrorf("statement", "is empty")
	}

	if stmt.Kind() == KindSelect {
		return 0, validationErrorf("statement", "is a select, use ExecuteRead")
	}

	e.logStatement(stmt)
	n, err := e.driver.Exec(ctx, stmt.SQL(), stmt.Args())
	if err != nil {
		e.logger.Error().Err(err).Str("kind", stmt.Kind().String()).Str("sql", stmt.SQL()).Msg("Statement failed")
		return 0, wrapDriverError(stmt.Kind().String(), stmt.SQL(), err)
	}

	return n, nil
}

// ExecuteRead runs a select and materializes every row.
func (e *Executor) ExecuteRead(ctx context.Context, stmt Statement) (*ResultSet, error) {
	it, err := e.Iterate(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	rs := &ResultSet{Columns: it.Columns()}
	for it.Next() {
		rs.Rows = append(rs.Rows, it.Row())
	}

	if err := it.Err(); err != nil {
		e.logger.Error().Err(err).Str("sql", stmt.SQL()).Msg("Reading rows failed")
		return nil, err
	}

	if err := it.Close(); err != nil {
		return nil, err
	}

	return rs, nil
}

// Iterate runs a select and returns a single pass iterator over its rows. The
// caller must close it.
func (e *Executor) Iterate(ctx context.Context, stmt Statement) (*RowIterator, error) {
	if stmt.Kind() != KindSelect {
		return nil, validationErrorf("statement", "is not a select, use ExecuteWrite")
	}

	e.logStatement(stmt)
	cursor, err := e.driver.Query(ctx, stmt.SQL(), stmt.Args())
	if err != nil {
		e.logger.Error().Err(err).Str("kind", stmt.Kind().String()).Str("sql", stmt.SQL()).Msg("Statement failed")
		return nil, wrapDriverError("select", stmt.SQL(), err)
	}

	got, err := cursor.Columns()
	if err != nil {
		cursor.Close()
		return nil, wrapDriverError("select", stmt.SQL(), err)
	}

	columns, index, err := mapColumns(stmt.Columns(), got)
	if err != nil {
		cursor.Close()
		return nil, wrapDriverError("select", stmt.SQL(), err)
	}

	return &RowIterator{
		cursor:  cursor,
		query:   stmt.SQL(),
		columns: columns,
		index:   index,
		width:   len(got),
	}, nil
}

func (e *Executor) Insert(ctx context.Context, table string, columns []string, values []any) (int64, error) {
	stmt, err := BuildInsert(table, columns, values)
	if err != nil {
		return 0, err
	}

	return e.ExecuteWrite(ctx, stmt)
}

func (e *Executor) Select(ctx context.Context, table string, options ...SelectOption) (*ResultSet, error) {
	stmt, err := BuildSelect(table, options...)
	if err != nil {
		return nil, err
	}

	return e.ExecuteRead(ctx, stmt)
}

func (e *Executor) Update(ctx context.Context, table string, assignments Assignments, options ...WriteOption) (int64, error) {
	stmt, err := BuildUpdate(table, assignments, options...)
	if err != nil {
		return 0, err
	}

	return e.ExecuteWrite(ctx, stmt)
}

func (e *Executor) Delete(ctx context.Context, table string, options ...WriteOption) (int64, error) {
	stmt, err := BuildDelete(table, options...)
	if err != nil {
		return 0, err
	}

	return e.ExecuteWrite(ctx, stmt)
}

// logStatement records the statement shape. Parameter values are never
// logged.
func (e *Executor) logStatement(stmt Statement) {
	e.logger.Debug().
		Str("kind", stmt.Kind().String()).
		Str("sql", stmt.SQL()).
		Int("args", len(stmt.args)).
		Msg("Executing statement")
}
