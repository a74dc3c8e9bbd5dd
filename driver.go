package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Driver is the collaborator that talks to the database. It owns connecting,
// reconnecting, closing, cancellation and timeouts. Statement text reaches it
// with '?' placeholders.
type Driver interface {
	Exec(ctx context.Context, query string, args []any) (int64, error)
	Query(ctx context.Context, query string, args []any) (Cursor, error)
}

// Cursor is a forward only result. *sql.Rows and *sqlx.Rows satisfy it.
type Cursor interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type sqlDriver struct {
	conn     sqlx.ExtContext
	bindType int
}

// NewSQLDriver adapts a *sqlx.DB or *sqlx.Tx. Placeholders are rebound to the
// bindvar style of the connection's driver before the query is sent; a '?'
// inside a quoted literal is not a placeholder and is sent unchanged.
func NewSQLDriver(conn sqlx.ExtContext) Driver {
	return &sqlDriver{conn: conn, bindType: sqlx.BindType(conn.DriverName())}
}

func (d *sqlDriver) Exec(ctx context.Context, query string, args []any) (int64, error) {
	res, err := d.conn.ExecContext(ctx, rebind(d.bindType, query), args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (d *sqlDriver) Query(ctx context.Context, query string, args []any) (Cursor, error) {
	rows, err := d.conn.QueryxContext(ctx, rebind(d.bindType, query), args...)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
