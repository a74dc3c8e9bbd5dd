package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrKeyAlreadyExists = errors.New("key already exists")
	ErrKeyNotFound      = errors.New("key not found")
	ErrNoRow            = errors.New("no row")
)

// ValidationError reports caller supplied input that can not be turned into a
// statement. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}

	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationErrorf(field string, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DriverError wraps a failure reported by the driver collaborator. The
// underlying cause is kept as is and reachable through errors.As.
type DriverError struct {
	Op    string
	Query string
	Err   error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

func wrapDriverError(op string, query string, err error) error {
	if err == nil {
		return nil
	}

	var de *DriverError
	if errors.As(err, &de) {
		return err
	}

	return &DriverError{Op: op, Query: query, Err: classifyDriverError(err)}
}

// classifyDriverError attaches one of the package sentinels to well known
// driver failures while leaving the original error in the chain.
func classifyDriverError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNoRow, err)
	}

	code := ""
	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		code = pgErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	}

	switch code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %w", ErrKeyAlreadyExists, err)
	case pgerrcode.NoDataFound:
		return fmt.Errorf("%w: %w", ErrKeyNotFound, err)
	}

	return err
}
