package store

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	query string
	args  []any
}

type fakeDriver struct {
	calls    []execCall
	affected int64
	execErr  error
	queryErr error
	cursor   *fakeCursor
}

func (d *fakeDriver) Exec(_ context.Context, query string, args []any) (int64, error) {
	d.calls = append(d.calls, execCall{query: query, args: args})
	if d.execErr != nil {
		return 0, d.execErr
	}

	return d.affected, nil
}

func (d *fakeDriver) Query(_ context.Context, query string, args []any) (Cursor, error) {
	d.calls = append(d.calls, execCall{query: query, args: args})
	if d.queryErr != nil {
		return nil, d.queryErr
	}

	return d.cursor, nil
}

type fakeCursor struct {
	columns    []string
	columnsErr error
	rows       [][]any
	pos        int
	scanErr    error
	iterErr    error
	closeErr   error
	closed     bool
}

func (c *fakeCursor) Columns() ([]string, error) {
	return c.columns, c.columnsErr
}

func (c *fakeCursor) Next() bool {
	if c.pos >= len(c.rows) {
		return false
	}
	c.pos++
	return true
}

func (c *fakeCursor) Scan(dest ...any) error {
	if c.scanErr != nil {
		return c.scanErr
	}

	row := c.rows[c.pos-1]
	for i := range dest {
		*(dest[i].(*any)) = row[i]
	}

	return nil
}

func (c *fakeCursor) Err() error {
	return c.iterErr
}

func (c *fakeCursor) Close() error {
	c.closed = true
	return c.closeErr
}

func TestExecutor_ExecuteWrite(t *testing.T) {
	drv := &fakeDriver{affected: 3}
	exec := NewExecutor(drv)

	stmt, err := BuildUpdate("user", Set("name", "Adam").Set("age", 30), FilterBy(Where("id = ?", 5)))
	require.NoError(t, err)

	n, err := exec.ExecuteWrite(context.Background(), stmt)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.Len(t, drv.calls, 1)
	assert.Equal(t, "UPDATE user SET name = ?, age = ? WHERE id = ?", drv.calls[0].query)
	assert.Equal(t, []any{"Adam", 30, 5}, drv.calls[0].args)
}

func TestExecutor_ExecuteWriteDriverError(t *testing.T) {
	cause := errors.New("connection refused")
	drv := &fakeDriver{execErr: cause}
	exec := NewExecutor(drv)

	n, err := exec.Insert(context.Background(), "user", []string{"name"}, []any{"Adam"})
	require.Error(t, err)
	assert.Zero(t, n)

	var de *DriverError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "insert", de.Op)
	assert.Equal(t, "INSERT INTO user (name) VALUES (?)", de.Query)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestExecutor_ExecuteWriteRejectsSelect(t *testing.T) {
	drv := &fakeDriver{}
	exec := NewExecutor(drv)

	stmt, err := BuildSelect("user")
	require.NoError(t, err)

	_, err = exec.ExecuteWrite(context.Background(), stmt)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = exec.ExecuteWrite(context.Background(), Statement{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, drv.calls)
}

func TestExecutor_ExecuteRead(t *testing.T) {
	cursor := &fakeCursor{
		// driver reports columns in a different order and case
		columns: []string{"EMAIL", "name", "age"},
		rows: [][]any{
			{[]byte("adam@example.com"), "Adam", int64(30)},
			{"eve@example.com", []byte("Eve"), nil},
		},
	}
	drv := &fakeDriver{cursor: cursor}
	exec := NewExecutor(drv)

	rs, err := exec.Select(context.Background(), "user",
		Columns("name", "email"),
		Filter(Where("age > ?", 18)),
		OrderBy("name", Ascending),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "email"}, rs.Columns)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, Row{"name": "Adam", "email": "adam@example.com"}, rs.Rows[0])
	assert.Equal(t, []any{"Eve", "eve@example.com"}, rs.Values(1))
	assert.True(t, cursor.closed)

	require.Len(t, drv.calls, 1)
	assert.Equal(t, []any{18}, drv.calls[0].args)
}

func TestExecutor_ExecuteReadAllColumns(t *testing.T) {
	cursor := &fakeCursor{
		columns: []string{"id", "name"},
		rows:    [][]any{{int64(1), "Adam"}},
	}
	exec := NewExecutor(&fakeDriver{cursor: cursor})

	rs, err := exec.Select(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, rs.Columns)
	assert.Equal(t, []any{int64(1), "Adam"}, rs.Values(0))
}

func TestExecutor_ExecuteReadErrors(t *testing.T) {
	cause := errors.New("boom")
	stmt, err := BuildSelect("user", Columns("name"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		driver *fakeDriver
	}{
		{"query fails", &fakeDriver{queryErr: cause}},
		{"columns fail", &fakeDriver{cursor: &fakeCursor{columnsErr: cause}}},
		{"missing column", &fakeDriver{cursor: &fakeCursor{columns: []string{"email"}}}},
		{"scan fails", &fakeDriver{cursor: &fakeCursor{columns: []string{"name"}, rows: [][]any{{"a"}}, scanErr: cause}}},
		{"iteration fails", &fakeDriver{cursor: &fakeCursor{columns: []string{"name"}, iterErr: cause}}},
		{"close fails", &fakeDriver{cursor: &fakeCursor{columns: []string{"name"}, closeErr: cause}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := NewExecutor(tt.driver)
			rs, err := exec.ExecuteRead(context.Background(), stmt)
			require.Error(t, err)
			assert.Nil(t, rs)

			var de *DriverError
			assert.ErrorAs(t, err, &de)
			if tt.driver.cursor != nil {
				assert.True(t, tt.driver.cursor.closed)
			}
		})
	}
}

func TestExecutor_ExecuteReadRejectsWrites(t *testing.T) {
	stmt, err := BuildDelete("user", AllowUnconditional())
	require.NoError(t, err)

	_, err = NewExecutor(&fakeDriver{}).ExecuteRead(context.Background(), stmt)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExecutor_Iterate(t *testing.T) {
	cursor := &fakeCursor{
		columns: []string{"id"},
		rows:    [][]any{{int64(1)}, {int64(2)}, {int64(3)}},
	}
	exec := NewExecutor(&fakeDriver{cursor: cursor})

	stmt, err := BuildSelect("user", Columns("id"))
	require.NoError(t, err)

	it, err := exec.Iterate(context.Background(), stmt)
	require.NoError(t, err)

	var ids []any
	for it.Next() {
		ids = append(ids, it.Row()["id"])
	}
	require.NoError(t, it.Err())
	require.NoError(t, it.Close())
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, ids)

	// consumed and closed
	assert.False(t, it.Next())
	assert.NoError(t, it.Close())
}

func TestExecutor_BuilderErrorsSkipDriver(t *testing.T) {
	drv := &fakeDriver{}
	exec := NewExecutor(drv)
	ctx := context.Background()

	_, err := exec.Update(ctx, "user", Set("name", "x"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = exec.Delete(ctx, "user")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = exec.Select(ctx, "user; DROP TABLE x")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = exec.Insert(ctx, "user", nil, nil)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, drv.calls)
}

func TestExecutor_LogsWithoutValues(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	exec := NewExecutor(&fakeDriver{affected: 1}, WithLogger(logger))

	_, err := exec.Insert(context.Background(), "user", []string{"password"}, []any{"hunter2"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "INSERT INTO user (password) VALUES (?)")
	assert.Contains(t, out, `"args":1`)
	assert.NotContains(t, out, "hunter2")
}
