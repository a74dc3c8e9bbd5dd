package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID    int64  `db:"id,auto"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Age   int
}

func TestTable_Insert(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	tbl := NewExecutor(NewSQLDriver(db)).Table("shop.user")
	assert.Equal(t, "shop.user", tbl.Name())

	mock.ExpectExec("INSERT INTO shop.user (name, email, age) VALUES ($1, $2, $3)").
		WithArgs("Adam", "adam@example.com", 30).
		WillReturnResult(sqlmock.NewResult(1, 1))

	n, err := tbl.Insert(context.Background(), user{ID: 1, Name: "Adam", Email: "adam@example.com", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_Get(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	tbl := NewExecutor(NewSQLDriver(db)).Table("user")
	ctx := context.Background()

	mock.ExpectQuery("SELECT name, email FROM user WHERE id = $1 LIMIT 1").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"name", "email"}).AddRow("Adam", "adam@example.com"))

	row, err := tbl.Get(ctx, "id", 7, "name", "email")
	require.NoError(t, err)
	assert.Equal(t, Row{"name": "Adam", "email": "adam@example.com"}, row)

	mock.ExpectQuery("SELECT * FROM user WHERE id = $1 LIMIT 1").
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err = tbl.Get(ctx, "id", 8)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.True(t, IsNotFound(err))

	_, err = tbl.Get(ctx, "id = 1 OR 1", 8)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_Find(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	tbl := NewExecutor(NewSQLDriver(db)).Table("user")

	mock.ExpectQuery("SELECT name FROM user WHERE age = $1 AND status IN ($2, $3) ORDER BY name DESC LIMIT 5").
		WithArgs(30, "active", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Eve").AddRow("Adam"))

	rs, err := tbl.Find(context.Background(),
		map[string]any{"age": 30, "status": []string{"active", "pending"}},
		Columns("name"), SortBy("-name"), Limit(5),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, "Eve", rs.Rows[0]["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_UpdateAndDelete(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	tbl := NewExecutor(NewSQLDriver(db)).Table("user")
	ctx := context.Background()

	mock.ExpectExec("UPDATE user SET age = $1 WHERE id = $2").
		WithArgs(31, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM user").
		WillReturnResult(sqlmock.NewResult(0, 12))

	n, err := tbl.Update(ctx, Set("age", 31), FilterBy(Where("id = ?", 7)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = tbl.Delete(ctx)
	assert.ErrorIs(t, err, ErrValidation)

	n, err = tbl.Delete(ctx, AllowUnconditional())
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	require.NoError(t, mock.ExpectationsWereMet())
}
