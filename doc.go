// Package store builds parameterized INSERT, SELECT, UPDATE and DELETE
// statements for a single table and runs them through a caller supplied
// Driver.
//
// Table and column names are checked against a strict allow list and written
// into the statement text. Values are always bound as '?' parameters, which
// NewSQLDriver rebinds to the connection's bindvar style. Updates and deletes
// without a predicate are refused unless AllowUnconditional is passed.
//
//	stmt, err := store.BuildUpdate("user",
//		store.Set("name", "Adam").Set("age", 30),
//		store.FilterBy(store.Where("id = ?", 5)),
//	)
//	// UPDATE user SET name = ?, age = ? WHERE id = ?  ["Adam" 30 5]
//
// The library never opens, pools or closes connections. Wrap a *sqlx.DB or
// *sqlx.Tx with NewSQLDriver and hand it to NewExecutor.
package store
