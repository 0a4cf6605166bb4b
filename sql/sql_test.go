package sql

import (
	"database/sql"
	"database/sql/driver"
	"io"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/pgshift/pgshift/e"
)

func init() {
	sql.Register("pgshiftmock", &mockDriver{})
}

// mockDriver exercises the Connection wrapper without a running Postgres.
// Every statement records its query text; the next result row and error are
// configured through package globals, reset by newMockConn.
type mockDriver struct{}

var (
	mockQueries []string
	mockNextRow []driver.Value
	mockNextErr error
)

func (d *mockDriver) Open(name string) (driver.Conn, error) {
	return &mockConn{}, nil
}

type mockConn struct{}

func (c *mockConn) Prepare(query string) (driver.Stmt, error) {
	return &mockStmt{query: query}, nil
}

func (c *mockConn) Close() error { return nil }

func (c *mockConn) Begin() (driver.Tx, error) {
	return &mockTx{}, nil
}

type mockTx struct{}

func (t *mockTx) Commit() error   { return nil }
func (t *mockTx) Rollback() error { return nil }

type mockStmt struct {
	query string
}

func (s *mockStmt) Close() error  { return nil }
func (s *mockStmt) NumInput() int { return -1 }

func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) {
	mockQueries = append(mockQueries, s.query)
	if err := mockNextErr; err != nil {
		mockNextErr = nil
		return nil, err
	}

	return driver.RowsAffected(1), nil
}

func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error) {
	mockQueries = append(mockQueries, s.query)
	if err := mockNextErr; err != nil {
		mockNextErr = nil
		return nil, err
	}

	return &mockRows{row: mockNextRow}, nil
}

type mockRows struct {
	row  []driver.Value
	done bool
}

func (r *mockRows) Columns() []string {
	cols := make([]string, len(r.row))
	for i := range cols {
		cols[i] = "c"
	}

	return cols
}

func (r *mockRows) Close() error { return nil }

func (r *mockRows) Next(dest []driver.Value) error {
	if r.done || r.row == nil {
		return io.EOF
	}
	copy(dest, r.row)
	r.done = true

	return nil
}

func newMockConn(t *testing.T) *Connection {
	t.Helper()
	mockQueries = nil
	mockNextRow = nil
	mockNextErr = nil

	db, err := sql.Open("pgshiftmock", "")
	require.NoError(t, err)

	return &Connection{DB: db}
}

func TestExecInsertReturningID(t *testing.T) {
	c := newMockConn(t)
	mockNextRow = []driver.Value{int64(7)}

	ib := c.Insert("pgshift_migration").
		Columns("pgshift_migration_version").
		Values("20240101").
		Suffix("RETURNING pgshift_migration_id")

	var id int
	require.NoError(t, c.ExecInsertReturningID(ib, &id))
	require.Equal(t, 7, id)
	require.Len(t, mockQueries, 1)
	require.Contains(t, mockQueries[0], "RETURNING pgshift_migration_id")
	require.Contains(t, mockQueries[0], "$1")
}

// A driver error from a single row query must stay detectable as the
// originating pq error after wrapping
func TestQueryRowSurfacesPQError(t *testing.T) {
	c := newMockConn(t)
	mockNextErr = &pq.Error{Code: e.PQErr23505UniqueViolation}

	var id int
	err := c.QueryRow("INSERT INTO pgshift_migration DEFAULT VALUES RETURNING pgshift_migration_id").
		Scan(&id)
	require.Error(t, err)
	require.True(t, e.IsPQError(err, e.PQErr23505UniqueViolation))
}
