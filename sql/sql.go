package sql

import (
	"fmt"
	"os"
	"strings"

	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog/log"

	"github.com/pgshift/pgshift/e"

	// Including postgres library for SQL connections
	_ "github.com/lib/pq"
)

const (
	ECode020101 = e.Code0201 + "01"
	ECode020102 = e.Code0201 + "02"
	ECode020103 = e.Code0201 + "03"
	ECode020104 = e.Code0201 + "04"
	ECode020105 = e.Code0201 + "05"
	ECode020106 = e.Code0201 + "06"
	ECode020107 = e.Code0201 + "07"
	ECode020108 = e.Code0201 + "08"
	ECode020109 = e.Code0201 + "09"
	ECode02010A = e.Code0201 + "0A"
	ECode02010B = e.Code0201 + "0B"
	ECode02010C = e.Code0201 + "0C"
	ECode02010F = e.Code0201 + "0F"
	ECode02010G = e.Code0201 + "0G"
	ECode02010H = e.Code0201 + "0H"
	ECode02010I = e.Code0201 + "0I"
)

// Connection wrapper of the *sql.DB
// If a transaction is started, it is stored internally in the txn and
// automatically used when making DB calls until commit/rollback is executed.
// If during a txn, a call outside of the txn is needed, the DB property can
// be accessed directly and used to make a query/exec call.
type Connection struct {
	DB  *sql.DB
	txn *sql.Tx
}

// ConnParam connection parameters used to initialize a connection
type ConnParam struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// GetConnParamFromENV initializes new connection parameters and populates
// from ENV variables
func GetConnParamFromENV() (cp *ConnParam) {
	cp = &ConnParam{}

	if os.Getenv("DBHOST") != "" {
		cp.Host = os.Getenv("DBHOST")
	}
	if os.Getenv("DBPORT") != "" {
		cp.Port = os.Getenv("DBPORT")
	}
	if os.Getenv("DBUSER") != "" {
		cp.User = os.Getenv("DBUSER")
	}
	if os.Getenv("DBPASS") != "" {
		cp.Password = os.Getenv("DBPASS")
	}
	if os.Getenv("DBNAME") != "" {
		cp.DBName = os.Getenv("DBNAME")
	}
	if os.Getenv("SSLMODE") != "" {
		cp.SSLMode = os.Getenv("SSLMODE")
	}

	return cp
}

// GetConnectionStr returns a connection string
func GetConnectionStr(cp *ConnParam) (connStr string) {
	var csb strings.Builder

	if cp == nil {
		cp = GetConnParamFromENV()
	}

	_, _ = csb.WriteString("host=")
	_, _ = csb.WriteString(cp.Host)
	_, _ = csb.WriteString(" port=")
	_, _ = csb.WriteString(cp.Port)
	_, _ = csb.WriteString(" user=")
	_, _ = csb.WriteString(cp.User)
	_, _ = csb.WriteString(" password=")
	_, _ = csb.WriteString(cp.Password)
	_, _ = csb.WriteString(" dbname=")
	_, _ = csb.WriteString(cp.DBName)

	_, _ = csb.WriteString(" sslmode=")
	if cp.SSLMode != "" {
		_, _ = csb.WriteString(cp.SSLMode)
	} else {
		_, _ = csb.WriteString("require")
	}

	return csb.String()
}

// NewPostgresConn initializes a new Postgres connection
func NewPostgresConn(cp *ConnParam) (conn *Connection, err error) {
	if cp == nil {
		cp = GetConnParamFromENV()
	}

	sqlConn, err := sql.Open("postgres", GetConnectionStr(cp))
	if err != nil {
		return nil, e.W(err, ECode020101, "failed to connect to DB")
	}
	if err := sqlConn.Ping(); err != nil {
		return nil, e.W(err, ECode020102, "failed to ping DB")
	}

	return &Connection{DB: sqlConn}, nil
}

// Close closes the underlying DB connection
func (c *Connection) Close() (err error) {
	if err := c.DB.Close(); err != nil {
		return e.W(err, ECode020103)
	}

	return nil
}

// Begin wrapper for sql.Begin. It doesn't return the txn object, but stores
// it internally and it will be used automatically for subsequent query/exec
// calls until commit/rollback is called
func (c *Connection) Begin() (err error) {
	if c.txn != nil {
		return e.W(nil, ECode020104, "already in a txn")
	}
	c.txn, err = c.DB.Begin()
	if err != nil {
		return e.W(err, ECode020105)
	}

	return nil
}

// Commit wrapper for sql.Commit. If successful, will unset the txn object
func (c *Connection) Commit() (err error) {
	if c.txn == nil {
		return e.W(nil, ECode020106, "not in a txn")
	}

	if err = c.txn.Commit(); err != nil {
		return e.W(err, ECode020107)
	}

	c.txn = nil

	return nil
}

// RollbackIfInTxn same as Rollback, except if it is not in a txn, it will
// not log a warning
func (c *Connection) RollbackIfInTxn() {
	if c.txn == nil {
		return
	}

	c.Rollback()
}

// Rollback wrapper for sql.Rollback - no matter what the transaction will
// be cancelled. So, we will log errors here, but will always assume the
// txn is rolled back and now unavailable
func (c *Connection) Rollback() {
	if c.txn == nil {
		log.Warn().Msg("[Connection.Rollback.1] not in txn")
		return
	}

	if err := c.txn.Rollback(); err != nil {
		log.Error().Err(err).Msg("[Connection.Rollback.2]")
		return
	}

	c.txn = nil
}

// Query wrapper for sql.Query with automatic txn handling
func (c *Connection) Query(query string, args ...interface{}) (rows *Rows, err error) {
	if c.txn != nil {
		sqlRows, err := c.txn.Query(query, args...)
		if err != nil {
			// Not logging args because it may contain sensitive information.
			// The caller can log them if needed
			return nil, e.W(err, ECode020108, fmt.Sprintf("query: %s\n", query))
		}
		return &Rows{
			rows:  sqlRows,
			query: query,
		}, nil
	}

	sqlRows, err := c.DB.Query(query, args...)
	if err != nil {
		// Not logging args because it may contain sensitive information. The
		// caller can log them if needed
		return nil, e.W(err, ECode020109, fmt.Sprintf("query: %s\n", query))
	}

	return &Rows{
		rows:  sqlRows,
		query: query,
	}, nil
}

// Exec wrapper for sql.Exec with automatic txn handling
func (c *Connection) Exec(query string, args ...interface{}) (res sql.Result, err error) {
	if c.txn != nil {
		res, err = c.txn.Exec(query, args...)
	} else {
		res, err = c.DB.Exec(query, args...)
	}
	if err != nil {
		// Not logging args because it may contain sensitive information. The
		// caller can log them if needed
		return nil, e.W(err, ECode02010A, fmt.Sprintf("query: %s\n", query))
	}

	return res, nil
}

// QueryRow wrapper for sql.QueryRow with automatic txn handling
func (c *Connection) QueryRow(query string, args ...interface{}) (row *Row) {
	if c.txn != nil {
		return &Row{
			row:   c.txn.QueryRow(query, args...),
			query: query,
		}
	}
	return &Row{
		row:   c.DB.QueryRow(query, args...),
		query: query,
	}
}

// Select wrapper for github.com/Masterminds/squirrel.Select
func (c *Connection) Select(columns ...string) sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select(columns...)
}

// Insert wrapper for github.com/Masterminds/squirrel.Insert
func (c *Connection) Insert(table string) sq.InsertBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Insert(table)
}

// Delete wrapper for github.com/Masterminds/squirrel.Delete
func (c *Connection) Delete(from string) sq.DeleteBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Delete(from)
}

// ToSQLAndQuery converts the select builder to a SQL statement and bind
// parameters, then attempts to execute the query, returning the rows
func (c *Connection) ToSQLAndQuery(sb sq.SelectBuilder) (rows *Rows, err error) {
	stmt, bindList, err := sb.ToSql()
	if err != nil {
		return nil, e.W(err, ECode02010B, fmt.Sprintf("stmt: %s\n", stmt))
	}

	rows, err = c.Query(stmt, bindList...)
	if err != nil {
		return nil, e.W(err, ECode02010C)
	}

	return rows, nil
}

// ExecInsertReturningID wrapper to generate SQL/bind list and then execute
// the insert query, scanning the id produced by its RETURNING suffix
func (c *Connection) ExecInsertReturningID(ib sq.InsertBuilder, id *int) (err error) {
	stmt, bindList, err := ib.ToSql()
	if err != nil {
		return e.W(err, ECode02010H, fmt.Sprintf("stmt: %s\n", stmt))
	}

	if err := c.QueryRow(stmt, bindList...).Scan(id); err != nil {
		return e.W(err, ECode02010I)
	}

	return nil
}

// ExecDelete wrapper to generate SQL/bind list and then execute delete query
func (c *Connection) ExecDelete(db sq.DeleteBuilder) (err error) {
	stmt, bindList, err := db.ToSql()
	if err != nil {
		return e.W(err, ECode02010F, fmt.Sprintf("stmt: %s\n", stmt))
	}

	if _, err := c.Exec(stmt, bindList...); err != nil {
		return e.W(err, ECode02010G)
	}

	return nil
}
