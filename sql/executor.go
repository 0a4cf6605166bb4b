package sql

import (
	"fmt"
	"strings"

	"github.com/pgshift/pgshift/e"
)

const (
	ECode020501 = e.Code0205 + "01"
	ECode020502 = e.Code0205 + "02"
	ECode020503 = e.Code0205 + "03"
	ECode020504 = e.Code0205 + "04"
)

// TxnExecutor runs batches of SQL statements inside a single transaction.
// Statements that carry their own BEGIN/COMMIT text are passed through to
// Postgres verbatim as one unit.
type TxnExecutor struct {
	db *Connection
}

// NewTxnExecutor initializes an executor on the given connection
func NewTxnExecutor(db *Connection) (x *TxnExecutor) {
	return &TxnExecutor{
		db: db,
	}
}

// RunInTransaction executes the statements in order inside one transaction,
// rolling back on the first failure. The failing statement index is included
// in the returned error.
//
// If any statement manages its own transaction (starts with BEGIN), the
// batch is executed without an outer transaction - an embedded COMMIT would
// otherwise terminate the wrapping one mid flight.
func (x *TxnExecutor) RunInTransaction(statements []string) (err error) {
	if selfTransactional(statements) {
		for i, stmt := range statements {
			if _, err := x.db.Exec(stmt); err != nil {
				return e.W(err, ECode020501, fmt.Sprintf("statement %d of %d",
					i+1, len(statements)))
			}
		}
		return nil
	}

	if err := x.db.Begin(); err != nil {
		return e.W(err, ECode020502)
	}
	defer x.db.RollbackIfInTxn()

	for i, stmt := range statements {
		if _, err := x.db.Exec(stmt); err != nil {
			return e.W(err, ECode020503, fmt.Sprintf("statement %d of %d",
				i+1, len(statements)))
		}
	}

	if err := x.db.Commit(); err != nil {
		return e.W(err, ECode020504)
	}

	return nil
}

// selfTransactional reports whether any statement opens its own transaction
func selfTransactional(statements []string) bool {
	for _, stmt := range statements {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(stmt)), "BEGIN;") {
			return true
		}
	}

	return false
}
