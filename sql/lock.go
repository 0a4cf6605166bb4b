package sql

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"github.com/pgshift/pgshift/e"
)

const (
	ECode020401 = e.Code0204 + "01"
	ECode020402 = e.Code0204 + "02"
	ECode020403 = e.Code0204 + "03"
	ECode020404 = e.Code0204 + "04"
	ECode020405 = e.Code0204 + "05"
)

// AdvisoryLock is a Postgres advisory lock with a key derived from a name,
// typically the ledger table name. Advisory locks are session scoped, so the
// lock pins a single connection from the pool for its lifetime and releases
// it again on Release.
type AdvisoryLock struct {
	db   *Connection
	key  int64
	conn *sql.Conn
}

// NewAdvisoryLock initializes an advisory lock for the given name
func NewAdvisoryLock(db *Connection, name string) (l *AdvisoryLock) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))

	return &AdvisoryLock{
		db:  db,
		key: int64(h.Sum64()),
	}
}

// Acquire attempts to take the advisory lock, failing immediately if another
// session currently holds it
func (l *AdvisoryLock) Acquire() (err error) {
	if l.conn != nil {
		return e.W(nil, ECode020401, "lock already acquired")
	}

	conn, err := l.db.DB.Conn(context.Background())
	if err != nil {
		return e.W(err, ECode020402)
	}

	var locked bool
	if err := conn.QueryRowContext(context.Background(),
		`SELECT pg_try_advisory_lock($1)`, l.key).Scan(&locked); err != nil {
		_ = conn.Close()
		return e.W(err, ECode020403)
	}

	if !locked {
		_ = conn.Close()
		return e.W(nil, ECode020404, e.MsgMigrationLockUnavailable,
			fmt.Sprintf("key: %d", l.key))
	}

	l.conn = conn

	return nil
}

// Release unlocks and returns the pinned connection to the pool. It is safe
// to call when the lock was never acquired.
func (l *AdvisoryLock) Release() (err error) {
	if l.conn == nil {
		return nil
	}

	var unlocked bool
	err = l.conn.QueryRowContext(context.Background(),
		`SELECT pg_advisory_unlock($1)`, l.key).Scan(&unlocked)

	_ = l.conn.Close()
	l.conn = nil

	if err != nil {
		return e.W(err, ECode020405)
	}

	return nil
}
