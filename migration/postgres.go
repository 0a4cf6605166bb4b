package migration

import (
	"github.com/rs/zerolog/log"

	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/migration/model"
	"github.com/pgshift/pgshift/migration/sqlmodel"
	"github.com/pgshift/pgshift/sql"
)

const (
	ECode000401 = e.Code0004 + "01"
	ECode000402 = e.Code0004 + "02"
	ECode000403 = e.Code0004 + "03"
	ECode000404 = e.Code0004 + "04"
	ECode000405 = e.Code0004 + "05"
)

// sqlLedger the ledger backed by the pgshift_migration table
type sqlLedger struct {
	db *sql.Connection
}

// GetApplied returns the ledger rows in application order
func (l *sqlLedger) GetApplied() (mList []*model.AppliedMigration, err error) {
	mList, err = sqlmodel.MigrationGetAll(l.db)
	if err != nil {
		return nil, e.W(err, ECode000401)
	}

	return mList, nil
}

// Record inserts a ledger row for a newly applied version
func (l *sqlLedger) Record(version, name string, execTimeMs int64,
	checksum string) (err error) {
	id, err := sqlmodel.MigrationInsert(l.db, version, name,
		execTimeMs, checksum)
	if err != nil {
		return e.W(err, ECode000402)
	}

	log.Debug().Msgf("ledger row %d records version %s", id, version)

	return nil
}

// Remove deletes the ledger row for a rolled back version
func (l *sqlLedger) Remove(version string) (err error) {
	if err := sqlmodel.MigrationDeleteByVersion(l.db, version); err != nil {
		return e.W(err, ECode000403)
	}

	return nil
}

// NewPostgresMigrator wires a migrator to a Postgres connection: the ledger
// table (created if missing), an advisory lock keyed off the ledger table
// name and a transactional statement executor
func NewPostgresMigrator(db *sql.Connection, dir string, dryRun bool) (
	m *Migrator, err error) {
	if err := sqlmodel.MigrationTableCreate(db); err != nil {
		return nil, e.W(err, ECode000404)
	}

	m, err = NewMigrator(&MigratorParam{
		Dir:      dir,
		Ledger:   &sqlLedger{db: db},
		Lock:     sql.NewAdvisoryLock(db, sqlmodel.MigrationTableName),
		Executor: sql.NewTxnExecutor(db),
		DryRun:   dryRun,
	})
	if err != nil {
		return nil, e.W(err, ECode000405)
	}

	return m, nil
}
