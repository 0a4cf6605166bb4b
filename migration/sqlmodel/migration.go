package sqlmodel

import (
	"fmt"

	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/migration/model"
	"github.com/pgshift/pgshift/sql"
)

const (
	MigrationTableName = "pgshift_migration"

	ECode000601 = e.Code0006 + "01"
	ECode000602 = e.Code0006 + "02"
	ECode000603 = e.Code0006 + "03"
	ECode000604 = e.Code0006 + "04"
	ECode000605 = e.Code0006 + "05"
	ECode000606 = e.Code0006 + "06"
	ECode000607 = e.Code0006 + "07"
)

// MigrationTableCreate creates the ledger table if it does not exist yet
func MigrationTableCreate(db *sql.Connection) (err error) {
	stmt := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	pgshift_migration_id BIGSERIAL PRIMARY KEY,
	pgshift_migration_version TEXT NOT NULL UNIQUE,
	pgshift_migration_name TEXT NOT NULL,
	pgshift_migration_checksum TEXT NOT NULL,
	pgshift_migration_exec_ms BIGINT NOT NULL DEFAULT 0,
	created_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, MigrationTableName)

	if _, err := db.Exec(stmt); err != nil {
		return e.W(err, ECode000601)
	}

	return nil
}

// MigrationGetAll returns all ledger rows in application order
func MigrationGetAll(db *sql.Connection) (mList []*model.AppliedMigration, err error) {
	sb := db.Select(`pgshift_migration_id, pgshift_migration_version,
		pgshift_migration_name, pgshift_migration_checksum,
		pgshift_migration_exec_ms, created_on`).
		From(MigrationTableName).
		OrderBy("pgshift_migration_id ASC")

	rows, err := db.ToSQLAndQuery(sb)
	if err != nil {
		return nil, e.W(err, ECode000602)
	}
	defer rows.Close()

	for rows.Next() {
		m := &model.AppliedMigration{}
		if err := rows.Scan(&m.ID, &m.Version, &m.Name, &m.Checksum,
			&m.ExecTimeMs, &m.AppliedOn); err != nil {
			return nil, e.W(err, ECode000603)
		}
		mList = append(mList, m)
	}
	if err := rows.Err(); err != nil {
		return nil, e.W(err, ECode000604)
	}

	return mList, nil
}

// MigrationInsert records a newly applied migration in the ledger, returning
// the new row id. The version column is unique, so recording a version twice
// is reported as an already applied conflict.
func MigrationInsert(db *sql.Connection, version, name string,
	execTimeMs int64, checksum string) (id int, err error) {
	ib := db.Insert(MigrationTableName).
		Columns(`pgshift_migration_version,pgshift_migration_name,
		pgshift_migration_checksum,pgshift_migration_exec_ms`).
		Values(version, name, checksum, execTimeMs).
		Suffix("RETURNING pgshift_migration_id")

	if err := db.ExecInsertReturningID(ib, &id); err != nil {
		if e.IsPQError(err, e.PQErr23505UniqueViolation) {
			return 0, e.W(err, ECode000607, e.MsgMigrationAlreadyApplied,
				fmt.Sprintf("version: %s", version))
		}
		return 0, e.W(err, ECode000605,
			fmt.Sprintf("version: %s, name: %s", version, name))
	}

	return id, nil
}

// MigrationDeleteByVersion removes a rolled back migration from the ledger
func MigrationDeleteByVersion(db *sql.Connection, version string) (err error) {
	delB := db.Delete(MigrationTableName).
		Where("pgshift_migration_version=?", version)

	if err := db.ExecDelete(delB); err != nil {
		return e.W(err, ECode000606, fmt.Sprintf("version: %s", version))
	}

	return nil
}
