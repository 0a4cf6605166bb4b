// Package migration orchestrates schema migrations for a Postgres database.
// Migration files live in a directory, carry a sortable version prefix in
// their filename and hold up/down SQL blocks separated by markers. Applied
// versions are recorded in a ledger table, and every mutating run happens
// under a single advisory lock.
//
// Basic usage sample (errors ignored for example code):
//
//	db, _ := sql.NewPostgresConn(nil)
//	m, _ := migration.NewPostgresMigrator(db, "db/migrations", false)
//	_ = m.Up()
package migration

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/migration/model"
)

const (
	ECode000101 = e.Code0001 + "01"
	ECode000102 = e.Code0001 + "02"
	ECode000103 = e.Code0001 + "03"
	ECode000104 = e.Code0001 + "04"
	ECode000105 = e.Code0001 + "05"
	ECode000106 = e.Code0001 + "06"
	ECode000107 = e.Code0001 + "07"
	ECode000108 = e.Code0001 + "08"
	ECode000109 = e.Code0001 + "09"
	ECode00010A = e.Code0001 + "0A"
	ECode00010B = e.Code0001 + "0B"
	ECode00010C = e.Code0001 + "0C"
	ECode00010D = e.Code0001 + "0D"
	ECode00010E = e.Code0001 + "0E"
	ECode00010F = e.Code0001 + "0F"
	ECode00010G = e.Code0001 + "0G"
	ECode00010H = e.Code0001 + "0H"
	ECode00010I = e.Code0001 + "0I"
	ECode00010J = e.Code0001 + "0J"
	ECode00010K = e.Code0001 + "0K"
	ECode00010L = e.Code0001 + "0L"
	ECode00010M = e.Code0001 + "0M"
	ECode00010N = e.Code0001 + "0N"
	ECode00010O = e.Code0001 + "0O"
	ECode00010P = e.Code0001 + "0P"
	ECode00010Q = e.Code0001 + "0Q"
	ECode00010R = e.Code0001 + "0R"
	ECode00010S = e.Code0001 + "0S"
	ECode00010T = e.Code0001 + "0T"
)

// Ledger is the durable record of applied migrations. GetApplied returns
// records in application order.
type Ledger interface {
	GetApplied() (mList []*model.AppliedMigration, err error)
	Record(version, name string, execTimeMs int64, checksum string) (err error)
	Remove(version string) (err error)
}

// Locker serializes migration runs. Advisory, single holder.
type Locker interface {
	Acquire() (err error)
	Release() (err error)
}

// Executor runs a batch of statements transactionally and fails on the
// first rejected statement
type Executor interface {
	RunInTransaction(statements []string) (err error)
}

// MigratorParam dependencies and settings for a migrator
type MigratorParam struct {
	Dir      string
	Ledger   Ledger
	Lock     Locker
	Executor Executor
	DryRun   bool
}

// Migrator sequences parse, split, execute and record/remove for apply and
// rollback runs. All state is recomputed fresh per invocation.
type Migrator struct {
	dir      string
	ledger   Ledger
	lock     Locker
	executor Executor
	dryRun   bool
}

// Status the reconciliation of ledger against catalog
type Status struct {
	Applied []*model.AppliedMigration
	Pending []*File
	// Drift lists versions whose stored checksum no longer matches the
	// file on disk
	Drift []string
}

// NewMigrator initializes a new migrator
func NewMigrator(p *MigratorParam) (m *Migrator, err error) {
	if p.Dir == "" {
		return nil, e.W(nil, ECode000101, e.MsgMigrationDirInvalid)
	}
	if p.Ledger == nil || p.Lock == nil || p.Executor == nil {
		return nil, e.W(nil, ECode000102, "missing ledger, lock or executor")
	}

	return &Migrator{
		dir:      p.Dir,
		ledger:   p.Ledger,
		lock:     p.Lock,
		executor: p.Executor,
		dryRun:   p.DryRun,
	}, nil
}

// Up applies all pending migrations in filename order. The first failure
// aborts the remaining files; already applied files are not rolled back
// automatically.
func (m *Migrator) Up() (err error) {
	if err := m.lock.Acquire(); err != nil {
		return e.W(err, ECode000103)
	}
	defer m.releaseLock()

	applied, err := m.ledger.GetApplied()
	if err != nil {
		return e.W(err, ECode000104)
	}

	c, err := NewCatalog(m.dir)
	if err != nil {
		return e.W(err, ECode000105)
	}

	pending := Pending(c.Files(), applied)
	if len(pending) == 0 {
		log.Info().Msg("no pending migrations")
		return nil
	}

	for _, f := range pending {
		if m.dryRun {
			log.Info().Msgf("would apply %s", f.Filename)
			continue
		}

		if err := m.applyFile(f); err != nil {
			return e.W(err, ECode000106, fmt.Sprintf("file: %s", f.Filename))
		}
	}

	return nil
}

// applyFile parses, splits, executes and records a single pending file
func (m *Migrator) applyFile(f *File) (err error) {
	p, err := Parse(f)
	if err != nil {
		return e.W(err, ECode000107)
	}

	if p.Legacy {
		log.Warn().Msgf("%s has no up/down markers, applying whole file as up",
			f.Filename)
	}

	up := p.Block(model.DirectionUp)
	if up == "" {
		return e.W(nil, ECode000108, e.MsgMigrationEmptyUp)
	}

	start := time.Now()
	if err := m.executor.RunInTransaction(SplitStatements(up)); err != nil {
		return e.W(err, ECode000109, fmt.Sprintf("version: %s", f.Version))
	}
	execMs := time.Since(start).Milliseconds()

	if err := m.ledger.Record(f.Version, f.Name, execMs, p.Checksum); err != nil {
		return e.W(err, ECode00010A)
	}

	log.Info().Msgf("applied %s (%dms)", f.Filename, execMs)

	return nil
}

// Down rolls back the most recently applied migration
func (m *Migrator) Down() (err error) {
	if err := m.lock.Acquire(); err != nil {
		return e.W(err, ECode00010B)
	}
	defer m.releaseLock()

	applied, err := m.ledger.GetApplied()
	if err != nil {
		return e.W(err, ECode00010C)
	}

	last := LastApplied(applied)
	if last == nil {
		log.Info().Msg("no applied migrations to roll back")
		return nil
	}

	return m.rollback([]*model.AppliedMigration{last})
}

// RollbackTo rolls back every migration applied after the target version,
// most recent first. Rolling back to the latest applied version is a no-op.
func (m *Migrator) RollbackTo(targetVersion string) (err error) {
	if err := m.lock.Acquire(); err != nil {
		return e.W(err, ECode00010D)
	}
	defer m.releaseLock()

	applied, err := m.ledger.GetApplied()
	if err != nil {
		return e.W(err, ECode00010E)
	}

	records, err := RollbackTarget(applied, targetVersion)
	if err != nil {
		return e.W(err, ECode00010F)
	}

	if len(records) == 0 {
		log.Info().Msgf("already at version %s", targetVersion)
		return nil
	}

	return m.rollback(records)
}

// rollback undoes the given records in order. A missing source file for an
// applied version indicates inconsistent ledger/filesystem state and aborts
// before any mutation of that record.
func (m *Migrator) rollback(records []*model.AppliedMigration) (err error) {
	c, err := NewCatalog(m.dir)
	if err != nil {
		return e.W(err, ECode00010G)
	}

	for _, rec := range records {
		f := c.ByVersion(rec.Version)
		if f == nil {
			return e.W(nil, ECode00010H, e.MsgMigrationSourceFileMissing,
				fmt.Sprintf("version: %s", rec.Version))
		}

		if m.dryRun {
			log.Info().Msgf("would roll back %s", f.Filename)
			continue
		}

		if err := m.rollbackFile(f); err != nil {
			return e.W(err, ECode00010I, fmt.Sprintf("file: %s", f.Filename))
		}
	}

	return nil
}

// rollbackFile parses, splits and executes the down block of a single file,
// then removes its ledger record
func (m *Migrator) rollbackFile(f *File) (err error) {
	p, err := Parse(f)
	if err != nil {
		return e.W(err, ECode00010J)
	}

	down := p.Block(model.DirectionDown)
	if down == "" {
		return e.W(nil, ECode00010K, e.MsgMigrationNoDown,
			fmt.Sprintf("version: %s", f.Version))
	}

	start := time.Now()
	if err := m.executor.RunInTransaction(SplitStatements(down)); err != nil {
		return e.W(err, ECode00010L, fmt.Sprintf("version: %s", f.Version))
	}

	if err := m.ledger.Remove(f.Version); err != nil {
		return e.W(err, ECode00010M)
	}

	log.Info().Msgf("rolled back %s (%dms)", f.Filename,
		time.Since(start).Milliseconds())

	return nil
}

// Status reconciles the ledger against the catalog. Read only, no lock.
func (m *Migrator) Status() (s *Status, err error) {
	applied, err := m.ledger.GetApplied()
	if err != nil {
		return nil, e.W(err, ECode00010N)
	}

	c, err := NewCatalog(m.dir)
	if err != nil {
		return nil, e.W(err, ECode00010O)
	}

	s = &Status{
		Applied: applied,
		Pending: Pending(c.Files(), applied),
	}

	for _, rec := range applied {
		f := c.ByVersion(rec.Version)
		if f == nil || rec.Checksum == "" {
			continue
		}
		if Checksum(f.Raw) != rec.Checksum {
			s.Drift = append(s.Drift, rec.Version)
		}
	}

	return s, nil
}

// Validate parses every catalog file in both directions without touching
// the ledger or the lock
func (m *Migrator) Validate() (warnings []string, err error) {
	return ValidateDir(m.dir)
}

// ValidateDir parses every migration file in the directory in both
// directions. Never connects to the database. Fatal findings abort; softer
// findings are returned as warnings.
func ValidateDir(dir string) (warnings []string, err error) {
	c, err := NewCatalog(dir)
	if err != nil {
		return nil, e.W(err, ECode00010P)
	}

	for _, f := range c.Files() {
		p, err := Parse(f)
		if err != nil {
			return warnings, e.W(err, ECode00010Q, fmt.Sprintf("file: %s", f.Filename))
		}

		if p.Legacy {
			warnings = append(warnings,
				fmt.Sprintf("%s: no up/down markers (legacy format, no rollback possible)",
					f.Filename))
			if p.Up == "" {
				return warnings, e.W(nil, ECode00010R, e.MsgMigrationEmptyUp,
					fmt.Sprintf("file: %s", f.Filename))
			}
			if !hasTxnWrapper(p.Up) {
				warnings = append(warnings,
					fmt.Sprintf("%s: up migration is not wrapped in BEGIN/COMMIT", f.Filename))
			}
			continue
		}

		if p.Up == "" {
			return warnings, e.W(nil, ECode00010S, e.MsgMigrationEmptyUp,
				fmt.Sprintf("file: %s", f.Filename))
		}
		if p.Down == "" {
			return warnings, e.W(nil, ECode00010T, e.MsgMigrationNoDown,
				fmt.Sprintf("file: %s", f.Filename))
		}

		if !hasTxnWrapper(p.Up) {
			warnings = append(warnings,
				fmt.Sprintf("%s: up migration is not wrapped in BEGIN/COMMIT", f.Filename))
		}
		if !hasTxnWrapper(p.Down) {
			warnings = append(warnings,
				fmt.Sprintf("%s: down migration is not wrapped in BEGIN/COMMIT", f.Filename))
		}
	}

	return warnings, nil
}

// hasTxnWrapper reports whether the block opens with an explicit BEGIN; and
// carries a matching COMMIT;. Blank and comment lines before the BEGIN; do
// not count as the opening statement.
func hasTxnWrapper(block string) bool {
	upper := strings.ToUpper(block)
	if !strings.Contains(upper, "COMMIT;") {
		return false
	}

	for _, line := range strings.Split(upper, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		return strings.HasPrefix(trimmed, "BEGIN;")
	}

	return false
}

// releaseLock releases the advisory lock, logging instead of failing the
// run when the release itself errors
func (m *Migrator) releaseLock() {
	if err := m.lock.Release(); err != nil {
		log.Error().Err(err).Msg("[Migrator.releaseLock.1]")
	}
}
