package migration

import (
	"fmt"

	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/migration/model"
)

const (
	ECode000501 = e.Code0005 + "01"
)

// Pending returns the catalog files whose version has no ledger record,
// preserving catalog (filename sorted) order
func Pending(files []*File, applied []*model.AppliedMigration) (pending []*File) {
	seen := make(map[string]struct{}, len(applied))
	for _, m := range applied {
		seen[m.Version] = struct{}{}
	}

	for _, f := range files {
		if _, ok := seen[f.Version]; ok {
			continue
		}
		pending = append(pending, f)
	}

	return pending
}

// RollbackTarget returns the applied records strictly after the target
// version, most recent first, so rollback always undoes the newest
// migrations first. The target being the latest applied version yields an
// empty result - already at target, a no-op. A target with no ledger record
// is fatal and aborts before any mutation.
func RollbackTarget(applied []*model.AppliedMigration, targetVersion string) (
	rollback []*model.AppliedMigration, err error) {
	idx := -1
	for i, m := range applied {
		if m.Version == targetVersion {
			idx = i
			break
		}
	}

	if idx < 0 {
		return nil, e.W(nil, ECode000501, e.MsgMigrationVersionNotFound,
			fmt.Sprintf("version: %s", targetVersion))
	}

	for i := len(applied) - 1; i > idx; i-- {
		rollback = append(rollback, applied[i])
	}

	return rollback, nil
}

// LastApplied returns the most recently applied record, or nil when the
// ledger is empty. Used by single step rollback.
func LastApplied(applied []*model.AppliedMigration) *model.AppliedMigration {
	if len(applied) == 0 {
		return nil
	}

	return applied[len(applied)-1]
}
