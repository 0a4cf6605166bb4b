package migration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/migration/model"
)

func applied(versions ...string) (mList []*model.AppliedMigration) {
	for _, v := range versions {
		mList = append(mList, &model.AppliedMigration{Version: v})
	}
	return mList
}

func files(filenames ...string) (fList []*File) {
	for _, name := range filenames {
		fList = append(fList, &File{
			Filename: name,
			Version:  ExtractVersion(name),
			Name:     ExtractName(name),
		})
	}
	return fList
}

func TestPending(t *testing.T) {
	fList := files(
		"20240101_a.sql",
		"20240102_b.sql",
		"20240103_c.sql",
	)

	pending := Pending(fList, applied("20240102"))
	require.Len(t, pending, 2)
	require.Equal(t, "20240101", pending[0].Version)
	require.Equal(t, "20240103", pending[1].Version)

	// Nothing applied: everything pending, catalog order preserved
	pending = Pending(fList, nil)
	require.Len(t, pending, 3)
	require.Equal(t, "20240101", pending[0].Version)

	// Everything applied: no-op
	pending = Pending(fList, applied("20240101", "20240102", "20240103"))
	require.Empty(t, pending)
}

func TestRollbackTarget(t *testing.T) {
	mList := applied("V1", "V2", "V3", "V4")

	rollback, err := RollbackTarget(mList, "V2")
	require.NoError(t, err)
	require.Len(t, rollback, 2)
	require.Equal(t, "V4", rollback[0].Version)
	require.Equal(t, "V3", rollback[1].Version)

	// Target is the latest applied version: already there, no-op
	rollback, err = RollbackTarget(mList, "V4")
	require.NoError(t, err)
	require.Empty(t, rollback)
}

func TestRollbackTargetVersionNotFound(t *testing.T) {
	_, err := RollbackTarget(applied("V1", "V2"), "V9")
	require.Error(t, err)
	require.True(t, e.ContainsError(err, e.MsgMigrationVersionNotFound))
}

func TestLastApplied(t *testing.T) {
	require.Nil(t, LastApplied(nil))

	last := LastApplied(applied("V1", "V2"))
	require.NotNil(t, last)
	require.Equal(t, "V2", last.Version)
}
