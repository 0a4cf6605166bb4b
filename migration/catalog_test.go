package migration

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNewCatalog(t *testing.T) {
	dir := t.TempDir()

	// Deliberately written out of order; the catalog must sort by filename
	writeTestFile(t, dir, "20240102_b.sql", "CREATE TABLE b (id INT);")
	writeTestFile(t, dir, "20240101_a.sql", "CREATE TABLE a (id INT);")
	writeTestFile(t, dir, "20240103_100000_c.sql", "CREATE TABLE c (id INT);")

	// Not migration files
	writeTestFile(t, dir, "README.md", "docs")
	writeTestFile(t, dir, "notes.sql", "-- scratch")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	c, err := NewCatalog(dir)
	require.NoError(t, err)

	fList := c.Files()
	require.Len(t, fList, 3)
	require.Equal(t, "20240101_a.sql", fList[0].Filename)
	require.Equal(t, "20240102_b.sql", fList[1].Filename)
	require.Equal(t, "20240103_100000_c.sql", fList[2].Filename)

	require.Equal(t, "20240101", fList[0].Version)
	require.Equal(t, "a", fList[0].Name)
	require.Equal(t, "20240103_100000", fList[2].Version)
	require.Equal(t, []byte("CREATE TABLE a (id INT);"), fList[0].Raw)
}

func TestCatalogByVersion(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "20240101_a.sql", "CREATE TABLE a (id INT);")

	c, err := NewCatalog(dir)
	require.NoError(t, err)

	require.NotNil(t, c.ByVersion("20240101"))
	require.Nil(t, c.ByVersion("20249999"))
}

func TestNewCatalogMissingDir(t *testing.T) {
	_, err := NewCatalog(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestCreateFile(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateFile(dir, "add users table")
	require.NoError(t, err)

	base := filepath.Base(path)
	require.Regexp(t, regexp.MustCompile(`^\d{8}_\d{6}_add_users_table\.sql$`), base)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "-- Up Migration")
	require.Contains(t, string(raw), "-- Down Migration")

	// The generated file must be discoverable and parse cleanly
	c, err := NewCatalog(dir)
	require.NoError(t, err)
	require.Len(t, c.Files(), 1)
	require.Equal(t, "add users table", c.Files()[0].Name)
}

func TestCreateFileInvalidName(t *testing.T) {
	_, err := CreateFile(t.TempDir(), "")
	require.Error(t, err)

	_, err = CreateFile(t.TempDir(), "drop/../../etc")
	require.Error(t, err)
}
