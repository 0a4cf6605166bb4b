package migration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/migration/model"
)

func testFile(name, content string) *File {
	return &File{
		Path:     "db/migrations/" + name,
		Filename: name,
		Version:  ExtractVersion(name),
		Name:     ExtractName(name),
		Raw:      []byte(content),
	}
}

func TestParseMarked(t *testing.T) {
	content := "-- Up Migration\n" +
		"CREATE TABLE t (id INT);\n" +
		"\n" +
		"-- Down Migration\n" +
		"DROP TABLE t;\n"

	p, err := Parse(testFile("20240101_create_t.sql", content))
	require.NoError(t, err)
	require.False(t, p.Legacy)
	require.Equal(t, "CREATE TABLE t (id INT);", p.Up)
	require.Equal(t, "DROP TABLE t;", p.Down)
	require.Equal(t, Checksum([]byte(content)), p.Checksum)
}

func TestParseMarkersCaseInsensitive(t *testing.T) {
	content := "-- UP MIGRATION\n" +
		"CREATE TABLE t (id INT);\n" +
		"-- down migration\n" +
		"DROP TABLE t;\n"

	p, err := Parse(testFile("20240101_create_t.sql", content))
	require.NoError(t, err)
	require.False(t, p.Legacy)
	require.Equal(t, "CREATE TABLE t (id INT);", p.Up)
	require.Equal(t, "DROP TABLE t;", p.Down)
}

func TestParseLegacy(t *testing.T) {
	content := "CREATE TABLE t (id INT);\nCREATE INDEX t_idx ON t (id);\n"

	p, err := Parse(testFile("20240101_create_t.sql", content))
	require.NoError(t, err)
	require.True(t, p.Legacy)
	require.Equal(t, "CREATE TABLE t (id INT);\nCREATE INDEX t_idx ON t (id);", p.Up)
	require.Empty(t, p.Down)
}

// A marked file with an empty down block is a validation failure, not a
// legacy file - the two must stay distinguishable
func TestParseMarkedEmptyDownIsNotLegacy(t *testing.T) {
	content := "-- Up Migration\n" +
		"CREATE TABLE t (id INT);\n" +
		"-- Down Migration\n"

	p, err := Parse(testFile("20240101_create_t.sql", content))
	require.NoError(t, err)
	require.False(t, p.Legacy)
	require.NotEmpty(t, p.Up)
	require.Empty(t, p.Down)
}

func TestParseUpMarkerOnly(t *testing.T) {
	content := "-- Up Migration\nCREATE TABLE t (id INT);\n"

	p, err := Parse(testFile("20240101_create_t.sql", content))
	require.NoError(t, err)
	require.False(t, p.Legacy)
	require.Equal(t, "CREATE TABLE t (id INT);", p.Up)
	require.Empty(t, p.Down)
}

func TestParseStripsMetaCommands(t *testing.T) {
	content := "-- Up Migration\n" +
		"\\echo applying\n" +
		"CREATE TABLE t (id INT);\n" +
		"\\timing on\n" +
		"-- Down Migration\n" +
		"\\echo reverting\n" +
		"DROP TABLE t;\n"

	p, err := Parse(testFile("20240101_create_t.sql", content))
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE t (id INT);", p.Up)
	require.Equal(t, "DROP TABLE t;", p.Down)

	for _, stmt := range SplitStatements(p.Up) {
		require.NotContains(t, stmt, `\echo`)
		require.NotContains(t, stmt, `\timing`)
	}
}

func TestParseDownMarkerBeforeUpMarker(t *testing.T) {
	content := "-- Down Migration\nDROP TABLE t;\n-- Up Migration\nCREATE TABLE t (id INT);\n"

	_, err := Parse(testFile("20240101_create_t.sql", content))
	require.Error(t, err)
	require.True(t, e.ContainsError(err, "down marker precedes up marker"))
}

func TestParsedBlock(t *testing.T) {
	p := &Parsed{Up: "CREATE TABLE t (id INT);", Down: "DROP TABLE t;"}
	require.Equal(t, p.Up, p.Block(model.DirectionUp))
	require.Equal(t, p.Down, p.Block(model.DirectionDown))
}
