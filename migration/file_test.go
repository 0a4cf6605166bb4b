package migration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"20251016_120000_add_users.sql", "20251016_120000"},
		{"20251016_add_users.sql", "20251016"},
		{"20240101_100000_a.sql", "20240101_100000"},
		{"add_users.sql", ""},
		{"2024_add_users.sql", ""},
		{"README.md", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractVersion(tt.filename))
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"20251016_120000_add_users.sql", "add users"},
		{"20251016_add_users.sql", "add users"},
		{"20240101_100000_a.sql", "a"},
		// Pattern mismatch falls back to the raw filename
		{"add_users.sql", "add_users.sql"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractName(tt.filename))
		})
	}
}

// Fixed-width zero padded versions sort chronologically as plain strings
func TestVersionOrdering(t *testing.T) {
	v1 := ExtractVersion("20250101_100000_a.sql")
	v2 := ExtractVersion("20250101_110000_b.sql")
	require.True(t, v1 < v2)
}

func TestChecksum(t *testing.T) {
	a := []byte("CREATE TABLE t (id INT);")
	b := []byte("CREATE TABLE t (id int);")

	require.Equal(t, Checksum(a), Checksum(a))
	require.NotEqual(t, Checksum(a), Checksum(b))
	require.Len(t, Checksum(a), 64)
}
