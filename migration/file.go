package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// Migration filenames look like YYYYMMDD_<name>.sql or
// YYYYMMDD_HHMMSS_<name>.sql. The version token is fixed width and zero
// padded, so plain string comparison of versions (and filenames) matches
// chronological order. Anything that doesn't match the prefix is not a
// migration file.
var (
	versionRE = regexp.MustCompile(`^(\d{8}(?:_\d{6})?)`)
	nameRE    = regexp.MustCompile(`^\d{8}(?:_\d{6})?_(.+)\.sql$`)
)

// File a migration file discovered on disk. Version and Name are derived
// from the filename at discovery time; Raw holds the exact file bytes.
type File struct {
	Path     string
	Filename string
	Version  string
	Name     string
	Raw      []byte
}

// ExtractVersion parses the filename for the version token. It returns the
// combined date/time token (e.g. 20251016_120000) or the 8 digit date alone.
// An empty string means the filename is not a migration file - that is not
// an error, callers skip such files.
func ExtractVersion(filename string) (v string) {
	m := versionRE.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}

	return m[1]
}

// ExtractName strips the version prefix and .sql suffix and replaces
// underscores with spaces. Falls back to the raw filename if the pattern
// does not match.
func ExtractName(filename string) (name string) {
	m := nameRE.FindStringSubmatch(filename)
	if m == nil {
		return filename
	}

	return strings.ReplaceAll(m[1], "_", " ")
}

// Checksum returns the hex encoded sha256 digest of the raw content. It is
// stored alongside the ledger record for drift detection; drift policy is
// up to the caller.
func Checksum(raw []byte) (sum string) {
	h := sha256.Sum256(raw)
	return hex.EncodeToString(h[:])
}
