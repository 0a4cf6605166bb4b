package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pgshift/pgshift/e"
)

const (
	ECode000201 = e.Code0002 + "01"
	ECode000202 = e.Code0002 + "02"
	ECode000203 = e.Code0002 + "03"
	ECode000204 = e.Code0002 + "04"
)

var createNameRE = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

// Catalog the set of migration files found in a directory, sorted by
// filename. Since versions are zero padded timestamps, filename order is
// chronological order. The catalog is rebuilt fresh on every invocation;
// the ledger is the only durable state.
type Catalog struct {
	dir   string
	files []*File
}

// NewCatalog scans the directory for migration files. Files whose name does
// not carry a version prefix are silently skipped.
func NewCatalog(dir string) (c *Catalog, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, e.W(err, ECode000201, e.MsgMigrationDirInvalid,
			fmt.Sprintf("dir: %s", dir))
	}

	c = &Catalog{
		dir:   dir,
		files: make([]*File, 0, len(entries)),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		v := ExtractVersion(name)
		if v == "" {
			// Not a migration file
			continue
		}

		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, e.W(err, ECode000202, fmt.Sprintf("file: %s", path))
		}

		c.files = append(c.files, &File{
			Path:     path,
			Filename: name,
			Version:  v,
			Name:     ExtractName(name),
			Raw:      raw,
		})
	}

	sort.Slice(c.files, func(i, j int) bool {
		return c.files[i].Filename < c.files[j].Filename
	})

	return c, nil
}

// Files returns the catalog files in filename order
func (c *Catalog) Files() []*File {
	return c.files
}

// ByVersion returns the file with the given version, or nil if the version
// has no source file on disk
func (c *Catalog) ByVersion(version string) *File {
	for _, f := range c.files {
		if f.Version == version {
			return f
		}
	}

	return nil
}

// CreateFile writes a new migration file named after the current timestamp,
// seeded with the up/down marker template, and returns its path
func CreateFile(dir, name string) (path string, err error) {
	name = strings.TrimSpace(name)
	if name == "" || !createNameRE.MatchString(name) {
		return "", e.W(nil, ECode000203, e.MsgMigrationNameInvalid,
			fmt.Sprintf("name: %q", name))
	}

	name = strings.ReplaceAll(strings.ReplaceAll(name, " ", "_"), "-", "_")
	filename := fmt.Sprintf("%s_%s.sql",
		time.Now().Format("20060102_150405"), name)
	path = filepath.Join(dir, filename)

	content := "-- Up Migration\nBEGIN;\n\nCOMMIT;\n\n-- Down Migration\nBEGIN;\n\nCOMMIT;\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", e.W(err, ECode000204, fmt.Sprintf("file: %s", path))
	}

	return path, nil
}
