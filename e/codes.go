package e

// Constants in here define error codes that are unique to a package/file.
// The first two characters define the package, within this repo, and the
// second two characters define the file within that package. When creating
// an error, the e.W/e.N funcs should be called, which also take a two
// character unique id within the file.
//
// Valid values for the characters are: 0-9 and A-Z.

const (
	// package: migration
	Code0001 = "0001" // package:migration | migration/migrator.go
	Code0002 = "0002" // package:migration | migration/catalog.go
	Code0003 = "0003" // package:migration | migration/parser.go
	Code0004 = "0004" // package:migration | migration/postgres.go
	Code0005 = "0005" // package:migration | migration/reconcile.go
	Code0006 = "0006" // package:migration/sqlmodel | migration/sqlmodel/migration.go

	// package: config
	Code0101 = "0101" // package:config | config/config.go

	// package: sql
	Code0201 = "0201" // package:sql | sql/sql.go
	Code0202 = "0202" // package:sql | sql/row.go
	Code0203 = "0203" // package:sql | sql/rows.go
	Code0204 = "0204" // package:sql | sql/lock.go
	Code0205 = "0205" // package:sql | sql/executor.go

	// package: cmd
	Code0301 = "0301" // package:cmd | cmd/pgshift/cmd/root.go
)
