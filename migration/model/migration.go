package model

import "time"

// Direction of a migration run
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// AppliedMigration a row from the ledger table, describing one migration
// that has been applied to the target schema. Rows are ordered by
// application order, which matches filename order.
type AppliedMigration struct {
	ID         int
	Version    string
	Name       string
	Checksum   string
	ExecTimeMs int64
	AppliedOn  time.Time
}
