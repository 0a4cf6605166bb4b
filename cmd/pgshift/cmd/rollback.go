package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/pgshift/pgshift/e"
)

const (
	ECode030121 = e.Code0301 + "21"
)

// rollback returns the CLI command that rolls back every migration applied
// after the target version
func rollback() *cli.Command {
	return &cli.Command{
		Name:      "rollback",
		Usage:     "Roll back to the given version (undoes everything after it)",
		ArgsUsage: "<version>",
		Action: func(ctx context.Context, c *cli.Command) error {
			version := c.Args().First()
			if version == "" {
				return e.W(nil, ECode030121, "a target version is required")
			}

			m, db, err := openMigrator(c)
			if err != nil {
				return err
			}
			defer db.Close()

			return m.RollbackTo(version)
		},
	}
}
