package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

// up returns the CLI command that applies all pending migrations in
// filename order
func up() *cli.Command {
	return &cli.Command{
		Name:  "up",
		Usage: "Apply all pending migrations",
		Action: func(ctx context.Context, c *cli.Command) error {
			m, db, err := openMigrator(c)
			if err != nil {
				return err
			}
			defer db.Close()

			return m.Up()
		},
	}
}
