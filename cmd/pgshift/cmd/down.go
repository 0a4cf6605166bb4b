package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

// down returns the CLI command that rolls back the most recently applied
// migration
func down() *cli.Command {
	return &cli.Command{
		Name:  "down",
		Usage: "Roll back the most recently applied migration",
		Action: func(ctx context.Context, c *cli.Command) error {
			m, db, err := openMigrator(c)
			if err != nil {
				return err
			}
			defer db.Close()

			return m.Down()
		},
	}
}
