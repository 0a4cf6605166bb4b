package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/migration"
)

const (
	ECode030141 = e.Code0301 + "41"
)

// create returns the CLI command that writes a new timestamped migration
// file seeded with the up/down marker template
func create() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new migration file",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == "" {
				return e.W(nil, ECode030141, "a migration name is required")
			}

			path, err := migration.CreateFile(migrationsDir(c), name)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Writer, "created", path)
			return nil
		},
	}
}
