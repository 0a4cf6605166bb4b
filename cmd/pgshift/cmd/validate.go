package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pgshift/pgshift/migration"
)

// validate returns the CLI command that checks every migration file without
// touching the database
func validate() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate all migration files without touching the database",
		Action: func(ctx context.Context, c *cli.Command) error {
			// No ledger, lock or executor involved, so no DB connection
			warnings, err := migration.ValidateDir(migrationsDir(c))
			for _, w := range warnings {
				log.Warn().Msg(w)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Writer, "all migration files are valid")
			return nil
		},
	}
}
