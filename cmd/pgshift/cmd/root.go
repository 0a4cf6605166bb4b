// Package cmd wires the pgshift CLI: migration apply/rollback, status,
// validation and file creation against a Postgres database.
package cmd

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/pgshift/pgshift/config"
	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/migration"
	"github.com/pgshift/pgshift/sql"
)

const (
	ECode030101 = e.Code0301 + "01"
	ECode030102 = e.Code0301 + "02"
	ECode030103 = e.Code0301 + "03"
)

var currentConfig *config.Config

// Run creates and executes the pgshift CLI with the given arguments
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:  "pgshift",
		Usage: "Schema migrations for Postgres",
		Description: `pgshift discovers timestamped .sql migration files, splits them into
up/down blocks and applies or rolls them back in order, recording every
applied version in a ledger table under a single advisory lock.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the pgshift config file",
				Sources: cli.EnvVars("PGSHIFT_CONFIG"),
				Value:   config.DefaultFile,
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "the migrations directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "report what would be executed without mutating anything",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return ctx, e.W(err, ECode030101)
			}
			currentConfig = cfg

			return ctx, nil
		},
		Commands: []*cli.Command{
			up(),
			down(),
			rollback(),
			status(),
			validate(),
			create(),
		},
	}

	return app.Run(ctx, args)
}

// migrationsDir resolves the migrations directory from flags/config/env
func migrationsDir(c *cli.Command) string {
	return currentConfig.MigrationsDir(c.String("dir"))
}

// openMigrator connects to Postgres and wires a migrator against it. The
// returned connection must be closed by the caller.
func openMigrator(c *cli.Command) (m *migration.Migrator, db *sql.Connection, err error) {
	db, err = sql.NewPostgresConn(currentConfig.ConnParam())
	if err != nil {
		return nil, nil, e.W(err, ECode030102)
	}

	m, err = migration.NewPostgresMigrator(db, migrationsDir(c), c.Bool("dry-run"))
	if err != nil {
		_ = db.Close()
		return nil, nil, e.W(err, ECode030103)
	}

	return m, db, nil
}
