package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// status returns the CLI command that reports applied and pending
// migrations, including checksum drift between ledger and disk
func status() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show applied and pending migrations",
		Action: func(ctx context.Context, c *cli.Command) error {
			m, db, err := openMigrator(c)
			if err != nil {
				return err
			}
			defer db.Close()

			s, err := m.Status()
			if err != nil {
				return err
			}

			drift := make(map[string]bool, len(s.Drift))
			for _, v := range s.Drift {
				drift[v] = true
			}

			fmt.Fprintf(c.Writer, "Applied (%d):\n", len(s.Applied))
			for _, rec := range s.Applied {
				note := ""
				if drift[rec.Version] {
					note = " [checksum drift]"
				}
				fmt.Fprintf(c.Writer, "  %s  %s  %s  %dms%s\n",
					rec.Version, rec.Name,
					rec.AppliedOn.Format("2006-01-02 15:04:05"),
					rec.ExecTimeMs, note)
			}

			fmt.Fprintf(c.Writer, "Pending (%d):\n", len(s.Pending))
			for _, f := range s.Pending {
				fmt.Fprintf(c.Writer, "  %s  %s\n", f.Version, f.Name)
			}

			return nil
		},
	}
}
