package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/pgshift/pgshift"
	"github.com/pgshift/pgshift/cmd/pgshift/cmd"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cli.VersionPrinter = func(c *cli.Command) {
		sha, build := pgshift.Version()
		fmt.Fprintln(c.Writer, "Sha:", sha)
		fmt.Fprintln(c.Writer, "Build:", build)
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("pgshift failed")
		os.Exit(1)
	}
}
