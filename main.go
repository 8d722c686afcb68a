package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ivao-tracker",
	Short: "Track IVAO network sessions in Postgres",
	Long: `ivao-tracker polls the IVAO whazzup feed and reconciles the live
snapshot of ATCs and pilots against open session rows in Postgres.
Each cycle inserts new sessions, refreshes ongoing ones and closes
the ones that dropped out of the feed, in a single transaction.

Run modes:
  ivao-tracker run     # resident process with its own ticker
  ivao-tracker once    # a single cycle, for cron`,
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
