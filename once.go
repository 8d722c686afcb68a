package main

import (
	"errors"

	"github.com/ivaohu/ivao-tracker/db"
	"github.com/ivaohu/ivao-tracker/feed"
	"github.com/ivaohu/ivao-tracker/tracker"
	"github.com/spf13/cobra"
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single tracking cycle and exit",
	Long: `Once runs exactly one reconciliation cycle, for invocation from
cron or a systemd timer. The scheduler must not overlap invocations.
An unavailable feed is not an error exit: the cycle is a deliberate
no-op and the next scheduled run retries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(getenv("LOG_LEVEL", "info"))
		cfg := LoadConfig(log)
		log = newLogger(cfg.LogLevel)

		store, err := db.Open(cfg.DB, log)
		if err != nil {
			return err
		}
		defer store.Close()

		client := feed.NewClient(cfg.WhazzupURL, log)
		t := tracker.New(client, store, log)

		if err := t.Track(); err != nil && !errors.Is(err, feed.ErrUnavailable) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(onceCmd)
}
