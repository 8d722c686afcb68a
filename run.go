package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/ivaohu/ivao-tracker/api"
	"github.com/ivaohu/ivao-tracker/db"
	"github.com/ivaohu/ivao-tracker/feed"
	"github.com/ivaohu/ivao-tracker/tracker"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the tracker as a resident process",
	Long: `Run starts the tracker with its own ticker and serves the status
API. A failed feed fetch skips that cycle and waits for the next
tick; a store failure terminates the process so the supervisor can
restart it against a consistent database.`,
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

		router := api.NewRouter(t, store)
		go func() {
			log.Info().Str("addr", cfg.ListenAddr).Msg("starting status API")
			if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
				log.Fatal().Err(err).Msg("status API failed")
			}
		}()

		log.Info().Int("interval_seconds", cfg.UpdateInterval).Msg("starting tracker")

		ticker := time.NewTicker(time.Duration(cfg.UpdateInterval) * time.Second)
		defer ticker.Stop()

		if err := cycle(t); err != nil {
			return err
		}
		for range ticker.C {
			if err := cycle(t); err != nil {
				return err
			}
		}
		return nil
	},
}

// cycle runs one pass. Feed unavailability is the one recoverable
// failure: the cycle was a no-op and the next tick retries. Anything
// else means the store is in doubt and the process should stop.
func cycle(t *tracker.Tracker) error {
	err := t.Track()
	if err == nil || errors.Is(err, feed.ErrUnavailable) {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(runCmd)
}
