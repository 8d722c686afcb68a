package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/ivaohu/ivao-tracker/models"
	"github.com/rs/zerolog"
)

// FeedSource delivers one live snapshot per call.
type FeedSource interface {
	Fetch() (*models.Whazzup, error)
}

// Store is the session store the tracker reconciles against. Commit
// applies one cycle's mutations as a single atomic unit.
type Store interface {
	OpenATCs() ([]models.OpenSession, error)
	OpenPilots() ([]models.OpenSession, error)
	Commit(m Mutations) error
}

// Mutations is one cycle's worth of store writes.
type Mutations struct {
	ATCs   Result[models.ATC]
	Pilots Result[models.Pilot]
}

// KindStats are the per-category counts of one kind for the last cycle.
// Online is the derived created+updated count.
type KindStats struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Closed    int `json:"closed"`
	Discarded int `json:"discarded"`
	Online    int `json:"online"`
}

// CycleStats summarizes tracker activity since startup.
type CycleStats struct {
	StartTime     time.Time `json:"start_time"`
	LastRun       time.Time `json:"last_run"`
	TotalCycles   int64     `json:"total_cycles"`
	FailedFetches int64     `json:"failed_fetches"`
	ATCs          KindStats `json:"atcs"`
	Pilots        KindStats `json:"pilots"`
}

// Tracker runs reconciliation cycles. It assumes at most one cycle runs
// at a time; the caller's ticker or cron provides that.
type Tracker struct {
	feed  FeedSource
	store Store
	log   zerolog.Logger

	mu    sync.RWMutex
	stats CycleStats
}

func New(feed FeedSource, store Store, log zerolog.Logger) *Tracker {
	return &Tracker{
		feed:  feed,
		store: store,
		log:   log.With().Str("component", "tracker").Logger(),
		stats: CycleStats{StartTime: time.Now()},
	}
}

// Stats returns a snapshot of the cycle counters.
func (t *Tracker) Stats() CycleStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stats
}

// Track runs one full reconciliation cycle: load open sessions, fetch the
// feed, classify both kinds, commit all mutations in one transaction.
//
// A failed fetch aborts the cycle before anything is written — the feed
// being down means we know nothing, not that everyone disconnected. The
// returned error wraps the feed package's ErrUnavailable in that case so
// the caller can keep the process alive and retry next cycle. Store
// errors are returned as-is and mean the cycle rolled back entirely.
func (t *Tracker) Track() error {
	openATCs, err := t.store.OpenATCs()
	if err != nil {
		return fmt.Errorf("loading open atc sessions: %w", err)
	}
	openPilots, err := t.store.OpenPilots()
	if err != nil {
		return fmt.Errorf("loading open pilot sessions: %w", err)
	}

	wz, err := t.feed.Fetch()
	if err != nil {
		t.mu.Lock()
		t.stats.FailedFetches++
		t.mu.Unlock()
		t.log.Error().Err(err).Msg("feed fetch failed, skipping cycle")
		return err
	}

	m := Mutations{
		ATCs:   Classify("atc", openATCs, wz.ATCs, t.log),
		Pilots: Classify("pilot", openPilots, wz.Pilots, t.log),
	}

	if err := t.store.Commit(m); err != nil {
		return fmt.Errorf("committing cycle: %w", err)
	}

	t.mu.Lock()
	t.stats.LastRun = time.Now()
	t.stats.TotalCycles++
	t.stats.ATCs = kindStats(m.ATCs)
	t.stats.Pilots = kindStats(m.Pilots)
	stats := t.stats
	t.mu.Unlock()

	t.log.Info().
		Int("atcs_created", stats.ATCs.Created).
		Int("atcs_updated", stats.ATCs.Updated).
		Int("atcs_closed", stats.ATCs.Closed).
		Int("atcs_online", stats.ATCs.Online).
		Int("pilots_created", stats.Pilots.Created).
		Int("pilots_updated", stats.Pilots.Updated).
		Int("pilots_closed", stats.Pilots.Closed).
		Int("pilots_online", stats.Pilots.Online).
		Int64("total_cycles", stats.TotalCycles).
		Msg("tracking cycle committed")

	return nil
}

func kindStats[F FeedRecord](r Result[F]) KindStats {
	return KindStats{
		Created:   len(r.Created),
		Updated:   len(r.Updated),
		Closed:    len(r.Closed),
		Discarded: r.Discarded,
		Online:    len(r.Created) + len(r.Updated),
	}
}
