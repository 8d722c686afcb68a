package tracker

import (
	"github.com/ivaohu/ivao-tracker/models"
	"github.com/rs/zerolog"
)

// FeedRecord is either a whazzup ATC or pilot row.
type FeedRecord interface {
	Identity() models.Identity
	Valid() bool
}

// Match pairs a feed record with the open session it continues. The feed
// record carries the live fields; ID is the stored row they belong to.
type Match[F FeedRecord] struct {
	ID   int64
	Feed F
}

// Result partitions one kind's records for one cycle. Every open session
// ends up matched (Updated) or not (Closed); every valid feed record ends
// up matching an open session (Updated) or starting a new one (Created).
type Result[F FeedRecord] struct {
	Created   []F
	Updated   []Match[F]
	Closed    []models.OpenSession
	Discarded int
}

type candidate struct {
	sess    models.OpenSession
	matched bool
}

// Classify reconciles the open sessions of one kind against the feed rows
// of the same kind. Candidates are indexed by callsign, but a callsign hit
// alone is never a match: the full identity tuple must be equal, otherwise
// the callsign was reused by a different connection and the stored row is
// left to be closed. Each open session can be matched at most once; a
// second feed row with an identical identity in the same snapshot becomes
// a new session and is flagged as an upstream anomaly.
func Classify[F FeedRecord](kind string, open []models.OpenSession, rows []F, log zerolog.Logger) Result[F] {
	byCallsign := make(map[string][]*candidate, len(open))
	all := make([]*candidate, 0, len(open))
	for _, s := range open {
		c := &candidate{sess: s}
		byCallsign[s.Identity.Callsign] = append(byCallsign[s.Identity.Callsign], c)
		all = append(all, c)
	}

	var res Result[F]
	for _, row := range rows {
		id := row.Identity()

		if !row.Valid() {
			res.Discarded++
			log.Warn().Str("kind", kind).Str("callsign", id.Callsign).Msg("discarding malformed feed row")
			continue
		}

		var hit *candidate
		dup := false
		for _, c := range byCallsign[id.Callsign] {
			if c.sess.Identity != id {
				continue
			}
			if c.matched {
				dup = true
				continue
			}
			hit = c
			break
		}

		switch {
		case hit != nil:
			hit.matched = true
			res.Updated = append(res.Updated, Match[F]{ID: hit.sess.ID, Feed: row})
			log.Debug().Str("kind", kind).Str("callsign", id.Callsign).Int64("id", hit.sess.ID).Msg("session is still online, will be updated")
		default:
			if dup {
				log.Warn().Str("kind", kind).Str("callsign", id.Callsign).Msg("duplicate identity in feed, creating a second session")
			}
			res.Created = append(res.Created, row)
			log.Debug().Str("kind", kind).Str("callsign", id.Callsign).Msg("session is not in store, will be added")
		}
	}

	for _, c := range all {
		if !c.matched {
			res.Closed = append(res.Closed, c.sess)
			log.Debug().Str("kind", kind).Str("callsign", c.sess.Identity.Callsign).Int64("id", c.sess.ID).Msg("session is not in feed, will be closed")
		}
	}

	return res
}
