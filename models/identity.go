package models

import "time"

// TimeLayout is the timestamp format used by the whazzup feed
// (connected_at, atis_time).
const TimeLayout = "20060102150405"

// Identity is the tuple that distinguishes one continuous connection from
// another. Callsign alone is not enough: a callsign can be picked up by a
// different connection (different vid or logon time) within one poll
// window, and the two must never be merged into one session.
//
// ConnectedAt is kept in the feed's canonical YYYYMMDDHHMMSS form so that
// equality is exact at second granularity on both sides of a comparison.
type Identity struct {
	Callsign    string
	VID         string
	ConnectedAt string
	Software    string
}

// FormatTime renders a timestamp in the feed's canonical form, for
// building an Identity from a stored row.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a feed timestamp. Feed times are UTC.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.UTC)
}

// OpenSession is the slice of a stored session row the reconciliation
// engine needs: the row id and the identity tuple.
type OpenSession struct {
	ID       int64
	Identity Identity
}
