package tracker

import (
	"testing"

	"github.com/ivaohu/ivao-tracker/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atc(callsign, vid, connectedAt string) models.ATC {
	return models.ATC{
		Callsign:    callsign,
		VID:         vid,
		Rating:      "C1",
		Software:    "IVAc",
		ConnectedAt: connectedAt,
	}
}

func open(id int64, callsign, vid, connectedAt string) models.OpenSession {
	return models.OpenSession{
		ID: id,
		Identity: models.Identity{
			Callsign:    callsign,
			VID:         vid,
			ConnectedAt: connectedAt,
			Software:    "IVAc",
		},
	}
}

func TestClassifyCreatesUnknownSessions(t *testing.T) {
	res := Classify("atc", nil, []models.ATC{
		atc("LHCC_CTR", "123456", "20240101120000"),
		atc("EGLL_APP", "654321", "20240101121500"),
	}, zerolog.Nop())

	require.Len(t, res.Created, 2)
	assert.Empty(t, res.Updated)
	assert.Empty(t, res.Closed)
	assert.Equal(t, "LHCC_CTR", res.Created[0].Callsign)
	assert.Equal(t, "EGLL_APP", res.Created[1].Callsign)
}

func TestClassifyUpdatesMatchingSession(t *testing.T) {
	stored := open(42, "LHCC_CTR", "123456", "20240101120000")

	res := Classify("atc", []models.OpenSession{stored}, []models.ATC{
		atc("LHCC_CTR", "123456", "20240101120000"),
	}, zerolog.Nop())

	require.Len(t, res.Updated, 1)
	assert.Equal(t, int64(42), res.Updated[0].ID)
	assert.Empty(t, res.Created)
	assert.Empty(t, res.Closed)
}

func TestClassifyIsIdempotentOnUnchangedFeed(t *testing.T) {
	rows := []models.ATC{
		atc("LHCC_CTR", "123456", "20240101120000"),
		atc("EGLL_APP", "654321", "20240101121500"),
	}

	// First cycle: empty store, everything is created.
	first := Classify("atc", nil, rows, zerolog.Nop())
	require.Len(t, first.Created, 2)

	// Second cycle: the created rows are now open in the store and the
	// feed has not changed, so only updates come out.
	stored := []models.OpenSession{
		open(1, "LHCC_CTR", "123456", "20240101120000"),
		open(2, "EGLL_APP", "654321", "20240101121500"),
	}
	second := Classify("atc", stored, rows, zerolog.Nop())
	assert.Empty(t, second.Created)
	assert.Empty(t, second.Closed)
	assert.Len(t, second.Updated, 2)
}

func TestClassifyClosesSessionsMissingFromFeed(t *testing.T) {
	stored := []models.OpenSession{
		open(1, "LHCC_CTR", "123456", "20240101120000"),
		open(2, "EGLL_APP", "654321", "20240101121500"),
	}

	res := Classify("atc", stored, []models.ATC{
		atc("LHCC_CTR", "123456", "20240101120000"),
	}, zerolog.Nop())

	require.Len(t, res.Closed, 1)
	assert.Equal(t, int64(2), res.Closed[0].ID)
	assert.Len(t, res.Updated, 1)
	assert.Empty(t, res.Created)
}

func TestClassifyEmptyFeedClosesEverything(t *testing.T) {
	stored := []models.OpenSession{
		open(1, "LHCC_CTR", "123456", "20240101120000"),
		open(2, "EGLL_APP", "654321", "20240101121500"),
	}

	res := Classify[models.ATC]("atc", stored, nil, zerolog.Nop())

	assert.Len(t, res.Closed, 2)
	assert.Empty(t, res.Created)
	assert.Empty(t, res.Updated)
}

func TestClassifyDiscardsMalformedRows(t *testing.T) {
	broken := atc("LHCC_CTR", "123456", "20240101120000")
	broken.Rating = ""

	res := Classify("atc", nil, []models.ATC{broken}, zerolog.Nop())

	assert.Equal(t, 1, res.Discarded)
	assert.Empty(t, res.Created)
	assert.Empty(t, res.Updated)
}

func TestClassifyMalformedRowDoesNotKeepSessionAlive(t *testing.T) {
	// A broken feed row must behave as if it were absent: the matching
	// stored session gets closed, not refreshed.
	stored := open(7, "LHCC_CTR", "123456", "20240101120000")
	broken := atc("LHCC_CTR", "123456", "20240101120000")
	broken.Rating = "C" // single character counts as placeholder

	res := Classify("atc", []models.OpenSession{stored}, []models.ATC{broken}, zerolog.Nop())

	assert.Equal(t, 1, res.Discarded)
	require.Len(t, res.Closed, 1)
	assert.Equal(t, int64(7), res.Closed[0].ID)
	assert.Empty(t, res.Updated)
	assert.Empty(t, res.Created)
}

func TestClassifyCallsignReuseIsNotAMatch(t *testing.T) {
	// Same callsign, different vid and logon time: a new connection took
	// the callsign over. The old session closes, a new one starts.
	stored := open(7, "ABC1", "1", "20240101120000")

	res := Classify("atc", []models.OpenSession{stored}, []models.ATC{
		atc("ABC1", "2", "20240101123000"),
	}, zerolog.Nop())

	require.Len(t, res.Created, 1)
	assert.Equal(t, "2", res.Created[0].VID)
	require.Len(t, res.Closed, 1)
	assert.Equal(t, int64(7), res.Closed[0].ID)
	assert.Empty(t, res.Updated)
}

func TestClassifySameCallsignMixedRows(t *testing.T) {
	// Two feed rows share a callsign: the first continues the stored
	// session, the second (different identity) is a new session.
	stored := open(7, "ABC1", "1", "20240101120000")

	res := Classify("atc", []models.OpenSession{stored}, []models.ATC{
		atc("ABC1", "1", "20240101120000"),
		atc("ABC1", "2", "20240101123000"),
	}, zerolog.Nop())

	require.Len(t, res.Updated, 1)
	assert.Equal(t, int64(7), res.Updated[0].ID)
	require.Len(t, res.Created, 1)
	assert.Equal(t, "2", res.Created[0].VID)
	assert.Empty(t, res.Closed)
}

func TestClassifyDuplicateIdentityCreatesSecondSession(t *testing.T) {
	// Two feed rows with one identical identity tuple is broken upstream
	// data. The first one wins the match; the duplicate becomes a new
	// session rather than being silently dropped.
	stored := open(7, "ABC1", "1", "20240101120000")
	row := atc("ABC1", "1", "20240101120000")

	res := Classify("atc", []models.OpenSession{stored}, []models.ATC{row, row}, zerolog.Nop())

	require.Len(t, res.Updated, 1)
	require.Len(t, res.Created, 1)
	assert.Empty(t, res.Closed)
}

func TestClassifyPilotsAndControllersIndependently(t *testing.T) {
	// The scenario from the tracker's contract: an unchanged controller
	// plus a brand-new pilot.
	storedATC := models.OpenSession{
		ID: 1,
		Identity: models.Identity{
			Callsign:    "EGLL_APP",
			VID:         "900001",
			ConnectedAt: "20240101120000",
			Software:    "IVAc",
		},
	}
	pilot := models.Pilot{
		Callsign:    "DLH123",
		VID:         "700002",
		Rating:      "P1",
		Software:    "FSD",
		ConnectedAt: "20240101121500",
	}

	atcRes := Classify("atc", []models.OpenSession{storedATC}, []models.ATC{
		atc("EGLL_APP", "900001", "20240101120000"),
	}, zerolog.Nop())
	pilotRes := Classify("pilot", nil, []models.Pilot{pilot}, zerolog.Nop())

	require.Len(t, atcRes.Updated, 1)
	assert.Equal(t, int64(1), atcRes.Updated[0].ID)
	assert.Empty(t, atcRes.Closed)

	require.Len(t, pilotRes.Created, 1)
	assert.Equal(t, "DLH123", pilotRes.Created[0].Callsign)
	assert.Empty(t, pilotRes.Closed)
}
