package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityRoundTripsThroughStoredTime(t *testing.T) {
	// A feed timestamp survives parse (for insertion) and format (for the
	// next cycle's comparison) unchanged.
	parsed, err := ParseTime("20240101121500")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 15, 0, 0, time.UTC), parsed)
	assert.Equal(t, "20240101121500", FormatTime(parsed))
}

func TestFormatTimeNormalizesToUTC(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	assert.Equal(t, "20240101110000", FormatTime(time.Date(2024, 1, 1, 12, 0, 0, 0, cet)))
}

func TestStoredSessionIdentityMatchesFeedIdentity(t *testing.T) {
	connectedAt, err := ParseTime("20240101120000")
	require.NoError(t, err)

	stored := ATCSession{
		ID:          42,
		Callsign:    "LHCC_CTR",
		VID:         "123456",
		Software:    "IVAc",
		ConnectedAt: connectedAt,
	}
	row := ATC{
		Callsign:    "LHCC_CTR",
		VID:         "123456",
		Software:    "IVAc",
		ConnectedAt: "20240101120000",
	}

	assert.Equal(t, row.Identity(), stored.OpenSession().Identity)
	assert.Equal(t, int64(42), stored.OpenSession().ID)
}

func TestValidRequiresARealRating(t *testing.T) {
	assert.True(t, ATC{Rating: "C1"}.Valid())
	assert.False(t, ATC{Rating: ""}.Valid())
	assert.False(t, ATC{Rating: "C"}.Valid())
	assert.True(t, Pilot{Rating: "P3"}.Valid())
	assert.False(t, Pilot{Rating: ""}.Valid())
}
