package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBack(t *testing.T) {
	assert.Equal(t, Location(DefaultTimezone).String(), Location("").String())
	assert.Equal(t, Location(DefaultTimezone).String(), Location("Mars/Olympus").String())
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)

	got := StartOfDay(ts, loc)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), got)
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d, err := ParseDate("2026-03-10", loc)
	require.NoError(t, err)
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, loc, d.Location())

	_, err = ParseDate("10/03/2026", loc)
	assert.Error(t, err)
}
