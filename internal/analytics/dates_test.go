package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampLegacyFormats(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"12h with seconds", "10/10/2025, 01:37:45 pm", time.Date(2025, 10, 10, 13, 37, 45, 0, time.Local)},
		{"12h without seconds", "10/10/2025, 01:37 pm", time.Date(2025, 10, 10, 13, 37, 0, 0, time.Local)},
		{"12h uppercase", "10/10/2025, 01:37 PM", time.Date(2025, 10, 10, 13, 37, 0, 0, time.Local)},
		{"24h with seconds", "10/10/2025, 13:37:45", time.Date(2025, 10, 10, 13, 37, 45, 0, time.Local)},
		{"24h without seconds", "10/10/2025, 13:37", time.Date(2025, 10, 10, 13, 37, 0, 0, time.Local)},
		{"no comma", "10/10/2025 13:37", time.Date(2025, 10, 10, 13, 37, 0, 0, time.Local)},
		{"iso-8601", "2025-10-10T13:37:45", time.Date(2025, 10, 10, 13, 37, 45, 0, time.Local)},
		{"bare date", "10/10/2025", time.Date(2025, 10, 10, 0, 0, 0, 0, time.Local)},
		{"single digit day and month", "2/1/2025, 9:05 am", time.Date(2025, 1, 2, 9, 5, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTimestamp(tc.in)
			assert.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
		})
	}
}

func TestParseTimestampMidnightAndNoon(t *testing.T) {
	midnight := ParseTimestamp("10/10/2025, 12:00 am")
	assert.Equal(t, 0, midnight.Hour())

	noon := ParseTimestamp("10/10/2025, 12:00 pm")
	assert.Equal(t, 12, noon.Hour())
}

func TestParseTimestamp24hMatches12h(t *testing.T) {
	a := ParseTimestamp("10/10/2025, 13:37")
	b := ParseTimestamp("10/10/2025, 01:37 pm")
	assert.True(t, a.Equal(b))
}

func TestParseTimestampNativeValues(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local)
	assert.True(t, ParseTimestamp(at).Equal(at))
	assert.True(t, ParseTimestamp(&at).Equal(at))

	epoch := at.Unix()
	assert.True(t, ParseTimestamp(epoch).Equal(at))
	assert.True(t, ParseTimestamp(at.UnixMilli()).Equal(at))
}

func TestParseTimestampMissingDefaultsToNow(t *testing.T) {
	before := time.Now()
	got := ParseTimestamp(nil)
	require.False(t, got.IsZero())
	assert.False(t, got.Before(before.Add(-time.Second)))

	got = ParseTimestamp("")
	assert.False(t, got.IsZero())
}

func TestParseTimestampUnparseableIsZero(t *testing.T) {
	got := ParseTimestamp("not a date at all")
	assert.True(t, got.IsZero())
}

func TestParseTimestampFallbackParser(t *testing.T) {
	// Not one of the legacy encodings; handled by the generic parser.
	got := ParseTimestamp("2025-10-10")
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.October, got.Month())
	assert.Equal(t, 10, got.Day())
}
