package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezone(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		want    *time.Location
		wantErr bool
	}{
		{"empty is local", "", time.Local, false},
		{"explicit local", "Local", time.Local, false},
		{"utc", "UTC", time.UTC, false},
		{"invalid falls back to local", "Mars/Olympus", time.Local, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimezone(tt.tz)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimezone_IANA(t *testing.T) {
	loc, err := ParseTimezone("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestIsValidTimezone(t *testing.T) {
	assert.True(t, IsValidTimezone(""))
	assert.True(t, IsValidTimezone("America/New_York"))
	assert.False(t, IsValidTimezone("Not/AZone"))
}

func TestStartAndEndOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 500, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), StartOfDay(ts, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 14, 23, 59, 59, 999999999, time.UTC), EndOfDay(ts, time.UTC))
}

func TestFormatSpan(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sameDay := start.Add(90 * time.Minute)
	nextDay := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-14 09:00", FormatSpan(start, nil, time.UTC))
	assert.Equal(t, "2026-03-14 09:00 - 10:30", FormatSpan(start, &sameDay, time.UTC))
	assert.Equal(t, "2026-03-14 09:00 - 2026-03-15 01:00", FormatSpan(start, &nextDay, time.UTC))
}
