package aitime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedParser(loc *time.Location, now time.Time) *Parser {
	return &Parser{timezone: loc, now: func() time.Time { return now }}
}

func TestParser_BareClockTime(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.Local)
	parser := fixedParser(time.Local, now)

	got, ok := parser.Parse("14:30")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 14, 14, 30, 0, 0, time.Local), got)
	assert.Equal(t, 0, got.Nanosecond())
	assert.Equal(t, time.Local, got.Location())
}

func TestParser_ClockVariants(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, loc)
	parser := fixedParser(loc, now)

	tests := []struct {
		input string
		want  string
	}{
		{"14:30:15", "2026-03-14 14:30:15"},
		{"7:05", "2026-03-14 07:05:00"},
		{" 07:05 ", "2026-03-14 07:05:00"},
		{"3:05 pm", "2026-03-14 15:05:00"},
		{"3:05PM", "2026-03-14 15:05:00"},
		{"12:10 am", "2026-03-14 00:10:00"},
		{"12:10 p.m.", "2026-03-14 12:10:00"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parser.Parse(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Format("2006-01-02 15:04:05"))
		})
	}
}

func TestParser_Absolute(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	parser := fixedParser(loc, time.Date(2026, 1, 1, 0, 0, 0, 0, loc))

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339 utc", "2026-01-28T15:00:00Z", time.Date(2026, 1, 28, 15, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", "2026-01-28T15:00:00-05:00", time.Date(2026, 1, 28, 20, 0, 0, 0, time.UTC)},
		{"fractional", "2026-01-28T15:00:00.250Z", time.Date(2026, 1, 28, 15, 0, 0, 250_000_000, time.UTC)},
		{"local seconds", "2026-01-28T15:00:30", time.Date(2026, 1, 28, 15, 0, 30, 0, loc)},
		{"local minutes", "2026-01-28T15:00", time.Date(2026, 1, 28, 15, 0, 0, 0, loc)},
		{"space separator", "2026-01-28 15:00", time.Date(2026, 1, 28, 15, 0, 0, 0, loc)},
		{"short date", "2026-1-8T06:00", time.Date(2026, 1, 8, 6, 0, 0, 0, loc)},
		{"lowercase t", "2026-01-28t15:00", time.Date(2026, 1, 28, 15, 0, 0, 0, loc)},
		{"offset without colon", "2026-01-28T15:00:00+0000", time.Date(2026, 1, 28, 15, 0, 0, 0, time.UTC)},
		{"minutes offset without colon", "2026-01-28T15:00-0500", time.Date(2026, 1, 28, 20, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parser.Parse(tt.input)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestParser_Absent(t *testing.T) {
	parser := NewParser(nil)

	for _, input := range []string{
		"",
		"   ",
		"yesterday",
		"2026-01-28",
		"2026-13-45T99:99",
		"ab:cd",
		"1:2:3:4",
		"-1:30",
		"24:00",
		"25:00",
		"14:75",
		"14:30:60",
		"13:00 pm",
		"0:30 am",
	} {
		t.Run(input, func(t *testing.T) {
			_, ok := parser.Parse(input)
			assert.False(t, ok)
		})
	}
}

func TestService(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := NewServiceWithClock(time.UTC, func() time.Time { return now })

	assert.Equal(t, now, svc.Now())
	assert.Equal(t, time.UTC, svc.Location())

	got, ok := svc.Normalize("06:15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 5, 1, 6, 15, 0, 0, time.UTC), got)

	_, ok = svc.Normalize("")
	assert.False(t, ok)

	assert.Equal(t, time.Local, NewService(nil).Location())
}
