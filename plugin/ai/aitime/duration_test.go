package aitime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{"zero", base, "00:00:00"},
		{"ninety seconds", base.Add(90 * time.Second), "00:01:30"},
		{"negative", base.Add(-30 * time.Second), "-00:00:30"},
		{"sub-second truncated", base.Add(1999 * time.Millisecond), "00:00:01"},
		{"twenty minutes", base.Add(20 * time.Minute), "00:20:00"},
		{"over a day", base.Add(26*time.Hour + 3*time.Minute + 4*time.Second), "26:03:04"},
		{"negative hours", base.Add(-(2*time.Hour + 5*time.Second)), "-02:00:05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(base, tt.end))
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"00:20:00", 20 * time.Minute},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"05:30", 5*time.Minute + 30*time.Second},
		{"00:00:01.500000", 1500 * time.Millisecond},
		{"1 02:00:00", 26 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "abc", "1:2:3:4", "x 01:00:00", "aa:00:00"} {
		_, err := ParseDuration(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h 0m", FormatMinutes(60))
	assert.Equal(t, "2h 5m", FormatMinutes(125))
	assert.Equal(t, "0m", FormatMinutes(-3))
}
