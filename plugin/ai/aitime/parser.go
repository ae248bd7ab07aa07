package aitime

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// A leading calendar date followed by a date/time separator marks an absolute timestamp.
	absolutePattern = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}[Tt ]`)
	meridiemPattern = regexp.MustCompile(`(?i)\s*([ap])\.?m\.?$`)
)

// absoluteFormats are tried in order. Formats without a zone are read in the parser location.
var absoluteFormats = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02T15:04:05Z0700", true},
	{"2006-01-02T15:04Z0700", true},
	{"2006-1-2T15:04:05", false},
	{"2006-1-2T15:04", false},
	{"2006-1-2 15:04:05", false},
	{"2006-1-2 15:04", false},
}

// Parser converts raw time input into instants.
type Parser struct {
	timezone *time.Location
	now      func() time.Time
}

// NewParser creates a new time parser with the given timezone.
func NewParser(timezone *time.Location) *Parser {
	if timezone == nil {
		timezone = time.Local
	}
	return &Parser{
		timezone: timezone,
		now:      time.Now,
	}
}

// WithClock returns a copy of the parser that reads "now" from clock.
func (p *Parser) WithClock(clock func() time.Time) *Parser {
	return &Parser{
		timezone: p.timezone,
		now:      clock,
	}
}

// Parse normalizes input. Rules, first match wins:
//   - empty: absent
//   - absolute timestamp: parsed as-is, absent when malformed
//   - bare clock time HH:MM[:SS] with optional am/pm: that time today, sub-seconds zeroed
//   - anything else: absent
func (p *Parser) Parse(input string) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}

	if absolutePattern.MatchString(input) {
		return p.parseAbsolute(input)
	}
	if strings.Contains(input, ":") {
		return p.parseClock(input)
	}
	return time.Time{}, false
}

func (p *Parser) parseAbsolute(input string) (time.Time, bool) {
	if loc := absolutePattern.FindStringIndex(input); input[loc[1]-1] == 't' {
		input = input[:loc[1]-1] + "T" + input[loc[1]:]
	}
	for _, f := range absoluteFormats {
		var (
			t   time.Time
			err error
		)
		if f.zoned {
			t, err = time.Parse(f.layout, input)
		} else {
			t, err = time.ParseInLocation(f.layout, input, p.timezone)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (p *Parser) parseClock(input string) (time.Time, bool) {
	meridiem := ""
	if m := meridiemPattern.FindStringSubmatch(input); m != nil {
		meridiem = strings.ToLower(m[1])
		input = strings.TrimSpace(input[:len(input)-len(m[0])])
	}

	parts := strings.Split(input, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, false
	}
	values := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return time.Time{}, false
		}
		values[i] = n
	}

	hour := values[0]
	if values[1] > 59 || values[2] > 59 {
		return time.Time{}, false
	}
	switch {
	case meridiem == "" && hour > 23:
		return time.Time{}, false
	case meridiem != "" && (hour < 1 || hour > 12):
		return time.Time{}, false
	}
	switch meridiem {
	case "p":
		if hour < 12 {
			hour += 12
		}
	case "a":
		if hour == 12 {
			hour = 0
		}
	}

	now := p.now().In(p.timezone)
	return time.Date(now.Year(), now.Month(), now.Day(), hour, values[1], values[2], 0, p.timezone), true
}
