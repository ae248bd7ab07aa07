// Package aitime normalizes loosely specified times from voice and text input
// and renders elapsed durations in the HH:MM:SS encoding the activity store expects.
package aitime

import (
	"time"
)

// TimeService defines the time normalization service used by the activity tools.
type TimeService interface {
	// Normalize converts an absolute timestamp ("2026-01-28T15:00:00Z") or a bare
	// clock time ("15:00", "3:05 pm") into an instant.
	// ok is false for empty or unrecognized input; the caller supplies the default.
	Normalize(input string) (t time.Time, ok bool)

	// Now returns the service clock in the configured location.
	Now() time.Time

	// Location returns the location bare clock times are interpreted in.
	Location() *time.Location
}
