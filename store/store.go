package store

import (
	"github.com/hrygo/nursery/internal/profile"
)

// Store provides access to all ActivityStore objects.
// Nothing is cached: every call reaches the driver so rosters and timers are always fresh.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) Close() error {
	return s.driver.Close()
}
