package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/nursery/internal/profile"
	"github.com/hrygo/nursery/store"
	"github.com/hrygo/nursery/store/db/babybuddy"
)

// NewDBDriver creates the ActivityStore driver based on profile.
// Baby Buddy's REST API is the only supported backend; the assistant keeps no local state.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	driver, err := babybuddy.NewDB(profile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create baby buddy driver")
	}
	return driver, nil
}
