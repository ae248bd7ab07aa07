package store

import (
	"context"
	"time"
)

// Sleep is the object representing a sleep record.
type Sleep struct {
	ID       int32
	Child    int32
	Start    time.Time
	End      time.Time
	Duration string
	// Nap is nil when unset; the store then decides from its nap settings.
	Nap   *bool
	Notes string
}

// FindSleep is the find condition for sleep records. Results are ordered newest end first.
type FindSleep struct {
	Child  *int32
	EndMin *time.Time
	Limit  int
}

// UpdateSleep is the partial update request for a sleep record.
type UpdateSleep struct {
	ID       int32
	Child    *int32
	Start    *time.Time
	End      *time.Time
	Duration *string
	Nap      *bool
	Notes    *string
}

func (u *UpdateSleep) IsEmpty() bool {
	return u.Child == nil && u.Start == nil && u.End == nil && u.Nap == nil && u.Notes == nil
}

func (s *Store) CreateSleep(ctx context.Context, create *Sleep) (*Sleep, error) {
	return s.driver.CreateSleep(ctx, create)
}

func (s *Store) ListSleep(ctx context.Context, find *FindSleep) ([]*Sleep, error) {
	return s.driver.ListSleep(ctx, find)
}

func (s *Store) UpdateSleep(ctx context.Context, update *UpdateSleep) (*Sleep, error) {
	return s.driver.UpdateSleep(ctx, update)
}
