package store

import (
	"context"
	"time"
)

// Timer is the object representing a running activity timer.
// An ID <= 0 never comes back from a driver; it is reserved for placeholder timers.
type Timer struct {
	ID     int32
	Child  int32
	Name   string
	Start  time.Time
	End    *time.Time
	Active bool
}

// FindTimer is the find condition for timers.
type FindTimer struct {
	Child  *int32
	Active *bool
}

// UpdateTimer is the partial update request for a timer.
type UpdateTimer struct {
	ID     int32
	Child  *int32
	Name   *string
	Start  *time.Time
	End    *time.Time
	Active *bool
}

// IsEmpty reports whether the update carries no field changes.
func (u *UpdateTimer) IsEmpty() bool {
	return u.Child == nil && u.Name == nil && u.Start == nil && u.End == nil && u.Active == nil
}

// DeleteTimer is the delete request for a timer.
type DeleteTimer struct {
	ID int32
}

func (s *Store) ListTimers(ctx context.Context, find *FindTimer) ([]*Timer, error) {
	return s.driver.ListTimers(ctx, find)
}

// ListActiveTimers lists every active timer across the roster.
func (s *Store) ListActiveTimers(ctx context.Context) ([]*Timer, error) {
	active := true
	return s.driver.ListTimers(ctx, &FindTimer{Active: &active})
}

func (s *Store) CreateTimer(ctx context.Context, create *Timer) (*Timer, error) {
	return s.driver.CreateTimer(ctx, create)
}

func (s *Store) UpdateTimer(ctx context.Context, update *UpdateTimer) (*Timer, error) {
	return s.driver.UpdateTimer(ctx, update)
}

func (s *Store) DeleteTimer(ctx context.Context, delete *DeleteTimer) error {
	return s.driver.DeleteTimer(ctx, delete)
}
