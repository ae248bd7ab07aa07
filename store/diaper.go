package store

import (
	"context"
	"time"
)

// Diaper is the object representing a diaper change.
type Diaper struct {
	ID     int32
	Child  int32
	Time   time.Time
	Wet    bool
	Solid  bool
	Color  string
	Amount *float64
	Notes  string
}

// FindDiaper is the find condition for diaper changes. Results are ordered newest first.
type FindDiaper struct {
	Child   *int32
	TimeMin *time.Time
	Limit   int
}

// UpdateDiaper is the partial update request for a diaper change.
type UpdateDiaper struct {
	ID          int32
	Child       *int32
	Time        *time.Time
	Wet         *bool
	Solid       *bool
	Color       *string
	Amount      *float64
	ClearAmount bool
	Notes       *string
}

func (u *UpdateDiaper) IsEmpty() bool {
	return u.Child == nil && u.Time == nil && u.Wet == nil && u.Solid == nil &&
		u.Color == nil && u.Amount == nil && !u.ClearAmount && u.Notes == nil
}

func (s *Store) CreateDiaper(ctx context.Context, create *Diaper) (*Diaper, error) {
	return s.driver.CreateDiaper(ctx, create)
}

func (s *Store) ListDiapers(ctx context.Context, find *FindDiaper) ([]*Diaper, error) {
	return s.driver.ListDiapers(ctx, find)
}

func (s *Store) UpdateDiaper(ctx context.Context, update *UpdateDiaper) (*Diaper, error) {
	return s.driver.UpdateDiaper(ctx, update)
}
