package store

import (
	"context"
	"time"
)

// Feeding is the object representing a feeding record.
type Feeding struct {
	ID       int32
	Child    int32
	Start    time.Time
	End      time.Time
	Duration string
	Type     string
	Method   string
	Amount   *float64
	Notes    string
}

// FindFeeding is the find condition for feedings. Results are ordered newest start first.
type FindFeeding struct {
	Child    *int32
	StartMin *time.Time
	Limit    int
}

// UpdateFeeding is the partial update request for a feeding.
// ClearAmount sends an explicit null amount and takes precedence over Amount.
type UpdateFeeding struct {
	ID          int32
	Child       *int32
	Start       *time.Time
	End         *time.Time
	Duration    *string
	Type        *string
	Method      *string
	Amount      *float64
	ClearAmount bool
	Notes       *string
}

func (u *UpdateFeeding) IsEmpty() bool {
	return u.Child == nil && u.Start == nil && u.End == nil && u.Type == nil &&
		u.Method == nil && u.Amount == nil && !u.ClearAmount && u.Notes == nil
}

// DeleteFeeding is the delete request for a feeding.
type DeleteFeeding struct {
	ID int32
}

func (s *Store) CreateFeeding(ctx context.Context, create *Feeding) (*Feeding, error) {
	return s.driver.CreateFeeding(ctx, create)
}

func (s *Store) ListFeedings(ctx context.Context, find *FindFeeding) ([]*Feeding, error) {
	return s.driver.ListFeedings(ctx, find)
}

func (s *Store) UpdateFeeding(ctx context.Context, update *UpdateFeeding) (*Feeding, error) {
	return s.driver.UpdateFeeding(ctx, update)
}

func (s *Store) DeleteFeeding(ctx context.Context, delete *DeleteFeeding) error {
	return s.driver.DeleteFeeding(ctx, delete)
}
