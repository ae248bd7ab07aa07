package store

import (
	"context"
	"time"
)

// TummyTime is the object representing a tummy time session.
type TummyTime struct {
	ID        int32
	Child     int32
	Start     time.Time
	End       time.Time
	Duration  string
	Milestone string
	Notes     string
}

// FindTummyTime is the find condition for tummy time. Results are ordered newest end first.
type FindTummyTime struct {
	Child  *int32
	EndMin *time.Time
	EndMax *time.Time
	Limit  int
}

func (s *Store) CreateTummyTime(ctx context.Context, create *TummyTime) (*TummyTime, error) {
	return s.driver.CreateTummyTime(ctx, create)
}

func (s *Store) ListTummyTimes(ctx context.Context, find *FindTummyTime) ([]*TummyTime, error) {
	return s.driver.ListTummyTimes(ctx, find)
}
