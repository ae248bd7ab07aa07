package store

import (
	"context"
)

// Driver is an interface for store driver.
// It contains all methods that an ActivityStore backend should implement.
type Driver interface {
	Close() error

	// Child model related methods.
	ListChildren(ctx context.Context) ([]*Child, error)

	// Timer model related methods.
	ListTimers(ctx context.Context, find *FindTimer) ([]*Timer, error)
	CreateTimer(ctx context.Context, create *Timer) (*Timer, error)
	UpdateTimer(ctx context.Context, update *UpdateTimer) (*Timer, error)
	DeleteTimer(ctx context.Context, delete *DeleteTimer) error

	// Feeding model related methods.
	CreateFeeding(ctx context.Context, create *Feeding) (*Feeding, error)
	ListFeedings(ctx context.Context, find *FindFeeding) ([]*Feeding, error)
	UpdateFeeding(ctx context.Context, update *UpdateFeeding) (*Feeding, error)
	DeleteFeeding(ctx context.Context, delete *DeleteFeeding) error

	// Sleep model related methods.
	CreateSleep(ctx context.Context, create *Sleep) (*Sleep, error)
	ListSleep(ctx context.Context, find *FindSleep) ([]*Sleep, error)
	UpdateSleep(ctx context.Context, update *UpdateSleep) (*Sleep, error)

	// Diaper change model related methods.
	CreateDiaper(ctx context.Context, create *Diaper) (*Diaper, error)
	ListDiapers(ctx context.Context, find *FindDiaper) ([]*Diaper, error)
	UpdateDiaper(ctx context.Context, update *UpdateDiaper) (*Diaper, error)

	// TummyTime model related methods.
	CreateTummyTime(ctx context.Context, create *TummyTime) (*TummyTime, error)
	ListTummyTimes(ctx context.Context, find *FindTummyTime) ([]*TummyTime, error)
}
