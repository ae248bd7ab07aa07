// Package babycare is the activity-record normalization and timer lifecycle layer.
//
// It resolves free-text child names, normalizes loosely specified times, enums and
// amounts into the strict shapes the ActivityStore accepts, computes durations, and
// finalizes running timers into feeding, sleep, diaper and tummy time records with
// exactly-once timer consumption.
//
// Operations are sequential ActivityStore calls. Errors are returned, never logged and dropped.
package babycare

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hrygo/nursery/plugin/ai/aitime"
	"github.com/hrygo/nursery/plugin/ai/metrics"
	"github.com/hrygo/nursery/server/timezone"
	"github.com/hrygo/nursery/store"
)

// Store is the interface for ActivityStore operations needed by the service.
type Store interface {
	ListChildren(ctx context.Context) ([]*store.Child, error)

	ListTimers(ctx context.Context, find *store.FindTimer) ([]*store.Timer, error)
	ListActiveTimers(ctx context.Context) ([]*store.Timer, error)
	CreateTimer(ctx context.Context, create *store.Timer) (*store.Timer, error)
	UpdateTimer(ctx context.Context, update *store.UpdateTimer) (*store.Timer, error)
	DeleteTimer(ctx context.Context, delete *store.DeleteTimer) error

	CreateFeeding(ctx context.Context, create *store.Feeding) (*store.Feeding, error)
	ListFeedings(ctx context.Context, find *store.FindFeeding) ([]*store.Feeding, error)
	UpdateFeeding(ctx context.Context, update *store.UpdateFeeding) (*store.Feeding, error)
	DeleteFeeding(ctx context.Context, delete *store.DeleteFeeding) error

	CreateSleep(ctx context.Context, create *store.Sleep) (*store.Sleep, error)
	ListSleep(ctx context.Context, find *store.FindSleep) ([]*store.Sleep, error)
	UpdateSleep(ctx context.Context, update *store.UpdateSleep) (*store.Sleep, error)

	CreateDiaper(ctx context.Context, create *store.Diaper) (*store.Diaper, error)
	ListDiapers(ctx context.Context, find *store.FindDiaper) ([]*store.Diaper, error)
	UpdateDiaper(ctx context.Context, update *store.UpdateDiaper) (*store.Diaper, error)

	CreateTummyTime(ctx context.Context, create *store.TummyTime) (*store.TummyTime, error)
	ListTummyTimes(ctx context.Context, find *store.FindTummyTime) ([]*store.TummyTime, error)
}

type service struct {
	store    Store
	time     aitime.TimeService
	metrics  metrics.MetricsService
	validate *validator.Validate
}

// Option configures the service.
type Option func(*service)

// WithTimeService overrides the time source and location (process-local by default).
func WithTimeService(ts aitime.TimeService) Option {
	return func(s *service) {
		s.time = ts
	}
}

// WithMetrics records finalizations.
func WithMetrics(m metrics.MetricsService) Option {
	return func(s *service) {
		s.metrics = m
	}
}

// NewService creates a new babycare service.
func NewService(store Store, opts ...Option) Service {
	s := &service{
		store:    store,
		time:     aitime.NewService(nil),
		metrics:  metrics.NopMetrics{},
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) now() time.Time {
	return s.time.Now()
}

func (s *service) startOfToday() time.Time {
	return timezone.StartOfDay(s.now(), s.time.Location())
}

func (s *service) endOfToday() time.Time {
	return timezone.EndOfDay(s.now(), s.time.Location())
}

// timeOr normalizes raw, falling back to def for empty or unrecognized input.
func (s *service) timeOr(raw string, def time.Time) time.Time {
	if t, ok := s.time.Normalize(raw); ok {
		return t
	}
	return def
}

// optionalTime normalizes an edit field. A present but unrecognized value is a validation error.
func (s *service) optionalTime(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, ok := s.time.Normalize(*raw)
	if !ok {
		return nil, &Error{
			Kind:    KindValidation,
			Message: "Unrecognized " + field + " time: " + *raw,
			Fields:  map[string][]string{field: {"Unrecognized time."}},
		}
	}
	return &t, nil
}

func (s *service) roster(ctx context.Context) ([]*store.Child, error) {
	children, err := s.store.ListChildren(ctx)
	if err != nil {
		return nil, fromStore("fetch children", err)
	}
	return children, nil
}

func (s *service) FindChild(ctx context.Context, query string) (*store.Child, error) {
	roster, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveChild(roster, query)
}

func childName(roster []*store.Child, id int32) string {
	for _, c := range roster {
		if c.ID == id {
			return c.FullName()
		}
	}
	return ""
}

func int32Ptr(v int32) *int32 {
	return &v
}
