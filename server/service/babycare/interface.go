package babycare

import (
	"context"
	"fmt"
	"time"

	"github.com/hrygo/nursery/store"
)

// Service defines the activity-record normalization and timer lifecycle operations.
// Every operation fetches what it needs from the ActivityStore; nothing is cached between calls.
type Service interface {
	// FindChild fetches the roster and resolves query against it.
	FindChild(ctx context.Context, query string) (*store.Child, error)

	StartTimer(ctx context.Context, req *StartTimerRequest) (*Timer, error)
	RenameTimer(ctx context.Context, id int32, name string) (*Timer, error)
	RescheduleTimer(ctx context.Context, id int32, start string) (*Timer, error)
	// UpdateTimer applies a partial edit. Giving an end stops the timer.
	UpdateTimer(ctx context.Context, id int32, req *UpdateTimerRequest) (*Timer, error)
	// ListActiveTimers lists running timers, optionally for one child.
	ListActiveTimers(ctx context.Context, childName string) ([]*Timer, error)
	// CancelTimer deletes a running timer without producing a record.
	// It returns a KindConfirmationRequired error until req.Confirmed is set.
	CancelTimer(ctx context.Context, req *CancelTimerRequest) (*Timer, error)

	// Finalize operations create the record first and delete a real timer only after that succeeded.
	FinalizeAsFeeding(ctx context.Context, timer Timer, in *FeedingInput) (*Finalized[*store.Feeding], error)
	FinalizeAsSleep(ctx context.Context, timer Timer, in *SleepInput) (*Finalized[*store.Sleep], error)
	FinalizeAsDiaper(ctx context.Context, timer Timer, in *DiaperInput) (*Finalized[*store.Diaper], error)
	FinalizeAsTummyTime(ctx context.Context, timer Timer, in *TummyTimeInput) (*Finalized[*store.TummyTime], error)

	CreateFeeding(ctx context.Context, childName string, in *FeedingInput) (*store.Feeding, error)
	CreateSleep(ctx context.Context, childName string, in *SleepInput) (*store.Sleep, error)
	CreateDiaper(ctx context.Context, childName string, in *DiaperInput) (*store.Diaper, error)
	CreateTummyTime(ctx context.Context, childName string, in *TummyTimeInput) (*store.TummyTime, error)

	UpdateFeeding(ctx context.Context, id int32, req *UpdateFeedingRequest) (*store.Feeding, error)
	UpdateSleep(ctx context.Context, id int32, req *UpdateSleepRequest) (*store.Sleep, error)
	UpdateDiaper(ctx context.Context, id int32, req *UpdateDiaperRequest) (*store.Diaper, error)
	DeleteFeeding(ctx context.Context, id int32) error

	Feedings(ctx context.Context, childName string, tf Timeframe, limit int) (*Records[*store.Feeding], error)
	Sleep(ctx context.Context, childName string, tf Timeframe, limit int) (*Records[*store.Sleep], error)
	Diapers(ctx context.Context, childName string, tf Timeframe, limit int) (*Records[*store.Diaper], error)
	TummyTimes(ctx context.Context, childName string, tf Timeframe, limit int) (*Records[*store.TummyTime], error)

	// Overview collects the latest record of each kind plus today's totals.
	Overview(ctx context.Context, childName string) (*Overview, error)
	// RecentActivity merges recent records of every kind, newest first.
	RecentActivity(ctx context.Context, childName string, limit int) (*store.Child, []*ActivityEntry, error)
}

// TimerRef identifies the timer a record is finalized from: either a persisted
// timer or a placeholder with no backing row, which is never deleted.
type TimerRef struct {
	id   int32
	real bool
}

// RealTimer references a persisted timer.
func RealTimer(id int32) TimerRef {
	return TimerRef{id: id, real: true}
}

// PlaceholderTimer references a one-off timer that exists only for this call.
func PlaceholderTimer() TimerRef {
	return TimerRef{}
}

// TimerRefFromID converts a wire id, where ids <= 0 denote placeholders.
func TimerRefFromID(id int32) TimerRef {
	if id <= 0 {
		return PlaceholderTimer()
	}
	return RealTimer(id)
}

// ID returns the persisted id; ok is false for placeholders.
func (r TimerRef) ID() (id int32, ok bool) {
	return r.id, r.real
}

func (r TimerRef) IsPlaceholder() bool {
	return !r.real
}

func (r TimerRef) String() string {
	if !r.real {
		return "placeholder"
	}
	return fmt.Sprintf("timer %d", r.id)
}

// Timer is a running, not yet finalized activity marker.
type Timer struct {
	Ref       TimerRef
	Child     int32
	ChildName string
	Name      string
	Start     time.Time
	End       *time.Time
	Active    bool
}

// Finalized is the outcome of finalizing a timer. Warning is set, and TimerDeleted
// false, when the record was created but the timer could not be deleted.
type Finalized[T any] struct {
	Record       T
	TimerDeleted bool
	Warning      *Error
}

// Records is the result of an activity query.
type Records[T any] struct {
	Child     *store.Child
	Timeframe Timeframe
	Items     []T
}

// Timeframe selects which records a query returns.
type Timeframe string

const (
	TimeframeToday  Timeframe = "today"
	TimeframeRecent Timeframe = "recent"
	TimeframeLast   Timeframe = "last"
)

// ParseTimeframe accepts "today", "recent" and "last"; empty means recent.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case "":
		return TimeframeRecent, nil
	case TimeframeToday, TimeframeRecent, TimeframeLast:
		return Timeframe(s), nil
	default:
		return "", validationf("Unknown timeframe %q (use today, recent or last)", s)
	}
}

type StartTimerRequest struct {
	ChildName string
	Name      string
	// Start is raw time input; empty means now.
	Start string
}

type UpdateTimerRequest struct {
	ChildName *string
	Name      *string
	Start     *string
	End       *string
}

type CancelTimerRequest struct {
	ChildName string
	// TimerName selects a timer by exact, case-insensitive name; empty means the most recent one.
	TimerName string
	Confirmed bool
}

// FeedingInput holds raw feeding fields as given by the caller. Times and enums are normalized.
type FeedingInput struct {
	Start  string
	End    string
	Type   string
	Method string
	Amount string
	Notes  string
}

type SleepInput struct {
	Start string
	End   string
	Nap   *bool
	Notes string
}

// DiaperInput describes one diaper change. Explicit Wet/Solid flags win over Contents;
// with neither, the change is recorded as wet.
type DiaperInput struct {
	Time     string
	Contents string
	Wet      *bool
	Solid    *bool
	Color    string
	Amount   string
	Notes    string
}

type TummyTimeInput struct {
	Start     string
	End       string
	Milestone string
	Notes     string
}

type UpdateFeedingRequest struct {
	ChildName *string
	Start     *string
	End       *string
	Type      *string
	Method    *string
	// Amount "" (or text without a number) clears the amount.
	Amount *string
	Notes  *string
}

type UpdateSleepRequest struct {
	ChildName *string
	Start     *string
	End       *string
	Nap       *bool
	Notes     *string
}

type UpdateDiaperRequest struct {
	ChildName *string
	Time      *string
	Contents  *string
	Wet       *bool
	Solid     *bool
	Color     *string
	Amount    *string
	Notes     *string
}
