package babycare

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/hrygo/nursery/store"
)

func timerFromStore(t *store.Timer, roster []*store.Child) *Timer {
	return &Timer{
		Ref:       TimerRefFromID(t.ID),
		Child:     t.Child,
		ChildName: childName(roster, t.Child),
		Name:      t.Name,
		Start:     t.Start,
		End:       t.End,
		Active:    t.Active,
	}
}

func (s *service) StartTimer(ctx context.Context, req *StartTimerRequest) (*Timer, error) {
	roster, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	child, err := ResolveChild(roster, req.ChildName)
	if err != nil {
		return nil, err
	}

	created, err := s.store.CreateTimer(ctx, &store.Timer{
		Child: child.ID,
		Name:  strings.TrimSpace(req.Name),
		Start: s.timeOr(req.Start, s.now()),
	})
	if err != nil {
		return nil, fromStore("start timer", err)
	}

	slog.InfoContext(ctx, "timer started", "child_id", child.ID, "timer_id", created.ID, "name", created.Name)
	return timerFromStore(created, roster), nil
}

func (s *service) RenameTimer(ctx context.Context, id int32, name string) (*Timer, error) {
	return s.UpdateTimer(ctx, id, &UpdateTimerRequest{Name: &name})
}

func (s *service) RescheduleTimer(ctx context.Context, id int32, start string) (*Timer, error) {
	return s.UpdateTimer(ctx, id, &UpdateTimerRequest{Start: &start})
}

func (s *service) UpdateTimer(ctx context.Context, id int32, req *UpdateTimerRequest) (*Timer, error) {
	update := &store.UpdateTimer{ID: id, Name: req.Name}

	var err error
	if update.Start, err = s.optionalTime("start", req.Start); err != nil {
		return nil, err
	}
	if update.End, err = s.optionalTime("end", req.End); err != nil {
		return nil, err
	}
	if update.End != nil {
		stopped := false
		update.Active = &stopped
	}

	var roster []*store.Child
	if req.ChildName != nil {
		if roster, err = s.roster(ctx); err != nil {
			return nil, err
		}
		child, err := ResolveChild(roster, *req.ChildName)
		if err != nil {
			return nil, err
		}
		update.Child = int32Ptr(child.ID)
	}

	if update.IsEmpty() {
		return nil, ErrNoUpdates
	}

	updated, err := s.store.UpdateTimer(ctx, update)
	if err != nil {
		return nil, fromStore(fmt.Sprintf("update timer %d", id), err)
	}
	slog.InfoContext(ctx, "timer updated", "timer_id", id)
	return timerFromStore(updated, roster), nil
}

func (s *service) ListActiveTimers(ctx context.Context, name string) ([]*Timer, error) {
	roster, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	var only *store.Child
	if strings.TrimSpace(name) != "" {
		if only, err = ResolveChild(roster, name); err != nil {
			return nil, err
		}
	}

	timers, err := s.store.ListActiveTimers(ctx)
	if err != nil {
		return nil, fromStore("list timers", err)
	}
	out := make([]*Timer, 0, len(timers))
	for _, t := range timers {
		if only != nil && t.Child != only.ID {
			continue
		}
		out = append(out, timerFromStore(t, roster))
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(timers []*Timer) {
	sort.SliceStable(timers, func(i, j int) bool { return timers[i].Start.After(timers[j].Start) })
}

// CancelPrompt is the confirmation question for req.
func CancelPrompt(req *CancelTimerRequest) string {
	if strings.TrimSpace(req.TimerName) != "" {
		return fmt.Sprintf("Are you sure you want to delete the %q timer for %s?", req.TimerName, req.ChildName)
	}
	return fmt.Sprintf("Are you sure you want to delete the most recent timer for %s?", req.ChildName)
}

func (s *service) CancelTimer(ctx context.Context, req *CancelTimerRequest) (*Timer, error) {
	if !req.Confirmed {
		return nil, &Error{Kind: KindConfirmationRequired, Message: CancelPrompt(req)}
	}

	roster, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	child, err := ResolveChild(roster, req.ChildName)
	if err != nil {
		return nil, err
	}

	timers, err := s.store.ListActiveTimers(ctx)
	if err != nil {
		return nil, fromStore("list timers", err)
	}
	var candidates []*Timer
	for _, t := range timers {
		if t.Child == child.ID {
			candidates = append(candidates, timerFromStore(t, roster))
		}
	}
	if len(candidates) == 0 {
		return nil, notFoundf("No active timers found for %s", child.FirstName)
	}
	sortNewestFirst(candidates)

	target := candidates[0]
	if name := strings.TrimSpace(req.TimerName); name != "" {
		target = nil
		for _, t := range candidates {
			if strings.EqualFold(t.Name, name) {
				target = t
				break
			}
		}
		if target == nil {
			return nil, notFoundf("No active timer named %q found for %s", name, child.FirstName)
		}
	}

	id, _ := target.Ref.ID()
	if err := s.store.DeleteTimer(ctx, &store.DeleteTimer{ID: id}); err != nil {
		return nil, fromStore(fmt.Sprintf("delete timer %d", id), err)
	}
	target.Active = false
	slog.InfoContext(ctx, "timer cancelled", "child_id", child.ID, "timer_id", id)
	return target, nil
}

// loadTimer re-reads a real timer so a finalized (deleted) timer cannot be finalized twice.
func (s *service) loadTimer(ctx context.Context, timer Timer) (Timer, error) {
	id, ok := timer.Ref.ID()
	if !ok {
		return timer, nil
	}
	// Stopped timers (active=false after an edit) can still be finalized.
	timers, err := s.store.ListTimers(ctx, &store.FindTimer{})
	if err != nil {
		return Timer{}, fromStore("fetch timer", err)
	}
	for _, t := range timers {
		if t.ID == id {
			current := timerFromStore(t, nil)
			current.ChildName = timer.ChildName
			return *current, nil
		}
	}
	return Timer{}, notFoundf("Timer %d not found; it may already be finished", id)
}

// window returns the record extent: start and end from the caller, else the timer,
// else now. A start at or after end is moved to one second before end.
func (s *service) window(timer Timer, rawStart, rawEnd string) (time.Time, time.Time) {
	end := s.now()
	if timer.End != nil {
		end = *timer.End
	}
	end = s.timeOr(rawEnd, end)

	start := timer.Start
	if start.IsZero() {
		start = end
	}
	start = s.timeOr(rawStart, start)

	if !start.Before(end) {
		start = end.Add(-MinimumFinalizedSpan)
	}
	return start, end
}

// finalize creates the record and then retires a real timer.
// Nothing is deleted when creation fails.
func finalize[T any](ctx context.Context, s *service, timer Timer, activity string, create func() (T, error)) (*Finalized[T], error) {
	record, err := create()
	if err != nil {
		return nil, fromStore("create "+strings.ReplaceAll(activity, "_", " "), err)
	}
	result := &Finalized[T]{Record: record}

	if id, ok := timer.Ref.ID(); ok {
		if err := s.store.DeleteTimer(ctx, &store.DeleteTimer{ID: id}); err != nil {
			result.Warning = &Error{
				Kind:    KindPartialFinalization,
				Message: fmt.Sprintf("Record created, but timer %d could not be deleted and may still be running: %v", id, err),
				Cause:   err,
			}
			slog.WarnContext(ctx, "timer not deleted after finalization",
				"timer_id", id, "activity", activity, "error", err)
		} else {
			result.TimerDeleted = true
		}
	}

	// Placeholders retire no timer and are left out of the finalization count.
	if !timer.Ref.IsPlaceholder() {
		s.metrics.RecordFinalization(ctx, activity, result.TimerDeleted)
	}
	slog.InfoContext(ctx, "timer finalized",
		"activity", activity, "child_id", timer.Child, "timer", timer.Ref.String(), "timer_deleted", result.TimerDeleted)
	return result, nil
}

func (s *service) FinalizeAsFeeding(ctx context.Context, timer Timer, in *FeedingInput) (*Finalized[*store.Feeding], error) {
	timer, err := s.loadTimer(ctx, timer)
	if err != nil {
		return nil, err
	}
	start, end := s.window(timer, in.Start, in.End)
	create, err := s.feedingRecord(timer.Child, in, start, end)
	if err != nil {
		return nil, err
	}
	return finalize(ctx, s, timer, ActivityFeeding, func() (*store.Feeding, error) {
		return s.store.CreateFeeding(ctx, create)
	})
}

func (s *service) FinalizeAsSleep(ctx context.Context, timer Timer, in *SleepInput) (*Finalized[*store.Sleep], error) {
	timer, err := s.loadTimer(ctx, timer)
	if err != nil {
		return nil, err
	}
	start, end := s.window(timer, in.Start, in.End)
	create, err := s.sleepRecord(timer.Child, in, start, end)
	if err != nil {
		return nil, err
	}
	return finalize(ctx, s, timer, ActivitySleep, func() (*store.Sleep, error) {
		return s.store.CreateSleep(ctx, create)
	})
}

func (s *service) FinalizeAsDiaper(ctx context.Context, timer Timer, in *DiaperInput) (*Finalized[*store.Diaper], error) {
	contents := diaperContents(in.Contents, in.Wet, in.Solid)
	if err := s.checkContents(contents); err != nil {
		return nil, err
	}
	timer, err := s.loadTimer(ctx, timer)
	if err != nil {
		return nil, err
	}
	_, end := s.window(timer, "", "")
	create, err := s.diaperRecord(timer.Child, in, contents, s.timeOr(in.Time, end))
	if err != nil {
		return nil, err
	}
	return finalize(ctx, s, timer, ActivityDiaper, func() (*store.Diaper, error) {
		return s.store.CreateDiaper(ctx, create)
	})
}

func (s *service) FinalizeAsTummyTime(ctx context.Context, timer Timer, in *TummyTimeInput) (*Finalized[*store.TummyTime], error) {
	timer, err := s.loadTimer(ctx, timer)
	if err != nil {
		return nil, err
	}
	start, end := s.window(timer, in.Start, in.End)
	create, err := s.tummyTimeRecord(timer.Child, in, start, end)
	if err != nil {
		return nil, err
	}
	return finalize(ctx, s, timer, ActivityTummyTime, func() (*store.TummyTime, error) {
		return s.store.CreateTummyTime(ctx, create)
	})
}
