package babycare

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hrygo/nursery/plugin/ai/aitime"
	"github.com/hrygo/nursery/store"
)

func (s *service) sleepRecord(child int32, in *SleepInput, start, end time.Time) (*store.Sleep, error) {
	if err := s.check(&spanPayload{Child: child, Start: start, End: end}); err != nil {
		return nil, err
	}
	return &store.Sleep{
		Child:    child,
		Start:    start,
		End:      end,
		Duration: aitime.Duration(start, end),
		Nap:      in.Nap,
		Notes:    strings.TrimSpace(in.Notes),
	}, nil
}

func (s *service) CreateSleep(ctx context.Context, childName string, in *SleepInput) (*store.Sleep, error) {
	child, err := s.FindChild(ctx, childName)
	if err != nil {
		return nil, err
	}
	end := s.timeOr(in.End, s.now())
	start := s.timeOr(in.Start, end.Add(-DefaultSleepWindow))

	create, err := s.sleepRecord(child.ID, in, start, end)
	if err != nil {
		return nil, err
	}
	sleep, err := s.store.CreateSleep(ctx, create)
	if err != nil {
		return nil, fromStore("create sleep", err)
	}
	slog.InfoContext(ctx, "sleep created", "child_id", child.ID, "sleep_id", sleep.ID)
	return sleep, nil
}

func (s *service) UpdateSleep(ctx context.Context, id int32, req *UpdateSleepRequest) (*store.Sleep, error) {
	update := &store.UpdateSleep{ID: id, Nap: req.Nap, Notes: req.Notes}

	var err error
	if update.Start, err = s.optionalTime("start", req.Start); err != nil {
		return nil, err
	}
	if update.End, err = s.optionalTime("end", req.End); err != nil {
		return nil, err
	}
	if update.Start != nil && update.End != nil {
		if update.End.Before(*update.Start) {
			return nil, &Error{
				Kind:    KindValidation,
				Message: "end: End must not be before start.",
				Fields:  map[string][]string{"end": {"End must not be before start."}},
			}
		}
		duration := aitime.Duration(*update.Start, *update.End)
		update.Duration = &duration
	}
	if req.ChildName != nil {
		child, err := s.FindChild(ctx, *req.ChildName)
		if err != nil {
			return nil, err
		}
		update.Child = int32Ptr(child.ID)
	}

	if update.IsEmpty() {
		return nil, ErrNoUpdates
	}
	sleep, err := s.store.UpdateSleep(ctx, update)
	if err != nil {
		return nil, fromStore(fmt.Sprintf("update sleep %d", id), err)
	}
	slog.InfoContext(ctx, "sleep updated", "sleep_id", id)
	return sleep, nil
}

func (s *service) Sleep(ctx context.Context, childName string, tf Timeframe, limit int) (*Records[*store.Sleep], error) {
	child, err := s.FindChild(ctx, childName)
	if err != nil {
		return nil, err
	}
	find := &store.FindSleep{Child: int32Ptr(child.ID), Limit: recentLimit(tf, limit)}
	if tf == TimeframeToday {
		since := s.startOfToday()
		find.EndMin = &since
	}
	items, err := s.store.ListSleep(ctx, find)
	if err != nil {
		return nil, fromStore("fetch sleep", err)
	}
	return &Records[*store.Sleep]{Child: child, Timeframe: tf, Items: items}, nil
}
