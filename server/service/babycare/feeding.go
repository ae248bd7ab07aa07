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

func (s *service) feedingRecord(child int32, in *FeedingInput, start, end time.Time) (*store.Feeding, error) {
	f := &store.Feeding{
		Child:    child,
		Start:    start,
		End:      end,
		Duration: aitime.Duration(start, end),
		Type:     NormalizeFeedingType(in.Type),
		Method:   NormalizeFeedingMethod(in.Method),
		Amount:   NormalizeAmount(in.Amount),
		Notes:    strings.TrimSpace(in.Notes),
	}
	err := s.check(&feedingPayload{
		Child:  f.Child,
		Start:  f.Start,
		End:    f.End,
		Type:   f.Type,
		Method: f.Method,
		Amount: f.Amount,
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) CreateFeeding(ctx context.Context, childName string, in *FeedingInput) (*store.Feeding, error) {
	child, err := s.FindChild(ctx, childName)
	if err != nil {
		return nil, err
	}
	now := s.now()
	end := s.timeOr(in.End, now)
	start := s.timeOr(in.Start, end.Add(-DefaultFeedingWindow))

	create, err := s.feedingRecord(child.ID, in, start, end)
	if err != nil {
		return nil, err
	}
	feeding, err := s.store.CreateFeeding(ctx, create)
	if err != nil {
		return nil, fromStore("create feeding", err)
	}
	slog.InfoContext(ctx, "feeding created", "child_id", child.ID, "feeding_id", feeding.ID)
	return feeding, nil
}

func (s *service) UpdateFeeding(ctx context.Context, id int32, req *UpdateFeedingRequest) (*store.Feeding, error) {
	update := &store.UpdateFeeding{ID: id}

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
	if req.Type != nil {
		t := NormalizeFeedingType(*req.Type)
		update.Type = &t
	}
	if req.Method != nil {
		m := NormalizeFeedingMethod(*req.Method)
		update.Method = &m
	}
	if req.Amount != nil {
		update.Amount = NormalizeAmount(*req.Amount)
		update.ClearAmount = update.Amount == nil
		if err := s.checkAmount(update.Amount); err != nil {
			return nil, err
		}
	}
	update.Notes = req.Notes

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
	feeding, err := s.store.UpdateFeeding(ctx, update)
	if err != nil {
		return nil, fromStore(fmt.Sprintf("update feeding %d", id), err)
	}
	slog.InfoContext(ctx, "feeding updated", "feeding_id", id)
	return feeding, nil
}

func (s *service) DeleteFeeding(ctx context.Context, id int32) error {
	if err := s.store.DeleteFeeding(ctx, &store.DeleteFeeding{ID: id}); err != nil {
		return fromStore(fmt.Sprintf("delete feeding %d", id), err)
	}
	slog.InfoContext(ctx, "feeding deleted", "feeding_id", id)
	return nil
}

// recentLimit applies the timeframe to a caller limit.
func recentLimit(tf Timeframe, limit int) int {
	switch {
	case tf == TimeframeLast:
		return 1
	case tf == TimeframeToday:
		return 0
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}

func (s *service) Feedings(ctx context.Context, childName string, tf Timeframe, limit int) (*Records[*store.Feeding], error) {
	child, err := s.FindChild(ctx, childName)
	if err != nil {
		return nil, err
	}
	find := &store.FindFeeding{Child: int32Ptr(child.ID), Limit: recentLimit(tf, limit)}
	if tf == TimeframeToday {
		since := s.startOfToday()
		find.StartMin = &since
	}
	items, err := s.store.ListFeedings(ctx, find)
	if err != nil {
		return nil, fromStore("fetch feedings", err)
	}
	return &Records[*store.Feeding]{Child: child, Timeframe: tf, Items: items}, nil
}
