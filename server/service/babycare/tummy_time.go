package babycare

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hrygo/nursery/plugin/ai/aitime"
	"github.com/hrygo/nursery/store"
)

func (s *service) tummyTimeRecord(child int32, in *TummyTimeInput, start, end time.Time) (*store.TummyTime, error) {
	if err := s.check(&spanPayload{Child: child, Start: start, End: end}); err != nil {
		return nil, err
	}
	return &store.TummyTime{
		Child:     child,
		Start:     start,
		End:       end,
		Duration:  aitime.Duration(start, end),
		Milestone: strings.TrimSpace(in.Milestone),
		Notes:     strings.TrimSpace(in.Notes),
	}, nil
}

func (s *service) CreateTummyTime(ctx context.Context, childName string, in *TummyTimeInput) (*store.TummyTime, error) {
	child, err := s.FindChild(ctx, childName)
	if err != nil {
		return nil, err
	}
	end := s.timeOr(in.End, s.now())
	start := s.timeOr(in.Start, end.Add(-DefaultTummyTimeWindow))

	create, err := s.tummyTimeRecord(child.ID, in, start, end)
	if err != nil {
		return nil, err
	}
	record, err := s.store.CreateTummyTime(ctx, create)
	if err != nil {
		return nil, fromStore("create tummy time", err)
	}
	slog.InfoContext(ctx, "tummy time created", "child_id", child.ID, "tummy_time_id", record.ID)
	return record, nil
}

func (s *service) TummyTimes(ctx context.Context, childName string, tf Timeframe, limit int) (*Records[*store.TummyTime], error) {
	child, err := s.FindChild(ctx, childName)
	if err != nil {
		return nil, err
	}
	find := &store.FindTummyTime{Child: int32Ptr(child.ID), Limit: recentLimit(tf, limit)}
	if tf == TimeframeToday {
		from, to := s.startOfToday(), s.endOfToday()
		find.EndMin, find.EndMax = &from, &to
	}
	items, err := s.store.ListTummyTimes(ctx, find)
	if err != nil {
		return nil, fromStore("fetch tummy time", err)
	}
	return &Records[*store.TummyTime]{Child: child, Timeframe: tf, Items: items}, nil
}
