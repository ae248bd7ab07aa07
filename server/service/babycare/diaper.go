package babycare

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hrygo/nursery/store"
)

func (s *service) diaperRecord(child int32, in *DiaperInput, contents DiaperContents, at time.Time) (*store.Diaper, error) {
	d := &store.Diaper{
		Child:  child,
		Time:   at,
		Wet:    contents.Wet,
		Solid:  contents.Solid,
		Amount: NormalizeAmount(in.Amount),
		Notes:  strings.TrimSpace(in.Notes),
	}
	// Color only describes solid contents.
	if d.Solid {
		d.Color = NormalizeDiaperColor(in.Color)
	}
	err := s.check(&diaperPayload{
		Child:    d.Child,
		Time:     d.Time,
		Contents: contents,
		Color:    d.Color,
		Amount:   d.Amount,
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CreateDiaper records one change. Two separately measured contents ("wet 1 and solid 2")
// are two changes; callers split them into two calls.
func (s *service) CreateDiaper(ctx context.Context, childName string, in *DiaperInput) (*store.Diaper, error) {
	contents := diaperContents(in.Contents, in.Wet, in.Solid)
	if err := s.checkContents(contents); err != nil {
		return nil, err
	}
	child, err := s.FindChild(ctx, childName)
	if err != nil {
		return nil, err
	}

	create, err := s.diaperRecord(child.ID, in, contents, s.timeOr(in.Time, s.now()))
	if err != nil {
		return nil, err
	}
	change, err := s.store.CreateDiaper(ctx, create)
	if err != nil {
		return nil, fromStore("create diaper change", err)
	}
	slog.InfoContext(ctx, "diaper change created", "child_id", child.ID, "change_id", change.ID)
	return change, nil
}

func (s *service) UpdateDiaper(ctx context.Context, id int32, req *UpdateDiaperRequest) (*store.Diaper, error) {
	update := &store.UpdateDiaper{ID: id, Notes: req.Notes}

	var err error
	if update.Time, err = s.optionalTime("time", req.Time); err != nil {
		return nil, err
	}
	switch {
	case req.Wet != nil && req.Solid != nil:
		if err := s.checkContents(DiaperContents{Wet: *req.Wet, Solid: *req.Solid}); err != nil {
			return nil, err
		}
		update.Wet, update.Solid = req.Wet, req.Solid
	case req.Wet != nil || req.Solid != nil:
		// Clearing one flag alone could leave the change with neither set.
		if (req.Wet != nil && !*req.Wet) || (req.Solid != nil && !*req.Solid) {
			return nil, &Error{
				Kind:    KindValidation,
				Message: "Give both wet and solid when clearing one of them",
				Fields:  map[string][]string{"contents": {"Wet or solid must be true."}},
			}
		}
		update.Wet, update.Solid = req.Wet, req.Solid
	case req.Contents != nil:
		c := NormalizeDiaperContents(*req.Contents)
		update.Wet, update.Solid = &c.Wet, &c.Solid
	}
	// Color only describes solid contents. When the update does not say, the stored flag decides.
	switch {
	case update.Solid != nil && !*update.Solid:
		cleared := ""
		update.Color = &cleared
	case req.Color != nil:
		color := NormalizeDiaperColor(*req.Color)
		update.Color = &color
	}
	if req.Amount != nil {
		update.Amount = NormalizeAmount(*req.Amount)
		update.ClearAmount = update.Amount == nil
		if err := s.checkAmount(update.Amount); err != nil {
			return nil, err
		}
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
	change, err := s.store.UpdateDiaper(ctx, update)
	if err != nil {
		return nil, fromStore(fmt.Sprintf("update diaper change %d", id), err)
	}
	slog.InfoContext(ctx, "diaper change updated", "change_id", id)
	return change, nil
}

func (s *service) Diapers(ctx context.Context, childName string, tf Timeframe, limit int) (*Records[*store.Diaper], error) {
	child, err := s.FindChild(ctx, childName)
	if err != nil {
		return nil, err
	}
	find := &store.FindDiaper{Child: int32Ptr(child.ID), Limit: recentLimit(tf, limit)}
	if tf == TimeframeToday {
		since := s.startOfToday()
		find.TimeMin = &since
	}
	items, err := s.store.ListDiapers(ctx, find)
	if err != nil {
		return nil, fromStore("fetch diaper changes", err)
	}
	return &Records[*store.Diaper]{Child: child, Timeframe: tf, Items: items}, nil
}
