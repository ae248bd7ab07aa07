package babybuddy

import (
	"context"
	"net/http"
	"time"

	"github.com/hrygo/nursery/store"
)

type sleep struct {
	ID       int32     `json:"id"`
	Child    int32     `json:"child"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`
	Nap      *bool     `json:"nap"`
	Notes    *string   `json:"notes"`
}

func (s *sleep) toStore() *store.Sleep {
	return &store.Sleep{
		ID:       s.ID,
		Child:    s.Child,
		Start:    s.Start,
		End:      s.End,
		Duration: s.Duration,
		Nap:      s.Nap,
		Notes:    stringValue(s.Notes),
	}
}

func (d *DB) CreateSleep(ctx context.Context, create *store.Sleep) (*store.Sleep, error) {
	body := map[string]any{
		"child": create.Child,
		"start": formatTime(create.Start),
		"end":   formatTime(create.End),
	}
	if create.Nap != nil {
		body["nap"] = *create.Nap
	}
	if create.Duration != "" {
		body["duration"] = create.Duration
	}
	if create.Notes != "" {
		body["notes"] = create.Notes
	}
	var result sleep
	if err := d.doRequest(ctx, http.MethodPost, "/sleep/", nil, body, &result); err != nil {
		return nil, err
	}
	return result.toStore(), nil
}

func (d *DB) ListSleep(ctx context.Context, find *store.FindSleep) ([]*store.Sleep, error) {
	query := childQuery(find.Child)
	query["ordering"] = "-end"
	if find.EndMin != nil {
		query["end_min"] = formatTime(*find.EndMin)
	}
	items, err := list[sleep](ctx, d, "/sleep/", query, find.Limit)
	if err != nil {
		return nil, err
	}
	records := make([]*store.Sleep, 0, len(items))
	for i := range items {
		records = append(records, items[i].toStore())
	}
	return records, nil
}

func (d *DB) UpdateSleep(ctx context.Context, update *store.UpdateSleep) (*store.Sleep, error) {
	body := map[string]any{}
	if update.Child != nil {
		body["child"] = *update.Child
	}
	if update.Start != nil {
		body["start"] = formatTime(*update.Start)
	}
	if update.End != nil {
		body["end"] = formatTime(*update.End)
	}
	if update.Duration != nil {
		body["duration"] = *update.Duration
	}
	if update.Nap != nil {
		body["nap"] = *update.Nap
	}
	if update.Notes != nil {
		body["notes"] = *update.Notes
	}
	var result sleep
	if err := d.doRequest(ctx, http.MethodPatch, itemPath("sleep", update.ID), nil, body, &result); err != nil {
		return nil, err
	}
	return result.toStore(), nil
}
