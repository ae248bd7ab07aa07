package babybuddy

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/hrygo/nursery/store"
)

type timer struct {
	ID     int32      `json:"id"`
	Child  *int32     `json:"child"`
	Name   *string    `json:"name"`
	Start  time.Time  `json:"start"`
	End    *time.Time `json:"end"`
	Active *bool      `json:"active"`
}

func (t *timer) toStore() *store.Timer {
	out := &store.Timer{
		ID:     t.ID,
		Name:   stringValue(t.Name),
		Start:  t.Start,
		End:    t.End,
		Active: true,
	}
	if t.Child != nil {
		out.Child = *t.Child
	}
	// Servers without the active flag only list running timers.
	if t.Active != nil {
		out.Active = *t.Active
	}
	return out
}

func (d *DB) ListTimers(ctx context.Context, find *store.FindTimer) ([]*store.Timer, error) {
	query := childQuery(find.Child)
	if find.Active != nil {
		query["active"] = strconv.FormatBool(*find.Active)
	}
	items, err := list[timer](ctx, d, "/timers/", query, 0)
	if err != nil {
		return nil, err
	}
	timers := make([]*store.Timer, 0, len(items))
	for i := range items {
		timers = append(timers, items[i].toStore())
	}
	return timers, nil
}

func (d *DB) CreateTimer(ctx context.Context, create *store.Timer) (*store.Timer, error) {
	body := map[string]any{
		"child": create.Child,
		"start": formatTime(create.Start),
	}
	if create.Name != "" {
		body["name"] = create.Name
	}
	var result timer
	if err := d.doRequest(ctx, http.MethodPost, "/timers/", nil, body, &result); err != nil {
		return nil, err
	}
	return result.toStore(), nil
}

func (d *DB) UpdateTimer(ctx context.Context, update *store.UpdateTimer) (*store.Timer, error) {
	body := map[string]any{}
	if update.Child != nil {
		body["child"] = *update.Child
	}
	if update.Name != nil {
		body["name"] = *update.Name
	}
	if update.Start != nil {
		body["start"] = formatTime(*update.Start)
	}
	if update.End != nil {
		body["end"] = formatTime(*update.End)
	}
	if update.Active != nil {
		body["active"] = *update.Active
	}
	var result timer
	if err := d.doRequest(ctx, http.MethodPatch, itemPath("timers", update.ID), nil, body, &result); err != nil {
		return nil, err
	}
	return result.toStore(), nil
}

func (d *DB) DeleteTimer(ctx context.Context, delete *store.DeleteTimer) error {
	return d.doRequest(ctx, http.MethodDelete, itemPath("timers", delete.ID), nil, nil, nil)
}
