package babybuddy

import (
	"context"
	"net/http"
	"time"

	"github.com/hrygo/nursery/store"
)

type change struct {
	ID     int32     `json:"id"`
	Child  int32     `json:"child"`
	Time   time.Time `json:"time"`
	Wet    bool      `json:"wet"`
	Solid  bool      `json:"solid"`
	Color  string    `json:"color"`
	Amount *float64  `json:"amount"`
	Notes  *string   `json:"notes"`
}

func (c *change) toStore() *store.Diaper {
	return &store.Diaper{
		ID:     c.ID,
		Child:  c.Child,
		Time:   c.Time,
		Wet:    c.Wet,
		Solid:  c.Solid,
		Color:  c.Color,
		Amount: c.Amount,
		Notes:  stringValue(c.Notes),
	}
}

func (d *DB) CreateDiaper(ctx context.Context, create *store.Diaper) (*store.Diaper, error) {
	body := map[string]any{
		"child":  create.Child,
		"time":   formatTime(create.Time),
		"wet":    create.Wet,
		"solid":  create.Solid,
		"amount": create.Amount,
	}
	if create.Color != "" {
		body["color"] = create.Color
	}
	if create.Notes != "" {
		body["notes"] = create.Notes
	}
	var result change
	if err := d.doRequest(ctx, http.MethodPost, "/changes/", nil, body, &result); err != nil {
		return nil, err
	}
	return result.toStore(), nil
}

func (d *DB) ListDiapers(ctx context.Context, find *store.FindDiaper) ([]*store.Diaper, error) {
	query := childQuery(find.Child)
	query["ordering"] = "-time"
	if find.TimeMin != nil {
		query["time_min"] = formatTime(*find.TimeMin)
	}
	items, err := list[change](ctx, d, "/changes/", query, find.Limit)
	if err != nil {
		return nil, err
	}
	changes := make([]*store.Diaper, 0, len(items))
	for i := range items {
		changes = append(changes, items[i].toStore())
	}
	return changes, nil
}

func (d *DB) UpdateDiaper(ctx context.Context, update *store.UpdateDiaper) (*store.Diaper, error) {
	body := map[string]any{}
	if update.Child != nil {
		body["child"] = *update.Child
	}
	if update.Time != nil {
		body["time"] = formatTime(*update.Time)
	}
	if update.Wet != nil {
		body["wet"] = *update.Wet
	}
	if update.Solid != nil {
		body["solid"] = *update.Solid
	}
	if update.Color != nil {
		body["color"] = *update.Color
	}
	if update.ClearAmount {
		body["amount"] = nil
	} else if update.Amount != nil {
		body["amount"] = *update.Amount
	}
	if update.Notes != nil {
		body["notes"] = *update.Notes
	}
	var result change
	if err := d.doRequest(ctx, http.MethodPatch, itemPath("changes", update.ID), nil, body, &result); err != nil {
		return nil, err
	}
	return result.toStore(), nil
}
