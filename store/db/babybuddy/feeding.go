package babybuddy

import (
	"context"
	"net/http"
	"time"

	"github.com/hrygo/nursery/store"
)

type feeding struct {
	ID       int32     `json:"id"`
	Child    int32     `json:"child"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`
	Type     string    `json:"type"`
	Method   string    `json:"method"`
	Amount   *float64  `json:"amount"`
	Notes    *string   `json:"notes"`
}

func (f *feeding) toStore() *store.Feeding {
	return &store.Feeding{
		ID:       f.ID,
		Child:    f.Child,
		Start:    f.Start,
		End:      f.End,
		Duration: f.Duration,
		Type:     f.Type,
		Method:   f.Method,
		Amount:   f.Amount,
		Notes:    stringValue(f.Notes),
	}
}

func (d *DB) CreateFeeding(ctx context.Context, create *store.Feeding) (*store.Feeding, error) {
	body := map[string]any{
		"child":  create.Child,
		"start":  formatTime(create.Start),
		"end":    formatTime(create.End),
		"type":   create.Type,
		"method": create.Method,
		"amount": create.Amount,
	}
	if create.Duration != "" {
		body["duration"] = create.Duration
	}
	if create.Notes != "" {
		body["notes"] = create.Notes
	}
	var result feeding
	if err := d.doRequest(ctx, http.MethodPost, "/feedings/", nil, body, &result); err != nil {
		return nil, err
	}
	return result.toStore(), nil
}

func (d *DB) ListFeedings(ctx context.Context, find *store.FindFeeding) ([]*store.Feeding, error) {
	query := childQuery(find.Child)
	query["ordering"] = "-start"
	if find.StartMin != nil {
		query["start_min"] = formatTime(*find.StartMin)
	}
	items, err := list[feeding](ctx, d, "/feedings/", query, find.Limit)
	if err != nil {
		return nil, err
	}
	feedings := make([]*store.Feeding, 0, len(items))
	for i := range items {
		feedings = append(feedings, items[i].toStore())
	}
	return feedings, nil
}

func (d *DB) UpdateFeeding(ctx context.Context, update *store.UpdateFeeding) (*store.Feeding, error) {
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
	if update.Type != nil {
		body["type"] = *update.Type
	}
	if update.Method != nil {
		body["method"] = *update.Method
	}
	if update.ClearAmount {
		body["amount"] = nil
	} else if update.Amount != nil {
		body["amount"] = *update.Amount
	}
	if update.Notes != nil {
		body["notes"] = *update.Notes
	}
	var result feeding
	if err := d.doRequest(ctx, http.MethodPatch, itemPath("feedings", update.ID), nil, body, &result); err != nil {
		return nil, err
	}
	return result.toStore(), nil
}

func (d *DB) DeleteFeeding(ctx context.Context, delete *store.DeleteFeeding) error {
	return d.doRequest(ctx, http.MethodDelete, itemPath("feedings", delete.ID), nil, nil, nil)
}
