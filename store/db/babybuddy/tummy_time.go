package babybuddy

import (
	"context"
	"net/http"
	"time"

	"github.com/hrygo/nursery/store"
)

type tummyTime struct {
	ID        int32     `json:"id"`
	Child     int32     `json:"child"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Duration  string    `json:"duration"`
	Milestone string    `json:"milestone"`
	Notes     *string   `json:"notes"`
}

func (t *tummyTime) toStore() *store.TummyTime {
	return &store.TummyTime{
		ID:        t.ID,
		Child:     t.Child,
		Start:     t.Start,
		End:       t.End,
		Duration:  t.Duration,
		Milestone: t.Milestone,
		Notes:     stringValue(t.Notes),
	}
}

func (d *DB) CreateTummyTime(ctx context.Context, create *store.TummyTime) (*store.TummyTime, error) {
	body := map[string]any{
		"child": create.Child,
		"start": formatTime(create.Start),
		"end":   formatTime(create.End),
	}
	if create.Duration != "" {
		body["duration"] = create.Duration
	}
	if create.Milestone != "" {
		body["milestone"] = create.Milestone
	}
	if create.Notes != "" {
		body["notes"] = create.Notes
	}
	var result tummyTime
	if err := d.doRequest(ctx, http.MethodPost, "/tummy-times/", nil, body, &result); err != nil {
		return nil, err
	}
	return result.toStore(), nil
}

func (d *DB) ListTummyTimes(ctx context.Context, find *store.FindTummyTime) ([]*store.TummyTime, error) {
	query := childQuery(find.Child)
	query["ordering"] = "-end"
	if find.EndMin != nil {
		query["end_min"] = formatTime(*find.EndMin)
	}
	if find.EndMax != nil {
		query["end_max"] = formatTime(*find.EndMax)
	}
	items, err := list[tummyTime](ctx, d, "/tummy-times/", query, find.Limit)
	if err != nil {
		return nil, err
	}
	records := make([]*store.TummyTime, 0, len(items))
	for i := range items {
		records = append(records, items[i].toStore())
	}
	return records, nil
}
