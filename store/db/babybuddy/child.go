package babybuddy

import (
	"context"

	"github.com/hrygo/nursery/store"
)

type child struct {
	ID        int32   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	BirthDate string  `json:"birth_date"`
	Slug      string  `json:"slug"`
}

func (d *DB) ListChildren(ctx context.Context) ([]*store.Child, error) {
	items, err := list[child](ctx, d, "/children/", map[string]string{}, 0)
	if err != nil {
		return nil, err
	}
	children := make([]*store.Child, 0, len(items))
	for _, c := range items {
		children = append(children, &store.Child{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  stringValue(c.LastName),
			BirthDate: c.BirthDate,
			Slug:      c.Slug,
		})
	}
	return children, nil
}
