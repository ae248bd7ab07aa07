package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hrygo/nursery/internal/profile"
	"github.com/hrygo/nursery/store"
)

// MemoryDriver is an in-memory store.Driver for tests.
// Errors set in Fail are returned by the named method (e.g. "DeleteTimer") before any mutation.
type MemoryDriver struct {
	mu sync.Mutex

	Children   []*store.Child
	Timers     []*store.Timer
	Feedings   []*store.Feeding
	Sleep      []*store.Sleep
	Diapers    []*store.Diaper
	TummyTimes []*store.TummyTime

	Fail  map[string]error
	Calls []string

	nextID int32
}

// NewMemoryDriver returns an empty driver whose generated ids start at firstID.
func NewMemoryDriver(firstID int32, children ...*store.Child) *MemoryDriver {
	return &MemoryDriver{
		Children: children,
		Fail:     map[string]error{},
		nextID:   firstID,
	}
}

// NewTestStore wraps a MemoryDriver in a Store.
func NewTestStore(driver *MemoryDriver) *store.Store {
	return store.New(driver, &profile.Profile{Mode: "dev"})
}

// CallCount returns how many times method was invoked.
func (d *MemoryDriver) CallCount(method string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.Calls {
		if c == method {
			n++
		}
	}
	return n
}

// SetFail arranges for method to return err until cleared with a nil error.
func (d *MemoryDriver) SetFail(method string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		delete(d.Fail, method)
		return
	}
	d.Fail[method] = err
}

func (d *MemoryDriver) enter(method string) error {
	d.Calls = append(d.Calls, method)
	return d.Fail[method]
}

func (d *MemoryDriver) id() int32 {
	id := d.nextID
	d.nextID++
	return id
}

func (d *MemoryDriver) Close() error {
	return nil
}

func (d *MemoryDriver) ListChildren(_ context.Context) ([]*store.Child, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ListChildren"); err != nil {
		return nil, err
	}
	out := make([]*store.Child, 0, len(d.Children))
	for _, c := range d.Children {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func matchChild(filter *int32, child int32) bool {
	return filter == nil || *filter == child
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func (d *MemoryDriver) ListTimers(_ context.Context, find *store.FindTimer) ([]*store.Timer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ListTimers"); err != nil {
		return nil, err
	}
	var out []*store.Timer
	for _, t := range d.Timers {
		if !matchChild(find.Child, t.Child) {
			continue
		}
		if find.Active != nil && *find.Active != t.Active {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (d *MemoryDriver) CreateTimer(_ context.Context, create *store.Timer) (*store.Timer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateTimer"); err != nil {
		return nil, err
	}
	t := *create
	t.ID = d.id()
	t.Active = t.End == nil
	d.Timers = append(d.Timers, &t)
	cp := t
	return &cp, nil
}

func (d *MemoryDriver) UpdateTimer(_ context.Context, update *store.UpdateTimer) (*store.Timer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("UpdateTimer"); err != nil {
		return nil, err
	}
	for _, t := range d.Timers {
		if t.ID != update.ID {
			continue
		}
		if update.Child != nil {
			t.Child = *update.Child
		}
		if update.Name != nil {
			t.Name = *update.Name
		}
		if update.Start != nil {
			t.Start = *update.Start
		}
		if update.End != nil {
			end := *update.End
			t.End = &end
		}
		if update.Active != nil {
			t.Active = *update.Active
		}
		cp := *t
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (d *MemoryDriver) DeleteTimer(_ context.Context, delete *store.DeleteTimer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DeleteTimer"); err != nil {
		return err
	}
	for i, t := range d.Timers {
		if t.ID == delete.ID {
			d.Timers = append(d.Timers[:i], d.Timers[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (d *MemoryDriver) CreateFeeding(_ context.Context, create *store.Feeding) (*store.Feeding, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateFeeding"); err != nil {
		return nil, err
	}
	f := *create
	f.ID = d.id()
	d.Feedings = append(d.Feedings, &f)
	cp := f
	return &cp, nil
}

func (d *MemoryDriver) ListFeedings(_ context.Context, find *store.FindFeeding) ([]*store.Feeding, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ListFeedings"); err != nil {
		return nil, err
	}
	var out []*store.Feeding
	for _, f := range d.Feedings {
		if !matchChild(find.Child, f.Child) {
			continue
		}
		if find.StartMin != nil && f.Start.Before(*find.StartMin) {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return limit(out, find.Limit), nil
}

func (d *MemoryDriver) UpdateFeeding(_ context.Context, update *store.UpdateFeeding) (*store.Feeding, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("UpdateFeeding"); err != nil {
		return nil, err
	}
	for _, f := range d.Feedings {
		if f.ID != update.ID {
			continue
		}
		if update.Child != nil {
			f.Child = *update.Child
		}
		if update.Start != nil {
			f.Start = *update.Start
		}
		if update.End != nil {
			f.End = *update.End
		}
		if update.Duration != nil {
			f.Duration = *update.Duration
		}
		if update.Type != nil {
			f.Type = *update.Type
		}
		if update.Method != nil {
			f.Method = *update.Method
		}
		if update.ClearAmount {
			f.Amount = nil
		} else if update.Amount != nil {
			amount := *update.Amount
			f.Amount = &amount
		}
		if update.Notes != nil {
			f.Notes = *update.Notes
		}
		cp := *f
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (d *MemoryDriver) DeleteFeeding(_ context.Context, delete *store.DeleteFeeding) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DeleteFeeding"); err != nil {
		return err
	}
	for i, f := range d.Feedings {
		if f.ID == delete.ID {
			d.Feedings = append(d.Feedings[:i], d.Feedings[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (d *MemoryDriver) CreateSleep(_ context.Context, create *store.Sleep) (*store.Sleep, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateSleep"); err != nil {
		return nil, err
	}
	s := *create
	s.ID = d.id()
	d.Sleep = append(d.Sleep, &s)
	cp := s
	return &cp, nil
}

func (d *MemoryDriver) ListSleep(_ context.Context, find *store.FindSleep) ([]*store.Sleep, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ListSleep"); err != nil {
		return nil, err
	}
	var out []*store.Sleep
	for _, s := range d.Sleep {
		if !matchChild(find.Child, s.Child) {
			continue
		}
		if find.EndMin != nil && s.End.Before(*find.EndMin) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].End.After(out[j].End) })
	return limit(out, find.Limit), nil
}

func (d *MemoryDriver) UpdateSleep(_ context.Context, update *store.UpdateSleep) (*store.Sleep, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("UpdateSleep"); err != nil {
		return nil, err
	}
	for _, s := range d.Sleep {
		if s.ID != update.ID {
			continue
		}
		if update.Child != nil {
			s.Child = *update.Child
		}
		if update.Start != nil {
			s.Start = *update.Start
		}
		if update.End != nil {
			s.End = *update.End
		}
		if update.Duration != nil {
			s.Duration = *update.Duration
		}
		if update.Nap != nil {
			nap := *update.Nap
			s.Nap = &nap
		}
		if update.Notes != nil {
			s.Notes = *update.Notes
		}
		cp := *s
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (d *MemoryDriver) CreateDiaper(_ context.Context, create *store.Diaper) (*store.Diaper, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateDiaper"); err != nil {
		return nil, err
	}
	c := *create
	c.ID = d.id()
	d.Diapers = append(d.Diapers, &c)
	cp := c
	return &cp, nil
}

func (d *MemoryDriver) ListDiapers(_ context.Context, find *store.FindDiaper) ([]*store.Diaper, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ListDiapers"); err != nil {
		return nil, err
	}
	var out []*store.Diaper
	for _, c := range d.Diapers {
		if !matchChild(find.Child, c.Child) {
			continue
		}
		if find.TimeMin != nil && c.Time.Before(*find.TimeMin) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return limit(out, find.Limit), nil
}

func (d *MemoryDriver) UpdateDiaper(_ context.Context, update *store.UpdateDiaper) (*store.Diaper, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("UpdateDiaper"); err != nil {
		return nil, err
	}
	for _, c := range d.Diapers {
		if c.ID != update.ID {
			continue
		}
		if update.Child != nil {
			c.Child = *update.Child
		}
		if update.Time != nil {
			c.Time = *update.Time
		}
		if update.Wet != nil {
			c.Wet = *update.Wet
		}
		if update.Solid != nil {
			c.Solid = *update.Solid
		}
		if update.Color != nil {
			c.Color = *update.Color
		}
		if update.ClearAmount {
			c.Amount = nil
		} else if update.Amount != nil {
			amount := *update.Amount
			c.Amount = &amount
		}
		if update.Notes != nil {
			c.Notes = *update.Notes
		}
		cp := *c
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (d *MemoryDriver) CreateTummyTime(_ context.Context, create *store.TummyTime) (*store.TummyTime, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateTummyTime"); err != nil {
		return nil, err
	}
	t := *create
	t.ID = d.id()
	d.TummyTimes = append(d.TummyTimes, &t)
	cp := t
	return &cp, nil
}

func (d *MemoryDriver) ListTummyTimes(_ context.Context, find *store.FindTummyTime) ([]*store.TummyTime, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("ListTummyTimes"); err != nil {
		return nil, err
	}
	var out []*store.TummyTime
	for _, t := range d.TummyTimes {
		if !matchChild(find.Child, t.Child) {
			continue
		}
		if find.EndMin != nil && t.End.Before(*find.EndMin) {
			continue
		}
		if find.EndMax != nil && t.End.After(*find.EndMax) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].End.After(out[j].End) })
	return limit(out, find.Limit), nil
}

// MutationCount counts every create, update and delete call, failed or not.
func (d *MemoryDriver) MutationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.Calls {
		if len(c) > 6 && (c[:6] == "Create" || c[:6] == "Update" || c[:6] == "Delete") {
			n++
		}
	}
	return n
}

// Clock is a settable time source for tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
