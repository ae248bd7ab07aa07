package tools

import (
	"time"

	"github.com/hrygo/nursery/server/service/babycare"
	"github.com/hrygo/nursery/store"
)

// Views are the JSON shapes returned in Result.Data.

type childView struct {
	ID        int32  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type timerView struct {
	ID          int32      `json:"id,omitempty"`
	Placeholder bool       `json:"placeholder,omitempty"`
	Child       int32      `json:"child"`
	ChildName   string     `json:"child_name,omitempty"`
	Name        string     `json:"name"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	Active      bool       `json:"active"`
}

type feedingView struct {
	ID       int32     `json:"id"`
	Child    int32     `json:"child"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`
	Type     string    `json:"type"`
	Method   string    `json:"method"`
	Amount   *float64  `json:"amount"`
	Notes    string    `json:"notes,omitempty"`
}

type sleepView struct {
	ID       int32     `json:"id"`
	Child    int32     `json:"child"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`
	Nap      *bool     `json:"nap,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

type diaperView struct {
	ID     int32     `json:"id"`
	Child  int32     `json:"child"`
	Time   time.Time `json:"time"`
	Wet    bool      `json:"wet"`
	Solid  bool      `json:"solid"`
	Color  string    `json:"color,omitempty"`
	Amount *float64  `json:"amount"`
	Notes  string    `json:"notes,omitempty"`
}

type tummyTimeView struct {
	ID        int32     `json:"id"`
	Child     int32     `json:"child"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Duration  string    `json:"duration"`
	Milestone string    `json:"milestone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

func newChildView(c *store.Child) *childView {
	return &childView{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName}
}

func newTimerView(t *babycare.Timer) *timerView {
	id, _ := t.Ref.ID()
	return &timerView{
		ID:          id,
		Placeholder: t.Ref.IsPlaceholder(),
		Child:       t.Child,
		ChildName:   t.ChildName,
		Name:        t.Name,
		Start:       t.Start,
		End:         t.End,
		Active:      t.Active,
	}
}

func newFeedingView(f *store.Feeding) *feedingView {
	return &feedingView{ID: f.ID, Child: f.Child, Start: f.Start, End: f.End, Duration: f.Duration,
		Type: f.Type, Method: f.Method, Amount: f.Amount, Notes: f.Notes}
}

func newSleepView(s *store.Sleep) *sleepView {
	return &sleepView{ID: s.ID, Child: s.Child, Start: s.Start, End: s.End, Duration: s.Duration,
		Nap: s.Nap, Notes: s.Notes}
}

func newDiaperView(d *store.Diaper) *diaperView {
	return &diaperView{ID: d.ID, Child: d.Child, Time: d.Time, Wet: d.Wet, Solid: d.Solid,
		Color: d.Color, Amount: d.Amount, Notes: d.Notes}
}

func newTummyTimeView(t *store.TummyTime) *tummyTimeView {
	return &tummyTimeView{ID: t.ID, Child: t.Child, Start: t.Start, End: t.End, Duration: t.Duration,
		Milestone: t.Milestone, Notes: t.Notes}
}

func mapViews[T, V any](items []T, view func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, view(item))
	}
	return out
}
