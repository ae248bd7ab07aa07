package babycare

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hrygo/nursery/plugin/ai/aitime"
	"github.com/hrygo/nursery/server/timezone"
	"github.com/hrygo/nursery/store"
)

type FeedingSummary struct {
	Count        int     `json:"count"`
	TotalAmount  float64 `json:"total_amount"`
	TotalMinutes int     `json:"total_minutes"`
}

type SleepSummary struct {
	Count           int    `json:"count"`
	TotalMinutes    int    `json:"total_minutes"`
	Total           string `json:"total"`
	CurrentlyAsleep bool   `json:"currently_asleep"`
}

type DiaperSummary struct {
	Count       int     `json:"count"`
	WetCount    int     `json:"wet_count"`
	SolidCount  int     `json:"solid_count"`
	TotalAmount float64 `json:"total_amount"`
}

type TummyTimeSummary struct {
	Count        int    `json:"count"`
	TotalMinutes int    `json:"total_minutes"`
	Total        string `json:"total"`
}

// spanMinutes prefers the stored duration and falls back to end-start.
func spanMinutes(duration string, start, end time.Time) int {
	if d, err := aitime.ParseDuration(duration); err == nil {
		return int(d / time.Minute)
	}
	if end.After(start) {
		return int(end.Sub(start) / time.Minute)
	}
	return 0
}

func SummarizeFeedings(items []*store.Feeding) FeedingSummary {
	var sum FeedingSummary
	for _, f := range items {
		sum.Count++
		sum.TotalMinutes += spanMinutes(f.Duration, f.Start, f.End)
		if f.Amount != nil {
			sum.TotalAmount += *f.Amount
		}
	}
	return sum
}

// SummarizeSleep totals sleep; a record ending after now means the child is still asleep.
func SummarizeSleep(items []*store.Sleep, now time.Time) SleepSummary {
	var sum SleepSummary
	for _, s := range items {
		sum.Count++
		sum.TotalMinutes += spanMinutes(s.Duration, s.Start, s.End)
		if s.End.After(now) {
			sum.CurrentlyAsleep = true
		}
	}
	sum.Total = aitime.FormatMinutes(sum.TotalMinutes)
	return sum
}

func SummarizeDiapers(items []*store.Diaper) DiaperSummary {
	var sum DiaperSummary
	for _, d := range items {
		sum.Count++
		if d.Wet {
			sum.WetCount++
		}
		if d.Solid {
			sum.SolidCount++
		}
		if d.Amount != nil {
			sum.TotalAmount += *d.Amount
		}
	}
	return sum
}

func SummarizeTummyTimes(items []*store.TummyTime) TummyTimeSummary {
	var sum TummyTimeSummary
	for _, t := range items {
		sum.Count++
		sum.TotalMinutes += spanMinutes(t.Duration, t.Start, t.End)
	}
	sum.Total = aitime.FormatMinutes(sum.TotalMinutes)
	return sum
}

// Overview is a child's latest activity and today's totals.
type Overview struct {
	Child       *store.Child
	GeneratedAt time.Time
	Location    *time.Location

	LastFeeding   *store.Feeding
	LastSleep     *store.Sleep
	LastDiaper    *store.Diaper
	LastTummyTime *store.TummyTime

	Feedings  FeedingSummary
	Sleep     SleepSummary
	Diapers   DiaperSummary
	TummyTime TummyTimeSummary

	ActiveTimers []*Timer
}

func first[T any](items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[0]
}

func (s *service) Overview(ctx context.Context, name string) (*Overview, error) {
	child, err := s.FindChild(ctx, name)
	if err != nil {
		return nil, err
	}
	id := int32Ptr(child.ID)
	now := s.now()
	from, to := s.startOfToday(), s.endOfToday()
	o := &Overview{Child: child, GeneratedAt: now, Location: s.time.Location()}

	feedings, err := s.store.ListFeedings(ctx, &store.FindFeeding{Child: id, StartMin: &from})
	if err != nil {
		return nil, fromStore("fetch feedings", err)
	}
	o.Feedings = SummarizeFeedings(feedings)
	if o.LastFeeding = first(feedings); o.LastFeeding == nil {
		last, err := s.store.ListFeedings(ctx, &store.FindFeeding{Child: id, Limit: 1})
		if err != nil {
			return nil, fromStore("fetch feedings", err)
		}
		o.LastFeeding = first(last)
	}

	sleep, err := s.store.ListSleep(ctx, &store.FindSleep{Child: id, EndMin: &from})
	if err != nil {
		return nil, fromStore("fetch sleep", err)
	}
	o.Sleep = SummarizeSleep(sleep, now)
	if o.LastSleep = first(sleep); o.LastSleep == nil {
		last, err := s.store.ListSleep(ctx, &store.FindSleep{Child: id, Limit: 1})
		if err != nil {
			return nil, fromStore("fetch sleep", err)
		}
		o.LastSleep = first(last)
	}

	diapers, err := s.store.ListDiapers(ctx, &store.FindDiaper{Child: id, TimeMin: &from})
	if err != nil {
		return nil, fromStore("fetch diaper changes", err)
	}
	o.Diapers = SummarizeDiapers(diapers)
	if o.LastDiaper = first(diapers); o.LastDiaper == nil {
		last, err := s.store.ListDiapers(ctx, &store.FindDiaper{Child: id, Limit: 1})
		if err != nil {
			return nil, fromStore("fetch diaper changes", err)
		}
		o.LastDiaper = first(last)
	}

	tummy, err := s.store.ListTummyTimes(ctx, &store.FindTummyTime{Child: id, EndMin: &from, EndMax: &to})
	if err != nil {
		return nil, fromStore("fetch tummy time", err)
	}
	o.TummyTime = SummarizeTummyTimes(tummy)
	if o.LastTummyTime = first(tummy); o.LastTummyTime == nil {
		last, err := s.store.ListTummyTimes(ctx, &store.FindTummyTime{Child: id, Limit: 1})
		if err != nil {
			return nil, fromStore("fetch tummy time", err)
		}
		o.LastTummyTime = first(last)
	}

	timers, err := s.store.ListActiveTimers(ctx)
	if err != nil {
		return nil, fromStore("list timers", err)
	}
	for _, t := range timers {
		if t.Child == child.ID {
			timer := timerFromStore(t, nil)
			timer.ChildName = child.FullName()
			o.ActiveTimers = append(o.ActiveTimers, timer)
		}
	}
	sortNewestFirst(o.ActiveTimers)
	return o, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func DescribeFeeding(f *store.Feeding, loc *time.Location) string {
	parts := []string{timezone.FormatSpan(f.Start, &f.End, loc), f.Type, f.Method}
	if f.Amount != nil {
		parts = append(parts, "amount "+formatAmount(*f.Amount))
	}
	return strings.Join(parts, ", ")
}

func DescribeSleep(s *store.Sleep, loc *time.Location) string {
	text := timezone.FormatSpan(s.Start, &s.End, loc)
	if s.Duration != "" {
		text += " (" + s.Duration + ")"
	}
	if s.Nap != nil && *s.Nap {
		text += ", nap"
	}
	return text
}

func DescribeDiaper(d *store.Diaper, loc *time.Location) string {
	var contents []string
	if d.Wet {
		contents = append(contents, "wet")
	}
	if d.Solid {
		contents = append(contents, "solid")
	}
	parts := []string{timezone.FormatSpan(d.Time, nil, loc), strings.Join(contents, " and ")}
	if d.Color != "" {
		parts = append(parts, d.Color)
	}
	if d.Amount != nil {
		parts = append(parts, "amount "+formatAmount(*d.Amount))
	}
	return strings.Join(parts, ", ")
}

func DescribeTummyTime(t *store.TummyTime, loc *time.Location) string {
	text := timezone.FormatSpan(t.Start, &t.End, loc)
	if t.Duration != "" {
		text += " (" + t.Duration + ")"
	}
	if t.Milestone != "" {
		text += ", " + t.Milestone
	}
	return text
}

// Markdown renders the overview for chat replies and the summary endpoint.
func (o *Overview) Markdown() string {
	loc := o.Location
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", o.Child.FullName())
	fmt.Fprintf(&b, "_As of %s_\n\n", o.GeneratedAt.In(loc).Format("2006-01-02 15:04"))

	b.WriteString("### Today\n\n")
	fmt.Fprintf(&b, "- **Feedings:** %d", o.Feedings.Count)
	if o.Feedings.TotalAmount > 0 {
		fmt.Fprintf(&b, " (total amount %s)", formatAmount(o.Feedings.TotalAmount))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **Sleep:** %s across %d sessions", o.Sleep.Total, o.Sleep.Count)
	if o.Sleep.CurrentlyAsleep {
		b.WriteString(" (currently asleep)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **Diapers:** %d (%d wet, %d solid)", o.Diapers.Count, o.Diapers.WetCount, o.Diapers.SolidCount)
	if o.Diapers.TotalAmount > 0 {
		fmt.Fprintf(&b, ", total amount %s", formatAmount(o.Diapers.TotalAmount))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **Tummy time:** %s across %d sessions\n\n", o.TummyTime.Total, o.TummyTime.Count)

	b.WriteString("### Latest\n\n")
	latest := func(label, text string) {
		if text == "" {
			text = "none recorded"
		}
		fmt.Fprintf(&b, "- **%s:** %s\n", label, text)
	}
	var text string
	if o.LastFeeding != nil {
		text = DescribeFeeding(o.LastFeeding, loc)
	}
	latest("Feeding", text)
	text = ""
	if o.LastSleep != nil {
		text = DescribeSleep(o.LastSleep, loc)
	}
	latest("Sleep", text)
	text = ""
	if o.LastDiaper != nil {
		text = DescribeDiaper(o.LastDiaper, loc)
	}
	latest("Diaper", text)
	text = ""
	if o.LastTummyTime != nil {
		text = DescribeTummyTime(o.LastTummyTime, loc)
	}
	latest("Tummy time", text)

	if len(o.ActiveTimers) > 0 {
		b.WriteString("\n### Active timers\n\n")
		for _, t := range o.ActiveTimers {
			name := t.Name
			if name == "" {
				name = "Timer"
			}
			id, _ := t.Ref.ID()
			fmt.Fprintf(&b, "- %s #%d (started %s)\n", name, id, t.Start.In(loc).Format("15:04"))
		}
	}
	return b.String()
}

// ActivityEntry is one record in a merged activity stream.
type ActivityEntry struct {
	Kind    string    `json:"kind"`
	ID      int32     `json:"id"`
	Time    time.Time `json:"time"`
	Title   string    `json:"title"`
	Details string    `json:"details"`
}

func (s *service) RecentActivity(ctx context.Context, name string, limit int) (*store.Child, []*ActivityEntry, error) {
	child, err := s.FindChild(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	limit = recentLimit(TimeframeRecent, limit)
	id := int32Ptr(child.ID)
	loc := s.time.Location()
	var entries []*ActivityEntry

	feedings, err := s.store.ListFeedings(ctx, &store.FindFeeding{Child: id, Limit: limit})
	if err != nil {
		return nil, nil, fromStore("fetch feedings", err)
	}
	for _, f := range feedings {
		entries = append(entries, &ActivityEntry{Kind: ActivityFeeding, ID: f.ID, Time: f.End, Title: "Feeding", Details: DescribeFeeding(f, loc)})
	}
	sleep, err := s.store.ListSleep(ctx, &store.FindSleep{Child: id, Limit: limit})
	if err != nil {
		return nil, nil, fromStore("fetch sleep", err)
	}
	for _, r := range sleep {
		entries = append(entries, &ActivityEntry{Kind: ActivitySleep, ID: r.ID, Time: r.End, Title: "Sleep", Details: DescribeSleep(r, loc)})
	}
	diapers, err := s.store.ListDiapers(ctx, &store.FindDiaper{Child: id, Limit: limit})
	if err != nil {
		return nil, nil, fromStore("fetch diaper changes", err)
	}
	for _, d := range diapers {
		entries = append(entries, &ActivityEntry{Kind: ActivityDiaper, ID: d.ID, Time: d.Time, Title: "Diaper change", Details: DescribeDiaper(d, loc)})
	}
	tummy, err := s.store.ListTummyTimes(ctx, &store.FindTummyTime{Child: id, Limit: limit})
	if err != nil {
		return nil, nil, fromStore("fetch tummy time", err)
	}
	for _, t := range tummy {
		entries = append(entries, &ActivityEntry{Kind: ActivityTummyTime, ID: t.ID, Time: t.End, Title: "Tummy time", Details: DescribeTummyTime(t, loc)})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Time.After(entries[j].Time) })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return child, entries, nil
}
