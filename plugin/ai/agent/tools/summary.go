package tools

import (
	"context"

	"github.com/hrygo/nursery/server/service/babycare"
)

type childSummaryInput struct {
	ChildName string `json:"child_name"`
}

type summaryView struct {
	Child        *childView                `json:"child"`
	Feedings     babycare.FeedingSummary   `json:"feedings"`
	Sleep        babycare.SleepSummary     `json:"sleep"`
	Diapers      babycare.DiaperSummary    `json:"diapers"`
	TummyTime    babycare.TummyTimeSummary `json:"tummy_time"`
	LastFeeding  *feedingView              `json:"last_feeding,omitempty"`
	LastSleep    *sleepView                `json:"last_sleep,omitempty"`
	LastDiaper   *diaperView               `json:"last_diaper,omitempty"`
	LastTummy    *tummyTimeView            `json:"last_tummy_time,omitempty"`
	ActiveTimers []*timerView              `json:"active_timers"`
}

func newSummaryView(o *babycare.Overview) *summaryView {
	v := &summaryView{
		Child:        newChildView(o.Child),
		Feedings:     o.Feedings,
		Sleep:        o.Sleep,
		Diapers:      o.Diapers,
		TummyTime:    o.TummyTime,
		ActiveTimers: mapViews(o.ActiveTimers, newTimerView),
	}
	if o.LastFeeding != nil {
		v.LastFeeding = newFeedingView(o.LastFeeding)
	}
	if o.LastSleep != nil {
		v.LastSleep = newSleepView(o.LastSleep)
	}
	if o.LastDiaper != nil {
		v.LastDiaper = newDiaperView(o.LastDiaper)
	}
	if o.LastTummyTime != nil {
		v.LastTummy = newTummyTimeView(o.LastTummyTime)
	}
	return v
}

func (b *builtin) childSummary() Tool {
	return &funcTool[childSummaryInput]{
		name:        "child_summary",
		description: "Summarize a child's day: today's totals, the latest record of each kind and running timers.",
		schema:      object(map[string]any{"child_name": stringProp(childNameDescription)}, "child_name"),
		run: func(ctx context.Context, in *childSummaryInput) (*Result, error) {
			o, err := b.svc.Overview(ctx, in.ChildName)
			if err != nil {
				return nil, err
			}
			return ok(o.Markdown(), newSummaryView(o)), nil
		},
	}
}
