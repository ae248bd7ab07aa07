package tools

import (
	"context"
	"fmt"

	"github.com/hrygo/nursery/server/service/babycare"
	"github.com/hrygo/nursery/store"
)

type createTummyTimeInput struct {
	ChildName string `json:"child_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Milestone string `json:"milestone"`
	Notes     string `json:"notes"`
}

func (b *builtin) createTummyTime() Tool {
	return &funcTool[createTummyTimeInput]{
		name:        "create_tummy_time",
		description: "Record a tummy time session that already happened, without a timer.",
		schema: object(map[string]any{
			"child_name": stringProp(childNameDescription),
			"start_time": stringProp(timeDescription + " When omitted the session lasts 15 minutes."),
			"end_time":   stringProp(timeDescription),
			"milestone":  stringProp("Milestone reached during the session, e.g. rolled over."),
			"notes":      stringProp("Free-form notes."),
		}, "child_name"),
		run: func(ctx context.Context, in *createTummyTimeInput) (*Result, error) {
			tummy, err := b.svc.CreateTummyTime(ctx, in.ChildName, &babycare.TummyTimeInput{
				Start:     in.StartTime,
				End:       in.EndTime,
				Milestone: in.Milestone,
				Notes:     in.Notes,
			})
			if err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Recorded %s of tummy time for %s", tummy.Duration, in.ChildName), newTummyTimeView(tummy)), nil
		},
	}
}

func (b *builtin) getTummyTime() Tool {
	return &funcTool[queryInput]{
		name:        "get_tummy_time",
		description: "List a child's tummy time: today's with a total, the most recent sessions, or only the last one.",
		schema:      querySchema(),
		run: func(ctx context.Context, in *queryInput) (*Result, error) {
			tf, err := timeframe(in.Timeframe)
			if err != nil {
				return nil, err
			}
			records, err := b.svc.TummyTimes(ctx, in.ChildName, tf, in.Limit)
			if err != nil {
				return nil, err
			}
			name := records.Child.FirstName
			out := listing(
				fmt.Sprintf("Tummy time for %s %s:", name, describeTimeframe(tf)),
				fmt.Sprintf("No tummy time found for %s.", name),
				mapViews(records.Items, func(t *store.TummyTime) string { return babycare.DescribeTummyTime(t, b.loc) }))
			var data any = mapViews(records.Items, newTummyTimeView)
			if tf == babycare.TimeframeToday {
				sum := babycare.SummarizeTummyTimes(records.Items)
				if sum.Count > 0 {
					out += fmt.Sprintf("\nTotal: %s across %d sessions", sum.Total, sum.Count)
				}
				data = map[string]any{"entries": data, "summary": sum}
			}
			return ok(out, data), nil
		},
	}
}
