package tools

import (
	"context"
	"fmt"

	"github.com/hrygo/nursery/server/service/babycare"
	"github.com/hrygo/nursery/store"
)

type createSleepInput struct {
	ChildName string `json:"child_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Nap       *bool  `json:"nap"`
	Notes     string `json:"notes"`
}

func (b *builtin) createSleep() Tool {
	return &funcTool[createSleepInput]{
		name:        "create_sleep",
		description: "Record a sleep that already happened, without a timer.",
		schema: object(map[string]any{
			"child_name": stringProp(childNameDescription),
			"start_time": stringProp(timeDescription + " When omitted the sleep lasts one hour."),
			"end_time":   stringProp(timeDescription),
			"nap":        boolProp("Whether this was a nap. Omit to let Baby Buddy decide from the time of day."),
			"notes":      stringProp("Free-form notes."),
		}, "child_name"),
		run: func(ctx context.Context, in *createSleepInput) (*Result, error) {
			sleep, err := b.svc.CreateSleep(ctx, in.ChildName, &babycare.SleepInput{
				Start: in.StartTime,
				End:   in.EndTime,
				Nap:   in.Nap,
				Notes: in.Notes,
			})
			if err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Recorded %s sleep for %s (%s - %s)",
				sleep.Duration, in.ChildName, b.clock(sleep.Start), b.clock(sleep.End)), newSleepView(sleep)), nil
		},
	}
}

type editSleepInput struct {
	ID        int32   `json:"id"`
	ChildName *string `json:"child_name"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Nap       *bool   `json:"nap"`
	Notes     *string `json:"notes"`
}

func (b *builtin) editSleep() Tool {
	return &funcTool[editSleepInput]{
		name:        "edit_sleep",
		description: "Change fields of an existing sleep record. Only the given fields change.",
		schema: object(map[string]any{
			"id":         integerProp("Id of the sleep record to change."),
			"child_name": stringProp("Move the record to this child."),
			"start_time": stringProp("New start. " + timeDescription),
			"end_time":   stringProp("New end. " + timeDescription),
			"nap":        boolProp("Whether this was a nap."),
			"notes":      stringProp("Free-form notes."),
		}, "id"),
		run: func(ctx context.Context, in *editSleepInput) (*Result, error) {
			if err := requireID(in.ID, "sleep"); err != nil {
				return nil, err
			}
			sleep, err := b.svc.UpdateSleep(ctx, in.ID, &babycare.UpdateSleepRequest{
				ChildName: in.ChildName,
				Start:     in.StartTime,
				End:       in.EndTime,
				Nap:       in.Nap,
				Notes:     in.Notes,
			})
			if err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Updated sleep #%d", sleep.ID), newSleepView(sleep)), nil
		},
	}
}

func (b *builtin) getSleep() Tool {
	return &funcTool[queryInput]{
		name:        "get_sleep",
		description: "List a child's sleep: today's with a total, the most recent records, or only the last one.",
		schema:      querySchema(),
		run: func(ctx context.Context, in *queryInput) (*Result, error) {
			tf, err := timeframe(in.Timeframe)
			if err != nil {
				return nil, err
			}
			records, err := b.svc.Sleep(ctx, in.ChildName, tf, in.Limit)
			if err != nil {
				return nil, err
			}
			name := records.Child.FirstName
			out := listing(
				fmt.Sprintf("Sleep for %s %s:", name, describeTimeframe(tf)),
				fmt.Sprintf("No sleep found for %s.", name),
				mapViews(records.Items, func(s *store.Sleep) string { return babycare.DescribeSleep(s, b.loc) }))
			var data any = mapViews(records.Items, newSleepView)
			if tf == babycare.TimeframeToday {
				sum := babycare.SummarizeSleep(records.Items, b.time.Now())
				if len(records.Items) > 0 {
					out += fmt.Sprintf("\nTotal: %s across %d sessions", sum.Total, sum.Count)
				}
				if sum.CurrentlyAsleep {
					out += fmt.Sprintf("\n%s is currently asleep.", name)
				}
				data = map[string]any{"entries": data, "summary": sum}
			}
			return ok(out, data), nil
		},
	}
}
