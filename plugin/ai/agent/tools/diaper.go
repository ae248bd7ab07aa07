package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/nursery/server/service/babycare"
	"github.com/hrygo/nursery/store"
)

type createDiaperInput struct {
	ChildName string `json:"child_name"`
	Time      string `json:"time"`
	Contents  string `json:"contents"`
	Wet       *bool  `json:"wet"`
	Solid     *bool  `json:"solid"`
	Color     string `json:"color"`
	Amount    text   `json:"amount"`
	Notes     string `json:"notes"`
}

func diaperProperties() map[string]any {
	return map[string]any{
		"contents": stringProp("What was in the diaper: wet, solid or both (pee, poop, dirty and mixed are understood). Defaults to wet."),
		"wet":      boolProp("Explicit wet flag; wins over contents."),
		"solid":    boolProp("Explicit solid flag; wins over contents."),
		"color":    enumProp("Color of solid contents.", babycare.DiaperColors...),
		"amount":   amountProp("Amount, e.g. 2."),
		"notes":    stringProp("Free-form notes."),
	}
}

func contentsText(d *store.Diaper) string {
	switch {
	case d.Wet && d.Solid:
		return "wet and solid"
	case d.Solid:
		return "solid"
	default:
		return "wet"
	}
}

func (b *builtin) createDiaper() Tool {
	props := diaperProperties()
	props["child_name"] = stringProp(childNameDescription)
	props["time"] = stringProp(timeDescription)
	return &funcTool[createDiaperInput]{
		name: "create_diaper",
		description: strings.Join([]string{
			"Record a diaper change.",
			"If asked to log a change with two different amount values, call this tool once per amount:",
			`"log a wet 1 and solid 2" creates two diaper changes, a wet one with amount 1 and a solid one with amount 2.`,
		}, " "),
		schema: object(props, "child_name"),
		run: func(ctx context.Context, in *createDiaperInput) (*Result, error) {
			diaper, err := b.svc.CreateDiaper(ctx, in.ChildName, &babycare.DiaperInput{
				Time:     in.Time,
				Contents: in.Contents,
				Wet:      in.Wet,
				Solid:    in.Solid,
				Color:    in.Color,
				Amount:   string(in.Amount),
				Notes:    in.Notes,
			})
			if err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Recorded %s diaper for %s at %s",
				contentsText(diaper), in.ChildName, b.clock(diaper.Time)), newDiaperView(diaper)), nil
		},
	}
}

type editDiaperInput struct {
	ID        int32   `json:"id"`
	ChildName *string `json:"child_name"`
	Time      *string `json:"time"`
	Contents  *string `json:"contents"`
	Wet       *bool   `json:"wet"`
	Solid     *bool   `json:"solid"`
	Color     *string `json:"color"`
	Amount    *text   `json:"amount"`
	Notes     *string `json:"notes"`
}

func (b *builtin) editDiaper() Tool {
	props := diaperProperties()
	props["id"] = integerProp("Id of the diaper change to edit.")
	props["child_name"] = stringProp("Move the change to this child.")
	props["time"] = stringProp("New time. " + timeDescription)
	props["amount"] = amountProp("New amount; an empty string clears it.")
	return &funcTool[editDiaperInput]{
		name:        "edit_diaper",
		description: "Change fields of an existing diaper change. Only the given fields change.",
		schema:      object(props, "id"),
		run: func(ctx context.Context, in *editDiaperInput) (*Result, error) {
			if err := requireID(in.ID, "diaper change"); err != nil {
				return nil, err
			}
			diaper, err := b.svc.UpdateDiaper(ctx, in.ID, &babycare.UpdateDiaperRequest{
				ChildName: in.ChildName,
				Time:      in.Time,
				Contents:  in.Contents,
				Wet:       in.Wet,
				Solid:     in.Solid,
				Color:     in.Color,
				Amount:    in.Amount.ptr(),
				Notes:     in.Notes,
			})
			if err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Updated diaper change #%d", diaper.ID), newDiaperView(diaper)), nil
		},
	}
}

func (b *builtin) getDiapers() Tool {
	return &funcTool[queryInput]{
		name:        "get_diapers",
		description: "List a child's diaper changes: today's with wet and solid counts, the most recent ones, or only the last one.",
		schema:      querySchema(),
		run: func(ctx context.Context, in *queryInput) (*Result, error) {
			tf, err := timeframe(in.Timeframe)
			if err != nil {
				return nil, err
			}
			records, err := b.svc.Diapers(ctx, in.ChildName, tf, in.Limit)
			if err != nil {
				return nil, err
			}
			name := records.Child.FirstName
			out := listing(
				fmt.Sprintf("Diaper changes for %s %s:", name, describeTimeframe(tf)),
				fmt.Sprintf("No diaper changes found for %s.", name),
				mapViews(records.Items, func(d *store.Diaper) string { return babycare.DescribeDiaper(d, b.loc) }))
			var data any = mapViews(records.Items, newDiaperView)
			if tf == babycare.TimeframeToday {
				sum := babycare.SummarizeDiapers(records.Items)
				if sum.Count > 0 {
					out += fmt.Sprintf("\nTotal: %d changes (%d wet, %d solid)", sum.Count, sum.WetCount, sum.SolidCount)
				}
				data = map[string]any{"entries": data, "summary": sum}
			}
			return ok(out, data), nil
		},
	}
}
