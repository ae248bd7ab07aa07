package tools

import (
	"context"
	"fmt"

	"github.com/hrygo/nursery/server/service/babycare"
	"github.com/hrygo/nursery/store"
)

type createFeedingInput struct {
	ChildName string `json:"child_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Type      string `json:"type"`
	Method    string `json:"method"`
	Amount    text   `json:"amount"`
	Notes     string `json:"notes"`
}

func feedingProperties() map[string]any {
	return map[string]any{
		"type":   stringProp("breast milk, formula, fortified breast milk or solid food. Defaults to breast milk."),
		"method": stringProp("bottle, left breast, right breast, both breasts, parent fed or self fed. Defaults to bottle."),
		"amount": amountProp("Amount fed, e.g. 4 or \"4 oz\". Only the number is kept."),
		"notes":  stringProp("Free-form notes."),
	}
}

func (b *builtin) createFeeding() Tool {
	props := feedingProperties()
	props["child_name"] = stringProp(childNameDescription)
	props["start_time"] = stringProp(timeDescription + " When omitted the feeding ends at end_time and lasts one second.")
	props["end_time"] = stringProp(timeDescription)
	return &funcTool[createFeedingInput]{
		name:        "create_feeding",
		description: "Record a feeding that already happened, without a timer.",
		schema:      object(props, "child_name"),
		run: func(ctx context.Context, in *createFeedingInput) (*Result, error) {
			feeding, err := b.svc.CreateFeeding(ctx, in.ChildName, &babycare.FeedingInput{
				Start:  in.StartTime,
				End:    in.EndTime,
				Type:   in.Type,
				Method: in.Method,
				Amount: string(in.Amount),
				Notes:  in.Notes,
			})
			if err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Recorded %s feeding (%s) for %s at %s",
				feeding.Type, feeding.Method, in.ChildName, b.clock(feeding.End)), newFeedingView(feeding)), nil
		},
	}
}

type editFeedingInput struct {
	ID        int32   `json:"id"`
	ChildName *string `json:"child_name"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Type      *string `json:"type"`
	Method    *string `json:"method"`
	Amount    *text   `json:"amount"`
	Notes     *string `json:"notes"`
}

func (b *builtin) editFeeding() Tool {
	props := feedingProperties()
	props["id"] = integerProp("Id of the feeding to change.")
	props["child_name"] = stringProp("Move the feeding to this child.")
	props["start_time"] = stringProp("New start. " + timeDescription)
	props["end_time"] = stringProp("New end. " + timeDescription)
	props["amount"] = amountProp("New amount; an empty string clears it.")
	return &funcTool[editFeedingInput]{
		name:        "edit_feeding",
		description: "Change fields of an existing feeding. Only the given fields change; the duration is recomputed when both start and end are given.",
		schema:      object(props, "id"),
		run: func(ctx context.Context, in *editFeedingInput) (*Result, error) {
			if err := requireID(in.ID, "feeding"); err != nil {
				return nil, err
			}
			feeding, err := b.svc.UpdateFeeding(ctx, in.ID, &babycare.UpdateFeedingRequest{
				ChildName: in.ChildName,
				Start:     in.StartTime,
				End:       in.EndTime,
				Type:      in.Type,
				Method:    in.Method,
				Amount:    in.Amount.ptr(),
				Notes:     in.Notes,
			})
			if err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Updated feeding #%d", feeding.ID), newFeedingView(feeding)), nil
		},
	}
}

type deleteFeedingInput struct {
	ID int32 `json:"id"`
}

func (b *builtin) deleteFeeding() Tool {
	return &funcTool[deleteFeedingInput]{
		name:        "delete_feeding",
		description: "Delete a feeding by id.",
		schema:      object(map[string]any{"id": integerProp("Id of the feeding to delete.")}, "id"),
		run: func(ctx context.Context, in *deleteFeedingInput) (*Result, error) {
			if err := requireID(in.ID, "feeding"); err != nil {
				return nil, err
			}
			if err := b.svc.DeleteFeeding(ctx, in.ID); err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Deleted feeding #%d", in.ID), map[string]int32{"id": in.ID}), nil
		},
	}
}

type queryInput struct {
	ChildName string `json:"child_name"`
	Timeframe string `json:"timeframe"`
	Limit     int    `json:"limit"`
}

func querySchema() map[string]any {
	return object(map[string]any{
		"child_name": stringProp(childNameDescription),
		"timeframe":  enumProp(timeframeDescription, "today", "recent", "last"),
		"limit":      integerProp("Maximum number of recent records (default 5, at most 50)."),
	}, "child_name")
}

func (b *builtin) getFeedings() Tool {
	return &funcTool[queryInput]{
		name:        "get_feedings",
		description: "List a child's feedings: today's, the most recent ones, or only the last one.",
		schema:      querySchema(),
		run: func(ctx context.Context, in *queryInput) (*Result, error) {
			tf, err := timeframe(in.Timeframe)
			if err != nil {
				return nil, err
			}
			records, err := b.svc.Feedings(ctx, in.ChildName, tf, in.Limit)
			if err != nil {
				return nil, err
			}
			lines := mapViews(records.Items, func(f *store.Feeding) string { return babycare.DescribeFeeding(f, b.loc) })
			name := records.Child.FirstName
			out := listing(
				fmt.Sprintf("Feedings for %s %s:", name, describeTimeframe(tf)),
				fmt.Sprintf("No feedings found for %s.", name),
				lines)
			if tf == babycare.TimeframeToday && len(records.Items) > 0 {
				sum := babycare.SummarizeFeedings(records.Items)
				out += fmt.Sprintf("\nTotal: %d feedings", sum.Count)
				if sum.TotalAmount > 0 {
					out += fmt.Sprintf(", amount %g", sum.TotalAmount)
				}
			}
			return ok(out, mapViews(records.Items, newFeedingView)), nil
		},
	}
}
