package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/nursery/server/service/babycare"
)

type createTimerInput struct {
	ChildName string `json:"child_name"`
	TimerName string `json:"timer_name"`
	StartTime string `json:"start_time"`
}

func (b *builtin) createTimer() Tool {
	return &funcTool[createTimerInput]{
		name:        "create_timer",
		description: "Start a timer for a child, e.g. when a feeding or nap begins. Finish it later with finish_timer.",
		schema: object(map[string]any{
			"child_name": stringProp(childNameDescription),
			"timer_name": stringProp("Name of the timer, e.g. Feeding or Nap."),
			"start_time": stringProp(timeDescription),
		}, "child_name", "timer_name"),
		run: func(ctx context.Context, in *createTimerInput) (*Result, error) {
			timer, err := b.svc.StartTimer(ctx, &babycare.StartTimerRequest{
				ChildName: in.ChildName,
				Name:      in.TimerName,
				Start:     in.StartTime,
			})
			if err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Started %s timer for %s at %s", displayName(timer), timer.ChildName, b.clock(timer.Start)),
				newTimerView(timer)), nil
		},
	}
}

type editTimerInput struct {
	ID        int32   `json:"id"`
	ChildName *string `json:"child_name"`
	TimerName *string `json:"timer_name"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

func (b *builtin) editTimer() Tool {
	return &funcTool[editTimerInput]{
		name:        "edit_timer",
		description: "Rename, reschedule or move a running timer. Giving an end time stops it without creating a record.",
		schema: object(map[string]any{
			"id":         integerProp("Id of the timer."),
			"child_name": stringProp("Move the timer to this child."),
			"timer_name": stringProp("New name."),
			"start_time": stringProp("New start. " + timeDescription),
			"end_time":   stringProp("Stop time. " + timeDescription),
		}, "id"),
		run: func(ctx context.Context, in *editTimerInput) (*Result, error) {
			if err := requireID(in.ID, "timer"); err != nil {
				return nil, err
			}
			timer, err := b.svc.UpdateTimer(ctx, in.ID, &babycare.UpdateTimerRequest{
				ChildName: in.ChildName,
				Name:      in.TimerName,
				Start:     in.StartTime,
				End:       in.EndTime,
			})
			if err != nil {
				return nil, err
			}
			state := "running"
			if !timer.Active {
				state = "stopped"
			}
			return ok(fmt.Sprintf("Updated %s timer #%d (%s since %s)", displayName(timer), in.ID, state, b.clock(timer.Start)),
				newTimerView(timer)), nil
		},
	}
}

type listTimersInput struct {
	ChildName string `json:"child_name"`
}

func (b *builtin) listTimers() Tool {
	return &funcTool[listTimersInput]{
		name:        "list_timers",
		description: "List running timers, newest first, optionally for one child.",
		schema: object(map[string]any{
			"child_name": stringProp("Only timers for this child. " + childNameDescription),
		}),
		run: func(ctx context.Context, in *listTimersInput) (*Result, error) {
			timers, err := b.svc.ListActiveTimers(ctx, in.ChildName)
			if err != nil {
				return nil, err
			}
			lines := mapViews(timers, func(t *babycare.Timer) string {
				id, _ := t.Ref.ID()
				return fmt.Sprintf("#%d %s for %s, started %s", id, displayName(t), t.ChildName, b.clock(t.Start))
			})
			return ok(listing("Active timers:", "No active timers.", lines), mapViews(timers, newTimerView)), nil
		},
	}
}

type finishTimerInput struct {
	TimerID   int32  `json:"timer_id"`
	Activity  string `json:"activity"`
	ChildName string `json:"child_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
	// feeding
	Type   string `json:"type"`
	Method string `json:"method"`
	Amount text   `json:"amount"`
	// sleep
	Nap *bool `json:"nap"`
	// diaper
	Contents string `json:"contents"`
	Wet      *bool  `json:"wet"`
	Solid    *bool  `json:"solid"`
	Color    string `json:"color"`
	// tummy time
	Milestone string `json:"milestone"`
}

func (b *builtin) finishTimer() Tool {
	props := feedingProperties()
	for k, v := range diaperProperties() {
		if _, exists := props[k]; !exists {
			props[k] = v
		}
	}
	props["timer_id"] = integerProp("Id of the running timer. Use 0 to record directly from start_time and end_time without a timer.")
	props["activity"] = enumProp("Kind of record to create.",
		babycare.ActivityFeeding, babycare.ActivitySleep, babycare.ActivityDiaper, babycare.ActivityTummyTime)
	props["child_name"] = stringProp("Required when timer_id is 0. " + childNameDescription)
	props["start_time"] = stringProp("Overrides the timer start. " + timeDescription)
	props["end_time"] = stringProp("Overrides the timer end; defaults to the timer's end or now. " + timeDescription)
	props["nap"] = boolProp("Sleep only: whether this was a nap.")
	props["milestone"] = stringProp("Tummy time only: milestone reached.")
	return &funcTool[finishTimerInput]{
		name: "finish_timer",
		description: "Finish a timer into a feeding, sleep, diaper change or tummy time record. " +
			"The record is created first and the timer is deleted only after that succeeded.",
		schema: object(props, "timer_id", "activity"),
		run:    b.runFinishTimer,
	}
}

func (b *builtin) runFinishTimer(ctx context.Context, in *finishTimerInput) (*Result, error) {
	timer := babycare.Timer{Ref: babycare.TimerRefFromID(in.TimerID)}
	if timer.Ref.IsPlaceholder() {
		child, err := b.svc.FindChild(ctx, in.ChildName)
		if err != nil {
			return nil, err
		}
		timer.Child, timer.ChildName = child.ID, child.FullName()
	}

	var (
		result       *Result
		timerDeleted bool
		warning      *babycare.Error
	)
	switch strings.ToLower(strings.TrimSpace(in.Activity)) {
	case babycare.ActivityFeeding:
		fin, err := b.svc.FinalizeAsFeeding(ctx, timer, &babycare.FeedingInput{
			Start: in.StartTime, End: in.EndTime, Type: in.Type, Method: in.Method, Amount: string(in.Amount), Notes: in.Notes,
		})
		if err != nil {
			return nil, err
		}
		result = ok(fmt.Sprintf("Saved %s feeding #%d (%s)", fin.Record.Type, fin.Record.ID, fin.Record.Duration), newFeedingView(fin.Record))
		timerDeleted, warning = fin.TimerDeleted, fin.Warning
	case babycare.ActivitySleep:
		fin, err := b.svc.FinalizeAsSleep(ctx, timer, &babycare.SleepInput{
			Start: in.StartTime, End: in.EndTime, Nap: in.Nap, Notes: in.Notes,
		})
		if err != nil {
			return nil, err
		}
		result = ok(fmt.Sprintf("Saved sleep #%d (%s)", fin.Record.ID, fin.Record.Duration), newSleepView(fin.Record))
		timerDeleted, warning = fin.TimerDeleted, fin.Warning
	case babycare.ActivityDiaper:
		fin, err := b.svc.FinalizeAsDiaper(ctx, timer, &babycare.DiaperInput{
			Time: in.EndTime, Contents: in.Contents, Wet: in.Wet, Solid: in.Solid,
			Color: in.Color, Amount: string(in.Amount), Notes: in.Notes,
		})
		if err != nil {
			return nil, err
		}
		result = ok(fmt.Sprintf("Saved %s diaper change #%d", contentsText(fin.Record), fin.Record.ID), newDiaperView(fin.Record))
		timerDeleted, warning = fin.TimerDeleted, fin.Warning
	case babycare.ActivityTummyTime:
		fin, err := b.svc.FinalizeAsTummyTime(ctx, timer, &babycare.TummyTimeInput{
			Start: in.StartTime, End: in.EndTime, Milestone: in.Milestone, Notes: in.Notes,
		})
		if err != nil {
			return nil, err
		}
		result = ok(fmt.Sprintf("Saved tummy time #%d (%s)", fin.Record.ID, fin.Record.Duration), newTummyTimeView(fin.Record))
		timerDeleted, warning = fin.TimerDeleted, fin.Warning
	default:
		return nil, &babycare.Error{
			Kind:    babycare.KindValidation,
			Message: fmt.Sprintf("Unknown activity %q (use feeding, sleep, diaper or tummy_time)", in.Activity),
			Fields:  map[string][]string{"activity": {fmt.Sprintf("%q is not a valid choice.", in.Activity)}},
		}
	}

	if timerDeleted {
		result.Output += fmt.Sprintf("; %s finished", timer.Ref)
	}
	if warning != nil {
		result.Warning = warning.Message
		result.Output += ". Warning: " + warning.Message
	}
	return result, nil
}

type stopTimerInput struct {
	ChildName string `json:"child_name"`
	TimerName string `json:"timer_name"`
	Confirmed bool   `json:"confirmed"`
}

func (in *stopTimerInput) request() *babycare.CancelTimerRequest {
	return &babycare.CancelTimerRequest{ChildName: in.ChildName, TimerName: in.TimerName, Confirmed: in.Confirmed}
}

// stopTimerTool deletes a timer without a record and asks for confirmation first.
type stopTimerTool struct {
	*funcTool[stopTimerInput]
}

func (t *stopTimerTool) Confirmation(inputJSON string) (string, error) {
	in, err := decode[stopTimerInput](inputJSON)
	if err != nil {
		return "", err
	}
	return babycare.CancelPrompt(in.request()), nil
}

func (b *builtin) stopTimer() Tool {
	return &stopTimerTool{&funcTool[stopTimerInput]{
		name:        "stop_timer",
		description: "Delete a running timer without recording anything. Deletes the most recent timer of the child unless timer_name is given. Requires confirmed=true after the user agreed.",
		schema: object(map[string]any{
			"child_name": stringProp(childNameDescription),
			"timer_name": stringProp("Exact name of the timer to delete."),
			"confirmed":  boolProp("Set only after the user confirmed the deletion."),
		}, "child_name"),
		run: func(ctx context.Context, in *stopTimerInput) (*Result, error) {
			timer, err := b.svc.CancelTimer(ctx, in.request())
			if err != nil {
				return nil, err
			}
			return ok(fmt.Sprintf("Deleted %s timer for %s", displayName(timer), timer.ChildName), newTimerView(timer)), nil
		},
	}}
}

func displayName(t *babycare.Timer) string {
	if t.Name == "" {
		return "unnamed"
	}
	return t.Name
}
