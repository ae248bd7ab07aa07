package babycare

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/nursery/plugin/ai/aitime"
	"github.com/hrygo/nursery/plugin/ai/metrics"
	"github.com/hrygo/nursery/store"
	storetest "github.com/hrygo/nursery/store/test"
)

var t0 = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc     Service
	driver  *storetest.MemoryDriver
	clock   *storetest.Clock
	metrics *metrics.MockMetricsService
}

func newFixture(t *testing.T, children ...*store.Child) *fixture {
	t.Helper()
	if len(children) == 0 {
		children = []*store.Child{{ID: 7, FirstName: "Noah", LastName: "Smith"}}
	}
	driver := storetest.NewMemoryDriver(101, children...)
	clock := storetest.NewClock(t0)
	m := metrics.NewMockMetricsService()
	svc := NewService(storetest.NewTestStore(driver),
		WithTimeService(aitime.NewServiceWithClock(time.UTC, clock.Now)),
		WithMetrics(m),
	)
	return &fixture{svc: svc, driver: driver, clock: clock, metrics: m}
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, kind, e.Kind, "error: %v", err)
	return e
}

func TestEndToEndFeedingFromTimer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	timer, err := f.svc.StartTimer(ctx, &StartTimerRequest{ChildName: "noah", Name: "Feeding"})
	require.NoError(t, err)
	id, ok := timer.Ref.ID()
	require.True(t, ok)
	assert.Equal(t, int32(101), id)
	assert.Equal(t, int32(7), timer.Child)
	assert.Equal(t, t0, timer.Start)
	assert.True(t, timer.Active)

	f.clock.Advance(20 * time.Minute)

	result, err := f.svc.FinalizeAsFeeding(ctx, *timer, &FeedingInput{Type: "formula", Amount: "4"})
	require.NoError(t, err)
	assert.Nil(t, result.Warning)
	assert.True(t, result.TimerDeleted)

	rec := result.Record
	assert.Equal(t, int32(7), rec.Child)
	assert.Equal(t, t0, rec.Start)
	assert.Equal(t, t0.Add(20*time.Minute), rec.End)
	assert.Equal(t, "00:20:00", rec.Duration)
	assert.Equal(t, FeedingTypeFormula, rec.Type)
	assert.Equal(t, FeedingMethodBottle, rec.Method)
	require.NotNil(t, rec.Amount)
	assert.Equal(t, 4.0, *rec.Amount)

	assert.Empty(t, f.driver.Timers, "timer 101 is deleted")
	assert.Len(t, f.driver.Feedings, 1)
	assert.Equal(t, int64(1), f.metrics.Finalizations(ActivityFeeding, false))

	// A second finalize must not create another record.
	_, err = f.svc.FinalizeAsFeeding(ctx, *timer, &FeedingInput{Type: "formula", Amount: "4"})
	requireKind(t, err, KindNotFound)
	assert.Len(t, f.driver.Feedings, 1)
}

func TestFinalize_UsesStoredTimerEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	timer, err := f.svc.StartTimer(ctx, &StartTimerRequest{ChildName: "Noah", Name: "Nap"})
	require.NoError(t, err)
	id, _ := timer.Ref.ID()

	end := t0.Add(45 * time.Minute).Format(time.RFC3339)
	stopped, err := f.svc.UpdateTimer(ctx, id, &UpdateTimerRequest{End: &end})
	require.NoError(t, err)
	assert.False(t, stopped.Active)

	f.clock.Advance(3 * time.Hour)

	result, err := f.svc.FinalizeAsSleep(ctx, *timer, &SleepInput{})
	require.NoError(t, err)
	assert.Equal(t, t0.Add(45*time.Minute), result.Record.End)
	assert.Equal(t, "00:45:00", result.Record.Duration)
	assert.True(t, result.TimerDeleted)
}

func TestFinalize_CreateFailureKeepsTimer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	timer, err := f.svc.StartTimer(ctx, &StartTimerRequest{ChildName: "Noah"})
	require.NoError(t, err)

	f.driver.SetFail("CreateFeeding", &store.ValidationError{
		StatusCode: 400,
		Fields:     map[string][]string{"type": {"\"x\" is not a valid choice."}},
	})

	_, err = f.svc.FinalizeAsFeeding(ctx, *timer, &FeedingInput{})
	e := requireKind(t, err, KindValidation)
	assert.Contains(t, e.Message, "type: \"x\" is not a valid choice.")
	assert.Equal(t, []string{"\"x\" is not a valid choice."}, e.Fields["type"])

	assert.Equal(t, 0, f.driver.CallCount("DeleteTimer"))
	assert.Len(t, f.driver.Timers, 1)
}

func TestFinalize_DeleteFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	timer, err := f.svc.StartTimer(ctx, &StartTimerRequest{ChildName: "Noah"})
	require.NoError(t, err)
	f.clock.Advance(10 * time.Minute)
	f.driver.SetFail("DeleteTimer", errors.New("connection reset"))

	result, err := f.svc.FinalizeAsTummyTime(ctx, *timer, &TummyTimeInput{Milestone: "rolled over"})
	require.NoError(t, err)
	require.NotNil(t, result.Warning)
	assert.Equal(t, KindPartialFinalization, result.Warning.Kind)
	assert.False(t, result.TimerDeleted)
	assert.Equal(t, "rolled over", result.Record.Milestone)
	assert.Len(t, f.driver.TummyTimes, 1)
	assert.Len(t, f.driver.Timers, 1)
	assert.Equal(t, int64(1), f.metrics.Finalizations(ActivityTummyTime, true))
}

func TestFinalize_PlaceholderIsNeverDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	placeholder := Timer{Ref: PlaceholderTimer(), Child: 7, Start: t0.Add(-30 * time.Minute)}
	result, err := f.svc.FinalizeAsSleep(ctx, placeholder, &SleepInput{})
	require.NoError(t, err)
	assert.False(t, result.TimerDeleted)
	assert.Nil(t, result.Warning)
	assert.Equal(t, "00:30:00", result.Record.Duration)
	assert.Equal(t, 0, f.driver.CallCount("ListTimers"))
	assert.Equal(t, 0, f.driver.CallCount("DeleteTimer"))
	assert.Zero(t, f.metrics.Finalizations(ActivitySleep, true))
	assert.Zero(t, f.metrics.Finalizations(ActivitySleep, false))
}

func TestFinalize_StartNotBeforeEndIsClamped(t *testing.T) {
	f := newFixture(t)

	placeholder := Timer{Ref: PlaceholderTimer(), Child: 7, Start: t0.Add(5 * time.Minute)}
	result, err := f.svc.FinalizeAsFeeding(context.Background(), placeholder, &FeedingInput{Method: "left"})
	require.NoError(t, err)
	assert.Equal(t, t0, result.Record.End)
	assert.Equal(t, t0.Add(-time.Second), result.Record.Start)
	assert.Equal(t, "00:00:01", result.Record.Duration)
	assert.Equal(t, FeedingMethodLeftBreast, result.Record.Method)
}

func TestFinalize_CallerOverridesWindow(t *testing.T) {
	f := newFixture(t)

	placeholder := Timer{Ref: PlaceholderTimer(), Child: 7, Start: t0.Add(-time.Hour)}
	result, err := f.svc.FinalizeAsFeeding(context.Background(), placeholder, &FeedingInput{Start: "09:30", End: "09:45"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC), result.Record.Start)
	assert.Equal(t, "00:15:00", result.Record.Duration)
}

func TestFinalize_PlaceholderWithoutChild(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FinalizeAsSleep(context.Background(), Timer{Ref: PlaceholderTimer()}, &SleepInput{})
	e := requireKind(t, err, KindValidation)
	assert.Contains(t, e.Fields, "child")
	assert.Zero(t, f.driver.MutationCount())
}

func TestDiaperWithoutContentsMakesNoCalls(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	no := false

	_, err := f.svc.CreateDiaper(ctx, "Noah", &DiaperInput{Wet: &no, Solid: &no})
	e := requireKind(t, err, KindValidation)
	assert.Equal(t, []string{"Wet and/or solid is required."}, e.Fields["wet"])

	_, err = f.svc.FinalizeAsDiaper(ctx, Timer{Ref: RealTimer(101), Child: 7}, &DiaperInput{Wet: &no, Solid: &no})
	requireKind(t, err, KindValidation)

	assert.Empty(t, f.driver.Calls)
}

func TestCreateDiaper(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	wet, err := f.svc.CreateDiaper(ctx, "Noah", &DiaperInput{Contents: "just pee", Color: "green", Amount: "1"})
	require.NoError(t, err)
	assert.True(t, wet.Wet)
	assert.False(t, wet.Solid)
	assert.Empty(t, wet.Color, "color is only sent for solid contents")
	assert.Equal(t, t0, wet.Time)

	solid, err := f.svc.CreateDiaper(ctx, "Noah", &DiaperInput{Contents: "dirty", Color: "Yellowish", Time: "08:15"})
	require.NoError(t, err)
	assert.True(t, solid.Solid)
	assert.Equal(t, "yellow", solid.Color)
	assert.Equal(t, time.Date(2026, 1, 2, 8, 15, 0, 0, time.UTC), solid.Time)

	defaulted, err := f.svc.CreateDiaper(ctx, "Noah", &DiaperInput{})
	require.NoError(t, err)
	assert.True(t, defaulted.Wet)
	assert.False(t, defaulted.Solid)
}

func TestCreateFeeding_DefaultsAndValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	feeding, err := f.svc.CreateFeeding(ctx, "Noah", &FeedingInput{Method: "Breast", Amount: ""})
	require.NoError(t, err)
	assert.Equal(t, t0.Add(-time.Second), feeding.Start)
	assert.Equal(t, t0, feeding.End)
	assert.Equal(t, FeedingTypeBreastMilk, feeding.Type)
	assert.Equal(t, FeedingMethodBothBreasts, feeding.Method)
	assert.Nil(t, feeding.Amount)

	_, err = f.svc.CreateFeeding(ctx, "Noah", &FeedingInput{Start: "11:00", End: "10:30"})
	e := requireKind(t, err, KindValidation)
	assert.Equal(t, []string{"End must not be before start."}, e.Fields["end"])
	assert.Equal(t, 1, f.driver.CallCount("CreateFeeding"))

	_, err = f.svc.CreateFeeding(ctx, "Noah", &FeedingInput{Amount: "-4 oz"})
	e = requireKind(t, err, KindValidation)
	assert.Equal(t, []string{"Must be at least 0."}, e.Fields["amount"])
	assert.Equal(t, 1, f.driver.CallCount("CreateFeeding"))

	_, err = f.svc.CreateFeeding(ctx, "Olivia", &FeedingInput{})
	requireKind(t, err, KindNotFound)
}

func TestCreateFeeding_OffsetWithoutColon(t *testing.T) {
	f := newFixture(t)

	feeding, err := f.svc.CreateFeeding(context.Background(), "Noah", &FeedingInput{
		Start: "2026-01-02T07:40:00+0000",
		End:   "2026-01-02T08:00:00+0000",
	})
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC).Equal(feeding.End), "got %s", feeding.End)
	assert.Equal(t, "00:20:00", feeding.Duration)
}

func TestCreateSleepAndTummyTimeDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	nap := true

	sleep, err := f.svc.CreateSleep(ctx, "Noah", &SleepInput{Nap: &nap})
	require.NoError(t, err)
	assert.Equal(t, t0.Add(-time.Hour), sleep.Start)
	assert.Equal(t, "01:00:00", sleep.Duration)
	require.NotNil(t, sleep.Nap)
	assert.True(t, *sleep.Nap)

	tummy, err := f.svc.CreateTummyTime(ctx, "Noah", &TummyTimeInput{})
	require.NoError(t, err)
	assert.Equal(t, t0.Add(-15*time.Minute), tummy.Start)
	assert.Equal(t, "00:15:00", tummy.Duration)
}

func TestStoreErrorsAreClassified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.driver.SetFail("ListChildren", &store.StatusError{StatusCode: 503})
	_, err := f.svc.FindChild(ctx, "Noah")
	requireKind(t, err, KindUnavailable)

	f.driver.SetFail("ListChildren", &store.StatusError{StatusCode: 401, Body: "Invalid token."})
	_, err = f.svc.FindChild(ctx, "Noah")
	requireKind(t, err, KindInternal)

	f.driver.SetFail("ListChildren", nil)
	err = f.svc.DeleteFeeding(ctx, 999)
	requireKind(t, err, KindNotFound)

	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
