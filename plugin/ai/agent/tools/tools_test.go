package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/nursery/plugin/ai/aitime"
	"github.com/hrygo/nursery/plugin/ai/metrics"
	"github.com/hrygo/nursery/server/service/babycare"
	"github.com/hrygo/nursery/store"
	storetest "github.com/hrygo/nursery/store/test"
)

var t0 = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

type harness struct {
	registry *Registry
	executor *Executor
	driver   *storetest.MemoryDriver
	clock    *storetest.Clock
	metrics  *metrics.MockMetricsService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	driver := storetest.NewMemoryDriver(101, &store.Child{ID: 7, FirstName: "Noah", LastName: "Smith"})
	clock := storetest.NewClock(t0)
	m := metrics.NewMockMetricsService()
	ts := aitime.NewServiceWithClock(time.UTC, clock.Now)
	svc := babycare.NewService(storetest.NewTestStore(driver),
		babycare.WithTimeService(ts),
		babycare.WithMetrics(m),
	)
	registry, err := NewBuiltinRegistry(svc, ts)
	require.NoError(t, err)
	return &harness{registry: registry, executor: NewExecutor(m), driver: driver, clock: clock, metrics: m}
}

func (h *harness) run(t *testing.T, name, input string) (*Result, error) {
	t.Helper()
	tool, ok := h.registry.Get(name)
	require.True(t, ok, "tool %s is registered", name)
	return h.executor.Execute(context.Background(), tool, input)
}

func requireKind(t *testing.T, err error, kind babycare.Kind) *babycare.Error {
	t.Helper()
	require.Error(t, err)
	var e *babycare.Error
	require.True(t, errors.As(err, &e), "error %v is a *babycare.Error", err)
	assert.Equal(t, kind, e.Kind)
	return e
}

func TestRegistry(t *testing.T) {
	h := newHarness(t)

	want := []string{
		"child_summary", "create_diaper", "create_feeding", "create_sleep", "create_timer", "create_tummy_time",
		"delete_feeding", "edit_diaper", "edit_feeding", "edit_sleep", "edit_timer", "finish_timer",
		"get_diapers", "get_feedings", "get_sleep", "get_tummy_time", "list_timers", "stop_timer",
	}
	var names []string
	for _, tool := range h.registry.List() {
		names = append(names, tool.Name())
		assert.NotEmpty(t, tool.Description())
		assert.Equal(t, "object", tool.InputType()["type"])
	}
	assert.Equal(t, want, names)

	defs := h.registry.OpenAIDefinitions()
	require.Len(t, defs, len(want))
	assert.Equal(t, "child_summary", defs[0].Function.Name)
	assert.Contains(t, defs[1].Function.Description, "wet 1 and solid 2")

	assert.Error(t, h.registry.Register(h.registry.List()[0]), "duplicate names are rejected")
}

func TestTimerToFeeding(t *testing.T) {
	h := newHarness(t)

	started, err := h.run(t, "create_timer", `{"child_name":"noah","timer_name":"Feeding"}`)
	require.NoError(t, err)
	assert.Equal(t, "Started Feeding timer for Noah Smith at 10:00", started.Output)
	assert.NotEmpty(t, started.CallID)
	timer := started.Data.(*timerView)
	assert.Equal(t, int32(101), timer.ID)

	h.clock.Advance(20 * time.Minute)
	finished, err := h.run(t, "finish_timer", `{"timer_id":101,"activity":"feeding","type":"formula","amount":4}`)
	require.NoError(t, err)
	assert.Equal(t, "Saved formula feeding #102 (00:20:00); timer 101 finished", finished.Output)
	assert.Empty(t, finished.Warning)
	feeding := finished.Data.(*feedingView)
	assert.Equal(t, babycare.FeedingMethodBottle, feeding.Method)
	require.NotNil(t, feeding.Amount)
	assert.Equal(t, 4.0, *feeding.Amount)
	assert.Empty(t, h.driver.Timers)

	_, err = h.run(t, "finish_timer", `{"timer_id":101,"activity":"feeding"}`)
	requireKind(t, err, babycare.KindNotFound)
	assert.Len(t, h.driver.Feedings, 1)

	stats := h.metrics.ToolStats()
	assert.Equal(t, int64(2), stats["finish_timer"].Count)
	assert.Equal(t, int64(1), stats["finish_timer"].ErrorKinds[string(babycare.KindNotFound)])
}

func TestFinishTimer_Placeholder(t *testing.T) {
	h := newHarness(t)

	result, err := h.run(t, "finish_timer",
		`{"timer_id":0,"activity":"sleep","child_name":"Noah","start_time":"08:30","end_time":"09:45","nap":true}`)
	require.NoError(t, err)
	assert.Equal(t, "Saved sleep #101 (01:15:00)", result.Output)
	assert.Zero(t, h.driver.CallCount("DeleteTimer"))

	_, err = h.run(t, "finish_timer", `{"timer_id":0,"activity":"sleep"}`)
	requireKind(t, err, babycare.KindValidation)

	_, err = h.run(t, "finish_timer", `{"timer_id":0,"activity":"bath","child_name":"Noah"}`)
	e := requireKind(t, err, babycare.KindValidation)
	assert.Contains(t, e.Fields, "activity")
}

func TestFinishTimer_DeleteFailureWarns(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "create_timer", `{"child_name":"Noah","timer_name":"Tummy"}`)
	require.NoError(t, err)
	h.clock.Advance(10 * time.Minute)
	h.driver.SetFail("DeleteTimer", errors.New("connection reset"))

	result, err := h.run(t, "finish_timer", `{"timer_id":101,"activity":"tummy_time","milestone":"rolled over"}`)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Warning)
	assert.Contains(t, result.Output, "Warning:")
	assert.Len(t, h.driver.TummyTimes, 1)
	assert.Len(t, h.driver.Timers, 1)
}

func TestStopTimer(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "create_timer", `{"child_name":"Noah","timer_name":"Nap"}`)
	require.NoError(t, err)

	tool, _ := h.registry.Get("stop_timer")
	confirmer, ok := tool.(Confirmer)
	require.True(t, ok)
	prompt, err := confirmer.Confirmation(`{"child_name":"Noah","timer_name":"Nap"}`)
	require.NoError(t, err)
	assert.Equal(t, `Are you sure you want to delete the "Nap" timer for Noah?`, prompt)

	calls := len(h.driver.Calls)
	_, err = h.run(t, "stop_timer", `{"child_name":"Noah","timer_name":"Nap"}`)
	e := requireKind(t, err, babycare.KindConfirmationRequired)
	assert.Equal(t, prompt, e.Message)
	assert.Len(t, h.driver.Calls, calls, "nothing is fetched before confirmation")

	result, err := h.run(t, "stop_timer", `{"child_name":"Noah","timer_name":"nap","confirmed":true}`)
	require.NoError(t, err)
	assert.Equal(t, "Deleted Nap timer for Noah Smith", result.Output)
	assert.Empty(t, h.driver.Timers)
	assert.Empty(t, h.driver.Feedings)
}

func TestCreateDiaper(t *testing.T) {
	h := newHarness(t)

	result, err := h.run(t, "create_diaper", `{"child_name":"Noah","contents":"poop","color":"brown","amount":"2","time":"09:15"}`)
	require.NoError(t, err)
	assert.Equal(t, "Recorded solid diaper for Noah at 09:15", result.Output)
	diaper := result.Data.(*diaperView)
	assert.Equal(t, "brown", diaper.Color)
	require.NotNil(t, diaper.Amount)
	assert.Equal(t, 2.0, *diaper.Amount)

	_, err = h.run(t, "create_diaper", `{"child_name":"Noah","wet":false,"solid":false}`)
	requireKind(t, err, babycare.KindValidation)
	assert.Len(t, h.driver.Diapers, 1)
}

func TestEditFeeding_ClearsAmount(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "create_feeding", `{"child_name":"Noah","type":"formula","amount":"3 oz"}`)
	require.NoError(t, err)

	result, err := h.run(t, "edit_feeding", `{"id":101,"amount":""}`)
	require.NoError(t, err)
	assert.Nil(t, result.Data.(*feedingView).Amount)

	_, err = h.run(t, "edit_feeding", `{"id":101}`)
	assert.ErrorIs(t, err, babycare.ErrNoUpdates)

	_, err = h.run(t, "edit_feeding", `{"amount":""}`)
	requireKind(t, err, babycare.KindValidation)

	_, err = h.run(t, "delete_feeding", `{"id":101}`)
	require.NoError(t, err)
	assert.Empty(t, h.driver.Feedings)
}

func TestQueries(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "create_sleep", `{"child_name":"Noah","start_time":"07:00","end_time":"08:30"}`)
	require.NoError(t, err)

	result, err := h.run(t, "get_sleep", `{"child_name":"Noah","timeframe":"today"}`)
	require.NoError(t, err)
	assert.Contains(t, result.Output, "Sleep for Noah today:")
	assert.Contains(t, result.Output, "Total: 1h 30m across 1 sessions")
	data := result.Data.(map[string]any)
	assert.Equal(t, 90, data["summary"].(babycare.SleepSummary).TotalMinutes)

	result, err = h.run(t, "get_feedings", `{"child_name":"Noah"}`)
	require.NoError(t, err)
	assert.Equal(t, "No feedings found for Noah.", result.Output)

	_, err = h.run(t, "get_diapers", `{"child_name":"Noah","timeframe":"someday"}`)
	requireKind(t, err, babycare.KindValidation)

	result, err = h.run(t, "child_summary", `{"child_name":"Noah"}`)
	require.NoError(t, err)
	assert.Contains(t, result.Output, "## Noah Smith")
}

func TestInvalidInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "create_timer", `{"child_name":`)
	requireKind(t, err, babycare.KindValidation)

	_, err = h.run(t, "create_timer", `{"child":"Noah"}`)
	requireKind(t, err, babycare.KindValidation)

	_, err = h.run(t, "list_timers", "")
	require.NoError(t, err)
}

type blockingTool struct{}

func (blockingTool) Name() string              { return "block" }
func (blockingTool) Description() string       { return "waits for cancellation" }
func (blockingTool) InputType() map[string]any { return object(nil) }
func (blockingTool) Run(ctx context.Context, _ string) (*Result, error) {
	<-ctx.Done()
	return nil, &babycare.Error{Kind: babycare.KindUnavailable, Message: "timed out", Cause: ctx.Err()}
}

func TestExecutor_Timeout(t *testing.T) {
	m := metrics.NewMockMetricsService()
	e := NewExecutor(m, WithTimeout(10*time.Millisecond))

	_, err := e.Execute(context.Background(), blockingTool{}, "")
	requireKind(t, err, babycare.KindUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int64(1), m.ToolStats()["block"].Failures)
}

func TestText(t *testing.T) {
	in, err := decode[createFeedingInput](`{"amount": 4.5}`)
	require.NoError(t, err)
	assert.Equal(t, text("4.5"), in.Amount)

	in, err = decode[createFeedingInput](`{"amount": null}`)
	require.NoError(t, err)
	assert.Equal(t, text(""), in.Amount)

	_, err = decode[createFeedingInput](`{"amount": true}`)
	assert.Error(t, err)
}
