package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/nursery/internal/profile"
	"github.com/hrygo/nursery/store"
	storetest "github.com/hrygo/nursery/store/test"
)

func newTestServer(t *testing.T) (*Server, *storetest.MemoryDriver) {
	t.Helper()
	driver := storetest.NewMemoryDriver(101, &store.Child{ID: 7, FirstName: "Noah", LastName: "Smith", Slug: "noah-smith"})
	prof := &profile.Profile{
		Mode:      "dev",
		BaseURL:   "https://baby.example.com",
		Timezone:  "UTC",
		RateLimit: 1000,
		RateBurst: 1000,
	}
	s, err := NewServer(context.Background(), prof, store.New(driver, prof))
	require.NoError(t, err)
	return s, driver
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	do(t, s, http.MethodPost, "/api/v1/tools/list_timers", "{}")
	rec = do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `nursery_tools_calls_total{outcome="success",tool="list_timers"} 1`)
	assert.Contains(t, rec.Body.String(), "nursery_http_requests_total")
}

func TestListTools(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tools []struct {
			Name         string         `json:"name"`
			InputSchema  map[string]any `json:"input_schema"`
			Confirmation bool           `json:"requires_confirmation"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Tools, 18)
	for _, tool := range body.Tools {
		assert.Equal(t, tool.Name == "stop_timer", tool.Confirmation, tool.Name)
		assert.Equal(t, "object", tool.InputSchema["type"])
	}
}

func TestInvokeTool(t *testing.T) {
	s, driver := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/tools/create_timer", `{"child_name":"noah","timer_name":"Nap"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		CallID  string `json:"call_id"`
		Success bool   `json:"success"`
		Data    struct {
			ID int32 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.CallID)
	assert.Equal(t, int32(101), result.Data.ID)
	require.Len(t, driver.Timers, 1)

	tests := []struct {
		name   string
		tool   string
		body   string
		status int
		code   string
	}{
		{"unknown tool", "bake_cake", "{}", http.StatusNotFound, "TOOL_NOT_FOUND"},
		{"unknown child", "create_timer", `{"child_name":"Liam","timer_name":"Nap"}`, http.StatusNotFound, "NOT_FOUND"},
		{"bad json", "create_timer", `{"child_name":`, http.StatusUnprocessableEntity, "INVALID_ARGUMENT"},
		{"needs confirmation", "stop_timer", `{"child_name":"Noah"}`, http.StatusConflict, "CONFIRMATION_REQUIRED"},
		{"diaper without contents", "create_diaper", `{"child_name":"Noah","wet":false,"solid":false}`, http.StatusUnprocessableEntity, "INVALID_ARGUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/tools/"+tt.tool, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
		})
	}
	assert.Len(t, driver.Timers, 1, "unconfirmed stop_timer keeps the timer")

	rec = do(t, s, http.MethodPost, "/api/v1/tools/stop_timer", `{"child_name":"Noah","confirmed":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, driver.Timers)
}

func TestValidationFieldsAreReturned(t *testing.T) {
	s, driver := newTestServer(t)
	driver.SetFail("CreateFeeding", &store.ValidationError{
		StatusCode: http.StatusBadRequest,
		Fields:     map[string][]string{"amount": {"Ensure this value is greater than or equal to 0."}},
	})

	rec := do(t, s, http.MethodPost, "/api/v1/tools/create_feeding", `{"child_name":"Noah","amount":"1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var envelope struct {
		Error struct {
			Message string              `json:"message"`
			Fields  map[string][]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Failed to create feeding: amount: Ensure this value is greater than or equal to 0.", envelope.Error.Message)
	assert.Contains(t, envelope.Error.Fields, "amount")
}

func TestChildSummaryAndFeed(t *testing.T) {
	s, driver := newTestServer(t)
	now := time.Now().UTC()
	driver.Feedings = []*store.Feeding{{ID: 1, Child: 7, Start: now.Add(-2 * time.Hour), End: now.Add(-110 * time.Minute),
		Duration: "00:10:00", Type: "formula", Method: "bottle"}}
	driver.Diapers = []*store.Diaper{{ID: 2, Child: 7, Time: now.Add(-time.Hour), Wet: true}}

	rec := do(t, s, http.MethodGet, "/api/v1/children/noah/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Body.String(), "## Noah Smith")

	rec = do(t, s, http.MethodGet, "/api/v1/children/noah/summary?format=html", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h2>Noah Smith</h2>")

	rec = do(t, s, http.MethodGet, "/api/v1/children/noah/summary?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/children/noah/feed.atom", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/atom+xml")
	feed := rec.Body.String()
	assert.Contains(t, feed, "<title>Noah Smith activity</title>")
	assert.Contains(t, feed, "diaper:2")
	assert.Less(t, strings.Index(feed, "diaper:2"), strings.Index(feed, "feeding:1"), "newest entry first")

	rec = do(t, s, http.MethodGet, "/api/v1/children/liam/feed.atom", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
