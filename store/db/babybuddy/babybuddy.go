package babybuddy

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/hrygo/nursery/internal/profile"
	"github.com/hrygo/nursery/store"
)

// ============================================================================
// BABY BUDDY REST DRIVER
// ============================================================================
// Every ActivityStore call maps onto one request against <BaseURL>/api/.
// Reads (GET) are retried on network errors and 5xx; writes never are, so a
// create is submitted at most once per call.
// ============================================================================

const (
	maxPages        = 20
	maxErrorBody    = 512
	retryWait       = 200 * time.Millisecond
	retryMaxWait    = 2 * time.Second
	timestampLayout = time.RFC3339
)

type DB struct {
	client  *resty.Client
	profile *profile.Profile
}

func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}
	if profile.BaseURL == "" {
		return nil, errors.New("base URL is empty")
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(profile.BaseURL, "/")+"/api").
		SetTimeout(profile.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", "Token "+profile.APIToken).
		SetRetryCount(profile.RetryCount).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(retryMaxWait)
	client.AddRetryCondition(retryCondition)

	return &DB{client: client, profile: profile}, nil
}

func (d *DB) Close() error {
	return nil
}

// retryCondition retries idempotent reads only.
func retryCondition(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	return r.StatusCode() >= 500
}

func (d *DB) doRequest(ctx context.Context, method, path string, query map[string]string, body, result any) error {
	req := d.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if err := handleResponse(resp); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	slog.DebugContext(ctx, "baby buddy request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode(),
		"duration_ms", resp.Time().Milliseconds(),
	)
	return nil
}

func handleResponse(resp *resty.Response) error {
	code := resp.StatusCode()
	switch {
	case code < 400:
		return nil
	case code == http.StatusNotFound:
		return store.ErrNotFound
	case code == http.StatusBadRequest:
		return &store.ValidationError{StatusCode: code, Fields: parseFieldErrors(resp.Body())}
	default:
		body := strings.TrimSpace(resp.String())
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &store.StatusError{StatusCode: code, Body: body}
	}
}

// parseFieldErrors flattens a validation body into field -> messages.
// Values may be strings, lists of strings or nested objects; nested keys are dotted.
func parseFieldErrors(body []byte) map[string][]string {
	fields := map[string][]string{}
	if !gjson.ValidBytes(body) {
		if text := strings.TrimSpace(string(body)); text != "" {
			fields["detail"] = []string{text}
		}
		return fields
	}
	var walk func(prefix string, value gjson.Result)
	walk = func(prefix string, value gjson.Result) {
		switch {
		case value.IsObject():
			value.ForEach(func(key, v gjson.Result) bool {
				name := key.String()
				if prefix != "" {
					name = prefix + "." + name
				}
				walk(name, v)
				return true
			})
		case value.IsArray():
			value.ForEach(func(_, v gjson.Result) bool {
				if v.IsObject() || v.IsArray() {
					walk(prefix, v)
				} else {
					fields[prefix] = append(fields[prefix], v.String())
				}
				return true
			})
		default:
			if prefix == "" {
				prefix = "detail"
			}
			fields[prefix] = append(fields[prefix], value.String())
		}
	}
	walk("", gjson.ParseBytes(body))
	return fields
}

type page[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// list reads a paginated collection. A positive limit reads one page of that size,
// otherwise next links are followed.
func list[T any](ctx context.Context, d *DB, path string, query map[string]string, limit int) ([]T, error) {
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}
	var items []T
	next := path
	for i := 0; i < maxPages && next != ""; i++ {
		var result page[T]
		q := query
		if i > 0 {
			// Next links carry their own query string.
			q = nil
		}
		if err := d.doRequest(ctx, http.MethodGet, next, q, nil, &result); err != nil {
			return nil, err
		}
		items = append(items, result.Results...)
		if limit > 0 || result.Next == nil {
			break
		}
		next = *result.Next
	}
	return items, nil
}

func formatTime(t time.Time) string {
	return t.Format(timestampLayout)
}

func childQuery(child *int32) map[string]string {
	query := map[string]string{}
	if child != nil {
		query["child"] = strconv.Itoa(int(*child))
	}
	return query
}

func itemPath(resource string, id int32) string {
	return fmt.Sprintf("/%s/%d/", resource, id)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
