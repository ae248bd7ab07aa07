package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/nursery/plugin/ai/metrics"
	"github.com/hrygo/nursery/plugin/ai/timeout"
	"github.com/hrygo/nursery/server/service/babycare"
)

// Executor runs tools with a per-call timeout, metrics and audit logging.
// It does not retry: a failed call surfaces immediately, retries belong to the transport.
type Executor struct {
	timeout        time.Duration
	metricsService metrics.MetricsService
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithTimeout sets the timeout for each execution.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = d
	}
}

func NewExecutor(metricsService metrics.MetricsService, opts ...ExecutorOption) *Executor {
	if metricsService == nil {
		metricsService = metrics.NopMetrics{}
	}
	e := &Executor{
		timeout:        timeout.ToolExecutionTimeout,
		metricsService: metricsService,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the tool once. The returned error is a *babycare.Error whenever the
// failure came from the core, so callers can branch on its Kind.
func (e *Executor) Execute(ctx context.Context, tool Tool, input string) (*Result, error) {
	callID := shortuuid.New()
	toolName := tool.Name()
	start := time.Now()

	execCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	result, err := tool.Run(execCtx, input)
	latency := time.Since(start)
	if err != nil {
		kind := babycare.KindOf(err)
		e.metricsService.RecordToolCall(ctx, toolName, latency, string(kind))
		level := slog.LevelWarn
		if kind == babycare.KindInternal {
			level = slog.LevelError
		}
		slog.Log(ctx, level, "tool execution failed",
			slog.String("tool", toolName),
			slog.String("call_id", callID),
			slog.String("kind", string(kind)),
			slog.String("input", truncate(input)),
			slog.String("error", err.Error()),
			slog.Duration("duration", latency))
		return nil, err
	}

	e.metricsService.RecordToolCall(ctx, toolName, latency, "")
	result.CallID = callID
	slog.InfoContext(ctx, "tool execution succeeded",
		slog.String("tool", toolName),
		slog.String("call_id", callID),
		slog.Bool("warning", result.Warning != ""),
		slog.Duration("duration", latency))
	return result, nil
}

func truncate(s string) string {
	if len(s) <= timeout.MaxTruncateLength {
		return s
	}
	return s[:timeout.MaxTruncateLength] + "..."
}
