// Package metrics records tool execution metrics for the activity assistant.
package metrics

import (
	"context"
	"time"
)

// MetricsService defines the tool metrics service interface.
type MetricsService interface {
	// RecordToolCall records one tool execution. errorKind is empty on success.
	RecordToolCall(ctx context.Context, toolName string, latency time.Duration, errorKind string)

	// RecordFinalization records a persisted timer being finalized into an activity record.
	RecordFinalization(ctx context.Context, activity string, timerDeleted bool)
}

// ToolStat represents statistics for a single tool.
type ToolStat struct {
	Count      int64            `json:"count"`
	Failures   int64            `json:"failures"`
	AvgLatency time.Duration    `json:"avg_latency"`
	ErrorKinds map[string]int64 `json:"error_kinds"`
}
