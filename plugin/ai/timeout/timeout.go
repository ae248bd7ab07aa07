// Package timeout defines centralized timeout constants for assistant operations.
package timeout

import "time"

const (
	// ToolExecutionTimeout bounds one tool call, including every ActivityStore round trip it makes.
	ToolExecutionTimeout = 30 * time.Second

	// StoreRequestTimeout is the default per-request timeout against the ActivityStore.
	StoreRequestTimeout = 12 * time.Second

	// ShutdownTimeout is how long the HTTP server waits for in-flight tool calls on shutdown.
	ShutdownTimeout = 10 * time.Second

	// MaxTruncateLength is the maximum length for truncating strings in logs.
	MaxTruncateLength = 200
)
