package metrics

import (
	"context"
	"sync"
	"time"
)

// MockMetricsService is a mock implementation of MetricsService for testing.
type MockMetricsService struct {
	mu            sync.RWMutex
	toolCalls     []toolCallRecord
	finalizations map[string]int64
}

type toolCallRecord struct {
	ToolName  string
	Latency   time.Duration
	ErrorKind string
}

// NewMockMetricsService creates a new MockMetricsService.
func NewMockMetricsService() *MockMetricsService {
	return &MockMetricsService{
		finalizations: make(map[string]int64),
	}
}

func (m *MockMetricsService) RecordToolCall(_ context.Context, toolName string, latency time.Duration, errorKind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.toolCalls = append(m.toolCalls, toolCallRecord{
		ToolName:  toolName,
		Latency:   latency,
		ErrorKind: errorKind,
	})
}

func (m *MockMetricsService) RecordFinalization(_ context.Context, activity string, timerDeleted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := activity
	if !timerDeleted {
		key += ":kept"
	}
	m.finalizations[key]++
}

// ToolStats aggregates the recorded tool calls per tool.
func (m *MockMetricsService) ToolStats() map[string]*ToolStat {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make(map[string]*ToolStat)
	totals := make(map[string]time.Duration)
	for _, c := range m.toolCalls {
		stat, ok := stats[c.ToolName]
		if !ok {
			stat = &ToolStat{ErrorKinds: make(map[string]int64)}
			stats[c.ToolName] = stat
		}
		stat.Count++
		totals[c.ToolName] += c.Latency
		if c.ErrorKind != "" {
			stat.Failures++
			stat.ErrorKinds[c.ErrorKind]++
		}
	}
	for name, stat := range stats {
		stat.AvgLatency = totals[name] / time.Duration(stat.Count)
	}
	return stats
}

// Finalizations returns how many finalizations were recorded for activity;
// timerKept selects the ones whose timer deletion failed.
func (m *MockMetricsService) Finalizations(activity string, timerKept bool) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if timerKept {
		return m.finalizations[activity+":kept"]
	}
	return m.finalizations[activity]
}

// Reset clears all recorded data.
func (m *MockMetricsService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.toolCalls = nil
	m.finalizations = make(map[string]int64)
}

var _ MetricsService = (*MockMetricsService)(nil)
