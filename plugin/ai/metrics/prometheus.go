package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nursery"

// PrometheusMetrics implements MetricsService with Prometheus collectors.
type PrometheusMetrics struct {
	toolCalls     *prometheus.CounterVec
	toolLatency   *prometheus.HistogramVec
	finalizations *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tools",
			Name:      "calls_total",
			Help:      "Number of tool executions grouped by tool and outcome.",
		}, []string{"tool", "outcome"}),
		toolLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tools",
			Name:      "duration_seconds",
			Help:      "Tool execution latency, including ActivityStore round trips.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"tool"}),
		finalizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "timers",
			Name:      "finalized_total",
			Help:      "Timers finalized into activity records, by activity and whether the timer was deleted.",
		}, []string{"activity", "timer_deleted"}),
	}
	reg.MustRegister(m.toolCalls, m.toolLatency, m.finalizations)
	return m
}

func (m *PrometheusMetrics) RecordToolCall(_ context.Context, toolName string, latency time.Duration, errorKind string) {
	outcome := "success"
	if errorKind != "" {
		outcome = errorKind
	}
	m.toolCalls.WithLabelValues(toolName, outcome).Inc()
	m.toolLatency.WithLabelValues(toolName).Observe(latency.Seconds())
}

func (m *PrometheusMetrics) RecordFinalization(_ context.Context, activity string, timerDeleted bool) {
	m.finalizations.WithLabelValues(activity, strconv.FormatBool(timerDeleted)).Inc()
}

var _ MetricsService = (*PrometheusMetrics)(nil)

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordToolCall(context.Context, string, time.Duration, string) {}

func (NopMetrics) RecordFinalization(context.Context, string, bool) {}
