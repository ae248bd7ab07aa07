package server

import (
	"github.com/pkg/errors"

	"github.com/hrygo/nursery/internal/profile"
	"github.com/hrygo/nursery/plugin/ai/agent/tools"
	"github.com/hrygo/nursery/plugin/ai/aitime"
	"github.com/hrygo/nursery/plugin/ai/metrics"
	"github.com/hrygo/nursery/server/service/babycare"
	"github.com/hrygo/nursery/store"
)

// Toolset is the core service with its tools, shared by the HTTP server and the CLI.
type Toolset struct {
	Time     aitime.TimeService
	Service  babycare.Service
	Registry *tools.Registry
	Executor *tools.Executor
}

func NewToolset(profile *profile.Profile, store *store.Store, metricsService metrics.MetricsService) (*Toolset, error) {
	if metricsService == nil {
		metricsService = metrics.NopMetrics{}
	}
	ts := aitime.NewService(profile.Location())
	svc := babycare.NewService(store,
		babycare.WithTimeService(ts),
		babycare.WithMetrics(metricsService),
	)
	registry, err := tools.NewBuiltinRegistry(svc, ts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to register tools")
	}
	return &Toolset{
		Time:     ts,
		Service:  svc,
		Registry: registry,
		Executor: tools.NewExecutor(metricsService),
	}, nil
}

var _ babycare.Store = (*store.Store)(nil)
