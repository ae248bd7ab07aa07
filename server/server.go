// Package server assembles the HTTP server: the v1 tool API, health and metrics endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hrygo/nursery/internal/profile"
	"github.com/hrygo/nursery/plugin/ai/metrics"
	"github.com/hrygo/nursery/plugin/ai/timeout"
	"github.com/hrygo/nursery/server/internal/observability"
	ratelimit "github.com/hrygo/nursery/server/middleware"
	apiv1 "github.com/hrygo/nursery/server/router/api/v1"
	"github.com/hrygo/nursery/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store
	Toolset *Toolset

	echoServer *echo.Echo
	registry   *prometheus.Registry
	startedAt  time.Time
}

func NewServer(_ context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Profile:  profile,
		Store:    store,
		registry: prometheus.NewRegistry(),
	}
	s.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	toolset, err := NewToolset(profile, store, metrics.NewPrometheusMetrics(s.registry))
	if err != nil {
		return nil, err
	}
	s.Toolset = toolset

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())
	echoServer.Use(observability.RequestLogger(slog.Default()))
	echoServer.Use(observability.NewHTTPMetrics(s.registry).Middleware())
	s.echoServer = echoServer

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})
	echoServer.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	limiter := ratelimit.NewRateLimiter(profile.RateLimit, profile.RateBurst)
	apiv1.NewAPIV1Service(profile, toolset.Service, toolset.Registry, toolset.Executor).
		RegisterRoutes(echoServer, limiter.Middleware())

	return s, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}
	s.echoServer.Listener = listener
	s.startedAt = time.Now()

	go func() {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start echo server", "error", err)
		}
	}()
	slog.InfoContext(ctx, "server started", "address", listener.Addr().String(), "version", s.Profile.Version)
	return nil
}

// Shutdown waits for in-flight tool calls up to timeout.ShutdownTimeout, then closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, timeout.ShutdownTimeout)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	slog.Info("server stopped properly", "uptime", time.Since(s.startedAt).Round(time.Second))
}
