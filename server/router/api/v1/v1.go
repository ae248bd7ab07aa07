package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/nursery/internal/profile"
	"github.com/hrygo/nursery/plugin/ai/agent/tools"
	"github.com/hrygo/nursery/plugin/markdown"
	apierrors "github.com/hrygo/nursery/server/internal/errors"
	"github.com/hrygo/nursery/server/service/babycare"
)

type APIV1Service struct {
	Profile         *profile.Profile
	Service         babycare.Service
	Registry        *tools.Registry
	Executor        *tools.Executor
	MarkdownService markdown.Service
}

func NewAPIV1Service(profile *profile.Profile, service babycare.Service, registry *tools.Registry, executor *tools.Executor) *APIV1Service {
	return &APIV1Service{
		Profile:         profile,
		Service:         service,
		Registry:        registry,
		Executor:        executor,
		MarkdownService: markdown.NewService(markdown.WithGFM()),
	}
}

// RegisterRoutes registers the v1 API with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo, middlewares ...echo.MiddlewareFunc) {
	g := echoServer.Group("/api/v1", middlewares...)
	g.GET("/tools", s.ListTools)
	g.POST("/tools/:name", s.InvokeTool)
	g.GET("/children/:name/summary", s.GetChildSummary)
	g.GET("/children/:name/feed.atom", s.GetChildFeed)
}

// writeError renders err as the API error envelope.
func writeError(c echo.Context, err error) error {
	apiErr := apierrors.FromError(err)
	return c.JSON(apiErr.Status(), apierrors.Envelope{Error: apiErr})
}

func badRequest(c echo.Context, msg string) error {
	apiErr := apierrors.InvalidArgument(msg)
	return c.JSON(http.StatusBadRequest, apierrors.Envelope{Error: apiErr})
}
