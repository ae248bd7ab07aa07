package v1

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/nursery/plugin/ai/agent/tools"
	apierrors "github.com/hrygo/nursery/server/internal/errors"
	"github.com/hrygo/nursery/server/internal/observability"
)

// maxToolInput bounds a tool invocation body.
const maxToolInput = 64 << 10

type ToolDescriptor struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	InputSchema  map[string]any `json:"input_schema"`
	Confirmation bool           `json:"requires_confirmation,omitempty"`
}

// ListTools returns every tool with its input schema.
// GET /api/v1/tools
func (s *APIV1Service) ListTools(c echo.Context) error {
	list := s.Registry.List()
	out := make([]ToolDescriptor, 0, len(list))
	for _, t := range list {
		_, confirm := t.(tools.Confirmer)
		out = append(out, ToolDescriptor{
			Name:         t.Name(),
			Description:  t.Description(),
			InputSchema:  t.InputType(),
			Confirmation: confirm,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"tools": out})
}

// InvokeTool runs one tool with the request body as its JSON input.
// POST /api/v1/tools/:name
func (s *APIV1Service) InvokeTool(c echo.Context) error {
	name := c.Param("name")
	tool, ok := s.Registry.Get(name)
	if !ok {
		return writeError(c, apierrors.ToolNotFound(name))
	}
	if reqCtx, ok := observability.FromContext(c.Request().Context()); ok {
		reqCtx.Tool = name
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxToolInput+1))
	if err != nil {
		return badRequest(c, "failed to read request body")
	}
	if len(body) > maxToolInput {
		return badRequest(c, "request body too large")
	}

	result, err := s.Executor.Execute(c.Request().Context(), tool, string(body))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
