// Package tools exposes the activity assistant operations as named tools that take
// a JSON object and return a Result. Tools are thin callers of babycare.Service.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/hrygo/nursery/server/service/babycare"
)

// Tool defines the interface for executable tools.
type Tool interface {
	// Name returns the tool's identifier.
	Name() string
	// Description returns the tool description for the LLM.
	Description() string
	// InputType returns the JSON schema of the input object.
	InputType() map[string]any
	// Run executes the tool with the given JSON input.
	Run(ctx context.Context, inputJSON string) (*Result, error)
}

// Confirmer is implemented by destructive tools. Confirmation returns the question
// to ask before the tool is run with confirmed=true.
type Confirmer interface {
	Confirmation(inputJSON string) (string, error)
}

// Result represents the output of a tool execution.
type Result struct {
	CallID  string `json:"call_id,omitempty"`
	Output  string `json:"output"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	// Warning reports a non-fatal problem, such as a timer left behind after finalization.
	Warning string `json:"warning,omitempty"`
}

func ok(output string, data any) *Result {
	return &Result{Output: output, Success: true, Data: data}
}

// Registry manages a collection of tools.
type Registry struct {
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}
	r.tools[name] = tool
	return nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// List returns the registered tools sorted by name.
func (r *Registry) List() []Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]Tool, 0, len(names))
	for _, name := range names {
		list = append(list, r.tools[name])
	}
	return list
}

func (r *Registry) Count() int {
	return len(r.tools)
}

// OpenAIDefinitions exports the tools as OpenAI function-calling declarations.
func (r *Registry) OpenAIDefinitions() []openai.Tool {
	defs := make([]openai.Tool, 0, len(r.tools))
	for _, t := range r.List() {
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.InputType(),
			},
		})
	}
	return defs
}

// funcTool adapts a typed run function to the Tool interface.
type funcTool[In any] struct {
	name        string
	description string
	schema      map[string]any
	run         func(ctx context.Context, in *In) (*Result, error)
}

func (t *funcTool[In]) Name() string              { return t.name }
func (t *funcTool[In]) Description() string       { return t.description }
func (t *funcTool[In]) InputType() map[string]any { return t.schema }

func (t *funcTool[In]) Run(ctx context.Context, inputJSON string) (*Result, error) {
	in, err := decode[In](inputJSON)
	if err != nil {
		return nil, err
	}
	return t.run(ctx, in)
}

// decode parses a tool input. An empty input is an empty object.
func decode[In any](inputJSON string) (*In, error) {
	in := new(In)
	raw := strings.TrimSpace(inputJSON)
	if raw == "" {
		return in, nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(in); err != nil {
		return nil, &babycare.Error{
			Kind:    babycare.KindValidation,
			Message: fmt.Sprintf("Invalid tool input: %v", err),
			Cause:   err,
		}
	}
	return in, nil
}

// text accepts a JSON string or number, since models send amounts either way.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	*t = text(n.String())
	return nil
}

func (t *text) ptr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// Schema helpers.

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func enumProp(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

func integerProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func boolProp(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

func amountProp(description string) map[string]any {
	return map[string]any{"type": []string{"string", "number"}, "description": description}
}

const (
	childNameDescription = "Name of the child, first name or full name. Partial names are matched."
	timeDescription      = "ISO8601 timestamp (2026-01-21T09:00:00Z) or clock time today (14:30). Defaults to now."
	timeframeDescription = "today, recent (default) or last"
)
