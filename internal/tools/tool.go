// Package tools defines the callable tools exposed to the model and the
// registry the response generator dispatches through.
package tools

import (
	"context"
	"fmt"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// Result is the outcome of one tool execution. Text goes back to the
// model verbatim; Sources are collected for end-user attribution and
// never shown to the model.
type Result struct {
	Text    string
	Sources []domain.Source
}

// Tool is a capability the model can invoke by name during a
// completion round.
type Tool interface {
	// Definition describes the tool for model planning.
	Definition() driven.ToolDefinition

	// Execute runs the tool with model-supplied arguments. Argument
	// values arrive as decoded JSON, so numbers are float64.
	Execute(ctx context.Context, args map[string]any) (Result, error)
}

// Registry holds the available tools keyed by name.
type Registry struct {
	byName map[string]Tool
	order  []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Tool)}
}

// Register adds a tool. Duplicate names are rejected.
func (r *Registry) Register(tool Tool) error {
	name := tool.Definition().Name
	if name == "" {
		return fmt.Errorf("tool has no name")
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.byName[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Definitions returns all tool definitions in registration order.
func (r *Registry) Definitions() []driven.ToolDefinition {
	defs := make([]driven.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.byName[name].Definition())
	}
	return defs
}

// Execute dispatches one invocation to the named tool.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (Result, error) {
	tool, ok := r.byName[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}
	return tool.Execute(ctx, args)
}

// stringArg extracts an optional string argument.
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg extracts an optional integer argument. JSON decoding delivers
// numbers as float64.
func intArg(args map[string]any, key string) *int {
	switch v := args[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	}
	return nil
}
