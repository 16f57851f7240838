package mcp

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler executes a tool with arguments that have already been decoded,
// defaulted and validated.
//
// Return an error result (see ErrorResult) for expected failures such as a
// failed external program. A returned error is reserved for unexpected faults;
// the dispatcher converts it into an error result as well.
type Handler func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)

// Tool is the single capability every registered tool provides.
type Tool interface {
	// Name returns the unique, stable tool name.
	Name() string
	// Description returns the human-readable description.
	Description() string
	// InputSchema returns the JSON Schema of accepted arguments.
	InputSchema() *jsonschema.Schema
	// Invoke runs the tool.
	Invoke(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)
}

// annotated is implemented by tools that carry presentation metadata.
type annotated interface {
	Title() string
	Annotations() *mcp.ToolAnnotations
}

// DescriptorOption configures a Descriptor during construction.
type DescriptorOption func(*Descriptor)

// WithTitle sets the human-friendly display title.
func WithTitle(title string) DescriptorOption {
	return func(d *Descriptor) {
		d.ToolTitle = title
	}
}

// WithAnnotations sets MCP tool annotations (hints about tool behavior).
func WithAnnotations(annotations *mcp.ToolAnnotations) DescriptorOption {
	return func(d *Descriptor) {
		d.ToolAnnotations = annotations
	}
}

// Descriptor is the declaration of one callable tool.
type Descriptor struct {
	ToolName        string
	ToolTitle       string
	ToolDescription string
	ToolSchema      *jsonschema.Schema
	ToolAnnotations *mcp.ToolAnnotations
	ToolHandler     Handler
}

// Compile-time verification that Descriptor implements Tool.
var (
	_ Tool      = (*Descriptor)(nil)
	_ annotated = (*Descriptor)(nil)
)

// NewDescriptor creates a Descriptor with optional configuration.
func NewDescriptor(
	name, description string,
	inputSchema *jsonschema.Schema,
	handler Handler,
	opts ...DescriptorOption,
) *Descriptor {
	d := &Descriptor{
		ToolName:        name,
		ToolDescription: description,
		ToolSchema:      inputSchema,
		ToolHandler:     handler,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Name implements Tool.
func (d *Descriptor) Name() string { return d.ToolName }

// Description implements Tool.
func (d *Descriptor) Description() string { return d.ToolDescription }

// InputSchema implements Tool.
func (d *Descriptor) InputSchema() *jsonschema.Schema { return d.ToolSchema }

// Title returns the display title, or "" if not set.
func (d *Descriptor) Title() string { return d.ToolTitle }

// Annotations returns the tool annotations, or nil if not set.
func (d *Descriptor) Annotations() *mcp.ToolAnnotations { return d.ToolAnnotations }

// Invoke implements Tool.
func (d *Descriptor) Invoke(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	return d.ToolHandler(ctx, args)
}
