package mcp

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bjkemp/pocket-tts/internal/errors"
)

// Registry is an ordered, immutable collection of tools.
//
// It is built once at startup and only read afterwards, so it is safe for
// concurrent use without locking.
type Registry struct {
	entries []*entry
	index   map[string]*entry
}

// entry pairs a tool with its resolved input schema.
type entry struct {
	tool     Tool
	resolved *jsonschema.Resolved
}

// NewRegistry creates a registry holding tools in the given order.
// It fails on an empty or duplicate name, a nil handler, or an input schema
// that cannot be resolved.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		entries: make([]*entry, 0, len(tools)),
		index:   make(map[string]*entry, len(tools)),
	}

	for _, t := range tools {
		if t == nil {
			return nil, errors.ErrNilHandler
		}

		name := t.Name()
		if name == "" {
			return nil, errors.ErrEmptyToolName
		}

		if d, ok := t.(*Descriptor); ok && d.ToolHandler == nil {
			return nil, fmt.Errorf("register %s: %w", name, errors.ErrNilHandler)
		}

		if _, exists := r.index[name]; exists {
			return nil, &errors.DuplicateToolError{Name: name}
		}

		resolved, err := resolveSchema(t.InputSchema())
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}

		e := &entry{tool: t, resolved: resolved}
		r.entries = append(r.entries, e)
		r.index[name] = e
	}

	return r, nil
}

// List returns the advertised definition of every tool in registration
// order. Handlers are not part of the definition.
func (r *Registry) List() []*mcp.Tool {
	result := make([]*mcp.Tool, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, definition(e.tool))
	}

	return result
}

// Find returns the tool registered under name.
func (r *Registry) Find(name string) (Tool, bool) {
	e, ok := r.index[name]
	if !ok {
		return nil, false
	}

	return e.tool, true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) lookup(name string) (*entry, bool) {
	e, ok := r.index[name]

	return e, ok
}

// definition converts a tool into its MCP protocol form.
func definition(t Tool) *mcp.Tool {
	schema := t.InputSchema()
	if schema == nil {
		schema = &jsonschema.Schema{Type: TypeObject}
	}

	def := &mcp.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: schema,
	}

	if a, ok := t.(annotated); ok {
		def.Title = a.Title()
		def.Annotations = a.Annotations()
	}

	return def
}
