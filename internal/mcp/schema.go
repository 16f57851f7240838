package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSON Schema type names used in tool input schemas.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeObject  = "object"
)

// Property describes one accepted tool argument.
type Property struct {
	Name        string
	Type        string
	Description string
	// Default is advertised to clients and applied by the dispatcher when the
	// argument is absent. Nil means no default.
	Default  any
	Required bool
}

// ObjectSchema builds an object schema from properties.
//
// It panics if a default cannot be encoded as JSON; schemas are built from
// constants at startup.
func ObjectSchema(props ...Property) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       TypeObject,
		Properties: make(map[string]*jsonschema.Schema, len(props)),
	}

	for _, p := range props {
		prop := &jsonschema.Schema{
			Type:        p.Type,
			Description: p.Description,
		}

		if p.Default != nil {
			raw, err := json.Marshal(p.Default)
			if err != nil {
				panic(fmt.Sprintf("mcp: encode default for %q: %v", p.Name, err))
			}

			prop.Default = raw
		}

		schema.Properties[p.Name] = prop
		schema.PropertyOrder = append(schema.PropertyOrder, p.Name)

		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	return schema
}

// resolveSchema prepares a schema for validation. A nil schema accepts any
// object.
func resolveSchema(schema *jsonschema.Schema) (*jsonschema.Resolved, error) {
	if schema == nil {
		schema = &jsonschema.Schema{Type: TypeObject}
	}

	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true})
	if err != nil {
		return nil, fmt.Errorf("resolve input schema: %w", err)
	}

	return resolved, nil
}
