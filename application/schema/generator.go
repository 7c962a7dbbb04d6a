// Package schema provides JSON schema generation for the listener wire types.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/scenebridge/scenebridge/domain/entities"
)

// Names of the generated wire schemas.
const (
	ExecuteRequest  = "execute_request"
	ExecuteResponse = "execute_response"
	SceneInfo       = "scene_info_response"
	SceneError      = "scene_error_response"
	NotFound        = "not_found_response"
)

// wireTypes maps schema names to the types they describe.
var wireTypes = map[string]any{
	ExecuteRequest:  entities.ExecuteRequest{},
	ExecuteResponse: entities.ExecuteResponse{},
	SceneInfo:       entities.SceneInfoResponse{},
	SceneError:      entities.SceneErrorResponse{},
	NotFound:        entities.NotFoundResponse{},
}

// GenerateSchema creates a JSON schema (Draft 2020-12) from a Go struct.
// Only fields tagged jsonschema:"required" are required, and unknown
// properties are allowed, matching how the listener decodes bodies.
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct:             true, // Expand struct definitions inline
		Anonymous:                  true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// Names returns the wire schema names in sorted order.
func Names() []string {
	names := make([]string, 0, len(wireTypes))
	for name := range wireTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Wire generates the schema registered under name.
func Wire(name string) ([]byte, error) {
	v, ok := wireTypes[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return GenerateSchema(v)
}

// All generates every wire schema keyed by name.
func All() (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(wireTypes))
	for _, name := range Names() {
		b, err := Wire(name)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		out[name] = b
	}
	return out, nil
}
