// Package schema provides JSON Schema generation for the interpreter wire
// format, so hosts can validate traffic at the call boundary or publish
// the ABI contract alongside their services.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/avm-dev/avm-sdk/domain/entities"
)

// Generate creates a JSON Schema (Draft 2020-12) from a Go struct by
// reflection, with struct definitions expanded inline.
func Generate(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// Response returns the schema of a full interpreter response.
func Response() ([]byte, error) {
	return Generate(&entities.ResponseWire{})
}

// CallRequest returns the schema of one decoded call-request map entry,
// before its arguments and tetraplets strings are parsed a second time.
func CallRequest() ([]byte, error) {
	return Generate(&entities.CallRequestWire{})
}

// InvocationParams returns the schema of the host-side invocation
// parameters object.
func InvocationParams() ([]byte, error) {
	return Generate(&entities.ParamsWire{})
}
