/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// OutputSchema reflects the JSON schema for a wire output type (typically
// TriageOutput or ReviewOutput) as an indented JSON string, for embedding
// in a prompt so the model sees the exact shape the validator expects.
func OutputSchema[T any]() string {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	var zero T
	schema := reflector.Reflect(&zero)
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		// Reflection of our own fixed types cannot produce unmarshalable
		// schemas; fail loudly if it ever does.
		panic(err)
	}
	return string(data)
}
