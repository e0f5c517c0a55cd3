// internal/api/schema.go
package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// queryRequestSchema validates the assistant query payload before it reaches
// the pipeline. Anything outside this shape is rejected with REQUEST_INVALID.
const queryRequestSchema = `{
	"type": "object",
	"properties": {
		"query": {
			"type": "string",
			"minLength": 1,
			"maxLength": 2000
		}
	},
	"required": ["query"],
	"additionalProperties": false
}`

var querySchema = gojsonschema.NewStringLoader(queryRequestSchema)

func validateQueryRequest(body []byte) error {
	result, err := gojsonschema.Validate(querySchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("request is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("request validation failed: %s", strings.Join(issues, "; "))
}
