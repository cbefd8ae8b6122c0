package models

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// stepItemsSchema describes the wire shape of a workflow's items payload.
// Unknown step kinds are rejected here rather than at scan time so malformed
// or truncated payloads never reach the persistence layer.
const stepItemsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "type", "title"],
		"properties": {
			"id":          {"type": "string", "minLength": 1},
			"type":        {"type": "string", "enum": ["STEP"]},
			"title":       {"type": "string"},
			"description": {"type": "string"},
			"screenshot": {
				"type": "object",
				"required": ["url"],
				"properties": {
					"url": {"type": "string", "minLength": 1}
				},
				"additionalProperties": false
			}
		},
		"additionalProperties": false
	}
}`

var itemsSchemaLoader = gojsonschema.NewStringLoader(stepItemsSchema)

// ValidateItemsJSON validates a raw items payload against the step schema.
func ValidateItemsJSON(payload []byte) error {
	result, err := gojsonschema.Validate(itemsSchemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("failed to validate items payload: %w", err)
	}

	if !result.Valid() {
		var descs []string
		for _, desc := range result.Errors() {
			descs = append(descs, desc.String())
		}

		return fmt.Errorf("invalid items payload: %s", strings.Join(descs, "; "))
	}

	return nil
}
