package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

// DocumentSchema is the JSON Schema of the document DocumentReporter writes.
const DocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["run_id", "tokens", "summary"],
  "properties": {
    "run_id": {"type": "string"},
    "tokens": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["kind", "lexeme", "outcome"],
        "properties": {
          "kind": {"type": "string", "minLength": 1},
          "lexeme": {"type": "string"},
          "outcome": {"enum": ["keyword", "identifier", "error"]}
        }
      }
    },
    "summary": {
      "type": "object",
      "required": ["total", "keywords", "identifiers", "errors", "by_kind"],
      "properties": {
        "total": {"type": "integer", "minimum": 0},
        "keywords": {"type": "integer", "minimum": 0},
        "identifiers": {"type": "integer", "minimum": 0},
        "errors": {"type": "integer", "minimum": 0},
        "by_kind": {
          "type": "object",
          "additionalProperties": {"type": "integer", "minimum": 1}
        }
      }
    }
  }
}`

var documentSchema = jsonschema.Must(DocumentSchema)

// ValidateDocument checks that data is a JSON report document.
func ValidateDocument(ctx context.Context, data []byte) error {
	keyErrs, err := documentSchema.ValidateBytes(ctx, data)
	if err != nil {
		return fmt.Errorf("parsing report: %w", err)
	}
	if len(keyErrs) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(keyErrs))
	for _, ke := range keyErrs {
		msgs = append(msgs, ke.Error())
	}
	return fmt.Errorf("invalid report: %s", strings.Join(msgs, "; "))
}
