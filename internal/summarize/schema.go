package summarize

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/doculens/SummarizeAPI/internal/domain/docModel"
)

// All six keys are required and shape-checked. A response missing any of them
// is a failed attempt, never a partial success.
const summarySchemaJSON = `{
	"type": "object",
	"required": ["short", "medium", "long", "keyPoints", "mainIdeas", "improvements"],
	"properties": {
		"short":        {"type": "string"},
		"medium":       {"type": "string"},
		"long":         {"type": "string"},
		"keyPoints":    {"type": "array", "items": {"type": "string"}},
		"mainIdeas":    {"type": "array", "items": {"type": "string"}},
		"improvements": {"type": "array", "items": {"type": "string"}}
	}
}`

var summarySchema = jsonschema.MustCompileString("summary.json", summarySchemaJSON)

// ParseSummary turns sanitized model output into a Summary, rejecting
// anything that does not satisfy the schema.
func ParseSummary(raw string) (docModel.Summary, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return docModel.Summary{}, fmt.Errorf("model output is not valid json: %w", err)
	}
	if err := summarySchema.Validate(value); err != nil {
		return docModel.Summary{}, fmt.Errorf("model output failed schema validation: %w", err)
	}

	var summary docModel.Summary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return docModel.Summary{}, fmt.Errorf("decode summary: %w", err)
	}
	return summary, nil
}
