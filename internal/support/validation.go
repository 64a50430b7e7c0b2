// internal/support/validation.go
package support

import (
	"support-helper/internal/common/validation"
)

// answerFieldSchema describes the answer contract field by field. The
// wholesale schema check in decodeAnswer covers the happy path; this one
// lets the repair step judge each field on its own.
func answerFieldSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"answer": {
				Type:        "string",
				Description: "Direct answer to the customer question",
			},
			"confidence": {
				Type:        "number",
				Description: "Model confidence between 0 and 1",
			},
			"actions": {
				Type:        "array",
				Description: "Recommended follow-up actions",
				Items: &validation.Property{
					Type: "string",
				},
			},
			"category": {
				Type:        "string",
				Description: "Question category",
			},
			"requires_escalation": {
				Type:        "boolean",
				Description: "Whether a human should take over",
			},
		},
		Required: []string{"answer", "confidence", "actions", "category", "requires_escalation"},
	}
}
