// internal/support/answer.go
package support

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"

	"support-helper/internal/common/errors"
	"support-helper/internal/common/validation"
	"support-helper/internal/models"
)

// answerSchema mirrors the response contract the prompt gives the model.
const answerSchema = `{
  "type": "object",
  "required": ["answer", "confidence", "actions", "category", "requires_escalation"],
  "properties": {
    "answer": {"type": "string"},
    "confidence": {"type": "number"},
    "actions": {"type": "array", "items": {"type": "string"}},
    "category": {"type": "string"},
    "requires_escalation": {"type": "boolean"}
  }
}`

var answerSchemaLoader = gojsonschema.NewStringLoader(answerSchema)

// decodeAnswer parses model output into an AnswerPayload. Output that is
// not valid JSON is an error; output missing required fields is repaired
// field by field and reported through the second return value.
func decodeAnswer(raw string) (models.AnswerPayload, bool, error) {
	var payload models.AnswerPayload

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return payload, false, errors.NewJSONDecodeError(err)
	}

	result, err := gojsonschema.Validate(answerSchemaLoader, gojsonschema.NewStringLoader(raw))
	if err == nil && result.Valid() {
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			return payload, false, nil
		}
	}

	return repairAnswer(fields), true, nil
}

// repairAnswer backfills missing or unusable fields with fixed defaults.
// Fields the model did provide are kept untouched.
func repairAnswer(fields map[string]interface{}) models.AnswerPayload {
	payload := models.AnswerPayload{
		Answer:             "Unable to provide answer",
		Confidence:         0.5,
		Actions:            []string{"Review question with supervisor"},
		Category:           "general",
		RequiresEscalation: true,
	}

	verdict := validation.ValidateInput(fields, answerFieldSchema())
	usable := func(name string) bool {
		_, present := fields[name]
		return present && !verdict.HasErrors(name)
	}

	// Type assertions below are safe: usable fields passed the schema check.
	if usable("answer") {
		payload.Answer = fields["answer"].(string)
	}
	if usable("confidence") {
		payload.Confidence = fields["confidence"].(float64)
	}
	if usable("actions") {
		payload.Actions = toStringSlice(fields["actions"].([]interface{}))
	}
	if usable("category") {
		payload.Category = fields["category"].(string)
	}
	if usable("requires_escalation") {
		payload.RequiresEscalation = fields["requires_escalation"].(bool)
	}

	return payload
}

func toStringSlice(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.(string))
	}
	return out
}

// blockedAnswer replaces model output for queries flagged by moderation.
func blockedAnswer() models.AnswerPayload {
	return models.AnswerPayload{
		Answer:     "This query has been flagged by our content moderation system.",
		Confidence: 1.0,
		Actions: []string{
			"Review content policy with user",
			"Escalate to content moderation team",
			"Document incident",
		},
		Category:           "policy_violation",
		RequiresEscalation: true,
	}
}

// errorAnswer replaces model output when the completion call or its
// parsing fails.
func errorAnswer() models.AnswerPayload {
	return models.AnswerPayload{
		Answer:             "An error occurred processing your request.",
		Confidence:         0.0,
		Actions:            []string{"Retry request", "Contact technical support"},
		Category:           "system_error",
		RequiresEscalation: true,
	}
}
