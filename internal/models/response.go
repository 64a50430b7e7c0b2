// internal/models/response.go
package models

// QueryStatus is the terminal outcome of a processed query.
type QueryStatus string

const (
	StatusSuccess QueryStatus = "success"
	StatusBlocked QueryStatus = "blocked"
	StatusError   QueryStatus = "error"
)

// AnswerPayload is the five-field answer shape carried by every response,
// including blocked and error paths.
type AnswerPayload struct {
	Answer             string   `json:"answer"`
	Confidence         float64  `json:"confidence"`
	Actions            []string `json:"actions"`
	Category           string   `json:"category"`
	RequiresEscalation bool     `json:"requires_escalation"`
}

// QueryResponse is the envelope returned to callers for every query.
// Error is set only when Status is StatusError.
type QueryResponse struct {
	Status   QueryStatus            `json:"status"`
	Error    string                 `json:"error,omitempty"`
	Data     AnswerPayload          `json:"data"`
	Metadata map[string]interface{} `json:"metadata"`
}

// TokenUsage is the per-call token breakdown reported in success metadata.
type TokenUsage struct {
	Prompt     int `json:"prompt"`
	Completion int `json:"completion"`
	Total      int `json:"total"`
}
