// internal/safety/models.go
package safety

const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Result is the outcome of a moderation check. A failed moderation call
// fails open: Flagged stays false and Error carries the cause.
type Result struct {
	Flagged        bool               `json:"flagged"`
	Categories     []string           `json:"categories"`
	CategoryScores map[string]float64 `json:"category_scores,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// InjectionResult is the outcome of the prompt injection heuristics.
type InjectionResult struct {
	IsAdversarial    bool     `json:"is_adversarial"`
	DetectedPatterns []string `json:"detected_patterns"`
	RiskLevel        string   `json:"risk_level"`
}

// CombinedResult pairs both checks. ShouldBlock is true when either
// check flags the content.
type CombinedResult struct {
	ShouldBlock bool            `json:"should_block"`
	Moderation  Result          `json:"moderation"`
	Adversarial InjectionResult `json:"adversarial"`
}
