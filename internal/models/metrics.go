// internal/models/metrics.go
package models

// MetricsRecord is one per-query usage record. Records are immutable once
// created and only ever appended, never mutated or deleted.
type MetricsRecord struct {
	Timestamp        string   `json:"timestamp"`
	Question         string   `json:"question"`
	Model            string   `json:"model"`
	TokensPrompt     int      `json:"tokens_prompt"`
	TokensCompletion int      `json:"tokens_completion"`
	TotalTokens      int      `json:"total_tokens"`
	LatencyMs        float64  `json:"latency_ms"`
	EstimatedCostUSD float64  `json:"estimated_cost_usd"`
	SafetyFlagged    bool     `json:"safety_flagged"`
	SafetyCategories []string `json:"safety_categories,omitempty"`
}

// Summary holds aggregate statistics over all logged records.
type Summary struct {
	TotalQueries       int     `json:"total_queries"`
	TotalCostUSD       float64 `json:"total_cost_usd"`
	TotalTokens        int     `json:"total_tokens"`
	AvgLatencyMs       float64 `json:"avg_latency_ms"`
	AvgCostPerQuery    float64 `json:"avg_cost_per_query"`
	AvgTokensPerQuery  float64 `json:"avg_tokens_per_query"`
	SafetyFlaggedCount int     `json:"safety_flagged_count"`
	SafetyFlagRate     float64 `json:"safety_flag_rate"`
}
