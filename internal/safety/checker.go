// internal/safety/checker.go
package safety

import (
	"context"
	"math"
	"strings"

	"support-helper/internal/common/logger"
	"support-helper/internal/common/metrics"
	"support-helper/internal/openai"
)

// ModerationClient is the slice of the API client the checker needs.
type ModerationClient interface {
	CreateModeration(ctx context.Context, input string) (*openai.ModerationResult, error)
}

// blockingCategories are the moderation categories that trigger blocking,
// listed by their wire names in the order they are reported.
var blockingCategories = []string{
	"hate",
	"hate/threatening",
	"self-harm",
	"sexual",
	"sexual/minors",
	"violence",
	"violence/graphic",
}

// injectionPatterns are substrings that commonly mark prompt injection
// attempts. Matching is case-insensitive.
var injectionPatterns = []string{
	"ignore previous",
	"ignore all previous",
	"disregard",
	"forget your instructions",
	"new instructions",
	"you are now",
	"system:",
	"act as",
	"pretend you are",
	"override",
}

type Checker struct {
	client ModerationClient
	logger logger.Logger
}

func NewChecker(client ModerationClient, log logger.Logger) *Checker {
	return &Checker{
		client: client,
		logger: log.WithFields(map[string]interface{}{
			"component": "safety",
		}),
	}
}

// CheckContent runs the input through the moderation endpoint. When the
// call fails the content is not blocked; the error is carried in the
// result instead.
func (c *Checker) CheckContent(ctx context.Context, text string) Result {
	moderation, err := c.client.CreateModeration(ctx, text)
	if err != nil {
		c.logger.WithError(err).Warn("moderation check failed, not blocking", nil)
		metrics.ModerationChecks.WithLabelValues("error").Inc()
		return Result{
			Flagged:    false,
			Categories: []string{},
			Error:      err.Error(),
		}
	}

	flagged := []string{}
	if moderation.Flagged {
		for _, category := range blockingCategories {
			if moderation.Categories[category] {
				flagged = append(flagged, category)
			}
		}
	}

	outcome := "clean"
	if moderation.Flagged {
		outcome = "flagged"
		c.logger.Warn("content flagged by moderation", map[string]interface{}{
			"categories": flagged,
		})
	}
	metrics.ModerationChecks.WithLabelValues(outcome).Inc()

	return Result{
		Flagged:        moderation.Flagged,
		Categories:     flagged,
		CategoryScores: extractScores(moderation.CategoryScores),
	}
}

func extractScores(raw map[string]float64) map[string]float64 {
	scores := make(map[string]float64)
	for _, category := range blockingCategories {
		if score, ok := raw[category]; ok {
			scores[category] = math.Round(score*10000) / 10000
		}
	}
	return scores
}

// DetectInjection applies substring heuristics for prompt manipulation
// attempts. It never calls the API.
func (c *Checker) DetectInjection(text string) InjectionResult {
	textLower := strings.ToLower(text)

	detected := []string{}
	for _, pattern := range injectionPatterns {
		if strings.Contains(textLower, pattern) {
			detected = append(detected, pattern)
		}
	}

	risk := RiskLow
	switch {
	case len(detected) > 2:
		risk = RiskHigh
	case len(detected) > 0:
		risk = RiskMedium
	}

	if len(detected) > 0 {
		metrics.InjectionDetections.WithLabelValues(risk).Inc()
	}

	return InjectionResult{
		IsAdversarial:    len(detected) > 0,
		DetectedPatterns: detected,
		RiskLevel:        risk,
	}
}

// ComprehensiveCheck combines moderation and injection heuristics.
func (c *Checker) ComprehensiveCheck(ctx context.Context, text string) CombinedResult {
	moderation := c.CheckContent(ctx, text)
	adversarial := c.DetectInjection(text)

	return CombinedResult{
		ShouldBlock: moderation.Flagged || adversarial.IsAdversarial,
		Moderation:  moderation,
		Adversarial: adversarial,
	}
}
