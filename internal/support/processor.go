// internal/support/processor.go
package support

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"support-helper/internal/common/config"
	"support-helper/internal/common/errors"
	"support-helper/internal/common/logger"
	"support-helper/internal/common/metrics"
	"support-helper/internal/models"
	"support-helper/internal/openai"
	"support-helper/internal/pricing"
	"support-helper/internal/prompt"
	"support-helper/internal/safety"
)

const (
	systemMessage = "You are a helpful customer support assistant. Always respond with valid JSON."

	completionTokenLimit = 500

	// questionLogLimit caps the question text kept in metrics records.
	questionLogLimit = 100
)

// newerModelPrefixes marks model families that reject max_tokens and only
// accept temperature=1.
var newerModelPrefixes = []string{"gpt-5", "o1", "o3", "o4"}

// CompletionClient is the slice of the API client the processor needs.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, request *openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

// SafetyChecker gates questions before any completion call is made.
type SafetyChecker interface {
	CheckContent(ctx context.Context, text string) safety.Result
}

// MetricsSink records one entry per answered or blocked query.
type MetricsSink interface {
	Append(record models.MetricsRecord) error
}

// Processor turns a raw user question into a structured support answer:
// safety gate, prompt formatting, completion call, schema repair, and
// per-query metrics logging.
type Processor struct {
	model         string
	safetyEnabled bool
	client        CompletionClient
	checker       SafetyChecker
	formatter     *prompt.Formatter
	store         MetricsSink
	logger        logger.Logger
	errHandler    *errors.ErrorHandler
}

func New(cfg *config.Config, client CompletionClient, checker SafetyChecker, store MetricsSink, log logger.Logger) *Processor {
	formatter, err := prompt.Load(cfg.Prompt.TemplatePath)
	if err != nil {
		log.Warn("falling back to embedded prompt template", map[string]interface{}{
			"path":  cfg.Prompt.TemplatePath,
			"error": err.Error(),
		})
		formatter = prompt.NewDefault()
	}

	componentLog := log.WithFields(map[string]interface{}{
		"component": "support",
	})

	return &Processor{
		model:         cfg.OpenAI.Model,
		safetyEnabled: cfg.Safety.Enabled,
		client:        client,
		checker:       checker,
		formatter:     formatter,
		store:         store,
		logger:        componentLog,
		errHandler:    errors.NewErrorHandler(componentLog),
	}
}

// Process answers one question. Every outcome is an envelope: flagged
// input returns a blocked response without touching the completion
// endpoint, and remote or parse failures return an error response rather
// than an error value.
func (p *Processor) Process(ctx context.Context, question string) *models.QueryResponse {
	start := time.Now()
	requestID := uuid.NewString()
	log := p.logger.WithFields(map[string]interface{}{
		"request_id": requestID,
	})

	log.Info("processing query", map[string]interface{}{
		"question_length": len(question),
		"model":           p.model,
	})

	if p.safetyEnabled {
		safetyResult := p.checker.CheckContent(ctx, question)
		if safetyResult.Flagged {
			return p.blockedResponse(log, question, safetyResult, start)
		}
	}

	request := &openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: p.formatter.Format(question)},
		},
		ResponseFormat: &openai.ResponseFormat{Type: "json_object"},
	}

	if isNewerModel(p.model) {
		request.MaxCompletionTokens = completionTokenLimit
		request.Temperature = 1
	} else {
		request.MaxTokens = completionTokenLimit
		request.Temperature = 0.7
	}

	completion, err := p.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return p.errorResponse(requestID, err, start)
	}

	// Latency covers the gate and the remote call, not response parsing.
	latencyMs := round(durationMs(time.Since(start)), 2)

	usage := completion.Usage
	cost := round(pricing.Cost(p.model, usage.PromptTokens, usage.CompletionTokens), 6)

	payload, repaired, err := decodeAnswer(completion.Choices[0].Message.Content)
	if err != nil {
		return p.errorResponse(requestID, err, start)
	}
	if repaired {
		log.Warn("model output missing required fields, repaired with defaults", map[string]interface{}{
			"model": p.model,
		})
	}

	record := models.MetricsRecord{
		Timestamp:        time.Now().UTC().Format(time.RFC3339Nano),
		Question:         truncate(question, questionLogLimit),
		Model:            p.model,
		TokensPrompt:     usage.PromptTokens,
		TokensCompletion: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		LatencyMs:        latencyMs,
		EstimatedCostUSD: cost,
		SafetyFlagged:    false,
	}
	if err := p.store.Append(record); err != nil {
		return p.errorResponse(requestID, err, start)
	}

	metrics.QueriesCompleted.WithLabelValues(p.model).Inc()
	metrics.QueryDuration.WithLabelValues(p.model).Observe(time.Since(start).Seconds())
	metrics.QueryCost.WithLabelValues(p.model).Observe(cost)

	log.Info("query completed", map[string]interface{}{
		"latency_ms":         latencyMs,
		"total_tokens":       usage.TotalTokens,
		"estimated_cost_usd": cost,
		"repaired":           repaired,
	})

	return &models.QueryResponse{
		Status: models.StatusSuccess,
		Data:   payload,
		Metadata: map[string]interface{}{
			"model": p.model,
			"tokens": models.TokenUsage{
				Prompt:     usage.PromptTokens,
				Completion: usage.CompletionTokens,
				Total:      usage.TotalTokens,
			},
			"latency_ms":         latencyMs,
			"estimated_cost_usd": cost,
		},
	}
}

func (p *Processor) blockedResponse(log logger.Logger, question string, safetyResult safety.Result, start time.Time) *models.QueryResponse {
	latencyMs := round(durationMs(time.Since(start)), 2)

	record := models.MetricsRecord{
		Timestamp:        time.Now().UTC().Format(time.RFC3339Nano),
		Question:         truncate(question, questionLogLimit),
		Model:            "moderation",
		LatencyMs:        latencyMs,
		SafetyFlagged:    true,
		SafetyCategories: safetyResult.Categories,
	}
	if err := p.store.Append(record); err != nil {
		log.Error("failed to log blocked query metrics", map[string]interface{}{
			"error": err.Error(),
		})
	}

	category := "other"
	if len(safetyResult.Categories) > 0 {
		category = safetyResult.Categories[0]
	}
	metrics.QueriesBlocked.WithLabelValues(category).Inc()

	log.Warn("query blocked by moderation", map[string]interface{}{
		"categories": safetyResult.Categories,
		"latency_ms": latencyMs,
	})

	return &models.QueryResponse{
		Status: models.StatusBlocked,
		Data:   blockedAnswer(),
		Metadata: map[string]interface{}{
			"safety_flagged":     true,
			"flagged_categories": safetyResult.Categories,
			"latency_ms":         latencyMs,
		},
	}
}

func (p *Processor) errorResponse(requestID string, cause error, start time.Time) *models.QueryResponse {
	latencyMs := round(durationMs(time.Since(start)), 2)

	metrics.QueriesFailed.WithLabelValues(p.model, string(errors.CodeOf(cause))).Inc()

	message := p.errHandler.HandleFailure(cause, map[string]interface{}{
		"request_id": requestID,
		"latency_ms": latencyMs,
	})

	// No metrics record here: only answered and blocked queries are logged.
	return &models.QueryResponse{
		Status: models.StatusError,
		Error:  message,
		Data:   errorAnswer(),
		Metadata: map[string]interface{}{
			"latency_ms": latencyMs,
		},
	}
}

func isNewerModel(model string) bool {
	for _, prefix := range newerModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
