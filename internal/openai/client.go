// internal/openai/client.go
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"support-helper/internal/common/config"
	"support-helper/internal/common/errors"
	httpclient "support-helper/internal/common/http"
	"support-helper/internal/common/logger"
)

// Client talks to the chat completion and moderation endpoints. Only the
// request surface this service needs is modeled.
type Client struct {
	apiKey  string
	baseURL string
	http    *httpclient.Client
	logger  logger.Logger
}

func NewClient(cfg config.OpenAIConfig, log logger.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpclient.NewClient(config.GetDuration(cfg.Timeout)),
		logger: log.WithFields(map[string]interface{}{
			"component": "openai",
		}),
	}
}

func (c *Client) CreateChatCompletion(ctx context.Context, request *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	c.logger.Debug("sending chat completion request", map[string]interface{}{
		"model":    request.Model,
		"messages": len(request.Messages),
	})

	var completion ChatCompletionResponse
	if err := c.post(ctx, "/chat/completions", request, &completion); err != nil {
		return nil, err
	}

	if len(completion.Choices) == 0 {
		return nil, errors.NewRemoteCallError("openai", fmt.Errorf("completion returned no choices"))
	}

	return &completion, nil
}

// CreateModeration classifies a single input and returns the first result.
func (c *Client) CreateModeration(ctx context.Context, input string) (*ModerationResult, error) {
	c.logger.Debug("sending moderation request", map[string]interface{}{
		"input_length": len(input),
	})

	var moderation ModerationResponse
	if err := c.post(ctx, "/moderations", &ModerationRequest{Input: input}, &moderation); err != nil {
		return nil, err
	}

	if len(moderation.Results) == 0 {
		return nil, errors.NewRemoteCallError("openai", fmt.Errorf("moderation returned no results"))
	}

	return &moderation.Results[0], nil
}

// post runs one authenticated round trip and decodes the 200 body into out.
func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	status, body, err := c.http.PostJSON(ctx, c.baseURL+path, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, payload)
	if err != nil {
		return errors.NewRemoteCallError("openai", err)
	}

	if status != http.StatusOK {
		return errors.NewRemoteStatusError("openai", status, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewRemoteCallError("openai", fmt.Errorf("unmarshal response: %w", err))
	}

	return nil
}
