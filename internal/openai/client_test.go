package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-helper/internal/common/config"
	"support-helper/internal/common/errors"
	"support-helper/internal/common/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(config.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: 5000,
	}, logger.NewTestLogger(t))
}

func TestCreateChatCompletion_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Len(t, req.Messages, 2)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			ID:    "chatcmpl-123",
			Model: "gpt-4o-mini",
			Choices: []ChatChoice{
				{
					Index:        0,
					Message:      ChatMessage{Role: "assistant", Content: `{"answer": "ok"}`},
					FinishReason: "stop",
				},
			},
			Usage: Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []ChatMessage{
			{Role: "system", Content: "Respond with JSON."},
			{Role: "user", Content: "How do I reset my password?"},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Temperature:    0.7,
		MaxTokens:      500,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"answer": "ok"}`, resp.Choices[0].Message.Content)
	assert.Equal(t, 100, resp.Usage.PromptTokens)
	assert.Equal(t, 50, resp.Usage.CompletionTokens)
	assert.Equal(t, 150, resp.Usage.TotalTokens)
}

func TestCreateChatCompletion_APIError(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		wantRetryable bool
	}{
		{"bad request", http.StatusBadRequest, false},
		{"unauthorized", http.StatusUnauthorized, false},
		{"rate limited", http.StatusTooManyRequests, false},
		{"server error", http.StatusInternalServerError, true},
		{"bad gateway", http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				fmt.Fprintf(w, `{"error": {"message": "upstream failure"}}`)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
				Model:    "gpt-4o-mini",
				Messages: []ChatMessage{{Role: "user", Content: "hi"}},
			})

			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeRemoteCall, errors.CodeOf(err))
			assert.Equal(t, tt.wantRetryable, errors.IsRetryable(err))
			assert.Contains(t, err.Error(), fmt.Sprintf("%d", tt.statusCode))
		})
	}
}

func TestCreateChatCompletion_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatCompletionResponse{ID: "chatcmpl-123"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Contains(t, stdErr.Details, "no choices")
}

func TestCreateChatCompletion_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRemoteCall, errors.CodeOf(err))
}

func TestCreateChatCompletion_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.CreateChatCompletion(ctx, &ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRemoteCall, errors.CodeOf(err))
}

func TestCreateModeration_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/moderations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ModerationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "some nasty text", req.Input)

		json.NewEncoder(w).Encode(ModerationResponse{
			ID:    "modr-123",
			Model: "omni-moderation-latest",
			Results: []ModerationResult{
				{
					Flagged: true,
					Categories: map[string]bool{
						"hate":             true,
						"hate/threatening": true,
						"violence":         false,
					},
					CategoryScores: map[string]float64{
						"hate":             0.91,
						"hate/threatening": 0.42,
						"violence":         0.03,
					},
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.CreateModeration(context.Background(), "some nasty text")

	require.NoError(t, err)
	assert.True(t, result.Flagged)
	assert.True(t, result.Categories["hate/threatening"])
	assert.False(t, result.Categories["violence"])
	assert.InDelta(t, 0.91, result.CategoryScores["hate"], 0.0001)
}

func TestCreateModeration_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ModerationResponse{ID: "modr-123"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.CreateModeration(context.Background(), "anything")

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Contains(t, stdErr.Details, "no results")
}

func TestCreateModeration_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.CreateModeration(context.Background(), "anything")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRemoteCall, errors.CodeOf(err))
	assert.True(t, errors.IsRetryable(err))
}
