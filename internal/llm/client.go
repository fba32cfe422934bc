// Package llm talks to the external text-understanding capability over the
// OpenAI chat-completions wire format, which is compatible with Ollama,
// vLLM, llama.cpp and the hosted providers. The core never trusts this
// package's output blindly: malformed responses are recovered locally.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/config"
	"github.com/spec-kit/triage-service/internal/observability"
)

// Client is a thin chat-completions client bound to one model.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewClient builds a client from configuration.
func NewClient(cfg config.LLMConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		logger:     logger,
		metrics:    metrics,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chat sends one user prompt and returns the model's reply text.
func (c *Client) chat(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat round trip: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, truncate(string(payload), 200))
	}

	var decoded chatResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

// extractJSON recovers a JSON object from free-form model output by slicing
// from the first "{" to the last "}". Models wrap JSON in prose and code
// fences often enough that strict decoding is not an option.
func extractJSON(content string) ([]byte, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	return []byte(content[start : end+1]), true
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
