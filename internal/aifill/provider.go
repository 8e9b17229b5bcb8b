// Package aifill implements C6: the AI gap-filler. Given a set of
// missing/low-confidence field names and the raw text, it asks an
// external LLM for values only for those fields, parses strict JSON, and
// assigns each surviving value a baseline confidence (§4.6).
//
// Grounded on the teacher's OpenRouter chat-completion client
// (libs/pdf-extractor/internal/llm/client.go) and its retry/backoff
// wrapper (internal/llm/retry.go), narrowed to a single text-in/text-out
// method per §6's "LLM provider" interface.
package aifill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// Provider is the external LLM collaborator (§6): a single opaque
// text-in/text-out method. The core depends only on this capability.
type Provider interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64, deadline time.Duration) (string, error)
}

// OpenRouterProvider implements Provider against OpenRouter's
// chat-completions endpoint.
type OpenRouterProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenRouterProvider builds a Provider for the given model; an empty
// model falls back to the configured default.
func NewOpenRouterProvider(apiKey, model string) *OpenRouterProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenRouterProvider{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends prompt as a single user message and returns the model's
// raw text reply. Temperature is expected to be 0 by contract (§5
// Determinism); the deadline bounds the whole call including retries.
func (p *OpenRouterProvider) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64, deadline time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	reqBody, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("aifill: marshal request: %w", err)
	}

	resp, err := retryWithBackoff(ctx, func() (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterURL, bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
		httpReq.Header.Set("X-Title", "freight-extraction-engine")
		return p.httpClient.Do(httpReq)
	})
	if err != nil {
		return "", fmt.Errorf("aifill: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("aifill: provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("aifill: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("aifill: no choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}
