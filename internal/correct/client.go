package correct

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sentinel errors for client construction and API calls.
var (
	ErrMissingAPIKey = errors.New("correct: missing API key")
	ErrEmptyBaseURL  = errors.New("correct: empty base URL")
	ErrAPIStatus     = errors.New("correct: unexpected API status")
)

// Client defines the contract for the correction backend.
type Client interface {
	// Correct sends a prompt and returns the model's text reply, trimmed.
	Correct(ctx context.Context, prompt string) (string, error)
}

// CohereClient talks to the Cohere v2 chat API.
type CohereClient struct {
	baseURL string
	model   string
	apiKey  string
	httpc   *http.Client
}

// NewCohereClient validates the connection settings and returns a client.
// The API key is required; timeout bounds each request end to end.
func NewCohereClient(baseURL, model, apiKey string, timeout time.Duration) (*CohereClient, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &CohereClient{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Message struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

// Correct submits the prompt as a single user message at temperature zero
// and returns the concatenated text content of the reply.
func (c *CohereClient) Correct(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("correct: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("correct: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("correct: calling API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: %d: %s", ErrAPIStatus, resp.StatusCode, bytes.TrimSpace(detail))
	}

	var reply chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("correct: decoding response: %w", err)
	}

	var b strings.Builder
	for _, part := range reply.Message.Content {
		if part.Type == "text" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// Close releases idle connections held by the underlying HTTP client.
func (c *CohereClient) Close() {
	c.httpc.CloseIdleConnections()
}

// Compile-time interface compliance check.
var _ Client = (*CohereClient)(nil)
