// Package gemini is a REST client for the Gemini generateContent API with
// native function calling and SSE streaming.
package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNoAPIKey is returned when the client is built without a key.
var ErrNoAPIKey = errors.New("gemini: API key not configured")

// Config holds client settings.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	Temperature     float64
	MaxOutputTokens int
	TopP            float64
	TopK            int
	MaxRetries      int
}

// DefaultConfig returns the production settings.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-2.5-flash",
		Timeout:         2 * time.Minute,
		Temperature:     0.7,
		MaxOutputTokens: 2048,
		TopP:            0.8,
		TopK:            40,
		MaxRetries:      3,
	}
}

// Client talks to the Gemini API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client with the given config.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Generate sends one generateContent request and parses text plus any
// function calls out of the first candidate.
func (c *Client) Generate(ctx context.Context, contents []Content, systemPrompt string, tools []Tool) (*Response, error) {
	// Auto-apply timeout if context has no deadline
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	if c.cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	reqBody := c.buildRequest(contents, systemPrompt, tools)
	c.logger.Debug("gemini request",
		zap.String("model", c.cfg.Model),
		zap.Int("contents", len(contents)),
		zap.Int("tools", len(tools)))

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

	var lastErr error
	for i := 0; i <= c.cfg.MaxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(i-1)) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, retry, err := c.post(ctx, url, reqBody)
		if err != nil {
			if !retry {
				return nil, err
			}
			lastErr = err
			continue
		}

		var parsed generateResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		if parsed.Error != nil {
			return nil, fmt.Errorf("API error: %s", parsed.Error.Message)
		}
		if len(parsed.Candidates) == 0 {
			return nil, errors.New("no completion returned")
		}

		resp := extractResponse(&parsed)
		c.logger.Debug("gemini response",
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("text_len", len(resp.Text)),
			zap.Int("function_calls", len(resp.FunctionCalls)),
			zap.String("finish_reason", resp.FinishReason))
		return resp, nil
	}

	c.logger.Error("gemini request exhausted retries",
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(lastErr))
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// GenerateStream sends a streamGenerateContent request and emits text deltas
// on the returned channel. Both channels close when the stream ends; a
// failure arrives on the error channel.
func (c *Client) GenerateStream(ctx context.Context, contents []Content, systemPrompt string, tools []Tool) (<-chan string, <-chan error) {
	textCh := make(chan string, 100)
	errCh := make(chan error, 1)

	go func() {
		defer close(textCh)
		defer close(errCh)

		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
			defer cancel()
		}

		if c.cfg.APIKey == "" {
			errCh <- ErrNoAPIKey
			return
		}

		reqBody := c.buildRequest(contents, systemPrompt, tools)
		url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

		var lastErr error
		for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
			if attempt > 0 {
				select {
				case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}

			payload, err := json.Marshal(reqBody)
			if err != nil {
				errCh <- fmt.Errorf("failed to marshal request: %w", err)
				return
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
			if err != nil {
				errCh <- fmt.Errorf("failed to create request: %w", err)
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "text/event-stream")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				lastErr = fmt.Errorf("request failed: %w", err)
				continue
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				lastErr = fmt.Errorf("rate limit exceeded (429): %s", strings.TrimSpace(string(body)))
				continue
			}
			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				errCh <- fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
				return
			}

			if err := c.scanSSE(ctx, resp.Body, textCh); err != nil {
				errCh <- err
			}
			resp.Body.Close()
			return
		}

		errCh <- fmt.Errorf("max retries exceeded: %w", lastErr)
	}()

	return textCh, errCh
}

// ValidateConnection makes a minimal request and reports whether the API
// answered with text.
func (c *Client) ValidateConnection(ctx context.Context) bool {
	resp, err := c.Generate(ctx, []Content{
		{Role: "user", Parts: []Part{{Text: "Hello"}}},
	}, "", nil)
	if err != nil {
		c.logger.Warn("connection validation failed", zap.Error(err))
		return false
	}
	return resp.Text != ""
}

func (c *Client) buildRequest(contents []Content, systemPrompt string, tools []Tool) generateRequest {
	req := generateRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
			TopP:            c.cfg.TopP,
			TopK:            c.cfg.TopK,
		},
		Tools: tools,
	}
	if systemPrompt != "" {
		req.SystemInstruction = &Content{
			Role:  "system",
			Parts: []Part{{Text: systemPrompt}},
		}
	}
	return req
}

// post performs one request attempt. The second return reports whether the
// failure is retryable (network error or 429).
func (c *Client) post(ctx context.Context, url string, reqBody generateRequest) ([]byte, bool, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, fmt.Errorf("rate limit exceeded (429)")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return body, false, nil
}

func (c *Client) scanSSE(ctx context.Context, body io.Reader, textCh chan<- string) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if chunk.Error != nil {
			return fmt.Errorf("API error: %s", chunk.Error.Message)
		}
		if len(chunk.Candidates) == 0 {
			continue
		}
		for _, part := range chunk.Candidates[0].Content.Parts {
			if part.Text == "" {
				continue
			}
			select {
			case textCh <- part.Text:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

func extractResponse(parsed *generateResponse) *Response {
	resp := &Response{
		FinishReason: parsed.Candidates[0].FinishReason,
		Usage: Usage{
			PromptTokens:    parsed.UsageMetadata.PromptTokenCount,
			CandidateTokens: parsed.UsageMetadata.CandidatesTokenCount,
			TotalTokens:     parsed.UsageMetadata.TotalTokenCount,
		},
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
		if part.FunctionCall != nil && part.FunctionCall.Name != "" {
			call := FunctionCall{Name: part.FunctionCall.Name, Args: part.FunctionCall.Args}
			if call.Args == nil {
				call.Args = map[string]any{}
			}
			resp.FunctionCalls = append(resp.FunctionCalls, call)
		}
	}
	resp.Text = strings.TrimSpace(text.String())
	return resp
}
