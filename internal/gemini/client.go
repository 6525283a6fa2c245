// Package gemini is a minimal HTTP client for the Gemini generative
// language API, covering the two operations this tool needs: token counting
// and text generation.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	maxRetries     = 3
	initialDelay   = 1 * time.Second
)

// Client calls the Gemini REST API for a single model.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	retryDelay time.Duration
	client     *http.Client
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type countRequest struct {
	Contents []content `json:"contents"`
}

type countResponse struct {
	TotalTokens int `json:"totalTokens"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewClient creates a client for the given model, e.g. "gemini-1.5-pro".
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		retryDelay: initialDelay,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// CountTokens measures the model-token cost of the text.
func (c *Client) CountTokens(ctx context.Context, text string) (int, error) {
	if c.apiKey == "" {
		return 0, errors.New("GEMINI_API_KEY is not set")
	}

	req := countRequest{Contents: []content{{Parts: []part{{Text: text}}}}}
	var resp countResponse
	if err := c.post(ctx, ":countTokens", req, &resp); err != nil {
		return 0, err
	}
	return resp.TotalTokens, nil
}

// Generate sends the prompt to the model and returns the generated text.
func (c *Client) Generate(ctx context.Context, promptText string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is not set")
	}

	req := generateRequest{Contents: []content{{Parts: []part{{Text: promptText}}}}}
	var resp generateResponse
	if err := c.post(ctx, ":generateContent", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("gemini returned an empty candidate")
	}
	return text, nil
}

// post sends one API call, retrying with exponential backoff on rate limits
// and server errors. Other failures return immediately.
func (c *Client) post(ctx context.Context, operation string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling gemini request: %w", err)
	}
	url := fmt.Sprintf("%s/v1beta/models/%s%s", c.baseURL, c.model, operation)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * c.retryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("building gemini request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("calling gemini: %w", err)
			continue
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading gemini response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var gerr apiError
			if json.Unmarshal(respBody, &gerr) == nil && gerr.Error.Message != "" {
				lastErr = fmt.Errorf("gemini api error (%d): %s", resp.StatusCode, gerr.Error.Message)
			} else {
				lastErr = fmt.Errorf("gemini api error (%d): %s", resp.StatusCode, string(respBody))
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return lastErr
		}

		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding gemini response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, lastErr)
}
