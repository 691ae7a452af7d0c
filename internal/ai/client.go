// Package ai talks to an external generative model over its REST surface.
// Two capabilities are consumed: classify text for policy violations and
// generate a reply to a comment as the post's author.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrQuotaExceeded marks a request rejected by the provider's rate limits.
// Callers distinguish it from other transport failures.
var ErrQuotaExceeded = errors.New("ai: request quota exceeded")

// Classification is the parsed outcome of a text-policy check. Result false
// means the check failed; FailedFields names the offending fields.
type Classification struct {
	Result       bool     `json:"result"`
	FailedFields []string `json:"failed_fields"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	logger     *slog.Logger
}

func NewClient(baseURL, model, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		model:      model,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	// The key travels in a header, never in the URL: transport errors quote
	// the full URL and end up in logs.
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ai: model request failed with status %d: %s", resp.StatusCode, raw)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ai: decoding model response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("ai: model returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// Classify sends the field map to the model and parses the JSON verdict out
// of its free-form answer.
func (c *Client) Classify(ctx context.Context, fields map[string]string) (Classification, error) {
	raw, err := c.generateContent(ctx, validationPrompt(fields))
	if err != nil {
		return Classification{}, err
	}

	var classification Classification
	if err := json.Unmarshal([]byte(extractJSON(raw)), &classification); err != nil {
		return Classification{}, fmt.Errorf("ai: parsing classification response: %w", err)
	}
	return classification, nil
}

// GenerateReply produces an answer to a user comment written as the author
// of the post.
func (c *Client) GenerateReply(ctx context.Context, postText, commentText string) (string, error) {
	return c.generateContent(ctx, generationPrompt(postText, commentText))
}
