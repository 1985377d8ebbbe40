package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"invox/internal/config"
	"invox/internal/domain"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Client calls the Anthropic Messages API to extract structured data from
// one invoice document. It returns the model's raw text reply; Normalize
// turns that into an InvoiceRecord.
type Client struct {
	apiKey    string
	model     string
	endpoint  string
	maxTokens int
	client    *http.Client
}

// NewClient creates an extraction client from config. An empty endpoint
// means the production API; tests point it at an httptest server.
func NewClient(cfg *config.ExtractorConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}
	return &Client{
		apiKey:    cfg.APIKey,
		model:     model,
		endpoint:  endpoint,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: timeout},
	}
}

// Extract sends one document plus the fixed extraction prompt and returns
// the model's raw text reply. Failures to complete the round trip are
// reported as *TransportError.
func (c *Client) Extract(ctx context.Context, doc domain.RawDocument) (string, error) {
	contentBlocks, err := buildContentBlocks(doc)
	if err != nil {
		return "", err
	}

	reqBody := map[string]interface{}{
		"model":      c.model,
		"max_tokens": c.maxTokens,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("calling anthropic API: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		terr := &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", truncate(string(respBody), 500)),
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			terr.RetryAfter = parseRetryAfterHeader(resp.Header.Get("Retry-After"))
		}
		return "", terr
	}

	return replyText(respBody)
}

// buildContentBlocks packages the document (base64) and the instruction
// prompt as Messages API content blocks. PDF only; other media types are
// rejected upstream by pre-flight validation.
func buildContentBlocks(doc domain.RawDocument) ([]map[string]interface{}, error) {
	if doc.ContentType != "application/pdf" {
		return nil, fmt.Errorf("unsupported content type for extraction: %s", doc.ContentType)
	}
	encoded := base64.StdEncoding.EncodeToString(doc.Data)
	return []map[string]interface{}{
		{
			"type": "document",
			"source": map[string]interface{}{
				"type":       "base64",
				"media_type": "application/pdf",
				"data":       encoded,
			},
		},
		{
			"type": "text",
			"text": ExtractionPrompt,
		},
	}, nil
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func replyText(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	if resp.StopReason == "max_tokens" {
		return "", fmt.Errorf("output truncated (stop_reason: max_tokens): response exceeded output token limit")
	}

	return resp.Content[0].Text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
