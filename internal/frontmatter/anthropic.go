// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/spokeyjoe/kindlenotes2md/pkg/types"
)

const defaultBaseURL = "https://api.anthropic.com"

// Client calls the Anthropic Messages API to generate frontmatter content.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ Generator = (*Client)(nil)

// NewClient builds a Client from the AI configuration. The HTTP client's
// timeout bounds the whole call so the pipeline never stalls on the API.
func NewClient(cfg types.AIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate asks the API for tags and a description for the given title and
// highlight sample. Any transport failure, non-200 status, or response that
// does not decode to the expected JSON object is returned as an error.
func (c *Client) Generate(ctx context.Context, title, sample string) (types.Frontmatter, error) {
	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 300,
		Messages: []anthropicMessage{
			{Role: "user", Content: BuildPrompt(title, sample)},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return types.Frontmatter{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return types.Frontmatter{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return types.Frontmatter{}, fmt.Errorf("anthropic api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return types.Frontmatter{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return types.Frontmatter{}, fmt.Errorf("anthropic api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return types.Frontmatter{}, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return types.Frontmatter{}, fmt.Errorf("anthropic error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return types.Frontmatter{}, fmt.Errorf("empty response from anthropic")
	}

	text := stripCodeBlock(apiResp.Content[0].Text)

	var fm types.Frontmatter
	if err := json.Unmarshal([]byte(text), &fm); err != nil {
		return types.Frontmatter{}, fmt.Errorf("parse frontmatter json: %w (raw: %s)", err, truncate(text, 200))
	}
	if len(fm.Tags) == 0 || fm.Description == "" {
		return types.Frontmatter{}, fmt.Errorf("incomplete frontmatter in response: %s", truncate(text, 200))
	}
	return fm, nil
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// stripCodeBlock removes a surrounding Markdown code fence, which the model
// sometimes adds despite being told not to.
func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
