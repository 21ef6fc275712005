// Package llm is a minimal client for OpenAI-compatible chat completion
// services. It supports structured JSON-schema output and reports token usage
// for every completion so callers can track cost.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 45 * time.Second
)

// Config configures a Client. Zero values fall back to the OPENAI_* env vars
// and the public OpenAI endpoint.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// Client issues chat completion requests. It performs no retries; failures
// propagate to the caller.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// Usage is the token accounting returned with a completion.
type Usage struct {
	InputTokens  int `json:"prompt_tokens"`
	OutputTokens int `json:"completion_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Completion is a model response plus its token usage.
type Completion struct {
	Content string
	Model   string
	Usage   Usage
}

// NewClient creates a client from cfg, filling gaps from the environment.
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    cfg.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	if c.apiKey == "" {
		c.apiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if c.model == "" {
		c.model = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

// Model returns the model identifier requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Schema is a JSON schema attached to a request as a strict response format.
type Schema struct {
	Name   string
	Schema map[string]any
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat any           `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// Complete sends a single user message and returns the raw text response.
func (c *Client) Complete(ctx context.Context, message string) (*Completion, error) {
	return c.send(ctx, chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: message}},
	})
}

// CompleteStructured sends a single user message with a strict JSON schema
// response format and unmarshals the response into out.
func (c *Client) CompleteStructured(ctx context.Context, message string, schema Schema, out any) (*Completion, error) {
	comp, err := c.send(ctx, chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: message}},
		ResponseFormat: map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   schema.Name,
				"strict": true,
				"schema": schema.Schema,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(comp.Content)
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// Some providers wrap the JSON object in prose.
		if cleaned := extractJSONObject(raw); cleaned != "" {
			if err2 := json.Unmarshal([]byte(cleaned), out); err2 == nil {
				return comp, nil
			}
		}
		return nil, fmt.Errorf("parsing structured response: %w", err)
	}
	return comp, nil
}

func (c *Client) send(ctx context.Context, reqBody chatRequest) (*Completion, error) {
	if c.apiKey == "" {
		return nil, errors.New("API key missing: set OPENAI_API_KEY")
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("completion http %d: %s", resp.StatusCode, truncate(buf.String(), 800))
	}

	var cc chatResponse
	if err := json.Unmarshal(buf.Bytes(), &cc); err != nil {
		return nil, err
	}
	if len(cc.Choices) == 0 {
		return nil, errors.New("no choices returned")
	}
	if refusal := cc.Choices[0].Message.Refusal; refusal != "" {
		return nil, fmt.Errorf("model refused to respond: %s", refusal)
	}

	model := cc.Model
	if model == "" {
		model = c.model
	}
	return &Completion{
		Content: cc.Choices[0].Message.Content,
		Model:   model,
		Usage:   cc.Usage,
	}, nil
}

func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
