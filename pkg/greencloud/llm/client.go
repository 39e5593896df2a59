// Package llm provides a client for the Amazon Bedrock Converse API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/config"
)

const defaultMaxTokens = 2000

// Request describes a single model invocation
type Request struct {
	// System is the system prompt, omitted from the request when empty
	System string

	// Message is the user message
	Message string

	// MaxTokens caps the response length, falling back to the configured
	// default when zero
	MaxTokens int

	// Temperature controls sampling randomness, omitted when zero
	Temperature float64
}

// Client defines the interface for model invocations
type Client interface {
	// Converse sends a request to the model and returns the response text
	Converse(ctx context.Context, req *Request) (string, error)

	// Model returns the model identifier in use
	Model() string
}

// HTTPClient interface for making HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption defines a function type for configuring the client
type ClientOption func(*bedrockClient)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *bedrockClient) {
		c.httpClient = httpClient
	}
}

type bedrockClient struct {
	config     config.LLMConfig
	httpClient HTTPClient
}

// Bedrock Converse API wire format
type contentBlock struct {
	Text string `json:"text"`
}

type converseMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type inferenceConfig struct {
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature,omitempty"`
}

type converseRequest struct {
	System          []contentBlock    `json:"system,omitempty"`
	Messages        []converseMessage `json:"messages"`
	InferenceConfig inferenceConfig   `json:"inferenceConfig"`
}

type converseResponse struct {
	Output struct {
		Message struct {
			Role    string         `json:"role"`
			Content []contentBlock `json:"content"`
		} `json:"message"`
	} `json:"output"`
	StopReason string `json:"stopReason"`
	Usage      struct {
		InputTokens  int `json:"inputTokens"`
		OutputTokens int `json:"outputTokens"`
	} `json:"usage"`
	// Message carries the error detail on non-200 responses
	Message string `json:"message"`
}

// New creates a new Bedrock Converse client
func New(cfg config.LLMConfig, opts ...ClientOption) Client {
	client := &bedrockClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func (c *bedrockClient) Converse(ctx context.Context, req *Request) (string, error) {
	if req == nil || req.Message == "" {
		return "", fmt.Errorf("message cannot be empty")
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.config.MaxTokens
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	body := converseRequest{
		Messages: []converseMessage{
			{
				Role:    "user",
				Content: []contentBlock{{Text: req.Message}},
			},
		},
		InferenceConfig: inferenceConfig{
			MaxTokens:   maxTokens,
			Temperature: req.Temperature,
		},
	}
	if req.System != "" {
		body.System = []contentBlock{{Text: req.System}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	url := c.config.BaseURL + "/model/" + c.config.Model + "/converse"

	klog.V(2).InfoS("Making Bedrock converse request",
		"model", c.config.Model,
		"maxTokens", maxTokens,
		"hasSystem", req.System != "")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %v", err)
	}

	var result converseResponse
	if err := json.Unmarshal(respBody, &result); err != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// Continue processing
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("rate limit exceeded: %s", result.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("invalid API key: %s", result.Message)
	case http.StatusNotFound:
		return "", fmt.Errorf("model not found: %s", c.config.Model)
	default:
		return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, result.Message)
	}

	if len(result.Output.Message.Content) == 0 {
		return "", fmt.Errorf("no response content returned")
	}

	var text strings.Builder
	for _, block := range result.Output.Message.Content {
		text.WriteString(block.Text)
	}

	klog.V(3).InfoS("Bedrock converse response received",
		"stopReason", result.StopReason,
		"inputTokens", result.Usage.InputTokens,
		"outputTokens", result.Usage.OutputTokens)

	return text.String(), nil
}

func (c *bedrockClient) Model() string {
	return c.config.Model
}
