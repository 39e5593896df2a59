package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/config"
)

// MockHTTPClient implements HTTPClient for testing
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		APIKey:    "test-key",
		BaseURL:   "https://bedrock.example.com",
		Model:     "us.amazon.nova-pro-v1:0",
		MaxTokens: 2000,
		Timeout:   time.Second * 5,
	}
}

func jsonResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestConverseSuccess(t *testing.T) {
	var capturedRequest *http.Request
	var capturedBody []byte

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			capturedRequest = req
			capturedBody, _ = io.ReadAll(req.Body)
			return jsonResponse(http.StatusOK, `{
				"output": {"message": {"role": "assistant", "content": [{"text": "Hello"}, {"text": " world"}]}},
				"stopReason": "end_turn",
				"usage": {"inputTokens": 10, "outputTokens": 2}
			}`), nil
		},
	}

	client := New(testLLMConfig(), WithHTTPClient(mockClient))

	text, err := client.Converse(context.Background(), &Request{
		System:      "You are a sustainability expert.",
		Message:     "Which region is greenest?",
		Temperature: 0.1,
	})
	if err != nil {
		t.Fatalf("Converse() returned error: %v", err)
	}
	if text != "Hello world" {
		t.Errorf("Converse() returned %q, expected %q", text, "Hello world")
	}

	expectedURL := "https://bedrock.example.com/model/us.amazon.nova-pro-v1:0/converse"
	if capturedRequest.URL.String() != expectedURL {
		t.Errorf("Request URL %q, expected %q", capturedRequest.URL.String(), expectedURL)
	}
	if capturedRequest.Method != http.MethodPost {
		t.Errorf("Request method %q, expected POST", capturedRequest.Method)
	}
	if auth := capturedRequest.Header.Get("Authorization"); auth != "Bearer test-key" {
		t.Errorf("Authorization header %q, expected Bearer test-key", auth)
	}

	var body converseRequest
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("Failed to decode captured body: %v", err)
	}
	if len(body.System) != 1 || body.System[0].Text != "You are a sustainability expert." {
		t.Errorf("Unexpected system prompt: %+v", body.System)
	}
	if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
		t.Fatalf("Unexpected messages: %+v", body.Messages)
	}
	if body.Messages[0].Content[0].Text != "Which region is greenest?" {
		t.Errorf("Unexpected message text: %q", body.Messages[0].Content[0].Text)
	}
	if body.InferenceConfig.MaxTokens != 2000 {
		t.Errorf("Expected configured default maxTokens 2000, got %d", body.InferenceConfig.MaxTokens)
	}
	if body.InferenceConfig.Temperature != 0.1 {
		t.Errorf("Expected temperature 0.1, got %v", body.InferenceConfig.Temperature)
	}
}

func TestConverseEmptyMessage(t *testing.T) {
	client := New(testLLMConfig())

	if _, err := client.Converse(context.Background(), &Request{}); err == nil {
		t.Error("Expected error for empty message")
	}
	if _, err := client.Converse(context.Background(), nil); err == nil {
		t.Error("Expected error for nil request")
	}
}

func TestConverseRequestShaping(t *testing.T) {
	var capturedBody []byte

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			capturedBody, _ = io.ReadAll(req.Body)
			return jsonResponse(http.StatusOK, `{
				"output": {"message": {"content": [{"text": "ok"}]}}
			}`), nil
		},
	}

	client := New(testLLMConfig(), WithHTTPClient(mockClient))

	// Zero temperature and no system prompt must be omitted from the payload
	if _, err := client.Converse(context.Background(), &Request{Message: "hi", MaxTokens: 200}); err != nil {
		t.Fatalf("Converse() returned error: %v", err)
	}

	raw := string(capturedBody)
	if strings.Contains(raw, "temperature") {
		t.Errorf("Expected temperature to be omitted, body: %s", raw)
	}
	if strings.Contains(raw, "system") {
		t.Errorf("Expected system to be omitted, body: %s", raw)
	}

	var body converseRequest
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("Failed to decode captured body: %v", err)
	}
	if body.InferenceConfig.MaxTokens != 200 {
		t.Errorf("Expected maxTokens override 200, got %d", body.InferenceConfig.MaxTokens)
	}
}

func TestConverseHTTPStatusCodes(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		expectedError string
	}{
		{"rate limit", http.StatusTooManyRequests, "rate limit exceeded"},
		{"unauthorized", http.StatusUnauthorized, "invalid API key"},
		{"forbidden", http.StatusForbidden, "invalid API key"},
		{"model not found", http.StatusNotFound, "model not found"},
		{"server error", http.StatusInternalServerError, "unexpected status code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockHTTPClient{
				DoFunc: func(req *http.Request) (*http.Response, error) {
					return jsonResponse(tt.statusCode, `{"message": "boom"}`), nil
				},
			}

			client := New(testLLMConfig(), WithHTTPClient(mockClient))

			_, err := client.Converse(context.Background(), &Request{Message: "hi"})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.expectedError) {
				t.Errorf("Error %q does not contain %q", err.Error(), tt.expectedError)
			}
		})
	}
}

func TestConverseNoContent(t *testing.T) {
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"output": {"message": {"content": []}}}`), nil
		},
	}

	client := New(testLLMConfig(), WithHTTPClient(mockClient))

	_, err := client.Converse(context.Background(), &Request{Message: "hi"})
	if err == nil {
		t.Fatal("Expected error for empty content, got nil")
	}
	if !strings.Contains(err.Error(), "no response content") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestModel(t *testing.T) {
	client := New(testLLMConfig())
	if client.Model() != "us.amazon.nova-pro-v1:0" {
		t.Errorf("Model() returned %q", client.Model())
	}
}
