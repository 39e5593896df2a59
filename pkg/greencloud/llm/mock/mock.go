package mock

import (
	"context"
	"fmt"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/llm"
)

// MockClient implements the llm.Client interface for testing
type MockClient struct {
	response  string
	errorMode bool

	// LastRequest records the most recent request for assertions
	LastRequest *llm.Request
}

// New creates a new mock client that returns the given response
func New(response string) *MockClient {
	return &MockClient{response: response, errorMode: false}
}

// NewWithError creates a new mock client that returns errors
func NewWithError() *MockClient {
	return &MockClient{errorMode: true}
}

// Converse returns the configured mock response
func (m *MockClient) Converse(ctx context.Context, req *llm.Request) (string, error) {
	m.LastRequest = req
	if m.errorMode {
		return "", fmt.Errorf("bedrock API error (mock)")
	}
	return m.response, nil
}

// Model returns a fixed mock model identifier
func (m *MockClient) Model() string {
	return "mock-model"
}

// MockConverseClient is another mock implementation that provides more control for tests
type MockConverseClient struct {
	ConverseFunc func(ctx context.Context, req *llm.Request) (string, error)
	ModelFunc    func() string
}

// Converse delegates to the mock function
func (m *MockConverseClient) Converse(ctx context.Context, req *llm.Request) (string, error) {
	if m.ConverseFunc != nil {
		return m.ConverseFunc(ctx, req)
	}
	return "", nil
}

// Model delegates to the mock function
func (m *MockConverseClient) Model() string {
	if m.ModelFunc != nil {
		return m.ModelFunc()
	}
	return "mock-model"
}
