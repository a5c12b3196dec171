package api

import (
	"context"
	"sync"

	"github.com/moecatalyst/moechat/internal/models"
)

// MockClient is a mock implementation of ChatClient for testing
type MockClient struct {
	mu sync.Mutex

	// Mock return values
	Reply   string
	Err     error
	Panic   any
	Replies []string

	// Block, when set, holds Send until it is closed or ctx ends
	Block chan struct{}

	// Call recorders
	Calls       int
	Prompts     []string
	CloseCalled bool
}

// Ensure MockClient implements ChatClient
var _ ChatClient = (*MockClient)(nil)

// NewMockClient returns a mock answering every message with reply
func NewMockClient(reply string) *MockClient {
	return &MockClient{Reply: reply}
}

// Send records the prompt and returns the configured reply or error
func (m *MockClient) Send(ctx context.Context, message string) (string, error) {
	m.mu.Lock()
	m.Calls++
	m.Prompts = append(m.Prompts, message)
	block := m.Block
	call := m.Calls
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Panic != nil {
		panic(m.Panic)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if call <= len(m.Replies) {
		return m.Replies[call-1], nil
	}
	return m.Reply, nil
}

// Endpoint returns the default endpoint
func (m *MockClient) Endpoint() string {
	return models.DefaultEndpoint
}

// Close records the call
func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// CallCount returns the number of Send calls so far
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// LastPrompt returns the most recent message passed to Send
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
