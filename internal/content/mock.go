package content

import (
	"context"
	"fmt"
	"sync"
)

// MockResponse is a canned response for MockGenerator.
type MockResponse struct {
	Text string
	Err  error
}

// MockGenerator returns canned responses in FIFO order and records every
// prompt. With an empty queue it answers with a short placeholder.
type MockGenerator struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []string
}

func NewMockGenerator(responses ...MockResponse) *MockGenerator {
	return &MockGenerator{responses: responses}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if len(m.responses) == 0 {
		return fmt.Sprintf("<p>mock content for a %d character prompt</p>", len(prompt)), nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Text, resp.Err
}

// CallCount returns the number of Generate calls made.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
