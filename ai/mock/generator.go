package mock

import (
	"context"
	"sync"

	"github.com/hyphal/mycelia/ai"
)

// MockGenerator is a test double for ai.Generator. Replies can be
// scripted with Enqueue or fully overridden via GenerateFunc.
type MockGenerator struct {
	// GenerateFunc overrides the default behavior when set.
	GenerateFunc func(ctx context.Context, messages []ai.Message, systemPrompt string) (string, error)

	mu           sync.Mutex
	queued       []string
	callCount    int
	lastMessages []ai.Message
	lastSystem   string
}

// NewMockGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Enqueue schedules replies returned by subsequent Generate calls, in
// order. When the queue empties the default reply is used again.
func (m *MockGenerator) Enqueue(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, replies...)
}

// Generate returns the next queued reply, or a canned default.
func (m *MockGenerator) Generate(ctx context.Context, messages []ai.Message, systemPrompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastMessages = append([]ai.Message(nil), messages...)
	m.lastSystem = systemPrompt

	var queued string
	hasQueued := len(m.queued) > 0
	if hasQueued {
		queued = m.queued[0]
		m.queued = m.queued[1:]
	}
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages, systemPrompt)
	}
	if hasQueued {
		return queued, nil
	}
	return "This is a mock reply.", nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastMessages returns the messages passed to the most recent call.
func (m *MockGenerator) LastMessages() []ai.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMessages
}

// LastSystemPrompt returns the system prompt from the most recent call.
func (m *MockGenerator) LastSystemPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSystem
}

// Reset clears the queue, call count, and custom functions.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = nil
	m.callCount = 0
	m.lastMessages = nil
	m.lastSystem = ""
	m.GenerateFunc = nil
}
