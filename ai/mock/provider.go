package mock

import "github.com/hyphal/mycelia/ai"

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	generator *MockGenerator
}

// NewMockProvider creates a new mock provider with a default mock generator.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockGenerator() to access the concrete type for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{generator: NewMockGenerator()}
}

// NewMockProviderWithGenerator creates a mock provider with a custom generator.
func NewMockProviderWithGenerator(generator *MockGenerator) ai.Provider {
	return &MockProvider{generator: generator}
}

// Generator returns the mock generator.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockGenerator returns the underlying mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}
