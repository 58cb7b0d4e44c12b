package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Model)
	assert.Positive(t, cfg.MaxTokens)
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithModel("claude-3-5-haiku-latest"),
		WithToken("sk-test"),
		WithMaxTokens(1024),
		WithTemperature(0.2),
	)

	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Model)
	assert.Equal(t, "sk-test", cfg.Token)
	assert.Equal(t, 1024, cfg.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig(WithModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("non positive max tokens", func(t *testing.T) {
		cfg := NewConfig(WithMaxTokens(0))
		assert.Error(t, cfg.Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := NewConfig(WithTemperature(3.1))
		assert.Error(t, cfg.Validate())
	})
}
