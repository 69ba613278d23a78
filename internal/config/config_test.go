package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOVABLE_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 0.7, cfg.AI.Temperature)
	assert.Equal(t, int64(2048), cfg.AI.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "https://ai.gateway.lovable.dev/v1", cfg.AI.GatewayURL)
	assert.Equal(t, 4, cfg.Image.Concurrency)
	assert.False(t, cfg.HasAI(), "missing key is a request-time error, not a load-time one")
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOVABLE_API_KEY", "test_key")
	t.Setenv("AI_TEMPERATURE", "0.2")
	t.Setenv("AI_MAX_TOKENS", "512")
	t.Setenv("COMPLETION_TIMEOUT", "15s")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DATABASE_URL", "postgres://localhost/fitcoach")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test_key", cfg.AI.APIKey)
	assert.Equal(t, 0.2, cfg.AI.Temperature)
	assert.Equal(t, int64(512), cfg.AI.MaxTokens)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
	assert.True(t, cfg.HasAI())
	assert.True(t, cfg.HasSpeech())
	assert.True(t, cfg.HasDatabase())
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("AI_TEMPERATURE", "hot")
	_, err := Load()
	assert.Error(t, err, "expected error for non-numeric AI_TEMPERATURE")

	t.Setenv("AI_TEMPERATURE", "3")
	_, err = Load()
	assert.Error(t, err, "expected error for AI_TEMPERATURE out of range")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		AI:    AIConfig{Temperature: 0.7, MaxTokens: 2048, Timeout: time.Minute},
		Image: ImageConfig{Concurrency: 1, CacheSize: 1},
	}
	require.NoError(t, cfg.Validate())

	cfg.AI.MaxTokens = 0
	assert.Error(t, cfg.Validate())

	cfg.AI.MaxTokens = 10
	cfg.AI.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg.AI.Timeout = time.Second
	cfg.Image.Concurrency = 0
	assert.Error(t, cfg.Validate())
}
