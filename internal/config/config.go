// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"720h"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`

	AI     AIConfig
	Image  ImageConfig
	Speech SpeechConfig
}

// AIConfig holds the chat-completion gateway settings
type AIConfig struct {
	// APIKey is deliberately not required here; a missing key is reported
	// per request so the API can answer with a JSON error.
	APIKey      string        `env:"LOVABLE_API_KEY"`
	GatewayURL  string        `env:"AI_GATEWAY_URL" envDefault:"https://ai.gateway.lovable.dev/v1"`
	Model       string        `env:"AI_MODEL" envDefault:"google/gemini-2.5-flash"`
	Temperature float64       `env:"AI_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int64         `env:"AI_MAX_TOKENS" envDefault:"2048"`
	Timeout     time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"60s"`
}

// ImageConfig holds image generation settings
type ImageConfig struct {
	Model       string `env:"IMAGE_MODEL" envDefault:"google/gemini-2.5-flash-image-preview"`
	Concurrency int    `env:"IMAGE_CONCURRENCY" envDefault:"4"`
	CacheSize   int    `env:"IMAGE_CACHE_SIZE" envDefault:"256"`
	CacheDir    string `env:"IMAGE_CACHE_DIR"` // optional on-disk layer behind the LRU
}

// SpeechConfig holds text-to-speech settings
type SpeechConfig struct {
	APIKey string  `env:"OPENAI_API_KEY"`
	Model  string  `env:"TTS_MODEL" envDefault:"tts-1"`
	Voice  string  `env:"TTS_VOICE" envDefault:"alloy"`
	Speed  float64 `env:"TTS_SPEED" envDefault:"0.9"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasAI returns true if the completion gateway credential is set
func (c *Config) HasAI() bool {
	return c.AI.APIKey != ""
}

// HasSpeech returns true if server-side text-to-speech is configured
func (c *Config) HasSpeech() bool {
	return c.Speech.APIKey != ""
}

// HasDatabase returns true if plan archival has somewhere to write
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// Validate checks value ranges that env parsing cannot express
func (c *Config) Validate() error {
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("AI_TEMPERATURE must be between 0 and 2, got %v", c.AI.Temperature)
	}
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("AI_MAX_TOKENS must be positive, got %d", c.AI.MaxTokens)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("COMPLETION_TIMEOUT must be positive, got %s", c.AI.Timeout)
	}
	if c.Image.Concurrency < 1 {
		return fmt.Errorf("IMAGE_CONCURRENCY must be at least 1, got %d", c.Image.Concurrency)
	}
	if c.Image.CacheSize < 1 {
		return fmt.Errorf("IMAGE_CACHE_SIZE must be at least 1, got %d", c.Image.CacheSize)
	}
	return nil
}
