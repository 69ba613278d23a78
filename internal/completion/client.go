// Package completion calls the hosted chat-completion gateway.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL     = "https://ai.gateway.lovable.dev/v1"
	DefaultModel       = "google/gemini-2.5-flash"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
	DefaultTimeout     = 60 * time.Second
)

var (
	// ErrMissingAPIKey is returned before any request is made when no
	// credential is configured.
	ErrMissingAPIKey = errors.New("LOVABLE_API_KEY not configured")

	// ErrMalformedCompletion means the gateway answered 2xx without usable text.
	ErrMalformedCompletion = errors.New("malformed completion response")
)

// UpstreamError is a non-success answer from the gateway.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Lovable AI error: %d", e.StatusCode)
}

type Client struct {
	client      openai.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int64
	timeout     time.Duration
	http        *http.Client
	log         zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if raw != "" {
			c.baseURL = raw
		}
	}
}
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithSampling sets temperature and the output token ceiling.
func WithSampling(temperature float64, maxTokens int64) Option {
	return func(c *Client) {
		c.temperature = temperature
		if maxTokens > 0 {
			c.maxTokens = maxTokens
		}
	}
}

// WithTimeout bounds a single Complete call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client. An empty apiKey is accepted; Complete reports it.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
		timeout:     DefaultTimeout,
		http:        http.DefaultClient,
		log:         zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}

	c.client = openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithHTTPClient(c.http),
		// failures surface to the user immediately
		option.WithMaxRetries(0),
	)
	return c
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the first
// choice's text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			c.log.Error().
				Int("status", apiErr.StatusCode).
				Str("body", apiErr.Error()).
				Msg("completion gateway returned an error")
			return "", &UpstreamError{StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return "", fmt.Errorf("completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrMalformedCompletion)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty message content", ErrMalformedCompletion)
	}

	c.log.Debug().
		Str("model", c.model).
		Dur("duration", time.Since(start)).
		Int("length", len(text)).
		Msg("completion received")
	return text, nil
}
