// Package imagegen asks the gateway's image-capable model for a picture of a
// plan line and keeps the results per plan.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/sync/semaphore"

	"github.com/briangreenhill/fitcoach/internal/cache"
)

const (
	DefaultBaseURL     = "https://ai.gateway.lovable.dev/v1"
	DefaultModel       = "google/gemini-2.5-flash-image-preview"
	DefaultConcurrency = 4
	cacheNamespace     = "image"
	cacheTTL           = 24 * time.Hour
)

var (
	ErrMissingAPIKey = errors.New("LOVABLE_API_KEY not configured")
	ErrEmptyPrompt   = errors.New("prompt is required")
	ErrNoImage       = errors.New("no image in response")
)

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string

	sem   *semaphore.Weighted
	cache cache.Cache // optional; nil means no cache
	log   zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the base transport client. The bearer token is layered
// on top of its transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if raw != "" {
			c.baseURL = strings.TrimRight(raw, "/")
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
func WithCache(ch cache.Cache) Option {
	return func(c *Client) { c.cache = ch }
}

// WithConcurrency limits how many image requests are in flight at once.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.sem = semaphore.NewWeighted(int64(n))
		}
	}
}
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    http.DefaultClient,
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		model:   DefaultModel,
		sem:     semaphore.NewWeighted(DefaultConcurrency),
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http = &http.Client{
		Timeout: c.http.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey}),
			Base:   base,
		},
	}
	return c
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Modalities []string      `json:"modalities"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Images  []struct {
				Type     string `json:"type"`
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate returns an image URL (often a data: URL) for prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	var key string
	if c.cache != nil {
		key = c.cache.KeyFor(cacheNamespace, prompt)
		if e, ok := c.cache.Read(key, cacheTTL); ok {
			return e.Value, nil
		}
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire image slot: %w", err)
	}
	defer c.sem.Release(1)

	url, err := c.doGenerate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.Write(key, &cache.Entry{Value: url}); err != nil {
			c.log.Warn().Err(err).Msg("image cache write failed")
		}
	}
	return url, nil
}

func (c *Client) doGenerate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:      c.model,
		Messages:   []chatMessage{{Role: "user", Content: prompt}},
		Modalities: []string{"image", "text"},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("image request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Str("body", string(b)).Msg("image gateway returned an error")
		return "", fmt.Errorf("image gateway status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if len(out.Choices) == 0 || len(out.Choices[0].Message.Images) == 0 || out.Choices[0].Message.Images[0].ImageURL.URL == "" {
		return "", ErrNoImage
	}
	return out.Choices[0].Message.Images[0].ImageURL.URL, nil
}
