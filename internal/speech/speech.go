// Package speech reads plan sections aloud.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Category is an independent playback channel. A new utterance cancels the
// one in progress in the same category only.
type Category string

const (
	Workout Category = "workout"
	Diet    Category = "diet"
)

var (
	ErrUnknownCategory = errors.New("unknown speech category")
	ErrEmptyText       = errors.New("text is required")
	// ErrInterrupted is returned to the caller whose utterance was replaced.
	ErrInterrupted = errors.New("utterance interrupted")
)

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Workout, Diet:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Synthesizer turns text into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// OpenAIConfig holds configuration for the OpenAI speech client.
type OpenAIConfig struct {
	APIKey     string
	Model      string  // "tts-1" (default)
	Voice      string  // "alloy" (default)
	Speed      float64 // 0.25-4.0; plans are read slightly slower than normal
	BaseURL    string  // Optional (tests)
	HTTPClient *http.Client
}

// OpenAISynthesizer implements Synthesizer with the OpenAI audio API.
type OpenAISynthesizer struct {
	client openai.Client
	model  string
	voice  string
	speed  float64
}

func NewOpenAISynthesizer(cfg OpenAIConfig) *OpenAISynthesizer {
	if cfg.Model == "" {
		cfg.Model = string(openai.SpeechModelTTS1)
	}
	if cfg.Voice == "" {
		cfg.Voice = "alloy"
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 0.9
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAISynthesizer{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		voice:  cfg.Voice,
		speed:  cfg.Speed,
	}
}

// Synthesize returns MP3 audio for text.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(s.model),
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
		Speed:          openai.Float(s.speed),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("speech error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return nil, err
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}
	return audio, nil
}

// Narrator serialises playback per category.
type Narrator struct {
	synth Synthesizer

	mu     sync.Mutex
	active map[Category]*utterance
}

type utterance struct {
	cancel   context.CancelFunc
	replaced bool // guarded by Narrator.mu
}

func NewNarrator(synth Synthesizer) *Narrator {
	return &Narrator{synth: synth, active: make(map[Category]*utterance)}
}

// Speak synthesizes text for category, cancelling any utterance still in
// progress for that category.
func (n *Narrator) Speak(ctx context.Context, cat Category, text string) ([]byte, error) {
	if _, err := ParseCategory(string(cat)); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "**", ""))
	if text == "" {
		return nil, ErrEmptyText
	}

	ctx, cancel := context.WithCancel(ctx)
	u := &utterance{cancel: cancel}
	n.mu.Lock()
	if prev, ok := n.active[cat]; ok {
		prev.replaced = true
		prev.cancel()
	}
	n.active[cat] = u
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		if n.active[cat] == u {
			delete(n.active, cat)
		}
		n.mu.Unlock()
		cancel()
	}()

	audio, err := n.synth.Synthesize(ctx, text)
	if err != nil {
		n.mu.Lock()
		replaced := u.replaced
		n.mu.Unlock()
		if replaced {
			return nil, ErrInterrupted
		}
		return nil, err
	}
	return audio, nil
}

// busy reports whether an utterance is in progress for cat.
func (n *Narrator) busy(cat Category) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.active[cat]
	return ok
}
