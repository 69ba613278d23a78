// Package coach runs the plan pipeline: prompt, completion, section extraction.
package coach

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/fitcoach/internal/completion"
	"github.com/briangreenhill/fitcoach/internal/plan"
	"github.com/briangreenhill/fitcoach/internal/prompt"
)

// Completer returns the model's text for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator turns a profile into plan sections.
type Generator struct {
	completer Completer
	log       zerolog.Logger
}

// NewGenerator creates a generator backed by completer
func NewGenerator(completer Completer, log zerolog.Logger) *Generator {
	return &Generator{completer: completer, log: log}
}

// Generate builds the prompt, calls the model once and splits the answer.
// Missing headings never cause an error.
func (g *Generator) Generate(ctx context.Context, p plan.Profile) (plan.Sections, error) {
	log := g.log.With().Str("name", p.Name).Logger()
	log.Info().Msg("generating fitness plan")

	raw, err := g.completer.Complete(ctx, prompt.Build(p))
	if err != nil {
		log.Error().Err(err).Msg("plan generation failed")
		return plan.Sections{}, err
	}
	log.Info().Int("length", len(raw)).Msg("generated plan successfully")

	s, rep := plan.Parse(raw)
	log.Info().
		Int("workout", rep.SectionLengths[plan.Workout]).
		Int("diet", rep.SectionLengths[plan.Diet]).
		Int("tips", rep.SectionLengths[plan.Tips]).
		Int("motivation", rep.SectionLengths[plan.Motivation]).
		Bool("diet_recovered", rep.DietRecovered).
		Msg("parsed sections")

	for i, found := range rep.Found {
		if !found {
			log.Warn().Str("heading", plan.Section(i).String()).Msg("heading missing from completion")
		}
	}
	return s, nil
}

// PublicMessage is the error text shown to API callers. Upstream details stay
// in the server log.
func PublicMessage(err error) string {
	var upErr *completion.UpstreamError
	switch {
	case errors.Is(err, completion.ErrMissingAPIKey):
		return completion.ErrMissingAPIKey.Error()
	case errors.As(err, &upErr):
		return upErr.Error()
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
