package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/briangreenhill/fitcoach/internal/coach"
	"github.com/briangreenhill/fitcoach/internal/completion"
	"github.com/briangreenhill/fitcoach/internal/config"
	"github.com/briangreenhill/fitcoach/internal/plan"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		p           plan.Profile
		profileFile string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a plan for a profile",
		Example: `  fitplan generate --name Ana --age 30 --gender female --height 170 --weight 65 \
    --goal muscle_gain --level beginner --location gym --diet vegetarian
  fitplan generate --profile profile.json -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profileFile != "" {
				b, err := readInput(cmd, profileFile)
				if err != nil {
					return fmt.Errorf("read profile: %w", err)
				}
				if err := json.Unmarshal(b, &p); err != nil {
					return fmt.Errorf("decode profile: %w", err)
				}
			}
			if missing := p.Missing(); len(missing) > 0 {
				return fmt.Errorf("missing required fields: %v", missing)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := root.logger(cmd.ErrOrStderr())
			completer := completion.New(cfg.AI.APIKey,
				completion.WithBaseURL(cfg.AI.GatewayURL),
				completion.WithModel(cfg.AI.Model),
				completion.WithSampling(cfg.AI.Temperature, cfg.AI.MaxTokens),
				completion.WithTimeout(cfg.AI.Timeout),
				completion.WithLogger(log),
			)
			log.Debug().Str("model", completer.Model()).Msg("generating plan")
			return runGenerate(cmd.Context(), cmd, root, coach.NewGenerator(completer, log), p)
		},
	}

	f := cmd.Flags()
	f.StringVar(&profileFile, "profile", "", "JSON profile file (\"-\" for stdin)")
	f.StringVar(&p.Name, "name", "", "full name")
	f.StringVar(&p.Age, "age", "", "age in years")
	f.StringVar(&p.Gender, "gender", "", "male, female or other")
	f.StringVar(&p.Height, "height", "", "height in cm")
	f.StringVar(&p.Weight, "weight", "", "weight in kg")
	f.StringVar(&p.Goal, "goal", "", "weight_loss, muscle_gain, maintenance, endurance or flexibility")
	f.StringVar(&p.FitnessLevel, "level", "", "beginner, intermediate or advanced")
	f.StringVar(&p.Location, "location", "", "home, gym, outdoor or mixed")
	f.StringVar(&p.Diet, "diet", "", "vegetarian, non_vegetarian, vegan, keto or paleo")
	f.StringVar(&p.MedicalHistory, "medical", "", "injuries, conditions or medications")
	f.StringVar(&p.StressLevel, "stress", "", "low, moderate or high")
	return cmd
}

type planner interface {
	Generate(ctx context.Context, p plan.Profile) (plan.Sections, error)
}

func runGenerate(ctx context.Context, cmd *cobra.Command, root *rootOptions, g planner, p plan.Profile) error {
	s, err := g.Generate(ctx, p)
	if err != nil {
		if errors.Is(err, completion.ErrMissingAPIKey) {
			return fmt.Errorf("%w: set it in the environment or .env", err)
		}
		return errors.New(coach.PublicMessage(err))
	}
	return root.printSections(cmd.OutOrStdout(), s)
}
