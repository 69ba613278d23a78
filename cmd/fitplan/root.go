package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/briangreenhill/fitcoach/internal/plan"
)

const version = "0.1.0"

type rootOptions struct {
	output  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "fitplan",
		Short: "Generate and inspect personalised fitness plans",
		Long: `fitplan runs the fitness plan pipeline from a terminal.

  generate   build a plan for a profile through the AI gateway
  extract    split saved model output into plan sections
  history    list plans archived by the worker`,
		Version:      version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "log pipeline details to stderr")

	cmd.AddCommand(newGenerateCmd(opts), newExtractCmd(opts), newHistoryCmd(opts), newVersionCmd())
	return cmd
}

func (o *rootOptions) logger(errOut io.Writer) zerolog.Logger {
	if !o.verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: errOut, NoColor: true}).With().Timestamp().Logger()
}

// printSections writes s in the selected output format.
func (o *rootOptions) printSections(w io.Writer, s plan.Sections) error {
	switch o.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "text":
		for _, part := range []struct {
			section plan.Section
			body    string
		}{
			{plan.Workout, s.Workout},
			{plan.Diet, s.Diet},
			{plan.Tips, s.Tips},
			{plan.Motivation, s.Motivation},
		} {
			if part.body == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "== %s ==\n%s\n\n", part.section, part.body); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
