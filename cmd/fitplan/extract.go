package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/briangreenhill/fitcoach/internal/plan"
)

func newExtractCmd(root *rootOptions) *cobra.Command {
	var report bool
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Split raw model output into plan sections",
		Long:  "Reads raw model output from a file (or stdin when omitted or \"-\") and prints the workout, diet, tips and motivation sections.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			raw, err := readInput(cmd, path)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			s, rep := plan.Parse(string(raw))
			if report {
				errOut := cmd.ErrOrStderr()
				for i, found := range rep.Found {
					fmt.Fprintf(errOut, "%-15s found=%-5t length=%d\n", plan.Section(i), found, rep.SectionLengths[i])
				}
				if rep.DietRecovered {
					fmt.Fprintln(errOut, "diet recovered from prose")
				}
			}
			return root.printSections(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().BoolVar(&report, "report", false, "print which headings were found to stderr")
	return cmd
}
