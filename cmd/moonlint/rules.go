package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moonlint/internal/checker"
	"moonlint/internal/diag"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List every rule with its default severity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			colored, err := useColor(cmd, os.Stdout)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			sevColors := map[diag.Severity]*color.Color{
				diag.SevError:   color.New(color.FgRed),
				diag.SevWarning: color.New(color.FgYellow),
				diag.SevAllow:   color.New(color.Faint),
			}
			for _, c := range sevColors {
				if colored {
					c.EnableColor()
				} else {
					c.DisableColor()
				}
			}

			entries := checker.Registry()
			width := 0
			for _, e := range entries {
				width = max(width, len(e.Name))
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				sev := sevColors[e.Severity].Sprintf("%-7s", e.Severity)
				fmt.Fprintf(out, "%-*s  %s  %s\n", width, e.Name, sev, e.Code.Title())
			}
			return nil
		},
	}
}
