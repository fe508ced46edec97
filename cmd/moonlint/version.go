package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"moonlint/internal/stdlib"
	"moonlint/internal/version"
)

type versionPayload struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version"`
	GitCommit string   `json:"git_commit,omitempty"`
	BuildDate string   `json:"build_date,omitempty"`
	Std       []string `json:"builtin_std,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var format string
	var full bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show moonlint build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch strings.ToLower(format) {
			case "pretty":
				renderVersionPretty(cmd.OutOrStdout(), full)
				return nil
			case "json":
				return renderVersionJSON(cmd.OutOrStdout(), full)
			default:
				return &exitError{code: exitConfig, err: fmt.Errorf("unsupported format %q (must be pretty or json)", format)}
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	cmd.Flags().BoolVar(&full, "full", false, "include commit, build date and built-in libraries")
	return cmd
}

func renderVersionPretty(out io.Writer, full bool) {
	if !full {
		fmt.Fprintf(out, "moonlint %s\n", version.Colored())
		return
	}
	fmt.Fprintf(out, "moonlint %s\n", version.Long())
	fmt.Fprintf(out, "std:    %s\n", strings.Join(stdlib.Builtins(), ", "))
}

func renderVersionJSON(out io.Writer, full bool) error {
	payload := versionPayload{Tool: "moonlint", Version: version.Version}
	if full {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
		payload.BuildDate = valueOrUnknown(version.BuildDate)
		payload.Std = stdlib.Builtins()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return strings.TrimSpace(s)
}
