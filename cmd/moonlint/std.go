package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"moonlint/internal/config"
	"moonlint/internal/stdlib"
)

func newStdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "std",
		Short: "Inspect and convert standard library definitions",
	}
	cmd.AddCommand(newStdShowCmd(), newStdConvertCmd(), newStdListCmd())
	return cmd
}

func newStdShowCmd() *cobra.Command {
	var format string
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a standard library, e.g. lua51 or lua51+roblox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			loader, err := stdLoader()
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			var lib *stdlib.StandardLibrary
			if raw {
				lib, err = loader.LoadRaw(args[0])
			} else {
				lib, err = loader.Load(args[0])
			}
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			data, err := lib.Marshal(f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format (toml|yaml)")
	cmd.Flags().BoolVar(&raw, "raw", false, "do not merge the base library")
	return cmd
}

func newStdConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a standard library between TOML and YAML",
		Long:  `The formats are taken from the file extensions (.toml, .yml, .yaml)`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			inFormat, err := formatFromPath(in)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			outFormat, err := formatFromPath(out)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			lib, err := stdlib.Parse(data, inFormat)
			if err != nil {
				return &exitError{code: exitConfig, err: fmt.Errorf("%s: %w", in, err)}
			}
			encoded, err := lib.Marshal(outFormat)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, encoded, 0o644); err != nil { //nolint:gosec // user output file
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}
}

func newStdListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in standard libraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range stdlib.Builtins() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// stdLoader lets library files next to the configuration shadow the builtins.
func stdLoader() (stdlib.Loader, error) {
	path, ok, err := config.Find(".")
	if err != nil {
		return stdlib.Loader{}, err
	}
	if !ok {
		return stdlib.Loader{Dir: "."}, nil
	}
	return stdlib.Loader{Dir: filepath.Dir(path)}, nil
}

func parseFormat(s string) (stdlib.Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return stdlib.FormatTOML, nil
	case "yaml", "yml":
		return stdlib.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected toml|yaml)", s)
	}
}

func formatFromPath(path string) (stdlib.Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%s: cannot tell the format without an extension", path)
	}
	f, err := parseFormat(ext)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
