package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"moonlint/internal/version"
)

// exitError carries the process exit code out of a command. A nil err means
// the reason was already reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

const (
	exitLint   = 1
	exitConfig = 2
)

func newRootCmd(numCPU int) *cobra.Command {
	root := &cobra.Command{
		Use:           "moonlint",
		Short:         "A linter for Lua",
		Long:          `moonlint checks Lua source against a configurable set of rules and standard library definitions`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|file|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(newCheckCmd(numCPU))
	root.AddCommand(newStdCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	// считаем один раз и передаём явно
	numCPU := runtime.NumCPU()
	os.Exit(run(newRootCmd(numCPU), os.Args[1:]))
}

func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(root.ErrOrStderr(), "error: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(root.ErrOrStderr(), "error: %v\n", err)
	return exitConfig
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, err
	}
	switch value {
	case "always", "on":
		return true, nil
	case "never", "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|always|never)", value)
	}
}
