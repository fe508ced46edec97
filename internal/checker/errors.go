package checker

import (
	"errors"
	"fmt"
)

// Problem classifies why a checker could not be built.
type Problem uint8

const (
	ConfigDeserialize Problem = iota + 1
	RuleNew
	UnknownRule
)

func (p Problem) String() string {
	switch p {
	case ConfigDeserialize:
		return "config deserialize"
	case RuleNew:
		return "rule new"
	case UnknownRule:
		return "unknown rule"
	default:
		return "unknown problem"
	}
}

// ErrUnknownRule is wrapped by CheckerError for names missing from the registry.
var ErrUnknownRule = errors.New("no such rule")

// CheckerError is returned by New when a rule cannot be configured.
type CheckerError struct {
	Rule    string
	Problem Problem
	Err     error
}

func (e *CheckerError) Error() string {
	switch e.Problem {
	case ConfigDeserialize:
		return fmt.Sprintf("[%s] configuration was incorrectly formatted: %v", e.Rule, e.Err)
	default:
		return fmt.Sprintf("[%s] %v", e.Rule, e.Err)
	}
}

func (e *CheckerError) Unwrap() error { return e.Err }
