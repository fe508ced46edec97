package checker

import (
	"fmt"

	"moonlint/internal/diag"
	"moonlint/internal/rules"
)

// ConfigValue is a rule payload whose decoding is deferred until the rule's
// config type is known.
type ConfigValue interface {
	Decode(v any) error
}

// Entry describes one rule of the registry.
type Entry struct {
	Name     string
	Code     diag.Code
	Severity diag.Severity // default, before any variation
	// New builds the rule from an optional payload decoded over its defaults.
	New func(payload ConfigValue) (rules.Rule, error)
}

// decodeError marks payload failures so New can tell them from constructor errors.
type decodeError struct{ err error }

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func plain[R rules.Rule](ctor func() R) func(ConfigValue) (rules.Rule, error) {
	return func(ConfigValue) (rules.Rule, error) {
		return ctor(), nil
	}
}

func configured[C any, R rules.Rule](defaults func() C, ctor func(C) (R, error)) func(ConfigValue) (rules.Rule, error) {
	return func(payload ConfigValue) (rules.Rule, error) {
		cfg := defaults()
		if payload != nil {
			if err := payload.Decode(&cfg); err != nil {
				return nil, &decodeError{err: err}
			}
		}
		rule, err := ctor(cfg)
		if err != nil {
			return nil, err
		}
		return rule, nil
	}
}

func infallible[C any, R rules.Rule](ctor func(C) R) func(C) (R, error) {
	return func(cfg C) (R, error) { return ctor(cfg), nil }
}

var registry = []Entry{
	{"almost_swapped", diag.AlmostSwapped, diag.SevError, plain(rules.NewAlmostSwapped)},
	{"compare_nan", diag.CompareNan, diag.SevError, plain(rules.NewCompareNan)},
	{"divide_by_zero", diag.DivideByZero, diag.SevWarning, plain(rules.NewDivideByZero)},
	{"empty_if", diag.EmptyIf, diag.SevWarning,
		configured(rules.DefaultEmptyIfConfig, infallible(rules.NewEmptyIf))},
	{"global_usage", diag.GlobalUsage, diag.SevWarning,
		configured(rules.DefaultGlobalUsageConfig, rules.NewGlobalUsage)},
	{"high_cyclomatic_complexity", diag.LimitFunctionComplexity, diag.SevAllow,
		configured(rules.DefaultHighCyclomaticComplexityConfig, rules.NewHighCyclomaticComplexity)},
	{"incorrect_standard_library_use", diag.StandardLibraryTypes, diag.SevError, plain(rules.NewStandardLibraryUse)},
	{"multiple_statements", diag.MultipleStatements, diag.SevWarning,
		configured(rules.DefaultMultipleStatementsConfig, rules.NewMultipleStatements)},
	{"parenthese_conditions", diag.ParentheseConditions, diag.SevWarning, plain(rules.NewParentheseConditions)},
	{"roblox_incorrect_color3_new_bounds", diag.RobloxIncorrectColor3NewBounds, diag.SevWarning,
		plain(rules.NewRobloxColor3NewBounds)},
	{"roblox_suspicious_udim2_new", diag.RobloxSuspiciousUDim2New, diag.SevWarning,
		plain(rules.NewRobloxSuspiciousUDim2New)},
	{"shadowing", diag.Shadowing, diag.SevWarning,
		configured(rules.DefaultShadowingConfig, rules.NewShadowing)},
	{"suspicious_reverse_loop", diag.SuspiciousReverseLoop, diag.SevError, plain(rules.NewSuspiciousReverseLoop)},
	{"type_check_inside_call", diag.TypeCheckInsideCall, diag.SevError, plain(rules.NewTypeCheckInsideCall)},
	{"unbalanced_assignments", diag.UnbalancedAssignments, diag.SevWarning, plain(rules.NewUnbalancedAssignments)},
	{"undefined_variable", diag.UndefinedVariable, diag.SevError, plain(rules.NewUndefinedVariable)},
	{"unscoped_variables", diag.UnscopedVariables, diag.SevWarning,
		configured(rules.DefaultUnscopedVariablesConfig, rules.NewUnscopedVariables)},
	{"unused_variable", diag.UnusedVariable, diag.SevWarning,
		configured(rules.DefaultUnusedVariableConfig, rules.NewUnusedVariable)},
}

// Registry returns the built-in rules in dispatch order.
func Registry() []Entry {
	return append([]Entry(nil), registry...)
}

// Lookup finds a registry entry by configuration name.
func Lookup(name string) (Entry, bool) {
	for _, e := range registry {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func init() {
	seen := make(map[string]bool, len(registry))
	for _, e := range registry {
		if seen[e.Name] {
			panic(fmt.Sprintf("checker: rule %q registered twice", e.Name))
		}
		seen[e.Name] = true
	}
}
