package checker

import (
	"fmt"
	"strings"

	"moonlint/internal/diag"
)

// RuleVariation overrides the default severity of a rule.
type RuleVariation uint8

const (
	Allow RuleVariation = iota + 1
	Deny
	Warn
)

func (v RuleVariation) String() string {
	switch v {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Warn:
		return "warn"
	default:
		return "invalid"
	}
}

// ParseRuleVariation accepts "allow", "deny" and "warn".
func ParseRuleVariation(s string) (RuleVariation, error) {
	switch strings.ToLower(s) {
	case "allow":
		return Allow, nil
	case "deny":
		return Deny, nil
	case "warn":
		return Warn, nil
	default:
		return 0, fmt.Errorf("unknown rule variation %q (expected: allow|deny|warn)", s)
	}
}

func (v *RuleVariation) UnmarshalText(text []byte) error {
	parsed, err := ParseRuleVariation(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v RuleVariation) MarshalText() ([]byte, error) {
	if v < Allow || v > Warn {
		return nil, fmt.Errorf("invalid rule variation %d", v)
	}
	return []byte(v.String()), nil
}

// severity maps an explicit variation onto the emitted severity.
func (v RuleVariation) severity() diag.Severity {
	switch v {
	case Deny:
		return diag.SevError
	case Warn:
		return diag.SevWarning
	default:
		panic(fmt.Sprintf("checker: variation %s has no severity", v))
	}
}
