package checker

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/rules"
	"moonlint/internal/stdlib"
	"moonlint/internal/trace"
)

// Config is the rule part of moonlint.toml.
type Config struct {
	Rules    map[string]RuleVariation
	Payloads map[string]ConfigValue
}

// Option customises a Checker.
type Option func(*Checker)

// WithRegistry replaces the built-in rule set.
func WithRegistry(entries []Entry) Option {
	return func(c *Checker) { c.registry = entries }
}

// WithParallelRules runs the rules of one tree concurrently.
func WithParallelRules(enabled bool) Option {
	return func(c *Checker) { c.parallel = enabled }
}

// WithTracer emits one span per rule pass.
func WithTracer(t trace.Tracer) Option {
	return func(c *Checker) { c.tracer = t }
}

type instance struct {
	name      string
	rule      rules.Rule
	variation RuleVariation // 0 when not configured
	enabled   bool
}

// Checker holds the configured rules and the shared read-only context.
type Checker struct {
	registry []Entry
	parallel bool
	tracer   trace.Tracer

	ctx   *rules.Context
	rules []instance
}

// New instantiates every registry rule that is not configured as allow.
// Configuration errors are returned as *CheckerError.
func New(cfg Config, std *stdlib.StandardLibrary, opts ...Option) (*Checker, error) {
	c := &Checker{
		registry: registry,
		tracer:   trace.Nop,
		ctx:      &rules.Context{StandardLibrary: std},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.checkNames(cfg); err != nil {
		return nil, err
	}

	for _, entry := range c.registry {
		variation := cfg.Rules[entry.Name]
		if variation == Allow {
			continue
		}
		rule, err := entry.New(cfg.Payloads[entry.Name])
		if err != nil {
			var decodeErr *decodeError
			if errors.As(err, &decodeErr) {
				return nil, &CheckerError{Rule: entry.Name, Problem: ConfigDeserialize, Err: decodeErr.err}
			}
			return nil, &CheckerError{Rule: entry.Name, Problem: RuleNew, Err: err}
		}
		c.rules = append(c.rules, instance{
			name:      entry.Name,
			rule:      rule,
			variation: variation,
			enabled:   variation != 0 || rule.Severity() != diag.SevAllow,
		})
	}
	return c, nil
}

// checkNames rejects rule names that the registry does not know, in sorted
// order so the reported name is stable.
func (c *Checker) checkNames(cfg Config) error {
	known := make(map[string]bool, len(c.registry))
	for _, e := range c.registry {
		known[e.Name] = true
	}
	var unknown []string
	for name := range cfg.Rules {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	for name := range cfg.Payloads {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &CheckerError{Rule: unknown[0], Problem: UnknownRule, Err: ErrUnknownRule}
}

// Context returns the context handed to every rule.
func (c *Checker) Context() *rules.Context { return c.ctx }

// Enabled returns the names of the rules TestOn runs, in registry order.
func (c *Checker) Enabled() []string {
	var out []string
	for _, inst := range c.rules {
		if inst.enabled {
			out = append(out, inst.name)
		}
	}
	return out
}

// TestOn runs every enabled rule over tree. Diagnostics keep registry order
// and carry the effective severity.
func (c *Checker) TestOn(tree *ast.Tree) []diag.Diagnostic {
	results := make([][]diag.Diagnostic, len(c.rules))
	run := func(i int) {
		inst := c.rules[i]
		span := trace.Begin(c.tracer, trace.ScopeRule, "rule:"+inst.name, 0)
		diags := inst.rule.Pass(tree, c.ctx)
		span.WithExtra("diagnostics", fmt.Sprint(len(diags))).End("")

		severity := inst.rule.Severity()
		if inst.variation != 0 {
			severity = inst.variation.severity()
		}
		for j := range diags {
			diags[j].Severity = severity
		}
		results[i] = diags
	}

	if c.parallel {
		var g errgroup.Group
		for i, inst := range c.rules {
			if !inst.enabled {
				continue
			}
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait() //nolint:errcheck // workers never fail
	} else {
		for i, inst := range c.rules {
			if inst.enabled {
				run(i)
			}
		}
	}

	var out []diag.Diagnostic
	for _, diags := range results {
		out = append(out, diags...)
	}
	return out
}
