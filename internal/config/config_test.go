package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"moonlint/internal/checker"
	"moonlint/internal/rules"
)

const sampleTOML = `
std = "lua51+roblox"
exclude = ["vendor/**"]

[rules]
unused_variable = "allow"
shadowing = "deny"

[config]
unscoped_variables = { ignore_pattern = "^g_" }

[config.multiple_statements]
one_line_if = "deny"
`

func TestParseTOML(t *testing.T) {
	f, err := ParseTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if f.Std != "lua51+roblox" || len(f.Exclude) != 1 {
		t.Fatalf("unexpected file %+v", f)
	}
	if f.Rules["unused_variable"] != checker.Allow || f.Rules["shadowing"] != checker.Deny {
		t.Fatalf("rules %v", f.Rules)
	}

	cfg := rules.DefaultUnscopedVariablesConfig()
	if err := f.Payload["unscoped_variables"].Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.IgnorePattern != "^g_" {
		t.Fatalf("ignore_pattern %q", cfg.IgnorePattern)
	}

	ms := rules.DefaultMultipleStatementsConfig()
	if err := f.Payload["multiple_statements"].Decode(&ms); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ms.OneLineIf != rules.OneLineIfDeny {
		t.Fatalf("one_line_if %q", ms.OneLineIf)
	}
}

func TestPayloadKeepsDefaults(t *testing.T) {
	f, err := ParseTOML([]byte("[config.unused_variable]\nignore_pattern = \"^x\"\n"))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	cfg := rules.DefaultUnusedVariableConfig()
	if err := f.Payload["unused_variable"].Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.IgnorePattern != "^x" || !cfg.AllowUnusedSelf {
		t.Fatalf("payload must merge over defaults, got %+v", cfg)
	}
}

func TestParseTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad variation", "[rules]\nshadowing = \"sometimes\"\n"},
		{"unknown top level key", "stdlib = \"lua51\"\n"},
		{"syntax", "std = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTOML([]byte(tt.src)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}

	f, err := ParseTOML([]byte("[config.shadowing]\nignore = \"^_\"\n"))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	cfg := rules.DefaultShadowingConfig()
	if err := f.Payload["shadowing"].Decode(&cfg); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("unknown payload key must fail, got %v", err)
	}
}

func TestCheckerIntegration(t *testing.T) {
	f, err := ParseTOML([]byte("[config.high_cyclomatic_complexity]\nmaximum_complexity = 0\n"))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	_, err = checker.New(f.Checker(), nil)
	var checkerErr *checker.CheckerError
	if !errors.As(err, &checkerErr) || checkerErr.Problem != checker.RuleNew {
		t.Fatalf("expected rule construction error, got %v", err)
	}

	f, err = ParseTOML([]byte("[config.shadowing]\nignore_pattern = 5\n"))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	_, err = checker.New(f.Checker(), nil)
	if !errors.As(err, &checkerErr) || checkerErr.Problem != checker.ConfigDeserialize {
		t.Fatalf("expected deserialize error, got %v", err)
	}
}

func TestParseYAML(t *testing.T) {
	src := `
std: roblox
rules:
  global_usage: warn
config:
  global_usage:
    ignore_pattern: "^shared"
`
	f, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if f.Std != "roblox" || f.Rules["global_usage"] != checker.Warn {
		t.Fatalf("unexpected file %+v", f)
	}
	cfg := rules.DefaultGlobalUsageConfig()
	if err := f.Payload["global_usage"].Decode(&cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.IgnorePattern != "^shared" {
		t.Fatalf("ignore_pattern %q", cfg.IgnorePattern)
	}

	bad := rules.DefaultGlobalUsageConfig()
	f, err = ParseYAML([]byte("config:\n  global_usage:\n    pattern: x\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if err := f.Payload["global_usage"].Decode(&bad); err == nil {
		t.Fatalf("unknown yaml field must fail")
	}
	if _, err := ParseYAML([]byte("standard: lua51\n")); err == nil {
		t.Fatalf("unknown top level key must fail")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "moonlint.toml")
	if err := os.WriteFile(path, []byte("std = \"lua52\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if f.Path != path || f.Std != "lua52" || f.Dir() != root {
		t.Fatalf("unexpected file %+v", f)
	}

	empty, err := ParseTOML(nil)
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if empty.Std != DefaultStd || Default().Dir() != "." {
		t.Fatalf("defaults not applied: %+v", empty)
	}
}

func TestFingerprint(t *testing.T) {
	a, err := ParseTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("fingerprint is not stable")
	}
	c, err := ParseTOML([]byte("std = \"lua51+roblox\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatalf("different configs share a fingerprint")
	}
}
