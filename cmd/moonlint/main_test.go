package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moonlint/internal/diagfmt"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	root := newRootCmd(2)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	code = run(root, args)
	return code, out.String(), errOut.String()
}

func writeProject(t *testing.T, configText string, files map[string]string) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	configPath = filepath.Join(dir, "moonlint.toml")
	if err := os.WriteFile(configPath, []byte(configText), 0o600); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir, configPath
}

func TestCheckExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		config string
		source string
		extra  []string
		want   int
	}{
		{"clean", `std = "lua51"`, "local a = 1\nprint(a)\n", nil, 0},
		{"warning fails", `std = "lua51"`, "g = 1\n", nil, exitLint},
		{"allowed warnings", `std = "lua51"`, "g = 1\n", []string{"-a"}, 0},
		{"error", `std = "lua51"`, "print(math.floor())\n", []string{"-a"}, exitLint},
		{"parse error", `std = "lua51"`, "local = \n", []string{"-a"}, exitLint},
		{"rule off", "std = \"lua51\"\n[rules]\nunscoped_variables = \"allow\"\n", "g = 1\n", nil, 0},
		{"unknown rule", "[rules]\nno_such_rule = \"warn\"\n", "", nil, exitConfig},
		{"unknown std", `std = "lua99"`, "", nil, exitConfig},
		{"zero threads", `std = "lua51"`, "local a = 1\nprint(a)\n", []string{"--num-threads", "0"}, exitConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, cfg := writeProject(t, tt.config, map[string]string{"a.lua": tt.source})
			args := append([]string{"check", "--config", cfg, "--ui", "off", "--color", "never", dir}, tt.extra...)
			code, stdout, stderr := runCLI(t, args...)
			if code != tt.want {
				t.Fatalf("exit = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tt.want, stdout, stderr)
			}
			if tt.want == exitConfig && !strings.HasPrefix(stderr, "error: ") {
				t.Errorf("stderr = %q, want an error line", stderr)
			}
		})
	}
}

func TestCheckQuietOutput(t *testing.T) {
	dir, cfg := writeProject(t, `std = "lua51"`, map[string]string{"a.lua": "g = 1\n"})
	code, stdout, _ := runCLI(t, "check", "--config", cfg, "--ui", "off", "-q", "-n", filepath.Join(dir, "a.lua"))
	if code != exitLint {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout, "a.lua:1:1: warning[unscoped_variables]") {
		t.Fatalf("stdout = %q", stdout)
	}
	if strings.Contains(stdout, "Results:") {
		t.Fatalf("summary printed despite -n")
	}
}

func TestCheckJSONOutput(t *testing.T) {
	dir, cfg := writeProject(t, `std = "lua51"`, map[string]string{"a.lua": "local x = 1 / 0\nprint(x)\n"})
	_, stdout, _ := runCLI(t, "check", "--config", cfg, "--ui", "off", "--display-style", "json", dir)
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "divide_by_zero" {
		t.Fatalf("output = %+v", out)
	}
}

func TestCheckFix(t *testing.T) {
	dir, cfg := writeProject(t, `std = "lua51"`, map[string]string{"a.lua": "local a = true\nif (a) then\n\tprint(a)\nend\n"})
	code, stdout, stderr := runCLI(t, "check", "--config", cfg, "--ui", "off", "--fix", dir)
	if code != 0 {
		t.Fatalf("exit = %d\n%s\n%s", code, stdout, stderr)
	}
	got, err := os.ReadFile(filepath.Join(dir, "a.lua"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "local a = true\nif a then\n\tprint(a)\nend\n" {
		t.Fatalf("file = %q", got)
	}
	if !strings.Contains(stderr, "fixed 1 issue(s)") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRulesCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "rules", "--color", "never")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stdout, "unscoped_variables") || !strings.Contains(stdout, "Implicit global variable") {
		t.Fatalf("stdout:\n%s", stdout)
	}
}

func TestStdConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "mine.toml")
	out := filepath.Join(dir, "mine.yml")
	code, stdout, _ := runCLI(t, "std", "show", "lua51", "--raw")
	if code != 0 || stdout == "" {
		t.Fatalf("std show: exit %d", code)
	}
	if err := os.WriteFile(in, []byte(stdout), 0o600); err != nil {
		t.Fatal(err)
	}
	if code, _, stderr := runCLI(t, "std", "convert", in, out); code != 0 {
		t.Fatalf("convert: exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "print") {
		t.Fatalf("converted library lacks globals:\n%s", data)
	}

	if code, _, _ := runCLI(t, "std", "convert", in, filepath.Join(dir, "noext")); code != exitConfig {
		t.Fatalf("exit = %d, want %d", code, exitConfig)
	}
}

func TestVersionJSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "version", "--format", "json")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "moonlint" || payload.Version == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Errorf("expected error")
	}
}

func TestFailed(t *testing.T) {
	tests := []struct {
		c     diagfmt.Counts
		io    int
		allow bool
		want  bool
	}{
		{diagfmt.Counts{}, 0, false, false},
		{diagfmt.Counts{Warnings: 1}, 0, false, true},
		{diagfmt.Counts{Warnings: 1}, 0, true, false},
		{diagfmt.Counts{Errors: 1}, 0, true, true},
		{diagfmt.Counts{ParseErrors: 1}, 0, true, true},
		{diagfmt.Counts{}, 1, true, true},
	}
	for _, tt := range tests {
		if got := failed(tt.c, tt.io, tt.allow); got != tt.want {
			t.Errorf("failed(%+v, %d, %v) = %v, want %v", tt.c, tt.io, tt.allow, got, tt.want)
		}
	}
}
