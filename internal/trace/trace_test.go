package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRing(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeRule, name, "")
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, ",") != "c,d,e" {
		t.Fatalf("snapshot %v", names)
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeFile, false},
		{LevelFile, ScopeFile, true},
		{LevelFile, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s/%s: got %v", tt.level, tt.scope, got)
		}
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStream(&buf, LevelFile, FormatNDJSON)
	span := Begin(tr, ScopeFile, "file:a.lua", 0)
	Begin(tr, ScopeRule, "rule:shadowing", span.ID()).End("")
	span.WithExtra("diagnostics", "2").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected begin and end only, got %q", lines)
	}
	var end jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if end.Kind != "end" || end.Detail != "ok" || end.Extra["diagnostics"] != "2" || end.Scope != "file" {
		t.Fatalf("unexpected end event %+v", end)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "detail": LevelFile, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("%s: got %s, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("unknown level must fail")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("expected disabled tracer, got %v, %v", tr, err)
	}
	if span := Begin(tr, ScopeDriver, "x", 0); span.ID() != 0 || span.End("") != 0 {
		t.Fatalf("inert span expected")
	}
}
