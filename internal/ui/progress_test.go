package ui

import (
	"fmt"
	"strings"
	"testing"

	"moonlint/internal/driver"
)

func TestApplyEvent(t *testing.T) {
	m := NewProgressModel("checking", []string{"a.lua", "b.lua"}, nil).(*progressModel)

	m.applyEvent(driver.Event{Kind: driver.FileStarted, Path: "a.lua", Total: 2})
	if m.items[0].status != statusChecking {
		t.Fatalf("status = %v", m.items[0].status)
	}
	m.applyEvent(driver.Event{Kind: driver.FileFinished, Path: "a.lua", Done: 1, Total: 2, Diagnostics: 3})
	m.applyEvent(driver.Event{Kind: driver.FileFinished, Path: "b.lua", Done: 2, Total: 2, Cached: true})
	m.applyEvent(driver.Event{Kind: driver.FileFinished, Path: "unknown.lua", Done: 3})

	if m.items[0].status != statusFindings || m.items[0].diagnostics != 3 {
		t.Errorf("a.lua = %+v", m.items[0])
	}
	if m.items[1].status != statusCached {
		t.Errorf("b.lua = %+v", m.items[1])
	}
	if m.done != 2 {
		t.Errorf("done = %d, want 2", m.done)
	}
	view := m.View()
	if !strings.Contains(view, "2/2") || !strings.Contains(view, "a.lua (3)") {
		t.Errorf("view:\n%s", view)
	}
}

func TestVisibleLimit(t *testing.T) {
	var files []string
	for i := range 25 {
		files = append(files, fmt.Sprintf("f%02d.lua", i))
	}
	m := NewProgressModel("checking", files, nil).(*progressModel)
	for i := range 15 {
		m.applyEvent(driver.Event{Kind: driver.FileFinished, Path: files[i], Done: i + 1})
	}
	m.applyEvent(driver.Event{Kind: driver.FileStarted, Path: files[20]})

	vis := m.visible()
	if len(vis) != maxVisible {
		t.Fatalf("visible = %d", len(vis))
	}
	if vis[0].path != "f20.lua" || vis[1].path != "f14.lua" {
		t.Errorf("order = %s, %s", vis[0].path, vis[1].path)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.lua", 20, "short.lua"},
		{"very/long/path/file.lua", 10, "very/lo..."},
		{"abcdef", 2, "ab"},
		{"日本語ファイル.lua", 9, "日本語..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
