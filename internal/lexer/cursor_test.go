package lexer

import (
	"testing"

	"moonlint/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lua", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("expected EOF state")
	}
}

func TestMarkSpanReset(t *testing.T) {
	cursor := NewCursor(createFile("hello"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("reset failed: %d", cursor.Off)
	}
	if !cursor.Eat('h') || cursor.Eat('x') {
		t.Fatalf("Eat mismatch")
	}
	if b0, b1, b2, ok := cursor.Peek3(); !ok || b0 != 'e' || b1 != 'l' || b2 != 'l' {
		t.Fatalf("Peek3 mismatch")
	}
	if cursor.PeekAt(3) != 'o' || cursor.PeekAt(4) != 0 {
		t.Fatalf("PeekAt mismatch")
	}
}

func TestLongBracketLevel(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"[[", 0},
		{"[==[", 2},
		{"[=", -1},
		{"[1]", -1},
		{"x", -1},
	}
	for _, tt := range tests {
		lx := New(createFile(tt.in), Options{})
		if got := lx.longBracketLevel(); got != tt.want {
			t.Errorf("%q: level %d, want %d", tt.in, got, tt.want)
		}
	}
}
