package lexer_test

import (
	"testing"

	"moonlint/internal/diag"
	"moonlint/internal/lexer"
	"moonlint/internal/source"
	"moonlint/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lua", []byte(input))
	bag := diag.NewBag(0)
	return lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"local", "local x = 1", []token.Kind{token.KwLocal, token.Ident, token.Assign, token.Number, token.EOF}},
		{"operators", "a ~= b .. c ... // <= >= << >> ::",
			[]token.Kind{token.Ident, token.TildeEq, token.Ident, token.DotDot, token.Ident, token.DotDotDot,
				token.SlashSlash, token.LtEq, token.GtEq, token.Shl, token.Shr, token.ColonColon, token.EOF}},
		{"compound", "x += 1 y ..= 'a' z //= 2",
			[]token.Kind{token.Ident, token.PlusAssign, token.Number, token.Ident, token.DotDotAssign, token.String,
				token.Ident, token.SlashSlashAssign, token.Number, token.EOF}},
		{"call", "print(#t, -x)",
			[]token.Kind{token.Ident, token.LParen, token.Hash, token.Ident, token.Comma, token.Minus, token.Ident, token.RParen, token.EOF}},
		{"long string", "x = [==[ a ]] b ]==]", []token.Kind{token.Ident, token.Assign, token.String, token.EOF}},
		{"index not long string", "t[1]", []token.Kind{token.Ident, token.LBracket, token.Number, token.RBracket, token.EOF}},
		{"continue is ident", "continue", []token.Kind{token.Ident, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			got := kinds(lx.All())
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	for _, in := range []string{"10", "3.14", ".5", "1e10", "1E-3", "0xFF", "0x1p4", "0xA.8", "1_000", "0b101", "1ULL"} {
		lx, bag := makeTestLexer(in)
		tok := lx.Next()
		if tok.Kind != token.Number || tok.Text != in {
			t.Errorf("%q: got %v %q", in, tok.Kind, tok.Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics %v", in, bag.Items())
		}
	}
}

func TestLexerComments(t *testing.T) {
	lx, _ := makeTestLexer("-- line\n--[[ block\n comment ]] x --[=[ tail ]=]")
	x := lx.Next()
	if x.Kind != token.Ident {
		t.Fatalf("expected ident, got %v", x.Kind)
	}
	var comments []string
	for _, tr := range x.Leading {
		if tr.IsComment() {
			comments = append(comments, tr.Text)
		}
	}
	if len(comments) != 2 || comments[0] != "-- line" || comments[1] != "--[[ block\n comment ]]" {
		t.Fatalf("unexpected comments: %q", comments)
	}
	eof := lx.Next()
	if eof.Kind != token.EOF || len(eof.Leading) != 2 || eof.Leading[1].Kind != token.TriviaBlockComment {
		t.Fatalf("trailing comment must be attached to EOF, got %+v", eof.Leading)
	}
}

func TestLexerShebang(t *testing.T) {
	lx, _ := makeTestLexer("#!/usr/bin/lua\nprint(1)")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Leading[0].Kind != token.TriviaShebang {
		t.Fatalf("got %v with leading %+v", tok.Kind, tok.Leading)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []string{`"abc`, "[[ never closed", "--[[ never closed", "x = $", "3x"}
	for _, in := range tests {
		lx, bag := makeTestLexer(in)
		lx.All()
		if !bag.HasErrors() {
			t.Errorf("%q: expected a parse error", in)
		}
		for _, d := range bag.Items() {
			if d.Code != diag.ParseError {
				t.Errorf("%q: code %v", in, d.Code)
			}
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		raw, want string
		wantErr   bool
	}{
		{`"plain"`, "plain", false},
		{`'open`, "", true},
		{`"a\nb"`, "a\nb", false},
		{`"tab\tq\"x"`, "tab\tq\"x", false},
		{`"\65\066"`, "AB", false},
		{`"\x41"`, "A", false},
		{`"\u{48}\u{49}"`, "HI", false},
		{"\"a\\z  \n  b\"", "ab", false},
		{"[[\nfirst]]", "first", false},
		{"[==[a]]b]==]", "a]]b", false},
		{`"\q"`, "", true},
		{`"\300"`, "", true},
	}
	for _, tt := range tests {
		got, err := lexer.Unquote(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("Unquote(%s) err = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Unquote(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
