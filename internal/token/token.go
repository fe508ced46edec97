package token

import (
	"moonlint/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a nil, boolean, number, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case KwNil, KwTrue, KwFalse, Number, String:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind <= KwWhile
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsBlockEnd reports tokens that close a block.
func (t Token) IsBlockEnd() bool {
	switch t.Kind {
	case EOF, KwEnd, KwElse, KwElseif, KwUntil:
		return true
	default:
		return false
	}
}
