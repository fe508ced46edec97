package symbols

import (
	"moonlint/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeChunk              // top level of a file
	ScopeFunction           // parameters and body of a function
	ScopeBlock              // do, then/else, while and repeat bodies
	ScopeLoop               // for-loop variables and body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeChunk:
		return "chunk"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Span      source.Span
	NameIndex map[string][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
