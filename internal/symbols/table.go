package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"moonlint/internal/ast"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols, References uint }

// Table aggregates the resolution result of one tree. It is read-only once
// Resolve returns.
type Table struct {
	Scopes     *Scopes
	Symbols    *Symbols
	References *References
	Root       ScopeID

	byExpr map[ast.ExprID]ReferenceID
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	refCap, err := safecast.Conv[uint32](h.References)
	if err != nil {
		panic(fmt.Errorf("reference capacity overflow: %w", err))
	}
	return &Table{
		Scopes:     NewScopes(scopeCap),
		Symbols:    NewSymbols(symCap),
		References: NewReferences(refCap),
		byExpr:     make(map[ast.ExprID]ReferenceID),
	}
}

// ReferenceOf returns the reference recorded for a name expression.
func (t *Table) ReferenceOf(expr ast.ExprID) (*Reference, bool) {
	id, ok := t.byExpr[expr]
	if !ok {
		return nil, false
	}
	return t.References.Get(id), true
}

// IsLocal reports whether a name expression resolves to a local.
func (t *Table) IsLocal(expr ast.ExprID) bool {
	ref, ok := t.ReferenceOf(expr)
	return ok && !ref.IsGlobal()
}

// IsRead reports whether any reference reads the symbol.
func (t *Table) IsRead(id SymbolID) bool {
	return t.anyRef(id, func(r *Reference) bool { return r.Read })
}

// IsWritten reports whether the symbol is assigned after its declaration.
func (t *Table) IsWritten(id SymbolID) bool {
	return t.anyRef(id, func(r *Reference) bool { return r.Write })
}

func (t *Table) anyRef(id SymbolID, pred func(*Reference) bool) bool {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return false
	}
	for _, refID := range sym.References {
		if ref := t.References.Get(refID); ref != nil && pred(ref) {
			return true
		}
	}
	return false
}

// GlobalWrites returns the names assigned without a visible local.
func (t *Table) GlobalWrites() map[string]bool {
	out := make(map[string]bool)
	for _, ref := range t.References.Data() {
		if ref.Write && ref.IsGlobal() {
			out[ref.Name] = true
		}
	}
	return out
}
