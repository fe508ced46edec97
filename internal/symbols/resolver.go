package symbols

import (
	"moonlint/internal/source"
)

// Resolver drives scope management and declaration/lookup routines.
type Resolver struct {
	table *Table
	stack []ScopeID
}

// NewResolver wires a resolver to table. If root is valid it becomes the
// current scope; otherwise scope-sensitive operations are no-ops.
func NewResolver(table *Table, root ScopeID) *Resolver {
	r := &Resolver{
		table: table,
		stack: make([]ScopeID, 0, 8),
	}
	if root.IsValid() {
		r.stack = append(r.stack, root)
	}
	return r
}

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
func (r *Resolver) Enter(kind ScopeKind, span source.Span) ScopeID {
	scope := r.table.Scopes.New(kind, r.CurrentScope(), span)
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope. Leaving anything but the expected scope is a
// bug in the walker.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		panic("symbols: scope stack mismatch")
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs a local into the current scope. Redeclaring a name in the
// same scope is legal in Lua; the newer symbol hides the older one.
func (r *Resolver) Declare(name string, span source.Span, kind SymbolKind) SymbolID {
	scopeID := r.CurrentScope()
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID
	}
	shadows, _ := r.Lookup(name)
	id := r.table.Symbols.New(&Symbol{
		Name:    name,
		Kind:    kind,
		Scope:   scopeID,
		Span:    span,
		Shadows: shadows,
	})
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[name] = append(scope.NameIndex[name], id)
	return id
}

// Lookup walks the scope chain searching for the newest symbol with name.
func (r *Resolver) Lookup(name string) (SymbolID, bool) {
	scopeID := r.CurrentScope()
	for scopeID.IsValid() {
		scope := r.table.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		if ids := scope.NameIndex[name]; len(ids) > 0 {
			return ids[len(ids)-1], true
		}
		scopeID = scope.Parent
	}
	return NoSymbolID, false
}

// Use records a reference to name in the current scope and links it to the
// visible local, if any.
func (r *Resolver) Use(name string, span source.Span, read, write bool) ReferenceID {
	resolved, _ := r.Lookup(name)
	id := r.table.References.New(Reference{
		Name:     name,
		Span:     span,
		Read:     read,
		Write:    write,
		Resolved: resolved,
		Scope:    r.CurrentScope(),
	})
	if sym := r.table.Symbols.Get(resolved); sym != nil {
		sym.References = append(sym.References, id)
	}
	return id
}
