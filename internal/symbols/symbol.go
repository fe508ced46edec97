package symbols

import (
	"moonlint/internal/source"
)

// SymbolKind classifies how a local came into existence.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolLocal
	SymbolParam
	SymbolLocalFunction
	SymbolLoopVar
	SymbolSelf // implicit self of `function a:b()`
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolLocal:
		return "local"
	case SymbolParam:
		return "parameter"
	case SymbolLocalFunction:
		return "local function"
	case SymbolLoopVar:
		return "loop variable"
	case SymbolSelf:
		return "self"
	default:
		return "invalid"
	}
}

// Symbol describes a local binding.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Scope      ScopeID
	Span       source.Span // identifier at the declaration; the method name for implicit self
	Attrib     string      // "const" / "close" from `local x <const>`
	HasValue   bool        // declared with an initializer
	References []ReferenceID
	Shadows    SymbolID // visible local with the same name at declaration time
}

// Reference is one textual use of a name.
type Reference struct {
	ID       ReferenceID
	Name     string
	Span     source.Span
	Read     bool
	Write    bool
	Resolved SymbolID // NoSymbolID for a global access
	Scope    ScopeID
}

// IsGlobal reports whether no enclosing local matched the name.
func (r *Reference) IsGlobal() bool { return !r.Resolved.IsValid() }
