package stdlib

import (
	"sort"
	"strings"
)

// StandardLibrary is a mapping from global name to Field plus optional metadata.
type StandardLibrary struct {
	Meta    *Meta
	Globals map[string]*Field
}

// Meta carries the environment name, the base library to inherit from and
// the struct table referenced by Struct fields.
type Meta struct {
	Name    string
	Base    string
	Structs map[string]map[string]*Field
}

// New returns an empty library with the given environment name.
func New(name string) *StandardLibrary {
	return &StandardLibrary{
		Meta:    &Meta{Name: name, Structs: map[string]map[string]*Field{}},
		Globals: map[string]*Field{},
	}
}

// Name returns the environment name or "" when no metadata is present.
func (s *StandardLibrary) Name() string {
	if s == nil || s.Meta == nil {
		return ""
	}
	return s.Meta.Name
}

// Struct returns the member table of a named struct.
func (s *StandardLibrary) Struct(name string) (map[string]*Field, bool) {
	if s == nil || s.Meta == nil {
		return nil, false
	}
	members, ok := s.Meta.Structs[name]
	return members, ok
}

// GlobalNames returns the sorted top-level names.
func (s *StandardLibrary) GlobalNames() []string {
	names := make([]string, 0, len(s.Globals))
	for name := range s.Globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type FieldKind uint8

const (
	FieldFunction FieldKind = iota
	FieldProperty
	FieldTable
	FieldStruct
)

func (k FieldKind) String() string {
	switch k {
	case FieldFunction:
		return "function"
	case FieldProperty:
		return "property"
	case FieldTable:
		return "table"
	case FieldStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Writable describes which writes a Property tolerates.
type Writable uint8

const (
	// ReadOnly is the zero value: neither the property nor its fields may be written.
	ReadOnly Writable = iota
	// Overridden allows assigning the property itself.
	Overridden
	// NewFields allows adding fields to the value.
	NewFields
	// Full allows both.
	Full
)

var writableNames = map[Writable]string{
	ReadOnly:   "",
	Overridden: "overridden",
	NewFields:  "new-fields",
	Full:       "full",
}

func (w Writable) String() string { return writableNames[w] }

// CanOverride reports whether the property itself may be assigned.
func (w Writable) CanOverride() bool { return w == Overridden || w == Full }

// CanAddFields reports whether new fields may be assigned on the value.
func (w Writable) CanAddFields() bool { return w == NewFields || w == Full }

// Field is a tagged variant: only the payload matching Kind is meaningful.
type Field struct {
	Kind FieldKind

	// FieldFunction
	Arguments []Argument
	Method    bool

	// FieldProperty
	Writable Writable

	// FieldTable
	Table map[string]*Field

	// FieldStruct: name of an entry in Meta.Structs.
	Struct string
}

func Function(args ...Argument) *Field {
	return &Field{Kind: FieldFunction, Arguments: args}
}

func Method(args ...Argument) *Field {
	return &Field{Kind: FieldFunction, Arguments: args, Method: true}
}

func Property(w Writable) *Field {
	return &Field{Kind: FieldProperty, Writable: w}
}

func Table(members map[string]*Field) *Field {
	if members == nil {
		members = map[string]*Field{}
	}
	return &Field{Kind: FieldTable, Table: members}
}

func StructRef(name string) *Field {
	return &Field{Kind: FieldStruct, Struct: name}
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	out := *f
	if f.Arguments != nil {
		out.Arguments = make([]Argument, len(f.Arguments))
		for i, arg := range f.Arguments {
			out.Arguments[i] = arg.clone()
		}
	}
	if f.Table != nil {
		out.Table = cloneMembers(f.Table)
	}
	return &out
}

func cloneMembers(m map[string]*Field) map[string]*Field {
	out := make(map[string]*Field, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// Argument is one declared parameter of a Function field.
type Argument struct {
	Type     ArgumentType
	Required Required
}

func (a Argument) clone() Argument {
	a.Type.Constants = append([]string(nil), a.Type.Constants...)
	return a
}

// Required is either required (optionally with a hint shown to the user) or not.
type Required struct {
	Required bool
	Message  string
}

// NotRequired marks an optional argument.
var NotRequired = Required{}

// RequiredWith marks a required argument with an optional hint message.
func RequiredWith(msg string) Required { return Required{Required: true, Message: msg} }

// Arg is a required argument of the given type.
func Arg(t ArgumentType) Argument { return Argument{Type: t, Required: RequiredWith("")} }

// OptArg is an optional argument of the given type.
func OptArg(t ArgumentType) Argument { return Argument{Type: t, Required: NotRequired} }

type TypeKind uint8

const (
	TypeNil TypeKind = iota
	TypeBool
	TypeNumber
	TypeString
	TypeFunction
	TypeTable
	TypeAny
	TypeVararg
	TypeConstant
	TypeDisplay
)

var typeKindNames = map[TypeKind]string{
	TypeNil:      "nil",
	TypeBool:     "bool",
	TypeNumber:   "number",
	TypeString:   "string",
	TypeFunction: "function",
	TypeTable:    "table",
	TypeAny:      "any",
	TypeVararg:   "...",
}

// ArgumentType is a closed set of primitive types plus Constant (one of a set
// of literal strings) and Display (a named custom type).
type ArgumentType struct {
	Kind      TypeKind
	Constants []string // TypeConstant
	Display   string   // TypeDisplay
}

var (
	Nil      = ArgumentType{Kind: TypeNil}
	Bool     = ArgumentType{Kind: TypeBool}
	Number   = ArgumentType{Kind: TypeNumber}
	String   = ArgumentType{Kind: TypeString}
	Func     = ArgumentType{Kind: TypeFunction}
	TableArg = ArgumentType{Kind: TypeTable}
	Any      = ArgumentType{Kind: TypeAny}
	Vararg   = ArgumentType{Kind: TypeVararg}
)

func Constant(values ...string) ArgumentType {
	return ArgumentType{Kind: TypeConstant, Constants: values}
}

func Display(name string) ArgumentType {
	return ArgumentType{Kind: TypeDisplay, Display: name}
}

// primitiveType maps a document type name back to a primitive ArgumentType.
func primitiveType(name string) (ArgumentType, bool) {
	for kind, text := range typeKindNames {
		if text == name {
			return ArgumentType{Kind: kind}, true
		}
	}
	return ArgumentType{}, false
}

func (t ArgumentType) String() string {
	switch t.Kind {
	case TypeConstant:
		quoted := make([]string, len(t.Constants))
		for i, c := range t.Constants {
			quoted[i] = `"` + c + `"`
		}
		return strings.Join(quoted, ", ")
	case TypeDisplay:
		return t.Display
	default:
		return typeKindNames[t.Kind]
	}
}

// Equal is structural equality.
func (t ArgumentType) Equal(other ArgumentType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TypeConstant:
		if len(t.Constants) != len(other.Constants) {
			return false
		}
		for i := range t.Constants {
			if t.Constants[i] != other.Constants[i] {
				return false
			}
		}
		return true
	case TypeDisplay:
		return t.Display == other.Display
	default:
		return true
	}
}

// Matches is Equal except that Any on either side matches everything.
func (t ArgumentType) Matches(other ArgumentType) bool {
	if t.Kind == TypeAny || other.Kind == TypeAny {
		return true
	}
	return t.Equal(other)
}

// Allows reports whether a constant type lists value.
func (t ArgumentType) Allows(value string) bool {
	for _, c := range t.Constants {
		if c == value {
			return true
		}
	}
	return false
}
