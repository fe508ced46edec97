package ast

import (
	"moonlint/internal/source"
)

type ExprKind uint8

const (
	ExprNil ExprKind = iota
	ExprTrue
	ExprFalse
	ExprNumber
	ExprString
	ExprVararg
	ExprFunction
	ExprTable
	ExprName
	ExprMember     // a.b
	ExprIndex      // a[b]
	ExprCall       // f(...)
	ExprMethodCall // a:b(...)
	ExprParen
	ExprBinary
	ExprUnary
	ExprIfElse // if c then a else b (Luau)
)

var exprKindNames = [...]string{
	ExprNil:        "nil",
	ExprTrue:       "true",
	ExprFalse:      "false",
	ExprNumber:     "number",
	ExprString:     "string",
	ExprVararg:     "vararg",
	ExprFunction:   "function",
	ExprTable:      "table",
	ExprName:       "name",
	ExprMember:     "member",
	ExprIndex:      "index",
	ExprCall:       "call",
	ExprMethodCall: "method call",
	ExprParen:      "paren",
	ExprBinary:     "binary",
	ExprUnary:      "unary",
	ExprIfElse:     "if-else",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "invalid"
}

// IsLiteral reports whether the expression kind is a literal value.
func (k ExprKind) IsLiteral() bool {
	switch k {
	case ExprNil, ExprTrue, ExprFalse, ExprNumber, ExprString, ExprFunction, ExprTable:
		return true
	default:
		return false
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// Name is an identifier occurrence together with its span.
type Name struct {
	Text string
	Span source.Span
}

func (n Name) IsValid() bool { return n.Text != "" }

type ExprLiteralData struct {
	Raw   string // source text, quotes included for strings
	Value string // decoded string contents; equal to Raw for numbers
}

type ExprNameData struct {
	Name string
}

type ExprMemberData struct {
	Target ExprID
	Field  Name
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

// CallArgsKind records the syntactic form of call arguments.
type CallArgsKind uint8

const (
	CallArgsParens CallArgsKind = iota // f(a, b)
	CallArgsString                     // f "s"
	CallArgsTable                      // f { ... }
)

type ExprCallData struct {
	Target   ExprID
	Args     []ExprID
	ArgsKind CallArgsKind
	ArgsSpan source.Span
}

type ExprMethodCallData struct {
	Target   ExprID
	Method   Name
	Args     []ExprID
	ArgsKind CallArgsKind
	ArgsSpan source.Span
}

type ExprParenData struct {
	Inner ExprID
}

type ExprBinaryData struct {
	Op     BinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// FuncBody is shared by function literals and function statements.
type FuncBody struct {
	Params     []Name
	IsVararg   bool
	VarargSpan source.Span
	Body       BlockID
}

type ExprFunctionData struct {
	Func FuncBody
}

type TableFieldKind uint8

const (
	TableFieldPositional TableFieldKind = iota // value
	TableFieldNamed                            // name = value
	TableFieldKeyed                            // [key] = value
)

type TableField struct {
	Kind  TableFieldKind
	Name  Name   // TableFieldNamed
	Key   ExprID // TableFieldKeyed
	Value ExprID
	Span  source.Span
}

type ExprTableData struct {
	Fields []TableField
}

type ExprElseIf struct {
	Cond ExprID
	Then ExprID
}

type ExprIfElseData struct {
	Cond    ExprID
	Then    ExprID
	ElseIfs []ExprElseIf
	Else    ExprID
}
