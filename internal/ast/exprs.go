package ast

import (
	"moonlint/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena       *Arena[Expr]
	Literals    *Arena[ExprLiteralData]
	Names       *Arena[ExprNameData]
	Members     *Arena[ExprMemberData]
	Indices     *Arena[ExprIndexData]
	Calls       *Arena[ExprCallData]
	MethodCalls *Arena[ExprMethodCallData]
	Parens      *Arena[ExprParenData]
	Binaries    *Arena[ExprBinaryData]
	Unaries     *Arena[ExprUnaryData]
	Functions   *Arena[ExprFunctionData]
	Tables      *Arena[ExprTableData]
	IfElses     *Arena[ExprIfElseData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Literals:    NewArena[ExprLiteralData](capHint),
		Names:       NewArena[ExprNameData](capHint),
		Members:     NewArena[ExprMemberData](small),
		Indices:     NewArena[ExprIndexData](small),
		Calls:       NewArena[ExprCallData](small),
		MethodCalls: NewArena[ExprMethodCallData](small),
		Parens:      NewArena[ExprParenData](small),
		Binaries:    NewArena[ExprBinaryData](small),
		Unaries:     NewArena[ExprUnaryData](small),
		Functions:   NewArena[ExprFunctionData](small),
		Tables:      NewArena[ExprTableData](small),
		IfElses:     NewArena[ExprIfElseData](1),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewAtom creates nil, true, false and vararg expressions, which carry no payload.
func (e *Exprs) NewAtom(kind ExprKind, span source.Span) ExprID {
	return e.new(kind, span, 0)
}

// NewNumber creates a numeric literal.
func (e *Exprs) NewNumber(span source.Span, raw string) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Raw: raw, Value: raw})
	return e.new(ExprNumber, span, payload)
}

// NewString creates a string literal; value holds the decoded contents.
func (e *Exprs) NewString(span source.Span, raw, value string) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Raw: raw, Value: value})
	return e.new(ExprString, span, payload)
}

// Literal returns literal data for number and string expressions.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprNumber && expr.Kind != ExprString) {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewName(span source.Span, name string) ExprID {
	payload := e.Names.Allocate(ExprNameData{Name: name})
	return e.new(ExprName, span, payload)
}

func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	p, ok := e.payload(id, ExprName)
	if !ok {
		return nil, false
	}
	return e.Names.Get(p), true
}

func (e *Exprs) NewMember(span source.Span, target ExprID, field Name) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Target: target, Field: field})
	return e.new(ExprMember, span, payload)
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(p), true
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, payload)
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	return e.Indices.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID, kind CallArgsKind, argsSpan source.Span) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Target:   target,
		Args:     append([]ExprID(nil), args...),
		ArgsKind: kind,
		ArgsSpan: argsSpan,
	})
	return e.new(ExprCall, span, payload)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewMethodCall(span source.Span, target ExprID, method Name, args []ExprID, kind CallArgsKind, argsSpan source.Span) ExprID {
	payload := e.MethodCalls.Allocate(ExprMethodCallData{
		Target:   target,
		Method:   method,
		Args:     append([]ExprID(nil), args...),
		ArgsKind: kind,
		ArgsSpan: argsSpan,
	})
	return e.new(ExprMethodCall, span, payload)
}

func (e *Exprs) MethodCall(id ExprID) (*ExprMethodCallData, bool) {
	p, ok := e.payload(id, ExprMethodCall)
	if !ok {
		return nil, false
	}
	return e.MethodCalls.Get(p), true
}

// CallArgs returns the arguments of a plain or method call.
func (e *Exprs) CallArgs(id ExprID) ([]ExprID, CallArgsKind, bool) {
	if call, ok := e.Call(id); ok {
		return call.Args, call.ArgsKind, true
	}
	if call, ok := e.MethodCall(id); ok {
		return call.Args, call.ArgsKind, true
	}
	return nil, CallArgsParens, false
}

func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	payload := e.Parens.Allocate(ExprParenData{Inner: inner})
	return e.new(ExprParen, span, payload)
}

func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	p, ok := e.payload(id, ExprParen)
	if !ok {
		return nil, false
	}
	return e.Parens.Get(p), true
}

// Unparen strips any number of enclosing parentheses.
func (e *Exprs) Unparen(id ExprID) ExprID {
	for {
		paren, ok := e.Paren(id)
		if !ok {
			return id
		}
		id = paren.Inner
	}
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, opSpan source.Span, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, OpSpan: opSpan, Left: left, Right: right})
	return e.new(ExprBinary, span, payload)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, payload)
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewFunction(span source.Span, fn FuncBody) ExprID {
	payload := e.Functions.Allocate(ExprFunctionData{Func: fn})
	return e.new(ExprFunction, span, payload)
}

func (e *Exprs) Function(id ExprID) (*ExprFunctionData, bool) {
	p, ok := e.payload(id, ExprFunction)
	if !ok {
		return nil, false
	}
	return e.Functions.Get(p), true
}

func (e *Exprs) NewTable(span source.Span, fields []TableField) ExprID {
	payload := e.Tables.Allocate(ExprTableData{Fields: append([]TableField(nil), fields...)})
	return e.new(ExprTable, span, payload)
}

func (e *Exprs) Table(id ExprID) (*ExprTableData, bool) {
	p, ok := e.payload(id, ExprTable)
	if !ok {
		return nil, false
	}
	return e.Tables.Get(p), true
}

func (e *Exprs) NewIfElse(span source.Span, data ExprIfElseData) ExprID {
	payload := e.IfElses.Allocate(data)
	return e.new(ExprIfElse, span, payload)
}

func (e *Exprs) IfElse(id ExprID) (*ExprIfElseData, bool) {
	p, ok := e.payload(id, ExprIfElse)
	if !ok {
		return nil, false
	}
	return e.IfElses.Get(p), true
}
