package ast

import (
	"moonlint/internal/source"
)

// Stmts manages allocation of statements and blocks.
type Stmts struct {
	Arena           *Arena[Stmt]
	Blocks          *Arena[Block]
	Locals          *Arena[StmtLocalData]
	Assigns         *Arena[StmtAssignData]
	CompoundAssigns *Arena[StmtCompoundAssignData]
	Calls           *Arena[StmtCallData]
	Dos             *Arena[StmtDoData]
	Whiles          *Arena[StmtWhileData]
	Repeats         *Arena[StmtRepeatData]
	Ifs             *Arena[StmtIfData]
	NumericFors     *Arena[StmtNumericForData]
	GenericFors     *Arena[StmtGenericForData]
	Functions       *Arena[StmtFunctionData]
	LocalFunctions  *Arena[StmtLocalFunctionData]
	Returns         *Arena[StmtReturnData]
	Labels          *Arena[StmtLabelData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Stmts{
		Arena:           NewArena[Stmt](capHint),
		Blocks:          NewArena[Block](small),
		Locals:          NewArena[StmtLocalData](small),
		Assigns:         NewArena[StmtAssignData](small),
		CompoundAssigns: NewArena[StmtCompoundAssignData](1),
		Calls:           NewArena[StmtCallData](small),
		Dos:             NewArena[StmtDoData](1),
		Whiles:          NewArena[StmtWhileData](1),
		Repeats:         NewArena[StmtRepeatData](1),
		Ifs:             NewArena[StmtIfData](small),
		NumericFors:     NewArena[StmtNumericForData](1),
		GenericFors:     NewArena[StmtGenericForData](1),
		Functions:       NewArena[StmtFunctionData](small),
		LocalFunctions:  NewArena[StmtLocalFunctionData](small),
		Returns:         NewArena[StmtReturnData](small),
		Labels:          NewArena[StmtLabelData](1),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) BlockID {
	return BlockID(s.Blocks.Allocate(Block{Span: span, Stmts: append([]StmtID(nil), stmts...)}))
}

func (s *Stmts) Block(id BlockID) *Block {
	return s.Blocks.Get(uint32(id))
}

// NewBare creates break and continue statements.
func (s *Stmts) NewBare(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}

func (s *Stmts) NewLocal(span source.Span, names []Name, attribs []string, values []ExprID) StmtID {
	if attribs == nil {
		attribs = make([]string, len(names))
	}
	payload := s.Locals.Allocate(StmtLocalData{
		Names:   append([]Name(nil), names...),
		Attribs: attribs,
		Values:  append([]ExprID(nil), values...),
	})
	return s.new(StmtLocal, span, payload)
}

func (s *Stmts) Local(id StmtID) (*StmtLocalData, bool) {
	p, ok := s.payload(id, StmtLocal)
	if !ok {
		return nil, false
	}
	return s.Locals.Get(p), true
}

func (s *Stmts) NewAssign(span source.Span, targets, values []ExprID) StmtID {
	payload := s.Assigns.Allocate(StmtAssignData{
		Targets: append([]ExprID(nil), targets...),
		Values:  append([]ExprID(nil), values...),
	})
	return s.new(StmtAssign, span, payload)
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewCompoundAssign(span source.Span, op BinaryOp, target, value ExprID) StmtID {
	payload := s.CompoundAssigns.Allocate(StmtCompoundAssignData{Op: op, Target: target, Value: value})
	return s.new(StmtCompoundAssign, span, payload)
}

func (s *Stmts) CompoundAssign(id StmtID) (*StmtCompoundAssignData, bool) {
	p, ok := s.payload(id, StmtCompoundAssign)
	if !ok {
		return nil, false
	}
	return s.CompoundAssigns.Get(p), true
}

func (s *Stmts) NewCall(span source.Span, call ExprID) StmtID {
	payload := s.Calls.Allocate(StmtCallData{Call: call})
	return s.new(StmtCall, span, payload)
}

func (s *Stmts) Call(id StmtID) (*StmtCallData, bool) {
	p, ok := s.payload(id, StmtCall)
	if !ok {
		return nil, false
	}
	return s.Calls.Get(p), true
}

func (s *Stmts) NewDo(span source.Span, body BlockID) StmtID {
	payload := s.Dos.Allocate(StmtDoData{Body: body})
	return s.new(StmtDo, span, payload)
}

func (s *Stmts) Do(id StmtID) (*StmtDoData, bool) {
	p, ok := s.payload(id, StmtDo)
	if !ok {
		return nil, false
	}
	return s.Dos.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body BlockID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, payload)
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewRepeat(span source.Span, body BlockID, until ExprID) StmtID {
	payload := s.Repeats.Allocate(StmtRepeatData{Body: body, Until: until})
	return s.new(StmtRepeat, span, payload)
}

func (s *Stmts) Repeat(id StmtID) (*StmtRepeatData, bool) {
	p, ok := s.payload(id, StmtRepeat)
	if !ok {
		return nil, false
	}
	return s.Repeats.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, data StmtIfData) StmtID {
	payload := s.Ifs.Allocate(data)
	return s.new(StmtIf, span, payload)
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewNumericFor(span source.Span, data StmtNumericForData) StmtID {
	payload := s.NumericFors.Allocate(data)
	return s.new(StmtNumericFor, span, payload)
}

func (s *Stmts) NumericFor(id StmtID) (*StmtNumericForData, bool) {
	p, ok := s.payload(id, StmtNumericFor)
	if !ok {
		return nil, false
	}
	return s.NumericFors.Get(p), true
}

func (s *Stmts) NewGenericFor(span source.Span, vars []Name, exprs []ExprID, body BlockID) StmtID {
	payload := s.GenericFors.Allocate(StmtGenericForData{
		Vars:  append([]Name(nil), vars...),
		Exprs: append([]ExprID(nil), exprs...),
		Body:  body,
	})
	return s.new(StmtGenericFor, span, payload)
}

func (s *Stmts) GenericFor(id StmtID) (*StmtGenericForData, bool) {
	p, ok := s.payload(id, StmtGenericFor)
	if !ok {
		return nil, false
	}
	return s.GenericFors.Get(p), true
}

func (s *Stmts) NewFunction(span source.Span, name FuncName, fn FuncBody) StmtID {
	payload := s.Functions.Allocate(StmtFunctionData{Name: name, Func: fn})
	return s.new(StmtFunction, span, payload)
}

func (s *Stmts) Function(id StmtID) (*StmtFunctionData, bool) {
	p, ok := s.payload(id, StmtFunction)
	if !ok {
		return nil, false
	}
	return s.Functions.Get(p), true
}

func (s *Stmts) NewLocalFunction(span source.Span, name Name, fn FuncBody) StmtID {
	payload := s.LocalFunctions.Allocate(StmtLocalFunctionData{Name: name, Func: fn})
	return s.new(StmtLocalFunction, span, payload)
}

func (s *Stmts) LocalFunction(id StmtID) (*StmtLocalFunctionData, bool) {
	p, ok := s.payload(id, StmtLocalFunction)
	if !ok {
		return nil, false
	}
	return s.LocalFunctions.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, values []ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Values: append([]ExprID(nil), values...)})
	return s.new(StmtReturn, span, payload)
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

// NewLabel creates goto and ::label:: statements.
func (s *Stmts) NewLabel(kind StmtKind, span source.Span, label Name) StmtID {
	payload := s.Labels.Allocate(StmtLabelData{Label: label})
	return s.new(kind, span, payload)
}

func (s *Stmts) Label(id StmtID) (*StmtLabelData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtGoto && st.Kind != StmtLabel) {
		return nil, false
	}
	return s.Labels.Get(uint32(st.Payload)), true
}
