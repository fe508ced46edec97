package ast

import (
	"moonlint/internal/source"
)

type StmtKind uint8

const (
	StmtLocal StmtKind = iota
	StmtAssign
	StmtCompoundAssign // x += 1 (Luau)
	StmtCall
	StmtDo
	StmtWhile
	StmtRepeat
	StmtIf
	StmtNumericFor
	StmtGenericFor
	StmtFunction      // function a.b:c() end
	StmtLocalFunction // local function f() end
	StmtReturn
	StmtBreak
	StmtContinue // Luau
	StmtGoto
	StmtLabel
)

var stmtKindNames = [...]string{
	StmtLocal:          "local",
	StmtAssign:         "assign",
	StmtCompoundAssign: "compound assign",
	StmtCall:           "call",
	StmtDo:             "do",
	StmtWhile:          "while",
	StmtRepeat:         "repeat",
	StmtIf:             "if",
	StmtNumericFor:     "numeric for",
	StmtGenericFor:     "generic for",
	StmtFunction:       "function",
	StmtLocalFunction:  "local function",
	StmtReturn:         "return",
	StmtBreak:          "break",
	StmtContinue:       "continue",
	StmtGoto:           "goto",
	StmtLabel:          "label",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "invalid"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtLocalData struct {
	Names   []Name
	Attribs []string // parallel to Names; "" when absent (<const>, <close>)
	Values  []ExprID
}

type StmtAssignData struct {
	Targets []ExprID
	Values  []ExprID
}

type StmtCompoundAssignData struct {
	Op     BinaryOp
	Target ExprID
	Value  ExprID
}

type StmtCallData struct {
	Call ExprID
}

type StmtDoData struct {
	Body BlockID
}

type StmtWhileData struct {
	Cond ExprID
	Body BlockID
}

type StmtRepeatData struct {
	Body  BlockID
	Until ExprID
}

type ElseIf struct {
	Cond ExprID
	Body BlockID
	Span source.Span
}

type StmtIfData struct {
	Cond    ExprID
	Then    BlockID
	ElseIfs []ElseIf
	Else    BlockID // NoBlockID without an else branch
}

type StmtNumericForData struct {
	Var   Name
	Start ExprID
	Limit ExprID
	Step  ExprID // NoExprID when omitted
	Body  BlockID
}

type StmtGenericForData struct {
	Vars  []Name
	Exprs []ExprID
	Body  BlockID
}

// FuncName is the `a.b.c:d` part of a function statement.
type FuncName struct {
	Path   []Name
	Method Name // zero when the function is not a method
}

type StmtFunctionData struct {
	Name FuncName
	Func FuncBody
}

type StmtLocalFunctionData struct {
	Name Name
	Func FuncBody
}

type StmtReturnData struct {
	Values []ExprID
}

type StmtLabelData struct {
	Label Name
}

type Block struct {
	Span  source.Span
	Stmts []StmtID
}
