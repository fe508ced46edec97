package ast

import "fmt"

// Visitor holds optional callbacks for Walk. A callback returning false stops
// the walk from descending into that node's children. Nil callbacks descend.
type Visitor struct {
	Block func(id BlockID, b *Block) bool
	Stmt  func(id StmtID, s *Stmt) bool
	Expr  func(id ExprID, e *Expr) bool
}

// Walk visits the whole tree in source order.
func (t *Tree) Walk(v Visitor) {
	t.WalkBlock(t.Root, v)
}

func (t *Tree) WalkBlock(id BlockID, v Visitor) {
	b := t.Stmts.Block(id)
	if b == nil {
		return
	}
	if v.Block != nil && !v.Block(id, b) {
		return
	}
	for _, st := range b.Stmts {
		t.WalkStmt(st, v)
	}
}

func (t *Tree) WalkFunc(fn *FuncBody, v Visitor) {
	t.WalkBlock(fn.Body, v)
}

func (t *Tree) walkExprs(ids []ExprID, v Visitor) {
	for _, id := range ids {
		t.WalkExpr(id, v)
	}
}

func (t *Tree) WalkStmt(id StmtID, v Visitor) {
	st := t.Stmts.Get(id)
	if st == nil {
		return
	}
	if v.Stmt != nil && !v.Stmt(id, st) {
		return
	}
	switch st.Kind {
	case StmtLocal:
		data, _ := t.Stmts.Local(id)
		t.walkExprs(data.Values, v)
	case StmtAssign:
		data, _ := t.Stmts.Assign(id)
		t.walkExprs(data.Targets, v)
		t.walkExprs(data.Values, v)
	case StmtCompoundAssign:
		data, _ := t.Stmts.CompoundAssign(id)
		t.WalkExpr(data.Target, v)
		t.WalkExpr(data.Value, v)
	case StmtCall:
		data, _ := t.Stmts.Call(id)
		t.WalkExpr(data.Call, v)
	case StmtDo:
		data, _ := t.Stmts.Do(id)
		t.WalkBlock(data.Body, v)
	case StmtWhile:
		data, _ := t.Stmts.While(id)
		t.WalkExpr(data.Cond, v)
		t.WalkBlock(data.Body, v)
	case StmtRepeat:
		data, _ := t.Stmts.Repeat(id)
		t.WalkBlock(data.Body, v)
		t.WalkExpr(data.Until, v)
	case StmtIf:
		data, _ := t.Stmts.If(id)
		t.WalkExpr(data.Cond, v)
		t.WalkBlock(data.Then, v)
		for _, elseIf := range data.ElseIfs {
			t.WalkExpr(elseIf.Cond, v)
			t.WalkBlock(elseIf.Body, v)
		}
		t.WalkBlock(data.Else, v)
	case StmtNumericFor:
		data, _ := t.Stmts.NumericFor(id)
		t.WalkExpr(data.Start, v)
		t.WalkExpr(data.Limit, v)
		t.WalkExpr(data.Step, v)
		t.WalkBlock(data.Body, v)
	case StmtGenericFor:
		data, _ := t.Stmts.GenericFor(id)
		t.walkExprs(data.Exprs, v)
		t.WalkBlock(data.Body, v)
	case StmtFunction:
		data, _ := t.Stmts.Function(id)
		t.WalkFunc(&data.Func, v)
	case StmtLocalFunction:
		data, _ := t.Stmts.LocalFunction(id)
		t.WalkFunc(&data.Func, v)
	case StmtReturn:
		data, _ := t.Stmts.Return(id)
		t.walkExprs(data.Values, v)
	case StmtBreak, StmtContinue, StmtGoto, StmtLabel:
	default:
		panic(fmt.Sprintf("ast: unhandled statement kind %v", st.Kind))
	}
}

func (t *Tree) WalkExpr(id ExprID, v Visitor) {
	expr := t.Exprs.Get(id)
	if expr == nil {
		return
	}
	if v.Expr != nil && !v.Expr(id, expr) {
		return
	}
	switch expr.Kind {
	case ExprNil, ExprTrue, ExprFalse, ExprNumber, ExprString, ExprVararg, ExprName:
	case ExprFunction:
		data, _ := t.Exprs.Function(id)
		t.WalkFunc(&data.Func, v)
	case ExprTable:
		data, _ := t.Exprs.Table(id)
		for _, field := range data.Fields {
			t.WalkExpr(field.Key, v)
			t.WalkExpr(field.Value, v)
		}
	case ExprMember:
		data, _ := t.Exprs.Member(id)
		t.WalkExpr(data.Target, v)
	case ExprIndex:
		data, _ := t.Exprs.Index(id)
		t.WalkExpr(data.Target, v)
		t.WalkExpr(data.Index, v)
	case ExprCall:
		data, _ := t.Exprs.Call(id)
		t.WalkExpr(data.Target, v)
		t.walkExprs(data.Args, v)
	case ExprMethodCall:
		data, _ := t.Exprs.MethodCall(id)
		t.WalkExpr(data.Target, v)
		t.walkExprs(data.Args, v)
	case ExprParen:
		data, _ := t.Exprs.Paren(id)
		t.WalkExpr(data.Inner, v)
	case ExprBinary:
		data, _ := t.Exprs.Binary(id)
		t.WalkExpr(data.Left, v)
		t.WalkExpr(data.Right, v)
	case ExprUnary:
		data, _ := t.Exprs.Unary(id)
		t.WalkExpr(data.Operand, v)
	case ExprIfElse:
		data, _ := t.Exprs.IfElse(id)
		t.WalkExpr(data.Cond, v)
		t.WalkExpr(data.Then, v)
		for _, elseIf := range data.ElseIfs {
			t.WalkExpr(elseIf.Cond, v)
			t.WalkExpr(elseIf.Then, v)
		}
		t.WalkExpr(data.Else, v)
	default:
		panic(fmt.Sprintf("ast: unhandled expression kind %v", expr.Kind))
	}
}
