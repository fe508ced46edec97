package symbols

import (
	"fmt"

	"moonlint/internal/ast"
	"moonlint/internal/source"
)

// Resolve builds the scope table of tree in a single pass. Binding follows
// Lua: `local x = x` binds after its values, `local function f` before its
// body, `repeat ... until cond` sees the body's locals in cond, and
// `function a:b()` declares an implicit self.
func Resolve(tree *ast.Tree) *Table {
	table := NewTable(Hints{
		Scopes:     uint(tree.Stmts.Blocks.Len()),
		References: uint(tree.Exprs.Names.Len()),
	})
	var span source.Span
	if root := tree.Stmts.Block(tree.Root); root != nil {
		span = root.Span
	}
	table.Root = table.Scopes.New(ScopeChunk, NoScopeID, span)

	w := &walker{tree: tree, table: table, r: NewResolver(table, table.Root)}
	w.stmts(tree.Root)
	return table
}

type walker struct {
	tree  *ast.Tree
	table *Table
	r     *Resolver
}

func (w *walker) stmts(id ast.BlockID) {
	block := w.tree.Stmts.Block(id)
	if block == nil {
		return
	}
	for _, st := range block.Stmts {
		w.stmt(st)
	}
}

func (w *walker) blockIn(kind ScopeKind, id ast.BlockID) {
	block := w.tree.Stmts.Block(id)
	if block == nil {
		return
	}
	scope := w.r.Enter(kind, block.Span)
	w.stmts(id)
	w.r.Leave(scope)
}

func (w *walker) stmt(id ast.StmtID) {
	st := w.tree.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtLocal:
		data, _ := w.tree.Stmts.Local(id)
		w.exprs(data.Values)
		for i, name := range data.Names {
			sym := w.table.Symbols.Get(w.r.Declare(name.Text, name.Span, SymbolLocal))
			sym.HasValue = len(data.Values) > 0
			if i < len(data.Attribs) {
				sym.Attrib = data.Attribs[i]
			}
		}
	case ast.StmtAssign:
		data, _ := w.tree.Stmts.Assign(id)
		w.exprs(data.Values)
		for _, target := range data.Targets {
			w.target(target, false)
		}
	case ast.StmtCompoundAssign:
		data, _ := w.tree.Stmts.CompoundAssign(id)
		w.expr(data.Value)
		w.target(data.Target, true)
	case ast.StmtCall:
		data, _ := w.tree.Stmts.Call(id)
		w.expr(data.Call)
	case ast.StmtDo:
		data, _ := w.tree.Stmts.Do(id)
		w.blockIn(ScopeBlock, data.Body)
	case ast.StmtWhile:
		data, _ := w.tree.Stmts.While(id)
		w.expr(data.Cond)
		w.blockIn(ScopeBlock, data.Body)
	case ast.StmtRepeat:
		data, _ := w.tree.Stmts.Repeat(id)
		span := st.Span
		if block := w.tree.Stmts.Block(data.Body); block != nil {
			span = block.Span
		}
		if until := w.tree.Exprs.Get(data.Until); until != nil {
			span = span.Cover(until.Span)
		}
		// условие видит локальные тела цикла
		scope := w.r.Enter(ScopeBlock, span)
		w.stmts(data.Body)
		w.expr(data.Until)
		w.r.Leave(scope)
	case ast.StmtIf:
		data, _ := w.tree.Stmts.If(id)
		w.expr(data.Cond)
		w.blockIn(ScopeBlock, data.Then)
		for _, elseIf := range data.ElseIfs {
			w.expr(elseIf.Cond)
			w.blockIn(ScopeBlock, elseIf.Body)
		}
		w.blockIn(ScopeBlock, data.Else)
	case ast.StmtNumericFor:
		data, _ := w.tree.Stmts.NumericFor(id)
		w.expr(data.Start)
		w.expr(data.Limit)
		w.expr(data.Step)
		scope := w.r.Enter(ScopeLoop, w.blockSpan(data.Body, st.Span))
		w.declare(data.Var, SymbolLoopVar)
		w.stmts(data.Body)
		w.r.Leave(scope)
	case ast.StmtGenericFor:
		data, _ := w.tree.Stmts.GenericFor(id)
		w.exprs(data.Exprs)
		scope := w.r.Enter(ScopeLoop, w.blockSpan(data.Body, st.Span))
		for _, v := range data.Vars {
			w.declare(v, SymbolLoopVar)
		}
		w.stmts(data.Body)
		w.r.Leave(scope)
	case ast.StmtFunction:
		data, _ := w.tree.Stmts.Function(id)
		path := data.Name.Path
		if len(path) > 0 {
			// `function f()` assigns f; `function a.b()` and `function a:b()` read a
			plainName := len(path) == 1 && !data.Name.Method.IsValid()
			w.r.Use(path[0].Text, path[0].Span, !plainName, plainName)
		}
		var self *ast.Name
		if data.Name.Method.IsValid() {
			self = &data.Name.Method
		}
		w.function(&data.Func, st.Span, self)
	case ast.StmtLocalFunction:
		data, _ := w.tree.Stmts.LocalFunction(id)
		sym := w.table.Symbols.Get(w.declare(data.Name, SymbolLocalFunction))
		sym.HasValue = true
		w.function(&data.Func, st.Span, nil)
	case ast.StmtReturn:
		data, _ := w.tree.Stmts.Return(id)
		w.exprs(data.Values)
	case ast.StmtBreak, ast.StmtContinue, ast.StmtGoto, ast.StmtLabel:
	default:
		panic(fmt.Sprintf("symbols: unhandled statement kind %v", st.Kind))
	}
}

func (w *walker) declare(name ast.Name, kind SymbolKind) SymbolID {
	return w.r.Declare(name.Text, name.Span, kind)
}

func (w *walker) blockSpan(id ast.BlockID, fallback source.Span) source.Span {
	if block := w.tree.Stmts.Block(id); block != nil {
		return block.Span
	}
	return fallback
}

// function opens the parameter scope; self is the method name of
// `function a:b()` and anchors the implicit self parameter.
func (w *walker) function(fn *ast.FuncBody, span source.Span, self *ast.Name) {
	scope := w.r.Enter(ScopeFunction, span)
	if self != nil {
		sym := w.table.Symbols.Get(w.r.Declare("self", self.Span, SymbolSelf))
		sym.HasValue = true
	}
	for _, param := range fn.Params {
		sym := w.table.Symbols.Get(w.declare(param, SymbolParam))
		sym.HasValue = true
	}
	w.stmts(fn.Body)
	w.r.Leave(scope)
}

// target handles an assignment target. Only a bare name is written; member
// and index targets read their base.
func (w *walker) target(id ast.ExprID, compound bool) {
	expr := w.tree.Exprs.Get(id)
	if expr == nil {
		return
	}
	if expr.Kind == ast.ExprName {
		w.use(id, expr, compound, true)
		return
	}
	w.expr(id)
}

func (w *walker) exprs(ids []ast.ExprID) {
	for _, id := range ids {
		w.expr(id)
	}
}

func (w *walker) expr(id ast.ExprID) {
	w.tree.WalkExpr(id, ast.Visitor{
		Expr: func(eid ast.ExprID, e *ast.Expr) bool {
			switch e.Kind {
			case ast.ExprName:
				w.use(eid, e, true, false)
				return false
			case ast.ExprFunction:
				data, _ := w.tree.Exprs.Function(eid)
				w.function(&data.Func, e.Span, nil)
				return false
			default:
				return true
			}
		},
	})
}

func (w *walker) use(id ast.ExprID, e *ast.Expr, read, write bool) {
	name, _ := w.tree.Exprs.Name(id)
	w.table.byExpr[id] = w.r.Use(name.Name, e.Span, read, write)
}
