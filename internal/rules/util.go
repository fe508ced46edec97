package rules

import (
	"strconv"
	"strings"

	"moonlint/internal/ast"
)

// baseName returns the name expression at the bottom of a dotted chain.
func baseName(tree *ast.Tree, id ast.ExprID) (ast.ExprID, bool) {
	for {
		expr := tree.Exprs.Get(id)
		if expr == nil {
			return ast.NoExprID, false
		}
		switch expr.Kind {
		case ast.ExprName:
			return id, true
		case ast.ExprMember:
			member, _ := tree.Exprs.Member(id)
			id = member.Target
		default:
			return ast.NoExprID, false
		}
	}
}

// numberValue parses a number literal, hex and Luau forms included.
func numberValue(tree *ast.Tree, id ast.ExprID) (float64, bool) {
	lit, ok := tree.Exprs.Literal(id)
	if !ok || tree.Exprs.Get(id).Kind != ast.ExprNumber {
		return 0, false
	}
	raw := strings.ReplaceAll(lit.Raw, "_", "")
	raw = strings.TrimRight(raw, "uUlLiI") // LuaJIT suffixes
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "0x") && !strings.ContainsAny(lower, "p."):
		v, err := strconv.ParseUint(lower[2:], 16, 64)
		return float64(v), err == nil
	case strings.HasPrefix(lower, "0b"):
		v, err := strconv.ParseUint(lower[2:], 2, 64)
		return float64(v), err == nil
	case strings.HasPrefix(lower, "0x"):
		if !strings.Contains(lower, "p") {
			lower += "p0"
		}
		v, err := strconv.ParseFloat(lower, 64)
		return v, err == nil
	default:
		v, err := strconv.ParseFloat(lower, 64)
		return v, err == nil
	}
}

func isZero(tree *ast.Tree, id ast.ExprID) bool {
	v, ok := numberValue(tree, id)
	return ok && v == 0
}

// isMultiValue reports expressions that may expand to several values.
func isMultiValue(tree *ast.Tree, id ast.ExprID) bool {
	expr := tree.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprCall, ast.ExprMethodCall, ast.ExprVararg:
		return true
	default:
		return false
	}
}

// functionBodies calls fn for every function in the tree: statements,
// local functions and function expressions.
func functionBodies(tree *ast.Tree, visit func(fn *ast.FuncBody, stmt ast.StmtID, expr ast.ExprID)) {
	tree.Walk(ast.Visitor{
		Stmt: func(id ast.StmtID, st *ast.Stmt) bool {
			switch st.Kind {
			case ast.StmtFunction:
				data, _ := tree.Stmts.Function(id)
				visit(&data.Func, id, ast.NoExprID)
			case ast.StmtLocalFunction:
				data, _ := tree.Stmts.LocalFunction(id)
				visit(&data.Func, id, ast.NoExprID)
			}
			return true
		},
		Expr: func(id ast.ExprID, e *ast.Expr) bool {
			if e.Kind == ast.ExprFunction {
				data, _ := tree.Exprs.Function(id)
				visit(&data.Func, ast.NoStmtID, id)
			}
			return true
		},
	})
}
