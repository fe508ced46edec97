package rules

import (
	"fmt"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
)

type HighCyclomaticComplexityConfig struct {
	MaximumComplexity int `toml:"maximum_complexity" yaml:"maximum_complexity"`
}

// 20 как в eslint оказывается слишком строгим для реального Lua кода.
func DefaultHighCyclomaticComplexityConfig() HighCyclomaticComplexityConfig {
	return HighCyclomaticComplexityConfig{MaximumComplexity: 40}
}

// HighCyclomaticComplexity reports functions with too many branches.
type HighCyclomaticComplexity struct {
	max int
}

func NewHighCyclomaticComplexity(cfg HighCyclomaticComplexityConfig) (*HighCyclomaticComplexity, error) {
	if cfg.MaximumComplexity < 1 {
		return nil, fmt.Errorf("maximum_complexity must be positive, got %d", cfg.MaximumComplexity)
	}
	return &HighCyclomaticComplexity{max: cfg.MaximumComplexity}, nil
}

func (*HighCyclomaticComplexity) Severity() diag.Severity { return diag.SevAllow }
func (*HighCyclomaticComplexity) RuleType() RuleType      { return Style }

func (r *HighCyclomaticComplexity) Pass(tree *ast.Tree, _ *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	functionBodies(tree, func(fn *ast.FuncBody, stmt ast.StmtID, expr ast.ExprID) {
		c := complexity{tree: tree, n: 1}
		c.block(fn.Body)
		if c.n <= r.max {
			return
		}
		span := tree.Stmts.Block(fn.Body).Span
		if stmt.IsValid() {
			span = tree.Stmts.Get(stmt).Span
		} else if expr.IsValid() {
			span = tree.Exprs.Get(expr).Span
		}
		out = append(out, diag.New(diag.LimitFunctionComplexity,
			fmt.Sprintf("cyclomatic complexity is too high (%d > %d)", c.n, r.max),
			diag.At(span)))
	})
	return out
}

// complexity counts decision points of one function; nested functions are
// counted separately.
type complexity struct {
	tree *ast.Tree
	n    int
}

func (c *complexity) block(id ast.BlockID) {
	block := c.tree.Stmts.Block(id)
	if block == nil {
		return
	}
	for _, st := range block.Stmts {
		c.stmt(st)
	}
}

func (c *complexity) stmt(id ast.StmtID) {
	st := c.tree.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtIf:
		data, _ := c.tree.Stmts.If(id)
		c.n++
		c.expr(data.Cond)
		c.block(data.Then)
		for _, elseIf := range data.ElseIfs {
			c.n++
			c.expr(elseIf.Cond)
			c.block(elseIf.Body)
		}
		c.block(data.Else)
	case ast.StmtWhile:
		data, _ := c.tree.Stmts.While(id)
		c.n++
		c.expr(data.Cond)
		c.block(data.Body)
	case ast.StmtRepeat:
		data, _ := c.tree.Stmts.Repeat(id)
		c.n++
		c.expr(data.Until)
		c.block(data.Body)
	case ast.StmtNumericFor:
		data, _ := c.tree.Stmts.NumericFor(id)
		c.n++
		c.expr(data.Start)
		c.expr(data.Limit)
		c.expr(data.Step)
		c.block(data.Body)
	case ast.StmtGenericFor:
		data, _ := c.tree.Stmts.GenericFor(id)
		c.n++
		for _, e := range data.Exprs {
			c.expr(e)
		}
		c.block(data.Body)
	case ast.StmtDo:
		data, _ := c.tree.Stmts.Do(id)
		c.block(data.Body)
	case ast.StmtLocal:
		data, _ := c.tree.Stmts.Local(id)
		for _, e := range data.Values {
			c.expr(e)
		}
	case ast.StmtAssign:
		data, _ := c.tree.Stmts.Assign(id)
		for _, e := range data.Values {
			c.expr(e)
		}
	case ast.StmtCompoundAssign:
		data, _ := c.tree.Stmts.CompoundAssign(id)
		c.expr(data.Value)
	case ast.StmtCall:
		data, _ := c.tree.Stmts.Call(id)
		c.expr(data.Call)
	case ast.StmtReturn:
		data, _ := c.tree.Stmts.Return(id)
		for _, e := range data.Values {
			c.expr(e)
		}
	default:
	}
}

func (c *complexity) expr(id ast.ExprID) {
	c.tree.WalkExpr(id, ast.Visitor{
		Expr: func(eid ast.ExprID, e *ast.Expr) bool {
			switch e.Kind {
			case ast.ExprFunction:
				return false
			case ast.ExprBinary:
				data, _ := c.tree.Exprs.Binary(eid)
				if data.Op == ast.BinAnd || data.Op == ast.BinOr {
					c.n++
				}
			case ast.ExprIfElse:
				data, _ := c.tree.Exprs.IfElse(eid)
				c.n += 1 + len(data.ElseIfs)
			}
			return true
		},
	})
}
