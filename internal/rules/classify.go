package rules

import (
	"moonlint/internal/ast"
	"moonlint/internal/stdlib"
)

// Classify returns the statically known type of an expression. Names and
// call results are never known. Binary operators are classified only when
// the right operand is known; + - * / take the left operand's type, which
// misses mistakes like `"a" + 1` but never reports a valid overloaded call.
func Classify(tree *ast.Tree, id ast.ExprID) (stdlib.ArgumentType, bool) {
	expr := tree.Exprs.Get(id)
	if expr == nil {
		return stdlib.ArgumentType{}, false
	}
	switch expr.Kind {
	case ast.ExprParen:
		data, _ := tree.Exprs.Paren(id)
		return Classify(tree, data.Inner)
	case ast.ExprNil:
		return stdlib.Nil, true
	case ast.ExprTrue, ast.ExprFalse:
		return stdlib.Bool, true
	case ast.ExprNumber:
		return stdlib.Number, true
	case ast.ExprString:
		return stdlib.String, true
	case ast.ExprFunction:
		return stdlib.Func, true
	case ast.ExprTable:
		return stdlib.TableArg, true
	case ast.ExprUnary:
		data, _ := tree.Exprs.Unary(id)
		switch data.Op {
		case ast.UnLen, ast.UnBitNot:
			return stdlib.Number, true
		case ast.UnNeg:
			return Classify(tree, data.Operand)
		case ast.UnNot:
			return stdlib.Bool, true
		default:
			return stdlib.ArgumentType{}, false
		}
	case ast.ExprBinary:
		data, _ := tree.Exprs.Binary(id)
		if _, ok := Classify(tree, data.Right); !ok {
			return stdlib.ArgumentType{}, false
		}
		switch {
		case data.Op == ast.BinPow, data.Op == ast.BinMod, data.Op == ast.BinFloorDiv, data.Op.IsBitwise():
			return stdlib.Number, true
		case data.Op.IsComparison():
			return stdlib.Bool, true
		case data.Op == ast.BinConcat:
			return stdlib.String, true
		case data.Op.IsArithmetic():
			return Classify(tree, data.Left)
		default:
			// and/or: объединения типов не строим
			return stdlib.ArgumentType{}, false
		}
	default:
		return stdlib.ArgumentType{}, false
	}
}
