package parser

import (
	"moonlint/internal/ast"
	"moonlint/internal/token"
)

// Приоритеты как в lparser.c: левый и правый; правый меньше левого
// у правоассоциативных операторов (.. и ^).
type binaryPrec struct {
	op          ast.BinaryOp
	left, right int
}

const precUnary = 12

var binaryTable = map[token.Kind]binaryPrec{
	token.KwOr:       {ast.BinOr, 1, 1},
	token.KwAnd:      {ast.BinAnd, 2, 2},
	token.Lt:         {ast.BinLt, 3, 3},
	token.Gt:         {ast.BinGt, 3, 3},
	token.LtEq:       {ast.BinLe, 3, 3},
	token.GtEq:       {ast.BinGe, 3, 3},
	token.TildeEq:    {ast.BinNe, 3, 3},
	token.EqEq:       {ast.BinEq, 3, 3},
	token.Pipe:       {ast.BinBitOr, 4, 4},
	token.Tilde:      {ast.BinBitXor, 5, 5},
	token.Amp:        {ast.BinBitAnd, 6, 6},
	token.Shl:        {ast.BinShl, 7, 7},
	token.Shr:        {ast.BinShr, 7, 7},
	token.DotDot:     {ast.BinConcat, 9, 8},
	token.Plus:       {ast.BinAdd, 10, 10},
	token.Minus:      {ast.BinSub, 10, 10},
	token.Star:       {ast.BinMul, 11, 11},
	token.Slash:      {ast.BinDiv, 11, 11},
	token.SlashSlash: {ast.BinFloorDiv, 11, 11},
	token.Percent:    {ast.BinMod, 11, 11},
	token.Caret:      {ast.BinPow, 14, 13},
}

func binaryOpFor(k token.Kind) (binaryPrec, bool) {
	prec, ok := binaryTable[k]
	return prec, ok
}

func unaryOpFor(k token.Kind) (ast.UnaryOp, bool) {
	switch k {
	case token.KwNot:
		return ast.UnNot, true
	case token.Minus:
		return ast.UnNeg, true
	case token.Hash:
		return ast.UnLen, true
	case token.Tilde:
		return ast.UnBitNot, true
	default:
		return 0, false
	}
}

var compoundOps = map[token.Kind]ast.BinaryOp{
	token.PlusAssign:       ast.BinAdd,
	token.MinusAssign:      ast.BinSub,
	token.StarAssign:       ast.BinMul,
	token.SlashAssign:      ast.BinDiv,
	token.SlashSlashAssign: ast.BinFloorDiv,
	token.PercentAssign:    ast.BinMod,
	token.CaretAssign:      ast.BinPow,
	token.DotDotAssign:     ast.BinConcat,
}
