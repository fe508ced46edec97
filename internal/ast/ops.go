package ast

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinFloorDiv
	BinMod
	BinPow
	BinConcat
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
)

var binaryOpText = [...]string{
	BinAdd:      "+",
	BinSub:      "-",
	BinMul:      "*",
	BinDiv:      "/",
	BinFloorDiv: "//",
	BinMod:      "%",
	BinPow:      "^",
	BinConcat:   "..",
	BinEq:       "==",
	BinNe:       "~=",
	BinLt:       "<",
	BinLe:       "<=",
	BinGt:       ">",
	BinGe:       ">=",
	BinAnd:      "and",
	BinOr:       "or",
	BinBitAnd:   "&",
	BinBitOr:    "|",
	BinBitXor:   "~",
	BinShl:      "<<",
	BinShr:      ">>",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison reports ==, ~=, <, <=, >, >=.
func (op BinaryOp) IsComparison() bool {
	return op >= BinEq && op <= BinGe
}

// IsArithmetic reports + - * / (the operators whose result type follows the operands).
func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case BinAdd, BinSub, BinMul, BinDiv:
		return true
	default:
		return false
	}
}

// IsBitwise reports the Lua 5.3 integer operators.
func (op BinaryOp) IsBitwise() bool {
	return op >= BinBitAnd && op <= BinShr
}

type UnaryOp uint8

const (
	UnNot UnaryOp = iota
	UnNeg
	UnLen
	UnBitNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnNot:
		return "not"
	case UnNeg:
		return "-"
	case UnLen:
		return "#"
	case UnBitNot:
		return "~"
	}
	return "?"
}
