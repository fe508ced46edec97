package lexer

import "moonlint/internal/token"

// scanNumber: 10, 3.14, .5, 1e10, 1E-3, 0xFF, 0x1p4, 0xA.8, 1_000 (Luau), 0b101 (Luau).
// Суффиксы LuaJIT (ULL, LL, i) тоже принимаются.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := lx.eatDigits(isHex)
		if lx.cursor.Peek() == '.' {
			lx.cursor.Bump()
			digits += lx.eatDigits(isHex)
		}
		if digits == 0 {
			lx.report(lx.cursor.SpanFrom(start), "malformed number: expected hex digits")
		}
		if p := lx.cursor.Peek(); p == 'p' || p == 'P' {
			lx.scanExponent(start)
		}
		return lx.finishNumber(start)
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'b' || b1 == 'B') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		if lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' }) == 0 {
			lx.report(lx.cursor.SpanFrom(start), "malformed number: expected binary digits")
		}
		return lx.finishNumber(start)
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	}
	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		lx.scanExponent(start)
	}
	return lx.finishNumber(start)
}

func (lx *Lexer) eatDigits(ok func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		if b == '_' || ok(b) {
			lx.cursor.Bump()
			if b != '_' {
				n++
			}
			continue
		}
		return n
	}
}

func (lx *Lexer) scanExponent(start Mark) {
	lx.cursor.Bump()
	if s := lx.cursor.Peek(); s == '+' || s == '-' {
		lx.cursor.Bump()
	}
	if lx.eatDigits(isDec) == 0 {
		lx.report(lx.cursor.SpanFrom(start), "malformed number: missing exponent digits")
	}
}

func (lx *Lexer) finishNumber(start Mark) token.Token {
	// LuaJIT: 1ULL, 2LL, 3i
	for {
		b := lx.cursor.Peek()
		if b == 'u' || b == 'U' || b == 'l' || b == 'L' || b == 'i' {
			lx.cursor.Bump()
			continue
		}
		break
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.report(lx.cursor.SpanFrom(start), "malformed number")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: lx.text(sp)}
}
