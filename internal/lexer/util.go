package lexer

// ===== Классификаторы =====

// Lua идентификаторы только ASCII.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

// Проверка для кейса ".5": текущая точка, дальше цифра?
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

// ===== Матчеры последовательностей операторов (жадность) =====

// try2/try3 пробуют "съесть" 2/3 байта, если совпадает.
func (lx *Lexer) try3(a, b, c byte) bool {
	b0, b1, b2, ok := lx.cursor.Peek3()
	if !ok || b0 != a || b1 != b || b2 != c {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

// longBracketLevel смотрит на "[", "[=", "[==" ... и возвращает число '='
// если за ними следует второй '['. Иначе -1. Курсор не двигается.
func (lx *Lexer) longBracketLevel() int {
	if lx.cursor.Peek() != '[' {
		return -1
	}
	var n uint32 = 1
	for lx.cursor.PeekAt(n) == '=' {
		n++
	}
	if lx.cursor.PeekAt(n) != '[' {
		return -1
	}
	return int(n - 1)
}

// skipLongBracket съедает "[==[ ... ]==]" целиком. Возвращает false, если
// закрывающая скобка не найдена (курсор тогда стоит на EOF).
func (lx *Lexer) skipLongBracket(level int) bool {
	// открывающая часть: '[' + level*'=' + '['
	for i := 0; i < level+2; i++ {
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != ']' {
			continue
		}
		eq := 0
		for lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			eq++
		}
		if eq == level && lx.cursor.Peek() == ']' {
			lx.cursor.Bump()
			return true
		}
	}
	return false
}
