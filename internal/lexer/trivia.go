package lexer

import (
	"moonlint/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\r', '\f', '\v' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - --... до \n -> TriviaLineComment
// - --[==[ ... ]==] -> TriviaBlockComment (если не закрыт: репорт и обрезаем на EOF)
// - #! в самом начале файла -> TriviaShebang
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	if lx.cursor.Off == 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '#' && b1 == '!' {
			start := lx.cursor.Mark()
			lx.skipToLineEnd()
			lx.pushTrivia(token.TriviaShebang, start)
		}
	}
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpace(b) {
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '-' && b1 == '-' {
			lx.scanCommentIntoHold()
			continue
		}

		break
	}
}

func (lx *Lexer) scanCommentIntoHold() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	if level := lx.longBracketLevel(); level >= 0 {
		if !lx.skipLongBracket(level) {
			lx.report(lx.cursor.SpanFrom(start), "unfinished long comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return
	}
	lx.skipToLineEnd()
	lx.pushTrivia(token.TriviaLineComment, start)
}

func (lx *Lexer) skipToLineEnd() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}
