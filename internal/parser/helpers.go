package parser

import (
	"slices"

	"moonlint/internal/ast"
	"moonlint/internal/diag"
	"moonlint/internal/source"
	"moonlint/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем false.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err("expected '" + k.String() + "'")
	return token.Token{Kind: token.Invalid, Span: p.getDiagnosticSpan()}, false
}

// expectClose ожидает закрывающий токен и указывает на открывающий, если его нет.
func (p *Parser) expectClose(k token.Kind, open token.Token) bool {
	if p.eat(k) {
		return true
	}
	msg := "expected '" + k.String() + "' to close '" + open.Text + "'" + p.near()
	d := diag.New(diag.ParseError, msg, diag.At(p.getDiagnosticSpan())).
		WithSecondary(diag.LabelAt(open.Span, "'"+open.Text+"' opened here")).
		WithSeverity(diag.SevError)
	p.emit(d)
	return false
}

func (p *Parser) parseName() (ast.Name, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return ast.Name{Text: tok.Text, Span: tok.Span}, true
	}
	p.err("expected identifier")
	return ast.Name{}, false
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// Для EOF используем позицию сразу после последнего токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

func (p *Parser) near() string {
	peek := p.peek()
	if peek.Kind == token.EOF {
		return " near <eof>"
	}
	return " near '" + peek.Text + "'"
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(msg string) {
	p.errAt(p.getDiagnosticSpan(), msg+p.near())
}

func (p *Parser) errAt(sp source.Span, msg string) {
	p.emit(diag.New(diag.ParseError, msg, diag.At(sp)).WithSeverity(diag.SevError))
}

func (p *Parser) emit(d diag.Diagnostic) {
	if p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors {
		return
	}
	p.errors++
	p.reporter.Report(d)
}

// spanFrom покрывает диапазон от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	end := p.lastSpan.End
	if end < start.End {
		end = start.End
	}
	return source.Span{File: start.File, Start: start.Start, End: end}
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.tree.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan.ZeroideToEnd()
}

func (p *Parser) enter() bool {
	p.depth++
	if p.depth > maxDepth {
		if !p.tooDeep {
			p.tooDeep = true
			p.err("chunk has too many syntax levels")
		}
		return false
	}
	return true
}

func (p *Parser) leave() { p.depth-- }

// isStmtStarter: токены, на которых можно продолжить разбор после ошибки.
func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwLocal, token.KwFunction, token.KwIf, token.KwWhile, token.KwFor,
		token.KwRepeat, token.KwDo, token.KwReturn, token.KwBreak, token.KwGoto,
		token.ColonColon, token.Semicolon:
		return true
	default:
		return false
	}
}

// resyncStmt прокручивает до начала следующего оператора, конца блока или
// первого токена на новой строке.
func (p *Parser) resyncStmt() {
	for {
		tok := p.peek()
		if tok.IsBlockEnd() || isStmtStarter(tok.Kind) || startsLine(tok) {
			return
		}
		p.advance()
	}
}

func startsLine(tok token.Token) bool {
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}
