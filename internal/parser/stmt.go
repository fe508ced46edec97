package parser

import (
	"moonlint/internal/ast"
	"moonlint/internal/source"
	"moonlint/internal/token"
)

// parseBlock разбирает операторы до конца блока (end/else/elseif/until/EOF).
// Span блока: область между открывающим и закрывающим токенами.
func (p *Parser) parseBlock() ast.BlockID {
	start := p.lastSpan.End
	var stmts []ast.StmtID
	if p.enter() {
		stmts = p.parseStmts()
	} else {
		p.resyncBlock()
	}
	p.leave()
	span := source.Span{File: p.file.ID, Start: start, End: p.peek().Span.Start}
	if span.End < span.Start {
		span.End = span.Start
	}
	return p.tree.Stmts.NewBlock(span, stmts)
}

func (p *Parser) parseStmts() []ast.StmtID {
	var stmts []ast.StmtID
	for !p.peek().IsBlockEnd() {
		if p.eat(token.Semicolon) {
			continue
		}
		if p.at(token.KwReturn) {
			stmts = append(stmts, p.parseReturn())
			if !p.peek().IsBlockEnd() {
				p.err("expected end of block after 'return'")
			}
			continue
		}
		pos := p.pos
		id, ok := p.parseStatement()
		if ok {
			stmts = append(stmts, id)
			continue
		}
		if p.pos == pos {
			p.advance()
		}
		p.resyncStmt()
	}
	return stmts
}

// resyncBlock пропускает слишком глубокий блок, считая парные открытия/закрытия.
func (p *Parser) resyncBlock() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.KwDo, token.KwThen, token.KwFunction, token.KwRepeat:
			depth++
		case token.KwEnd, token.KwUntil:
			if depth == 0 {
				return
			}
			depth--
		case token.KwElse, token.KwElseif:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) parseStatement() (ast.StmtID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		p.advance()
		body := p.parseBlock()
		ok := p.expectClose(token.KwEnd, tok)
		return p.tree.Stmts.NewDo(p.spanFrom(tok.Span), body), ok
	case token.KwFor:
		return p.parseFor()
	case token.KwRepeat:
		p.advance()
		body := p.parseBlock()
		if !p.expectClose(token.KwUntil, tok) {
			return ast.NoStmtID, false
		}
		cond := p.parseExpr()
		return p.tree.Stmts.NewRepeat(p.spanFrom(tok.Span), body, cond), cond.IsValid()
	case token.KwFunction:
		return p.parseFunctionStmt()
	case token.KwLocal:
		return p.parseLocal()
	case token.ColonColon:
		p.advance()
		name, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.ColonColon); !ok {
			return ast.NoStmtID, false
		}
		return p.tree.Stmts.NewLabel(ast.StmtLabel, p.spanFrom(tok.Span), name), true
	case token.KwBreak:
		p.advance()
		return p.tree.Stmts.NewBare(ast.StmtBreak, tok.Span), true
	case token.KwGoto:
		p.advance()
		name, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.tree.Stmts.NewLabel(ast.StmtGoto, p.spanFrom(tok.Span), name), true
	case token.Ident:
		if tok.Text == "continue" && p.isContinueStmt() {
			p.advance()
			return p.tree.Stmts.NewBare(ast.StmtContinue, tok.Span), true
		}
	}
	return p.parseExprStmt()
}

// isContinueStmt: `continue`: оператор, если дальше не идёт ничего, что
// продолжило бы выражение с переменной `continue`.
func (p *Parser) isContinueStmt() bool {
	next := p.peekN(1).Kind
	switch next {
	case token.LParen, token.Dot, token.LBracket, token.Colon, token.Assign,
		token.Comma, token.String, token.LBrace:
		return false
	}
	return !next.IsCompoundAssign()
}

func (p *Parser) parseReturn() ast.StmtID {
	tok := p.advance()
	var values []ast.ExprID
	if !p.peek().IsBlockEnd() && !p.at(token.Semicolon) {
		values = p.parseExprList()
	}
	span := p.spanFrom(tok.Span)
	p.eat(token.Semicolon)
	return p.tree.Stmts.NewReturn(span, values)
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	ifTok := p.advance()
	data := ast.StmtIfData{Cond: p.parseExpr()}
	if _, ok := p.expect(token.KwThen); !ok {
		return ast.NoStmtID, false
	}
	data.Then = p.parseBlock()
	for p.at(token.KwElseif) {
		elseifTok := p.advance()
		cond := p.parseExpr()
		if _, ok := p.expect(token.KwThen); !ok {
			return ast.NoStmtID, false
		}
		body := p.parseBlock()
		data.ElseIfs = append(data.ElseIfs, ast.ElseIf{Cond: cond, Body: body, Span: p.spanFrom(elseifTok.Span)})
	}
	if p.eat(token.KwElse) {
		data.Else = p.parseBlock()
	}
	ok := p.expectClose(token.KwEnd, ifTok)
	return p.tree.Stmts.NewIf(p.spanFrom(ifTok.Span), data), ok
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond := p.parseExpr()
	if _, ok := p.expect(token.KwDo); !ok {
		return ast.NoStmtID, false
	}
	body := p.parseBlock()
	ok := p.expectClose(token.KwEnd, whileTok)
	return p.tree.Stmts.NewWhile(p.spanFrom(whileTok.Span), cond, body), ok
}

func (p *Parser) parseFor() (ast.StmtID, bool) {
	forTok := p.advance()
	first, ok := p.parseName()
	if !ok {
		return ast.NoStmtID, false
	}

	if p.eat(token.Assign) {
		data := ast.StmtNumericForData{Var: first, Start: p.parseExpr()}
		if _, ok := p.expect(token.Comma); !ok {
			return ast.NoStmtID, false
		}
		data.Limit = p.parseExpr()
		if p.eat(token.Comma) {
			data.Step = p.parseExpr()
		}
		if _, ok := p.expect(token.KwDo); !ok {
			return ast.NoStmtID, false
		}
		data.Body = p.parseBlock()
		ok := p.expectClose(token.KwEnd, forTok)
		return p.tree.Stmts.NewNumericFor(p.spanFrom(forTok.Span), data), ok
	}

	vars := []ast.Name{first}
	for p.eat(token.Comma) {
		name, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		vars = append(vars, name)
	}
	if _, ok := p.expect(token.KwIn); !ok {
		return ast.NoStmtID, false
	}
	exprs := p.parseExprList()
	if _, ok := p.expect(token.KwDo); !ok {
		return ast.NoStmtID, false
	}
	body := p.parseBlock()
	ok = p.expectClose(token.KwEnd, forTok)
	return p.tree.Stmts.NewGenericFor(p.spanFrom(forTok.Span), vars, exprs, body), ok
}

func (p *Parser) parseFunctionStmt() (ast.StmtID, bool) {
	fnTok := p.advance()
	first, ok := p.parseName()
	if !ok {
		return ast.NoStmtID, false
	}
	name := ast.FuncName{Path: []ast.Name{first}}
	for p.eat(token.Dot) {
		part, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		name.Path = append(name.Path, part)
	}
	if p.eat(token.Colon) {
		method, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		name.Method = method
	}
	body, ok := p.parseFuncBody(fnTok)
	return p.tree.Stmts.NewFunction(p.spanFrom(fnTok.Span), name, body), ok
}

func (p *Parser) parseLocal() (ast.StmtID, bool) {
	localTok := p.advance()
	if p.at(token.KwFunction) {
		fnTok := p.advance()
		name, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.parseFuncBody(fnTok)
		return p.tree.Stmts.NewLocalFunction(p.spanFrom(localTok.Span), name, body), ok
	}

	var names []ast.Name
	var attribs []string
	for {
		name, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		attrib := ""
		if p.eat(token.Lt) {
			attr, ok := p.parseName()
			if !ok {
				return ast.NoStmtID, false
			}
			if _, ok := p.expect(token.Gt); !ok {
				return ast.NoStmtID, false
			}
			attrib = attr.Text
		}
		names = append(names, name)
		attribs = append(attribs, attrib)
		if !p.eat(token.Comma) {
			break
		}
	}
	var values []ast.ExprID
	if p.eat(token.Assign) {
		values = p.parseExprList()
	}
	return p.tree.Stmts.NewLocal(p.spanFrom(localTok.Span), names, attribs, values), true
}

// parseExprStmt: вызов функции, присваивание или составное присваивание.
func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.peek().Span
	target := p.parseSuffixedExpr()
	if !target.IsValid() {
		return ast.NoStmtID, false
	}

	if p.atAny(token.Assign, token.Comma) {
		targets := []ast.ExprID{target}
		for p.eat(token.Comma) {
			next := p.parseSuffixedExpr()
			if !next.IsValid() {
				return ast.NoStmtID, false
			}
			targets = append(targets, next)
		}
		if _, ok := p.expect(token.Assign); !ok {
			return ast.NoStmtID, false
		}
		values := p.parseExprList()
		ok := true
		for _, t := range targets {
			ok = p.checkAssignable(t) && ok
		}
		return p.tree.Stmts.NewAssign(p.spanFrom(start), targets, values), ok
	}

	if op, ok := compoundOps[p.peek().Kind]; ok {
		p.advance()
		value := p.parseExpr()
		assignable := p.checkAssignable(target)
		return p.tree.Stmts.NewCompoundAssign(p.spanFrom(start), op, target, value), assignable && value.IsValid()
	}

	switch p.tree.Exprs.Get(target).Kind {
	case ast.ExprCall, ast.ExprMethodCall:
		return p.tree.Stmts.NewCall(p.spanFrom(start), target), true
	}
	p.errAt(p.exprSpan(target), "syntax error: expression is not a statement")
	return ast.NoStmtID, false
}

func (p *Parser) checkAssignable(id ast.ExprID) bool {
	switch p.tree.Exprs.Get(id).Kind {
	case ast.ExprName, ast.ExprMember, ast.ExprIndex:
		return true
	}
	p.errAt(p.exprSpan(id), "cannot assign to this expression")
	return false
}
