package parser

import (
	"errors"

	"moonlint/internal/ast"
	"moonlint/internal/lexer"
	"moonlint/internal/source"
	"moonlint/internal/token"
)

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseSubExpr(0)
}

func (p *Parser) parseExprList() []ast.ExprID {
	var out []ast.ExprID
	for {
		if e := p.parseExpr(); e.IsValid() {
			out = append(out, e)
		}
		if !p.eat(token.Comma) {
			return out
		}
	}
}

// parseSubExpr: precedence climbing: разбирает операнды, пока левый
// приоритет оператора выше limit.
func (p *Parser) parseSubExpr(limit int) ast.ExprID {
	defer p.leave()
	if !p.enter() {
		return ast.NoExprID
	}

	var left ast.ExprID
	if op, ok := unaryOpFor(p.peek().Kind); ok {
		opTok := p.advance()
		operand := p.parseSubExpr(precUnary)
		if !operand.IsValid() {
			return ast.NoExprID
		}
		left = p.tree.Exprs.NewUnary(p.spanFrom(opTok.Span), op, operand)
	} else {
		left = p.parseSimpleExpr()
	}
	if !left.IsValid() {
		return ast.NoExprID
	}

	for {
		prec, ok := binaryOpFor(p.peek().Kind)
		if !ok || prec.left <= limit {
			return left
		}
		opTok := p.advance()
		right := p.parseSubExpr(prec.right)
		if !right.IsValid() {
			return left
		}
		span := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.tree.Exprs.NewBinary(span, prec.op, opTok.Span, left, right)
	}
}

func (p *Parser) parseSimpleExpr() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.Number:
		p.advance()
		return p.tree.Exprs.NewNumber(tok.Span, tok.Text)
	case token.String:
		return p.parseString()
	case token.KwNil:
		p.advance()
		return p.tree.Exprs.NewAtom(ast.ExprNil, tok.Span)
	case token.KwTrue:
		p.advance()
		return p.tree.Exprs.NewAtom(ast.ExprTrue, tok.Span)
	case token.KwFalse:
		p.advance()
		return p.tree.Exprs.NewAtom(ast.ExprFalse, tok.Span)
	case token.DotDotDot:
		p.advance()
		return p.tree.Exprs.NewAtom(ast.ExprVararg, tok.Span)
	case token.KwFunction:
		p.advance()
		body, _ := p.parseFuncBody(tok)
		return p.tree.Exprs.NewFunction(p.spanFrom(tok.Span), body)
	case token.LBrace:
		return p.parseTable()
	case token.KwIf:
		return p.parseIfElseExpr()
	default:
		return p.parseSuffixedExpr()
	}
}

func (p *Parser) parseString() ast.ExprID {
	tok := p.advance()
	value, err := lexer.Unquote(tok.Text)
	if err != nil && !errors.Is(err, lexer.ErrUnterminated) {
		// незакрытую строку лексер уже зарепортил
		p.errAt(tok.Span, err.Error())
	}
	return p.tree.Exprs.NewString(tok.Span, tok.Text, value)
}

func (p *Parser) parsePrimaryExpr() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.tree.Exprs.NewName(tok.Span, tok.Text)
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		if !inner.IsValid() {
			return ast.NoExprID
		}
		p.expectClose(token.RParen, tok)
		return p.tree.Exprs.NewParen(p.spanFrom(tok.Span), inner)
	default:
		p.err("unexpected symbol")
		return ast.NoExprID
	}
}

func (p *Parser) parseSuffixedExpr() ast.ExprID {
	start := p.peek().Span
	expr := p.parsePrimaryExpr()
	if !expr.IsValid() {
		return expr
	}
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			field, ok := p.parseName()
			if !ok {
				return expr
			}
			expr = p.tree.Exprs.NewMember(p.spanFrom(start), expr, field)
		case token.LBracket:
			open := p.advance()
			index := p.parseExpr()
			p.expectClose(token.RBracket, open)
			if !index.IsValid() {
				return expr
			}
			expr = p.tree.Exprs.NewIndex(p.spanFrom(start), expr, index)
		case token.Colon:
			p.advance()
			method, ok := p.parseName()
			if !ok {
				return expr
			}
			args, kind, argsSpan, ok := p.parseCallArgs()
			if !ok {
				return expr
			}
			expr = p.tree.Exprs.NewMethodCall(p.spanFrom(start), expr, method, args, kind, argsSpan)
		case token.LParen, token.String, token.LBrace:
			args, kind, argsSpan, ok := p.parseCallArgs()
			if !ok {
				return expr
			}
			expr = p.tree.Exprs.NewCall(p.spanFrom(start), expr, args, kind, argsSpan)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs() ([]ast.ExprID, ast.CallArgsKind, source.Span, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.String:
		arg := p.parseString()
		return []ast.ExprID{arg}, ast.CallArgsString, tok.Span, true
	case token.LBrace:
		arg := p.parseTable()
		return []ast.ExprID{arg}, ast.CallArgsTable, p.exprSpan(arg), true
	case token.LParen:
		p.advance()
		var args []ast.ExprID
		if !p.at(token.RParen) {
			args = p.parseExprList()
		}
		ok := p.expectClose(token.RParen, tok)
		return args, ast.CallArgsParens, p.spanFrom(tok.Span), ok
	default:
		p.err("function arguments expected")
		return nil, ast.CallArgsParens, tok.Span, false
	}
}

func (p *Parser) parseTable() ast.ExprID {
	open := p.advance()
	var fields []ast.TableField
	for !p.atAny(token.RBrace, token.EOF) {
		fstart := p.peek().Span
		switch {
		case p.at(token.LBracket):
			lb := p.advance()
			key := p.parseExpr()
			p.expectClose(token.RBracket, lb)
			p.expect(token.Assign)
			value := p.parseExpr()
			fields = append(fields, ast.TableField{Kind: ast.TableFieldKeyed, Key: key, Value: value, Span: p.spanFrom(fstart)})
		case p.at(token.Ident) && p.peekN(1).Kind == token.Assign:
			name, _ := p.parseName()
			p.advance()
			value := p.parseExpr()
			fields = append(fields, ast.TableField{Kind: ast.TableFieldNamed, Name: name, Value: value, Span: p.spanFrom(fstart)})
		default:
			value := p.parseExpr()
			if value.IsValid() {
				fields = append(fields, ast.TableField{Kind: ast.TableFieldPositional, Value: value, Span: p.spanFrom(fstart)})
			}
		}
		if !p.eat(token.Comma) && !p.eat(token.Semicolon) {
			break
		}
	}
	p.expectClose(token.RBrace, open)
	return p.tree.Exprs.NewTable(p.spanFrom(open.Span), fields)
}

// parseIfElseExpr: `if c then a elseif d then b else e` (Luau).
func (p *Parser) parseIfElseExpr() ast.ExprID {
	ifTok := p.advance()
	data := ast.ExprIfElseData{Cond: p.parseExpr()}
	p.expect(token.KwThen)
	data.Then = p.parseExpr()
	for p.eat(token.KwElseif) {
		cond := p.parseExpr()
		p.expect(token.KwThen)
		data.ElseIfs = append(data.ElseIfs, ast.ExprElseIf{Cond: cond, Then: p.parseExpr()})
	}
	if _, ok := p.expect(token.KwElse); !ok {
		return ast.NoExprID
	}
	data.Else = p.parseExpr()
	return p.tree.Exprs.NewIfElse(p.spanFrom(ifTok.Span), data)
}

func (p *Parser) parseFuncBody(opener token.Token) (ast.FuncBody, bool) {
	var fn ast.FuncBody
	if _, ok := p.expect(token.LParen); !ok {
		return fn, false
	}
	if !p.at(token.RParen) {
		for {
			if p.at(token.DotDotDot) {
				tok := p.advance()
				fn.IsVararg = true
				fn.VarargSpan = tok.Span
				break
			}
			name, ok := p.parseName()
			if !ok {
				break
			}
			fn.Params = append(fn.Params, name)
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		return fn, false
	}
	fn.Body = p.parseBlock()
	return fn, p.expectClose(token.KwEnd, opener)
}
