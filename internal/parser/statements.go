package parser

import (
	"github.com/chuckjaz/dyego-vibe/internal/ast"
	"github.com/chuckjaz/dyego-vibe/internal/lexer"
)

// parseStmt dispatches on the current token. Every statement parse leaves
// curTok on the statement's final token, which may be an optional trailing
// semicolon: a semicolon is consumed when present but never required.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok.Type {
	case lexer.VAL, lexer.VAR:
		return p.parseVarDecl()
	case lexer.FUN:
		return p.parseFunDecl(false)
	case lexer.MUT:
		if p.peekTok.Type == lexer.FUN {
			p.nextToken()
			return p.parseFunDecl(true)
		}
		p.reportExpected("`fun` after `mut`", p.peekTok)
		return nil
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.BREAK:
		return p.parseBreakStmt()
	case lexer.CONTINUE:
		return p.parseContinueStmt()
	case lexer.TYPE:
		return p.parseTypeDecl()
	case lexer.TRAIT:
		return p.parseTraitDecl()
	case lexer.USE:
		return p.parseUseDecl()
	default:
		return p.parseExprStmt()
	}
}

// finishStmt consumes an optional statement terminator.
func (p *Parser) finishStmt() {
	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	p.finishStmt()
	return ast.NewExprStmt(expr, expr.Span())
}

func (p *Parser) parseVarDecl() ast.Stmt {
	start := p.curTok.Span
	mutable := p.curTok.Type == lexer.VAR

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Value, p.curTok.Span)
	span := mergeSpan(start, p.curTok.Span)

	var typ ast.TypeExpr
	if p.peekTok.Type == lexer.COLON {
		p.nextToken() // ':'
		p.nextToken()
		typ = p.parseType()
		if typ == nil {
			return nil
		}
		span = mergeSpan(span, typ.Span())
	}

	var value ast.Expr
	if p.peekTok.Type == lexer.ASSIGN {
		p.nextToken() // '='
		p.nextToken()
		value = p.parseExpr()
		if value == nil {
			return nil
		}
		span = mergeSpan(span, value.Span())
	}

	p.finishStmt()
	return ast.NewVarDecl(mutable, name, typ, value, span)
}

// parseFunDecl parses a function declaration with curTok on `fun`. The
// declared generic parameter names are in scope for the whole signature and
// body, so the type grammar can tell a generic reference from a named type.
func (p *Parser) parseFunDecl(mutating bool) ast.Stmt {
	start := p.curTok.Span

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Value, p.curTok.Span)

	typeParams, ok := p.parseTypeParams()
	if !ok {
		return nil
	}
	restore := p.pushTypeParams(typeParams)
	defer restore()

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	params, ok := p.parseParams()
	if !ok {
		return nil
	}

	var returnType ast.TypeExpr
	if p.peekTok.Type == lexer.COLON {
		p.nextToken() // ':'
		p.nextToken()
		returnType = p.parseType()
		if returnType == nil {
			return nil
		}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlockExpr()
	if body == nil {
		return nil
	}

	p.finishStmt()
	return ast.NewFunDecl(mutating, name, typeParams, params, returnType, body, mergeSpan(start, body.Span()))
}

// parseTypeParams parses an optional `<A, B>` generic parameter list. It
// returns ok=false only on a malformed list.
func (p *Parser) parseTypeParams() ([]*ast.Ident, bool) {
	if p.peekTok.Type != lexer.LT {
		return nil, true
	}
	p.nextToken() // '<'

	var names []*ast.Ident
	for {
		if !p.expectPeek(lexer.IDENT) {
			return nil, false
		}
		names = append(names, ast.NewIdent(p.curTok.Value, p.curTok.Span))
		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(lexer.GT) {
		return nil, false
	}
	return names, true
}

func (p *Parser) pushTypeParams(names []*ast.Ident) func() {
	prev := p.typeParams
	next := make(map[string]bool, len(prev)+len(names))
	for name := range prev {
		next[name] = true
	}
	for _, n := range names {
		next[n.Name] = true
	}
	p.typeParams = next
	return func() { p.typeParams = prev }
}

// parseParams parses a parenthesized, typed parameter list with curTok on
// `(`. It leaves curTok on `)`.
func (p *Parser) parseParams() ([]*ast.Param, bool) {
	var params []*ast.Param

	for p.peekTok.Type != lexer.RPAREN {
		if !p.expectPeek(lexer.IDENT) {
			return nil, false
		}
		name := ast.NewIdent(p.curTok.Value, p.curTok.Span)
		nameSpan := p.curTok.Span

		if !p.expectPeek(lexer.COLON) {
			return nil, false
		}
		p.nextToken()
		typ := p.parseType()
		if typ == nil {
			return nil, false
		}

		params = append(params, ast.NewParam(name, typ, mergeSpan(nameSpan, typ.Span())))
		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curTok.Span
	span := start

	var value ast.Expr
	switch p.peekTok.Type {
	case lexer.SEMICOLON, lexer.RBRACE, lexer.EOF:
		// bare return
	default:
		p.nextToken()
		value = p.parseExpr()
		if value == nil {
			return nil
		}
		span = mergeSpan(span, value.Span())
	}

	p.finishStmt()
	return ast.NewReturnStmt(value, span)
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curTok.Span

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	p.nextToken()
	body := p.parseLoopBody()
	if body == nil {
		return nil
	}

	p.finishStmt()
	return ast.NewWhileStmt(cond, body, mergeSpan(start, body.Span()))
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curTok.Span

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	v := ast.NewIdent(p.curTok.Value, p.curTok.Span)

	if !p.expectPeek(lexer.IN) {
		return nil
	}
	p.nextToken()
	iterable := p.parseExpr()
	if iterable == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	p.nextToken()
	body := p.parseLoopBody()
	if body == nil {
		return nil
	}

	p.finishStmt()
	return ast.NewForStmt(v, iterable, body, mergeSpan(start, body.Span()))
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	span := p.curTok.Span

	var label *ast.Ident
	if p.peekTok.Type == lexer.IDENT {
		p.nextToken()
		label = ast.NewIdent(p.curTok.Value, p.curTok.Span)
		span = mergeSpan(span, p.curTok.Span)
	}

	p.finishStmt()
	return ast.NewBreakStmt(label, span)
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	span := p.curTok.Span

	var label *ast.Ident
	if p.peekTok.Type == lexer.IDENT {
		p.nextToken()
		label = ast.NewIdent(p.curTok.Value, p.curTok.Span)
		span = mergeSpan(span, p.curTok.Span)
	}

	p.finishStmt()
	return ast.NewContinueStmt(label, span)
}

// parseTypeDecl parses a value-type declaration:
//
//	type Name<T>(val x: T, var y: i32) { fun m(): i32 { ... } }
//
// The field list is ordered; each field defaults to immutable unless
// declared with var. The method block is optional.
func (p *Parser) parseTypeDecl() ast.Stmt {
	start := p.curTok.Span

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Value, p.curTok.Span)

	typeParams, ok := p.parseTypeParams()
	if !ok {
		return nil
	}
	restore := p.pushTypeParams(typeParams)
	defer restore()

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}

	var fields []*ast.Field
	for p.peekTok.Type != lexer.RPAREN {
		p.nextToken()

		mutable := false
		switch p.curTok.Type {
		case lexer.VAR:
			mutable = true
			p.nextToken()
		case lexer.VAL:
			p.nextToken()
		}
		if p.curTok.Type != lexer.IDENT {
			p.reportExpected("field name", p.curTok)
			return nil
		}
		fieldName := ast.NewIdent(p.curTok.Value, p.curTok.Span)
		fieldSpan := p.curTok.Span

		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.nextToken()
		typ := p.parseType()
		if typ == nil {
			return nil
		}
		fields = append(fields, ast.NewField(mutable, fieldName, typ, mergeSpan(fieldSpan, typ.Span())))

		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	span := mergeSpan(start, p.curTok.Span)

	var methods []*ast.FunDecl
	if p.peekTok.Type == lexer.LBRACE {
		p.nextToken() // '{'
		for p.peekTok.Type != lexer.RBRACE && p.peekTok.Type != lexer.EOF {
			p.nextToken()

			mutating := false
			if p.curTok.Type == lexer.MUT {
				mutating = true
				p.nextToken()
			}
			if p.curTok.Type != lexer.FUN {
				p.reportExpected("method declaration", p.curTok)
				return nil
			}
			method := p.parseFunDecl(mutating)
			if method == nil {
				return nil
			}
			methods = append(methods, method.(*ast.FunDecl))
		}
		if !p.expectPeek(lexer.RBRACE) {
			return nil
		}
		span = mergeSpan(span, p.curTok.Span)
	}

	p.finishStmt()
	return ast.NewTypeDecl(name, typeParams, fields, methods, span)
}

// parseTraitDecl parses a trait declaration: a name and a braced list of
// method signatures without bodies.
func (p *Parser) parseTraitDecl() ast.Stmt {
	start := p.curTok.Span

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Value, p.curTok.Span)

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}

	var methods []*ast.FunSig
	for p.peekTok.Type != lexer.RBRACE && p.peekTok.Type != lexer.EOF {
		p.nextToken()

		sigStart := p.curTok.Span
		mutating := false
		if p.curTok.Type == lexer.MUT {
			mutating = true
			p.nextToken()
		}
		if p.curTok.Type != lexer.FUN {
			p.reportExpected("method signature", p.curTok)
			return nil
		}
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		sigName := ast.NewIdent(p.curTok.Value, p.curTok.Span)

		if !p.expectPeek(lexer.LPAREN) {
			return nil
		}
		params, ok := p.parseParams()
		if !ok {
			return nil
		}
		sigSpan := mergeSpan(sigStart, p.curTok.Span)

		var returnType ast.TypeExpr
		if p.peekTok.Type == lexer.COLON {
			p.nextToken() // ':'
			p.nextToken()
			returnType = p.parseType()
			if returnType == nil {
				return nil
			}
			sigSpan = mergeSpan(sigSpan, returnType.Span())
		}
		if p.peekTok.Type == lexer.SEMICOLON {
			p.nextToken()
		}

		methods = append(methods, ast.NewFunSig(mutating, sigName, params, returnType, sigSpan))
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}

	p.finishStmt()
	return ast.NewTraitDecl(name, methods, mergeSpan(start, p.curTok.Span))
}

// parseUseDecl parses a use declaration into a structural record. Paths are
// never resolved here; the optional `{a, b}` suffix lists imported items and
// `use trait` flags a trait import.
func (p *Parser) parseUseDecl() ast.Stmt {
	start := p.curTok.Span

	trait := false
	if p.peekTok.Type == lexer.TRAIT {
		p.nextToken()
		trait = true
	}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	path := []*ast.Ident{ast.NewIdent(p.curTok.Value, p.curTok.Span)}
	span := mergeSpan(start, p.curTok.Span)

	var items []*ast.Ident
	for p.peekTok.Type == lexer.DOT {
		p.nextToken() // '.'

		if p.peekTok.Type == lexer.LBRACE {
			p.nextToken() // '{'
			for {
				if !p.expectPeek(lexer.IDENT) {
					return nil
				}
				items = append(items, ast.NewIdent(p.curTok.Value, p.curTok.Span))
				if p.peekTok.Type != lexer.COMMA {
					break
				}
				p.nextToken()
			}
			if !p.expectPeek(lexer.RBRACE) {
				return nil
			}
			span = mergeSpan(span, p.curTok.Span)
			break
		}

		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		path = append(path, ast.NewIdent(p.curTok.Value, p.curTok.Span))
		span = mergeSpan(span, p.curTok.Span)
	}

	p.finishStmt()
	return ast.NewUseDecl(trait, path, items, span)
}
