package parser

import (
	"strconv"

	"github.com/chuckjaz/dyego-vibe/internal/ast"
	"github.com/chuckjaz/dyego-vibe/internal/lexer"
)

func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrecedence(precedenceLowest)
}

func (p *Parser) parseExprPrecedence(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportError("unexpected token in expression `"+tokenText(p.curTok)+"`", p.curTok.Span)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekTok.Type != lexer.SEMICOLON && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			break
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	return ast.NewIdent(p.curTok.Value, p.curTok.Span)
}

func (p *Parser) parseIntLit() ast.Expr {
	value, err := strconv.ParseInt(p.curTok.Raw, 10, 64)
	if err != nil {
		p.reportError("invalid integer literal `"+p.curTok.Raw+"`", p.curTok.Span)
		return nil
	}
	return ast.NewIntLit(p.curTok.Raw, value, p.curTok.Span)
}

func (p *Parser) parseFloatLit() ast.Expr {
	value, err := strconv.ParseFloat(p.curTok.Raw, 64)
	if err != nil {
		p.reportError("invalid float literal `"+p.curTok.Raw+"`", p.curTok.Span)
		return nil
	}
	return ast.NewFloatLit(p.curTok.Raw, value, p.curTok.Span)
}

func (p *Parser) parseStringLit() ast.Expr {
	return ast.NewStringLit(p.curTok.Value, p.curTok.Span)
}

func (p *Parser) parseBoolLit() ast.Expr {
	return ast.NewBoolLit(p.curTok.Type == lexer.TRUE, p.curTok.Span)
}

func (p *Parser) parseNullLit() ast.Expr {
	return ast.NewNullLit(p.curTok.Span)
}

func (p *Parser) parseThisExpr() ast.Expr {
	return ast.NewThisExpr(p.curTok.Span)
}

// parsePrefixExpr handles the unary operators ! and -. The operand is parsed
// at prefix precedence so casts and postfix chains bind tighter:
// -a.b parses as -(a.b).
func (p *Parser) parsePrefixExpr() ast.Expr {
	operatorTok := p.curTok
	p.nextToken()

	operand := p.parseExprPrecedence(precedencePrefix)
	if operand == nil {
		return nil
	}

	return ast.NewUnaryExpr(operatorTok.Type, operand, mergeSpan(operatorTok.Span, operand.Span()))
}

// parseGroupingExpr parses "(expr)" into an explicit grouping node so the
// renderer reproduces the original parenthesization.
func (p *Parser) parseGroupingExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken()

	inner := p.parseExpr()
	if inner == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return ast.NewGroupingExpr(inner, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseArrayLit() ast.Expr {
	start := p.curTok.Span

	var elements []ast.Expr
	for p.peekTok.Type != lexer.RBRACKET {
		p.nextToken()
		elem := p.parseExpr()
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)
		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}

	return ast.NewArrayLit(elements, mergeSpan(start, p.curTok.Span))
}

// parseAssignExpr parses the right side first (right-associative), then
// validates the left side structurally. Only a bare variable, a member
// access or an index access may be assigned to; anything else is diagnosed
// as an invalid target while the parse itself still succeeds with the value
// expression standing in as a degraded node.
func (p *Parser) parseAssignExpr(left ast.Expr) ast.Expr {
	opSpan := p.curTok.Span
	p.nextToken()

	value := p.parseExprPrecedence(precedenceAssign - 1)
	if value == nil {
		return nil
	}
	span := mergeSpan(left.Span(), value.Span())

	switch target := left.(type) {
	case *ast.Ident:
		return ast.NewAssignExpr(target, value, span)
	case *ast.MemberExpr:
		return ast.NewSetExpr(target.Object, target.Name, value, span)
	case *ast.IndexExpr:
		return ast.NewIndexSetExpr(target.Target, target.Index, value, span)
	default:
		p.reportError("Invalid assignment target.", opSpan)
		return value
	}
}

// parseElvisExpr is right-recursive: a ?: b ?: c groups as a ?: (b ?: c).
func (p *Parser) parseElvisExpr(left ast.Expr) ast.Expr {
	p.nextToken()

	right := p.parseExprPrecedence(precedenceElvis - 1)
	if right == nil {
		return nil
	}

	return ast.NewElvisExpr(left, right, mergeSpan(left.Span(), right.Span()))
}

func (p *Parser) parseLogicalExpr(left ast.Expr) ast.Expr {
	op := p.curTok.Type
	precedence := p.curPrecedence()
	p.nextToken()

	right := p.parseExprPrecedence(precedence)
	if right == nil {
		return nil
	}

	return ast.NewLogicalExpr(left, op, right, mergeSpan(left.Span(), right.Span()))
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	op := p.curTok.Type
	precedence := p.curPrecedence()
	p.nextToken()

	right := p.parseExprPrecedence(precedence)
	if right == nil {
		return nil
	}

	return ast.NewBinaryExpr(left, op, right, mergeSpan(left.Span(), right.Span()))
}

// parseCastExpr parses "expr as Type". Chains are left-associative: the
// Pratt loop re-enters at equal precedence, so a as T as U groups as
// (a as T) as U.
func (p *Parser) parseCastExpr(left ast.Expr) ast.Expr {
	p.nextToken()

	typ := p.parseType()
	if typ == nil {
		return nil
	}

	return ast.NewCastExpr(left, typ, mergeSpan(left.Span(), typ.Span()))
}

// parseCallExpr parses an argument list. An argument position is named only
// when the current token is an identifier and the one after it is `=`; the
// two-token window distinguishes f(x = 1) from f(x == 1) and from f(x).
// If the closing parenthesis is immediately followed by `{`, a lambda is
// parsed and appended as a final unnamed argument (trailing-lambda sugar).
func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	var args []ast.Arg

	for p.peekTok.Type != lexer.RPAREN {
		p.nextToken()

		var name *ast.Ident
		if p.curTok.Type == lexer.IDENT && p.peekTok.Type == lexer.ASSIGN {
			name = ast.NewIdent(p.curTok.Value, p.curTok.Span)
			p.nextToken() // '='
			p.nextToken() // first token of the value
		}

		value := p.parseExpr()
		if value == nil {
			return nil
		}
		args = append(args, ast.Arg{Name: name, Value: value})

		if p.peekTok.Type == lexer.COMMA {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	span := mergeSpan(callee.Span(), p.curTok.Span)

	if p.peekTok.Type == lexer.LBRACE {
		p.nextToken()
		lambda := p.parseLambdaExpr()
		if lambda == nil {
			return nil
		}
		args = append(args, ast.Arg{Value: lambda})
		span = mergeSpan(span, lambda.Span())
	}

	return ast.NewCallExpr(callee, args, span)
}

// parseTrailingLambdaCall handles a `{` directly after an expression with no
// argument list: f { ... } is a call whose only argument is the lambda. The
// brace is resolved positionally, never by looking into its content.
func (p *Parser) parseTrailingLambdaCall(callee ast.Expr) ast.Expr {
	lambda := p.parseLambdaExpr()
	if lambda == nil {
		return nil
	}

	args := []ast.Arg{{Value: lambda}}
	return ast.NewCallExpr(callee, args, mergeSpan(callee.Span(), lambda.Span()))
}

func (p *Parser) parseMemberExpr(object ast.Expr) ast.Expr {
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Value, p.curTok.Span)
	return ast.NewMemberExpr(object, name, mergeSpan(object.Span(), p.curTok.Span))
}

func (p *Parser) parseSafeMemberExpr(object ast.Expr) ast.Expr {
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Value, p.curTok.Span)
	return ast.NewSafeMemberExpr(object, name, mergeSpan(object.Span(), p.curTok.Span))
}

func (p *Parser) parseIndexExpr(target ast.Expr) ast.Expr {
	p.nextToken()

	index := p.parseExpr()
	if index == nil {
		return nil
	}
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}

	return ast.NewIndexExpr(target, index, mergeSpan(target.Span(), p.curTok.Span))
}

func (p *Parser) parsePropagateExpr(operand ast.Expr) ast.Expr {
	return ast.NewPropagateExpr(operand, mergeSpan(operand.Span(), p.curTok.Span))
}

// parseLambdaExpr parses a lambda literal with curTok on `{`. The parameter
// list is recognized by shape alone: an identifier followed by `,` or `->`,
// or a bare `->` for an explicit empty list. Anything else means the lambda
// has no parameters and the brace's content is its body.
func (p *Parser) parseLambdaExpr() ast.Expr {
	start := p.curTok.Span

	var params []*ast.Param
	switch {
	case p.peekTok.Type == lexer.ARROW:
		p.nextToken() // '->'
	case p.peekTok.Type == lexer.IDENT && (p.lookAhead(2).Type == lexer.COMMA || p.lookAhead(2).Type == lexer.ARROW):
		for {
			if !p.expectPeek(lexer.IDENT) {
				return nil
			}
			name := ast.NewIdent(p.curTok.Value, p.curTok.Span)
			params = append(params, ast.NewParam(name, nil, p.curTok.Span))
			if p.peekTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(lexer.ARROW) {
			return nil
		}
	}

	var stmts []ast.Stmt
	for p.peekTok.Type != lexer.RBRACE && p.peekTok.Type != lexer.EOF {
		p.nextToken()
		stmt := p.parseStmt()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	span := mergeSpan(start, p.curTok.Span)

	body := ast.NewBlockExpr(stmts, span)
	return ast.NewLambdaExpr(params, body, span)
}

// parseBlockExpr parses a brace-delimited statement sequence with curTok on
// `{`. It leaves curTok on the closing `}`.
func (p *Parser) parseBlockExpr() *ast.BlockExpr {
	start := p.curTok.Span

	var stmts []ast.Stmt
	for p.peekTok.Type != lexer.RBRACE && p.peekTok.Type != lexer.EOF {
		p.nextToken()
		stmt := p.parseStmt()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}

	return ast.NewBlockExpr(stmts, mergeSpan(start, p.curTok.Span))
}

// parseControlBody parses the body of a control-flow construct: a block when
// the next token is `{`, a single expression otherwise.
func (p *Parser) parseControlBody() ast.Expr {
	if p.curTok.Type == lexer.LBRACE {
		block := p.parseBlockExpr()
		if block == nil {
			return nil
		}
		return block
	}
	return p.parseExpr()
}

// parseLoopBody is parseControlBody for constructs that require a
// block-typed body: a non-block body is rewrapped as a single-statement
// block.
func (p *Parser) parseLoopBody() ast.Expr {
	if p.curTok.Type == lexer.LBRACE {
		block := p.parseBlockExpr()
		if block == nil {
			return nil
		}
		return block
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	stmt := ast.NewExprStmt(expr, expr.Span())
	return ast.NewBlockExpr([]ast.Stmt{stmt}, expr.Span())
}

func (p *Parser) parseIfExpr() ast.Expr {
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
	then := p.parseControlBody()
	if then == nil {
		return nil
	}
	span := mergeSpan(start, then.Span())

	var els ast.Expr
	if p.peekTok.Type == lexer.ELSE {
		p.nextToken() // 'else'
		p.nextToken()
		els = p.parseControlBody()
		if els == nil {
			return nil
		}
		span = mergeSpan(span, els.Span())
	}

	return ast.NewIfExpr(cond, then, els, span)
}

// parseWhenExpr parses a when expression with an optional parenthesized
// subject. Each entry is a comma-separated condition list, an arrow and a
// body; the else arm is written `else -> body`.
func (p *Parser) parseWhenExpr() ast.Expr {
	start := p.curTok.Span

	var subject ast.Expr
	if p.peekTok.Type == lexer.LPAREN {
		p.nextToken() // '('
		p.nextToken()
		subject = p.parseExpr()
		if subject == nil {
			return nil
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}

	var entries []ast.WhenEntry
	var els ast.Expr
	for p.peekTok.Type != lexer.RBRACE && p.peekTok.Type != lexer.EOF {
		p.nextToken()

		if p.curTok.Type == lexer.ELSE {
			if !p.expectPeek(lexer.ARROW) {
				return nil
			}
			p.nextToken()
			els = p.parseControlBody()
			if els == nil {
				return nil
			}
		} else {
			var conds []ast.Expr
			for {
				cond := p.parseExpr()
				if cond == nil {
					return nil
				}
				conds = append(conds, cond)
				if p.peekTok.Type != lexer.COMMA {
					break
				}
				p.nextToken() // ','
				p.nextToken()
			}
			if !p.expectPeek(lexer.ARROW) {
				return nil
			}
			p.nextToken()
			body := p.parseControlBody()
			if body == nil {
				return nil
			}
			entries = append(entries, ast.WhenEntry{Conditions: conds, Body: body})
		}

		if p.peekTok.Type == lexer.SEMICOLON {
			p.nextToken()
		}
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}

	return ast.NewWhenExpr(subject, entries, els, mergeSpan(start, p.curTok.Span))
}
