package parser

import (
	"github.com/chuckjaz/dyego-vibe/internal/ast"
	"github.com/chuckjaz/dyego-vibe/internal/lexer"
)

// parseType parses a type expression with curTok on its first token,
// leaving curTok on its last.
//
// A trailing `|` starts a union: the right-hand side is parsed recursively
// and spliced, so `A | B | C` yields one union with three flat members and a
// union of unions never appears.
func (p *Parser) parseType() ast.TypeExpr {
	left := p.parsePostfixType()
	if left == nil {
		return nil
	}

	if p.peekTok.Type != lexer.PIPE {
		return left
	}
	p.nextToken() // '|'
	p.nextToken()

	right := p.parseType()
	if right == nil {
		return nil
	}

	return ast.NewUnionType([]ast.TypeExpr{left, right}, mergeSpan(left.Span(), right.Span()))
}

// parsePostfixType parses a base type followed by any run of `[]` and `?`
// postfixes, which may repeat and interleave: i32[]?[] is an array of
// optional arrays.
func (p *Parser) parsePostfixType() ast.TypeExpr {
	base := p.parseBaseType()
	if base == nil {
		return nil
	}

	for {
		switch p.peekTok.Type {
		case lexer.LBRACKET:
			p.nextToken()
			if !p.expectPeek(lexer.RBRACKET) {
				return nil
			}
			base = ast.NewArrayType(base, mergeSpan(base.Span(), p.curTok.Span))
		case lexer.QUESTION:
			p.nextToken()
			base = ast.NewOptionalType(base, mergeSpan(base.Span(), p.curTok.Span))
		default:
			return base
		}
	}
}

// parseBaseType parses a parenthesized type or a name with optional generic
// arguments. A bare name matching a generic parameter declared by the
// enclosing declaration becomes a GenericParam node.
func (p *Parser) parseBaseType() ast.TypeExpr {
	switch p.curTok.Type {
	case lexer.LPAREN:
		p.nextToken()
		inner := p.parseType()
		if inner == nil {
			return nil
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		return inner
	case lexer.IDENT:
		name := ast.NewIdent(p.curTok.Value, p.curTok.Span)
		span := p.curTok.Span

		if p.peekTok.Type != lexer.LT {
			if p.typeParams[name.Name] {
				return ast.NewGenericParam(name, span)
			}
			return ast.NewNamedType(name, nil, span)
		}

		p.nextToken() // '<'
		var args []ast.TypeExpr
		for {
			p.nextToken()
			arg := p.parseType()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if p.peekTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(lexer.GT) {
			return nil
		}
		return ast.NewNamedType(name, args, mergeSpan(span, p.curTok.Span))
	default:
		p.reportError("expected type, found `"+tokenText(p.curTok)+"`", p.curTok.Span)
		return nil
	}
}
