package parser

import (
	"github.com/chuckjaz/dyego-vibe/internal/ast"
	"github.com/chuckjaz/dyego-vibe/internal/diag"
	"github.com/chuckjaz/dyego-vibe/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

const (
	precedenceLowest = iota
	precedenceAssign
	precedenceElvis
	precedenceOr
	precedenceAnd
	precedenceEquality
	precedenceComparison
	precedenceSum
	precedenceProduct
	precedencePrefix
	precedenceCast
	precedencePostfix
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:   precedenceAssign,
	lexer.ELVIS:    precedenceElvis,
	lexer.OR:       precedenceOr,
	lexer.AND:      precedenceAnd,
	lexer.EQ:       precedenceEquality,
	lexer.NOT_EQ:   precedenceEquality,
	lexer.LT:       precedenceComparison,
	lexer.LE:       precedenceComparison,
	lexer.GT:       precedenceComparison,
	lexer.GE:       precedenceComparison,
	lexer.PLUS:     precedenceSum,
	lexer.MINUS:    precedenceSum,
	lexer.ASTERISK: precedenceProduct,
	lexer.SLASH:    precedenceProduct,
	lexer.PERCENT:  precedenceProduct,
	lexer.AS:       precedenceCast,
	lexer.LPAREN:   precedencePostfix,
	lexer.LBRACKET: precedencePostfix,
	lexer.LBRACE:   precedencePostfix,
	lexer.DOT:      precedencePostfix,
	lexer.SAFE_DOT: precedencePostfix,
	lexer.QUESTION: precedencePostfix,
}

// Parser implements a Pratt-style recursive descent parser for Dyego.
// Invariants:
//   - Lookahead: curTok always reflects the token currently under
//     examination; peekTok mirrors the token after it. The pair is the
//     parser's working window and is only mutated via nextToken. The named
//     argument and lambda parameter productions additionally peek one token
//     further through lookAhead, never by consuming.
//   - Every parse function leaves curTok on the LAST token of its
//     production, so the Pratt loop and the statement loop can advance
//     uniformly.
//   - Diagnostics: errors is an append-only accumulator. A failed production
//     returns nil, which unwinds to the top-level statement loop; the loop
//     records nothing further and synchronizes to the next statement
//     boundary, bounding the cascade to one diagnostic per malformed
//     declaration in the common case.
type Parser struct {
	tokens []lexer.Token
	pos    int

	curTok  lexer.Token
	peekTok lexer.Token

	errors []diag.Diagnostic

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn

	// typeParams holds the generic parameter names of the declaration whose
	// signature is currently being parsed, so bare references to them become
	// GenericParam type nodes instead of NamedType nodes.
	typeParams map[string]bool
}

// New returns a parser over the provided token stream. The stream must be
// the tokenizer's output: finite and terminated by an EOF token.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 {
		tokens = []lexer.Token{{Type: lexer.EOF}}
	}

	p := &Parser{
		tokens:     tokens,
		prefixFns:  make(map[lexer.TokenType]prefixParseFn),
		infixFns:   make(map[lexer.TokenType]infixParseFn),
		typeParams: make(map[string]bool),
	}

	p.curTok = tokens[0]
	p.peekTok = p.tokenAt(1)

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntLit)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLit)
	p.registerPrefix(lexer.STRING, p.parseStringLit)
	p.registerPrefix(lexer.TRUE, p.parseBoolLit)
	p.registerPrefix(lexer.FALSE, p.parseBoolLit)
	p.registerPrefix(lexer.NULL, p.parseNullLit)
	p.registerPrefix(lexer.THIS, p.parseThisExpr)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpr)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupingExpr)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLit)
	p.registerPrefix(lexer.LBRACE, p.parseLambdaExpr)
	p.registerPrefix(lexer.IF, p.parseIfExpr)
	p.registerPrefix(lexer.WHEN, p.parseWhenExpr)

	p.registerInfix(lexer.ASSIGN, p.parseAssignExpr)
	p.registerInfix(lexer.ELVIS, p.parseElvisExpr)
	p.registerInfix(lexer.OR, p.parseLogicalExpr)
	p.registerInfix(lexer.AND, p.parseLogicalExpr)
	p.registerInfix(lexer.EQ, p.parseBinaryExpr)
	p.registerInfix(lexer.NOT_EQ, p.parseBinaryExpr)
	p.registerInfix(lexer.LT, p.parseBinaryExpr)
	p.registerInfix(lexer.LE, p.parseBinaryExpr)
	p.registerInfix(lexer.GT, p.parseBinaryExpr)
	p.registerInfix(lexer.GE, p.parseBinaryExpr)
	p.registerInfix(lexer.PLUS, p.parseBinaryExpr)
	p.registerInfix(lexer.MINUS, p.parseBinaryExpr)
	p.registerInfix(lexer.ASTERISK, p.parseBinaryExpr)
	p.registerInfix(lexer.SLASH, p.parseBinaryExpr)
	p.registerInfix(lexer.PERCENT, p.parseBinaryExpr)
	p.registerInfix(lexer.AS, p.parseCastExpr)
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.LBRACE, p.parseTrailingLambdaCall)
	p.registerInfix(lexer.DOT, p.parseMemberExpr)
	p.registerInfix(lexer.SAFE_DOT, p.parseSafeMemberExpr)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpr)
	p.registerInfix(lexer.QUESTION, p.parsePropagateExpr)

	return p
}

// Parse consumes a token stream and produces the ordered top-level statement
// sequence together with the syntax diagnostics collected along the way. It
// never fails past its own boundary.
func Parse(tokens []lexer.Token) ([]ast.Stmt, []diag.Diagnostic) {
	p := New(tokens)
	stmts := p.ParseProgram()
	return stmts, p.Errors()
}

// ParseSource tokenizes source and parses it. Lexical errors are folded into
// the returned diagnostics ahead of syntax errors.
func ParseSource(filename, source string) ([]ast.Stmt, []diag.Diagnostic) {
	tokens, lexErrs := lexer.TokenizeFile(filename, source)
	var diags []diag.Diagnostic
	for _, e := range lexErrs {
		diags = append(diags, e.ToDiagnostic())
	}
	stmts, parseDiags := Parse(tokens)
	return stmts, append(diags, parseDiags...)
}

// ParseProgram parses top-level statements until EOF, synchronizing past
// malformed declarations so one error does not abort the rest of the file.
func (p *Parser) ParseProgram() []ast.Stmt {
	var stmts []ast.Stmt

	for p.curTok.Type != lexer.EOF {
		stmt := p.parseStmt()
		if stmt == nil {
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
		p.nextToken()
	}

	return stmts
}

// Errors returns the syntax diagnostics accumulated so far.
func (p *Parser) Errors() []diag.Diagnostic {
	return p.errors
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixFns[tokenType] = fn
}

func (p *Parser) tokenAt(i int) lexer.Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

// lookAhead returns the token n positions past curTok without consuming.
// lookAhead(1) == peekTok.
func (p *Parser) lookAhead(n int) lexer.Token {
	return p.tokenAt(p.pos + n)
}

func (p *Parser) nextToken() {
	p.pos++
	p.curTok = p.peekTok
	p.peekTok = p.tokenAt(p.pos + 1)
}

func (p *Parser) curPrecedence() int {
	return precedences[p.curTok.Type]
}

func (p *Parser) peekPrecedence() int {
	return precedences[p.peekTok.Type]
}

// synchronize discards tokens until a statement boundary: either past a
// semicolon, or at a token that starts a new declaration. This bounds the
// blast radius of one syntax error to a single top-level construct.
func (p *Parser) synchronize() {
	p.nextToken()

	for p.curTok.Type != lexer.EOF {
		if p.curTok.Type == lexer.SEMICOLON {
			p.nextToken()
			return
		}
		switch p.curTok.Type {
		case lexer.FUN, lexer.VAL, lexer.VAR, lexer.FOR, lexer.IF, lexer.WHILE, lexer.RETURN:
			return
		}
		p.nextToken()
	}
}

func mergeSpan(a, b lexer.Span) lexer.Span {
	out := a
	if b.End > out.End {
		out.End = b.End
	}
	if b.Start < out.Start {
		out.Start = b.Start
		out.Line = b.Line
		out.Column = b.Column
	}
	return out
}
