package parser

import (
	"fmt"

	"github.com/chuckjaz/dyego-vibe/internal/diag"
	"github.com/chuckjaz/dyego-vibe/internal/lexer"
)

// reportError records a recoverable syntax diagnostic without aborting the
// parse. Call sites supply the best-effort span available at the failure
// site so tests can assert message and position fidelity.
func (p *Parser) reportError(msg string, span lexer.Span) {
	p.errors = append(p.errors, diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Message:  msg,
		Span: diag.Span{
			Filename: span.Filename,
			Line:     span.Line,
			Column:   span.Column,
			Start:    span.Start,
			End:      span.End,
		},
	})
}

func tokenText(tok lexer.Token) string {
	if tok.Raw != "" {
		return tok.Raw
	}
	return string(tok.Type)
}

// reportExpected records the uniform expected-vs-found diagnostic emitted by
// every failed consume.
func (p *Parser) reportExpected(expected string, found lexer.Token) {
	p.reportError(fmt.Sprintf("expected %s, found `%s`", expected, tokenText(found)), found.Span)
}

// expectPeek advances onto the next token when it matches the expected type.
// Otherwise it records a diagnostic and returns false, which the caller
// propagates as a nil production. This is the parser's only error channel.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTok.Type != t {
		p.reportExpected(fmt.Sprintf("`%s`", string(t)), p.peekTok)
		return false
	}
	p.nextToken()
	return true
}
