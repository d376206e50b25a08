// Package types implements the semantic checker: a scope-aware, single-pass,
// bottom-up type derivation over the syntax tree. The type domain is the
// tree's own TypeExpr nodes; compatibility is judged on their canonical
// rendered form, a deliberately coarse equality inherited from the system's
// design.
package types

import (
	"fmt"

	"github.com/chuckjaz/dyego-vibe/internal/ast"
	"github.com/chuckjaz/dyego-vibe/internal/diag"
	"github.com/chuckjaz/dyego-vibe/internal/lexer"
)

// Checker performs semantic checking on parsed statements.
type Checker struct {
	scope *Scope
	fun   *ast.FunDecl // innermost enclosing function, nil at top level

	Errors []diag.Diagnostic
}

// bail unwinds checking of a single top-level statement after a hard error.
// It is the only value ever recovered; anything else re-panics as a
// programming defect.
type bail struct{}

// NewChecker creates a checker with a fresh global scope.
func NewChecker() *Checker {
	return &Checker{scope: NewScope(nil)}
}

// Check validates statements in order and returns the accumulated semantic
// diagnostics. A hard error halts checking of the statement that raised it;
// diagnostics collected before the halt remain, and later statements are
// still checked.
func Check(stmts []ast.Stmt) []diag.Diagnostic {
	return NewChecker().Check(stmts)
}

// Check validates the given top-level statements.
func (c *Checker) Check(stmts []ast.Stmt) []diag.Diagnostic {
	for _, stmt := range stmts {
		c.checkTopLevel(stmt)
	}
	return c.Errors
}

func (c *Checker) checkTopLevel(stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bail); ok {
				return
			}
			panic(r)
		}
	}()
	c.checkStmt(stmt)
}

// report records a semantic diagnostic and continues checking.
func (c *Checker) report(span lexer.Span, format string, args ...any) {
	c.Errors = append(c.Errors, diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Span:     toDiagSpan(span),
	})
}

// bailout records a semantic diagnostic and unwinds to the top-level
// statement boundary.
func (c *Checker) bailout(span lexer.Span, format string, args ...any) {
	c.report(span, format, args...)
	panic(bail{})
}

// pushScope opens a child scope and returns the function that restores the
// previous one. Callers defer it so the scope is popped exactly once per
// push on every exit path, including the bail path.
func (c *Checker) pushScope() func() {
	prev := c.scope
	c.scope = NewScope(prev)
	return func() { c.scope = prev }
}

func (c *Checker) enterFun(decl *ast.FunDecl) func() {
	prev := c.fun
	c.fun = decl
	return func() { c.fun = prev }
}

func toDiagSpan(s lexer.Span) diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}
