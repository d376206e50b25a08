// Package driver wires the front-end passes together for the command-line
// tool: tokenize, parse, check, render, and report diagnostics.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/chuckjaz/dyego-vibe/internal/ast"
	"github.com/chuckjaz/dyego-vibe/internal/diag"
	"github.com/chuckjaz/dyego-vibe/internal/lexer"
	"github.com/chuckjaz/dyego-vibe/internal/parser"
	"github.com/chuckjaz/dyego-vibe/internal/render"
	"github.com/chuckjaz/dyego-vibe/internal/types"
)

// Result holds the outcome of running the front end over one file. Syntax
// and semantic diagnostics are kept in separate channels and never merged.
type Result struct {
	Path     string
	Source   string
	Stmts    []ast.Stmt
	Syntax   []diag.Diagnostic
	Semantic []diag.Diagnostic
}

// HasDiagnostics reports whether either channel collected anything.
func (r *Result) HasDiagnostics() bool {
	return len(r.Syntax) > 0 || len(r.Semantic) > 0
}

// CheckFile runs the front end over a source file. The checker only runs
// when parsing produced no diagnostics: the pipeline halts before a later
// stage whenever an earlier one reported.
func CheckFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return CheckSource(path, string(data)), nil
}

// CheckSource is CheckFile over in-memory source text.
func CheckSource(path, source string) *Result {
	res := &Result{Path: path, Source: source}
	res.Stmts, res.Syntax = parser.ParseSource(path, source)
	if len(res.Syntax) == 0 {
		res.Semantic = types.Check(res.Stmts)
	}
	return res
}

// Report prints every collected diagnostic with its source position and
// returns the process exit code: non-zero when any diagnostics exist.
func (r *Result) Report(out io.Writer) int {
	f := diag.NewFormatter(out)
	f.AddSource(r.Path, r.Source)
	f.FormatAll(r.Syntax)
	f.FormatAll(r.Semantic)
	if r.HasDiagnostics() {
		return 1
	}
	return 0
}

// RenderFile parses a source file and returns its canonical rendering along
// with any syntax diagnostics.
func RenderFile(path string) (string, []diag.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tokens, lexErrs := lexer.TokenizeFile(path, string(data))
	var diags []diag.Diagnostic
	for _, e := range lexErrs {
		diags = append(diags, e.ToDiagnostic())
	}
	stmts, parseDiags := parser.Parse(tokens)
	diags = append(diags, parseDiags...)
	return render.Program(stmts), diags, nil
}
