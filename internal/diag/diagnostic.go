package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer     Stage = "lexer"
	StageParser    Stage = "parser"
	StageTypeCheck Stage = "typecheck"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int // 1-based
	Column   int // 1-based
	Start    int // rune offset in the source
	End      int // exclusive end offset
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Merge widens s to cover both s and other.
func (s Span) Merge(other Span) Span {
	out := s
	if other.Start < out.Start || !out.IsValid() {
		if other.IsValid() {
			out.Line = other.Line
			out.Column = other.Column
		}
		if other.Start < out.Start {
			out.Start = other.Start
		}
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Diagnostic is a compiler diagnostic surfaced to end-users. The parser and
// the checker each accumulate their own list; the two lists are reported
// separately and never merged.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Message  string
	Span     Span
}

// Errorf builds an error-severity diagnostic for the given stage.
func Errorf(stage Stage, span Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}
}

// HasErrors reports whether any diagnostic in the list is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
