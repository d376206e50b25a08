package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter renders diagnostics with a source-code snippet and a caret line
// pointing at the offending span.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string
}

// NewFormatter creates a formatter writing to out. Passing nil writes to
// stderr.
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = os.Stderr
	}
	return &Formatter{
		out:         out,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers source text for a filename so snippets can be rendered
// without touching the filesystem.
func (f *Formatter) AddSource(filename, source string) {
	f.sourceCache[filename] = source
}

func (f *Formatter) loadSource(filename string) (string, bool) {
	if filename == "" {
		return "", false
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, true
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", false
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, true
}

// Format writes a single diagnostic, with a snippet when the source for its
// span is available.
func (f *Formatter) Format(d Diagnostic) {
	fmt.Fprintf(f.out, "%s: %s: [%s] %s\n", d.Span, d.Severity, d.Stage, d.Message)

	src, ok := f.loadSource(d.Span.Filename)
	if !ok || !d.Span.IsValid() {
		return
	}
	line, ok := sourceLine(src, d.Span.Line)
	if !ok {
		return
	}

	gutter := fmt.Sprintf("%4d | ", d.Span.Line)
	fmt.Fprintf(f.out, "%s%s\n", gutter, line)

	width := d.Span.End - d.Span.Start
	if width < 1 {
		width = 1
	}
	if width > len(line)-(d.Span.Column-1) {
		width = len(line) - (d.Span.Column - 1)
		if width < 1 {
			width = 1
		}
	}
	pad := strings.Repeat(" ", len(gutter)+d.Span.Column-1)
	fmt.Fprintf(f.out, "%s%s\n", pad, strings.Repeat("^", width))
}

// FormatAll writes every diagnostic in order.
func (f *Formatter) FormatAll(diags []Diagnostic) {
	for _, d := range diags {
		f.Format(d)
	}
}

func sourceLine(src string, n int) (string, bool) {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}
