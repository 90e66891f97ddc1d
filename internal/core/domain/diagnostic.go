package domain

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityWarning marks a recoverable problem.
	SeverityWarning Severity = iota
	// SeverityError marks a compile failure. Errors are still non-fatal to
	// the graph build: the producing step returns a best-effort artifact.
	SeverityError
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one compile-time problem with enough context to locate the
// fault without the compiled output.
type Diagnostic struct {
	Severity Severity
	Message  string

	// File is the path of the file the diagnostic points into.
	File string

	// Line and Column are 1-based. Zero means unknown.
	Line   int
	Column int

	// Offset is the byte offset of the fault within File, -1 when unknown.
	Offset int

	// Source is the full text of File, used to render an excerpt. May be empty.
	Source string
}

// Shift remaps the diagnostic by a block's position within its containing
// file, turning block-relative coordinates into file coordinates.
func (d Diagnostic) Shift(line, offset int) Diagnostic {
	if d.Line > 0 {
		// Line 1 of the block is the block's own starting line.
		d.Line += line - 1
	}
	if d.Offset >= 0 {
		d.Offset += offset
	}
	return d
}

// String renders the diagnostic as "severity: message (file:line:column)".
func (d Diagnostic) String() string {
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Severity, d.Message, loc)
}

// Frame renders a short excerpt of the source around the failing line, with
// a caret under the failing column. Returns "" when no source is attached.
func (d Diagnostic) Frame() string {
	if d.Source == "" || d.Line <= 0 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if d.Line > len(lines) {
		return ""
	}

	start := d.Line - 2
	if start < 1 {
		start = 1
	}
	end := d.Line + 1
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for n := start; n <= end; n++ {
		fmt.Fprintf(&b, "%4d | %s\n", n, lines[n-1])
		if n == d.Line && d.Column > 0 {
			fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", d.Column-1))
		}
	}
	return b.String()
}
