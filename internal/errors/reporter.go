package errors

import (
	"fmt"
	"strings"

	"bessambly/internal/ast"
	"github.com/fatih/color"
)

// ErrorLevel is the severity of a diagnostic.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError is a positioned diagnostic. Position and Length mark the
// primary span; Secondary spans point at related source, such as the first
// declaration of a duplicated label.
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // E0001, W0001, ...
	Message     string
	Position    ast.Position
	Length      int // columns underlined at Position
	Secondary   []Span
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

// Span is a labelled region of source related to a diagnostic.
type Span struct {
	Position ast.Position
	Length   int
	Message  string
}

// Suggestion is a proposed fix. When Replacement is set, the text at
// Position (Length columns) is replaced with it.
type Suggestion struct {
	Message     string
	Replacement string
	Position    ast.Position
	Length      int
}

// ErrorReporter renders diagnostics against a single source buffer.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a reporter for source. filename is used for
// diagnostics whose position does not carry one.
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders err with its source snippet, secondary spans,
// suggestions and notes.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder

	dim := color.New(color.Faint).SprintFunc()
	width := er.gutterWidth(err)
	indent := strings.Repeat(" ", width)
	bar := dim("│")

	if err.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor(err.Level)(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", levelColor(err.Level)(string(err.Level)), err.Message)
	}
	fmt.Fprintf(&b, "%s %s %s\n", indent, dim("-->"), er.location(err.Position))
	fmt.Fprintf(&b, "%s %s\n", indent, bar)

	line := err.Position.Line
	er.writeSource(&b, width, line-1, dim)
	if er.writeSource(&b, width, line, color.New(color.Bold).SprintFunc()) {
		marker := levelColor(err.Level)(strings.Repeat("^", max(err.Length, 1)))
		fmt.Fprintf(&b, "%s %s %s%s\n", indent, bar, pad(err.Position.Column), marker)

		for _, span := range err.Secondary {
			if span.Position.Line == line && span.Position.Filename == err.Position.Filename {
				er.writeSpanMarker(&b, indent, bar, span)
			}
		}
	}
	er.writeSource(&b, width, line+1, dim)

	for _, span := range err.Secondary {
		if span.Position.Line == line && span.Position.Filename == err.Position.Filename {
			continue
		}
		fmt.Fprintf(&b, "%s %s %s\n", indent, dim(":::"), er.location(span.Position))
		if er.writeSource(&b, width, span.Position.Line, dim) {
			er.writeSpanMarker(&b, indent, bar, span)
		}
	}

	suggest := color.New(color.FgCyan).SprintFunc()
	for _, s := range err.Suggestions {
		fmt.Fprintf(&b, "%s %s %s\n", indent, suggest("= help:"), s.Message)
		if patched, ok := er.applySuggestion(s); ok {
			fmt.Fprintf(&b, "%s %s\n", indent, bar)
			fmt.Fprintf(&b, "%*d %s %s\n", width, s.Position.Line, bar, patched)
			fmt.Fprintf(&b, "%s %s %s%s\n", indent, bar, pad(s.Position.Column),
				suggest(strings.Repeat("+", max(len(s.Replacement), 1))))
		}
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		fmt.Fprintf(&b, "%s %s %s\n", indent, noteColor("= note:"), note)
	}

	if err.HelpText != "" {
		fmt.Fprintf(&b, "%s %s %s\n", indent, color.New(color.FgGreen).SprintFunc()("= help:"), err.HelpText)
	}

	b.WriteString("\n")
	return b.String()
}

// location prefers the file recorded in the position over the reporter's.
func (er *ErrorReporter) location(pos ast.Position) string {
	filename := pos.Filename
	if filename == "" {
		filename = er.filename
	}
	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}

// writeSource writes source line n (1-based) with its gutter and reports
// whether the line exists.
func (er *ErrorReporter) writeSource(b *strings.Builder, width, n int, style func(...any) string) bool {
	if n < 1 || n > len(er.lines) {
		return false
	}
	fmt.Fprintf(b, "%s %s %s\n", style(fmt.Sprintf("%*d", width, n)), color.New(color.Faint).Sprint("│"), er.lines[n-1])
	return true
}

func (er *ErrorReporter) writeSpanMarker(b *strings.Builder, indent, bar string, span Span) {
	marker := color.New(color.FgBlue, color.Bold).Sprint(strings.Repeat("-", max(span.Length, 1)))
	if span.Message != "" {
		marker += " " + span.Message
	}
	fmt.Fprintf(b, "%s %s %s%s\n", indent, bar, pad(span.Position.Column), marker)
}

// applySuggestion returns the suggestion's line with the replacement applied.
func (er *ErrorReporter) applySuggestion(s Suggestion) (string, bool) {
	if s.Replacement == "" || s.Position.Line < 1 || s.Position.Line > len(er.lines) {
		return "", false
	}
	line := er.lines[s.Position.Line-1]
	start := s.Position.Column - 1
	end := start + s.Length
	if start < 0 || end > len(line) || s.Length < 0 {
		return "", false
	}
	return line[:start] + s.Replacement + line[end:], true
}

// gutterWidth fits the largest line number the diagnostic prints.
func (er *ErrorReporter) gutterWidth(err CompilerError) int {
	widest := err.Position.Line + 1
	for _, span := range err.Secondary {
		widest = max(widest, span.Position.Line)
	}
	return max(len(fmt.Sprint(widest)), 3)
}

func levelColor(level ErrorLevel) func(...any) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func pad(column int) string {
	return strings.Repeat(" ", max(column-1, 0))
}
