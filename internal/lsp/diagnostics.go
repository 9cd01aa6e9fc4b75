package lsp

import (
	"fmt"
	"strings"

	"bessambly/internal/errors"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "bessambly"

// ConvertDiagnostics transforms compiler diagnostics into LSP diagnostics.
// The source names the code's category. Secondary spans, notes and help
// text are appended to the message, followed by the code's description.
func ConvertDiagnostics(diags []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(diags))

	for _, d := range diags {
		length := d.Length
		if length <= 0 {
			length = 1
		}

		line := uint32(max(d.Position.Line-1, 0))   // Convert to 0-based indexing
		char := uint32(max(d.Position.Column-1, 0)) // Convert to 0-based indexing

		message := d.Message
		for _, span := range d.Secondary {
			message += fmt.Sprintf("\n%d:%d: %s", span.Position.Line, span.Position.Column, span.Message)
		}
		for _, note := range d.Notes {
			message += "\nnote: " + note
		}
		for _, s := range d.Suggestions {
			message += "\nhelp: " + s.Message
		}
		if d.HelpText != "" {
			message += "\nhelp: " + d.HelpText
		}
		if d.Code != "" {
			message += "\n" + d.Code + ": " + errors.GetErrorDescription(d.Code)
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: char},
				End:   protocol.Position{Line: line, Character: char + uint32(length)},
			},
			Severity: ptrSeverity(severityOf(d.Level)),
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   ptrString(sourceFor(d.Code)),
			Message:  message,
		})
	}

	return diagnostics
}

// sourceFor is "bessambly" qualified by the code's category,
// e.g. "bessambly/semantic-analysis".
func sourceFor(code string) string {
	category := errors.GetErrorCategory(code)
	if category == "Unknown" {
		return diagnosticSource
	}
	return diagnosticSource + "/" + strings.ToLower(strings.ReplaceAll(category, " ", "-"))
}

func severityOf(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
