package semantic

import "bessambly/internal/errors"

// Helpers for filtering diagnostics that are not under test.

// FilterWarnings removes warning-level diagnostics.
func FilterWarnings(diagnostics []errors.CompilerError) []errors.CompilerError {
	var filtered []errors.CompilerError

	for _, d := range diagnostics {
		if d.Level != errors.Warning {
			filtered = append(filtered, d)
		}
	}

	return filtered
}

// Codes returns the code of every diagnostic, in order.
func Codes(diagnostics []errors.CompilerError) []string {
	codes := make([]string, len(diagnostics))
	for i, d := range diagnostics {
		codes[i] = d.Code
	}
	return codes
}
