package parser

import (
	"fmt"
	"os"

	"bessambly/internal/ast"
	"bessambly/internal/errors"
)

// ParseError is a syntax error with a stable code from internal/errors.
type ParseError struct {
	Code     string
	Message  string
	Position Position
	Length   int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

// ToCompilerError converts the syntax error into a diagnostic for reporting.
func (e ParseError) ToCompilerError(filename string) errors.CompilerError {
	return errors.CompilerError{
		Level:   errors.Error,
		Code:    e.Code,
		Message: e.Message,
		Position: ast.Position{
			Filename: filename,
			Offset:   e.Position.Offset,
			Line:     e.Position.Line,
			Column:   e.Position.Column,
		},
		Length: e.Length,
	}
}

// ParseSource scans and parses source. The program is nil if any error was found.
func ParseSource(path string, source string) (*ast.Program, []ParseError) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	parser := NewParser(path, tokens)
	program := parser.ParseProgram()

	return program, parser.Errors()
}

func ParseFile(path string) (*ast.Program, []ParseError, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	program, parseErrors := ParseSource(path, string(source))
	return program, parseErrors, nil
}
