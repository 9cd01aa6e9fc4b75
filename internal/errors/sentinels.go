package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a stage is handed a nil program or symbol table.
	ErrInvalidInput = stderrors.New("invalid input")

	// ErrNoFixedPoint is returned when the optimizer hits its iteration cap.
	ErrNoFixedPoint = stderrors.New("optimizer did not reach a fixed point")

	// ErrCompilationFailed is returned by the driver when any stage reports an error.
	ErrCompilationFailed = stderrors.New("compilation failed")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Error implements the error interface so a diagnostic can travel as a Go error.
func (e CompilerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Level, e.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", e.Position, e.Level, e.Code, e.Message)
}

// HasErrors reports whether any diagnostic in the list has error level.
func HasErrors(diags []CompilerError) bool {
	for _, d := range diags {
		if d.Level == Error {
			return true
		}
	}
	return false
}
