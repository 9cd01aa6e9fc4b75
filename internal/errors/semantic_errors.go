package errors

import (
	"fmt"
	"strings"

	"bessambly/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new semantic warning builder
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// WithSpan attaches a secondary span pointing at related source
func (b *SemanticErrorBuilder) WithSpan(pos ast.Position, length int, message string) *SemanticErrorBuilder {
	b.err.Secondary = append(b.err.Secondary, Span{Position: pos, Length: length, Message: message})
	return b
}

// Common semantic error constructors with suggestions

// DuplicateLabel reports the second declaration of a label
func DuplicateLabel(name string, pos, first ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateLabel, fmt.Sprintf("label '%s' is already declared", name), pos).
		WithLength(len(name)+1).
		WithSpan(first, len(name)+1, "first declared here").
		WithNote(fmt.Sprintf("'%s' was first declared at %s", name, first)).
		WithHelp("rename one of the labels").
		Build()
}

// UndefinedLabel reports a jump to a label that is never declared. The
// diagnostic sits on the jump; the reference itself is a secondary span.
func UndefinedLabel(inst *ast.Instruction, ref *ast.LabelRef, known []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedLabel, fmt.Sprintf("undefined label '%s'", ref.Name), inst.Pos).
		WithLength(instructionSpan(inst, ref.EndPos)).
		WithSpan(ref.Pos, len(ref.Name), "not declared anywhere")

	similar := findSimilarNames(ref.Name, known)
	switch len(similar) {
	case 0:
		builder = builder.WithNote("labels are declared with 'NAME:' anywhere in the program")
	case 1:
		builder = builder.WithReplacement(fmt.Sprintf("did you mean '%s'?", similar[0]), similar[0], ref.Pos, len(ref.Name))
	default:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	return builder.Build()
}

// OperandCount reports an instruction with the wrong number of operands
func OperandCount(inst *ast.Instruction, expected string) CompilerError {
	return NewSemanticError(ErrorOperandCount,
		fmt.Sprintf("%s expects %s, found %d", inst.Opcode, expected, len(inst.Operands)), inst.Pos).
		WithLength(instructionSpan(inst, inst.EndPos)).
		WithHelp(operandHelp(inst.Opcode)).
		Build()
}

// OperandKind reports operand index of inst having the wrong kind
func OperandKind(inst *ast.Instruction, index int, expected string) CompilerError {
	operand := inst.Operands[index]
	return NewSemanticError(ErrorOperandKind,
		fmt.Sprintf("operand %d of %s must be %s, found %s", index+1, inst.Opcode, expected, describeOperand(operand)),
		inst.Pos).
		WithLength(instructionSpan(inst, operand.NodeEndPos())).
		WithSpan(operand.NodePos(), operandLength(operand), "expected "+expected).
		WithHelp(operandHelp(inst.Opcode)).
		Build()
}

// RegisterRange reports a register index outside R0-R15
func RegisterRange(inst *ast.Instruction, reg *ast.Register) CompilerError {
	return NewSemanticError(ErrorRegisterRange,
		fmt.Sprintf("register %s is out of range", reg), inst.Pos).
		WithLength(instructionSpan(inst, reg.EndPos)).
		WithSpan(reg.Pos, operandLength(reg), "no such register").
		WithNote("valid registers are R0 through R15").
		Build()
}

// UnusedLabel warns about a label that no jump refers to
func UnusedLabel(name string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnusedLabel, fmt.Sprintf("label '%s' is never referenced", name), pos).
		WithLength(len(name) + 1).
		Build()
}

// instructionSpan is the width from the start of inst up to end, or the
// opcode alone when end is not on the same line.
func instructionSpan(inst *ast.Instruction, end ast.Position) int {
	if end.Line == inst.Pos.Line && end.Offset > inst.Pos.Offset {
		return end.Offset - inst.Pos.Offset
	}
	return len(inst.Opcode.String())
}

func operandHelp(opcode ast.Opcode) string {
	switch {
	case opcode.IsJump():
		return fmt.Sprintf("usage: %s LABEL", opcode)
	case opcode.IsArithmetic(), opcode == ast.CMP:
		return fmt.Sprintf("usage: %s Rd, Rs|imm", opcode)
	case opcode == ast.SYSCALL:
		return "usage: SYSCALL imm, R0, R1, ..."
	case opcode == ast.RET:
		return "usage: RET"
	default:
		return ""
	}
}

func describeOperand(op ast.Operand) string {
	switch o := op.(type) {
	case *ast.Register:
		return "register " + o.String()
	case *ast.IntegerLiteral, *ast.HexIntegerLiteral:
		return "immediate " + o.String()
	case *ast.LabelRef:
		return "label '" + o.Name + "'"
	default:
		return "unknown operand"
	}
}

func operandLength(op ast.Operand) int {
	start, end := op.NodePos(), op.NodeEndPos()
	if end.Offset > start.Offset {
		return end.Offset - start.Offset
	}
	return len(op.String())
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
