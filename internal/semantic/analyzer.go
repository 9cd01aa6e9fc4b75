package semantic

import (
	"fmt"

	"bessambly/internal/ast"
	"bessambly/internal/errors"
)

const registerCount = 16

// Analyzer validates a parsed program. It keeps no state between calls, so
// one Analyzer may be shared.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Result is the outcome of one analysis. Program and Symbols are nil when any
// diagnostic has error level.
type Result struct {
	Program     *ast.Program
	Symbols     *SymbolTable
	Diagnostics []errors.CompilerError
}

func (r *Result) OK() bool {
	return !errors.HasErrors(r.Diagnostics)
}

// Errors returns only the error-level diagnostics.
func (r *Result) Errors() []errors.CompilerError {
	var out []errors.CompilerError
	for _, d := range r.Diagnostics {
		if d.Level == errors.Error {
			out = append(out, d)
		}
	}
	return out
}

func (a *Analyzer) Analyze(program *ast.Program) (*Result, error) {
	if program == nil {
		return nil, fmt.Errorf("semantic analysis: nil program: %w", errors.ErrInvalidInput)
	}

	// Labels are collected before any instruction is checked so that jumps
	// may refer forward.
	symbols, diagnostics := collectLabels(program)
	result := &Result{Diagnostics: diagnostics}
	if errors.HasErrors(diagnostics) {
		return result, nil
	}

	diagnostics, referenced := validateInstructions(program, symbols)
	result.Diagnostics = append(result.Diagnostics, diagnostics...)
	result.Diagnostics = append(result.Diagnostics, unusedLabels(program, referenced)...)

	if !result.OK() {
		return result, nil
	}

	result.Program = program
	result.Symbols = symbols
	return result, nil
}

// collectLabels is the first pass. Every duplicate is reported; the
// first declaration of a name wins.
func collectLabels(program *ast.Program) (*SymbolTable, []errors.CompilerError) {
	symbols := NewSymbolTable()
	var diagnostics []errors.CompilerError

	for _, label := range program.Labels() {
		if existing, ok := symbols.Define(label.Name, 0, label.Pos); !ok {
			diagnostics = append(diagnostics, errors.DuplicateLabel(label.Name, label.Pos, existing.DefinedAt))
		}
	}

	return symbols, diagnostics
}

// validateInstructions is the second pass. It also returns the set of label
// names referenced by jumps.
func validateInstructions(program *ast.Program, symbols *SymbolTable) ([]errors.CompilerError, map[string]bool) {
	var diagnostics []errors.CompilerError
	referenced := make(map[string]bool)

	for _, inst := range program.Instructions() {
		switch {
		case inst.Opcode.IsJump():
			diagnostics = append(diagnostics, checkJump(inst, symbols, referenced)...)
		case inst.Opcode.IsArithmetic(), inst.Opcode == ast.CMP:
			diagnostics = append(diagnostics, checkArithmetic(inst)...)
		case inst.Opcode == ast.SYSCALL:
			diagnostics = append(diagnostics, checkSyscall(inst)...)
		case inst.Opcode == ast.RET:
			if len(inst.Operands) != 0 {
				diagnostics = append(diagnostics, errors.OperandCount(inst, "no operands"))
			}
		}
	}

	return diagnostics, referenced
}

func checkJump(inst *ast.Instruction, symbols *SymbolTable, referenced map[string]bool) []errors.CompilerError {
	if len(inst.Operands) != 1 {
		return []errors.CompilerError{errors.OperandCount(inst, "exactly 1 operand")}
	}

	ref, ok := inst.Operands[0].(*ast.LabelRef)
	if !ok {
		return []errors.CompilerError{errors.OperandKind(inst, 0, "a label")}
	}

	referenced[ref.Name] = true
	if symbols.Lookup(ref.Name) == nil {
		return []errors.CompilerError{errors.UndefinedLabel(inst, ref, symbols.Names())}
	}
	return nil
}

func checkArithmetic(inst *ast.Instruction) []errors.CompilerError {
	if len(inst.Operands) != 2 {
		return []errors.CompilerError{errors.OperandCount(inst, "exactly 2 operands")}
	}

	var diagnostics []errors.CompilerError

	if reg, ok := inst.Operands[0].(*ast.Register); ok {
		diagnostics = append(diagnostics, checkRegister(inst, reg)...)
	} else {
		diagnostics = append(diagnostics, errors.OperandKind(inst, 0, "a register"))
	}

	switch src := inst.Operands[1].(type) {
	case *ast.Register:
		diagnostics = append(diagnostics, checkRegister(inst, src)...)
	case *ast.IntegerLiteral, *ast.HexIntegerLiteral:
	default:
		diagnostics = append(diagnostics, errors.OperandKind(inst, 1, "a register or immediate"))
	}

	return diagnostics
}

func checkSyscall(inst *ast.Instruction) []errors.CompilerError {
	if len(inst.Operands) == 0 {
		return []errors.CompilerError{errors.OperandCount(inst, "at least 1 operand")}
	}

	var diagnostics []errors.CompilerError

	if !ast.IsImmediate(inst.Operands[0]) {
		diagnostics = append(diagnostics, errors.OperandKind(inst, 0, "an immediate syscall number"))
	}

	for i, op := range inst.Operands[1:] {
		reg, ok := op.(*ast.Register)
		if !ok {
			diagnostics = append(diagnostics, errors.OperandKind(inst, i+1, "a register"))
			continue
		}
		diagnostics = append(diagnostics, checkRegister(inst, reg)...)
	}

	return diagnostics
}

func checkRegister(inst *ast.Instruction, reg *ast.Register) []errors.CompilerError {
	if reg.Index < 0 || reg.Index >= registerCount {
		return []errors.CompilerError{errors.RegisterRange(inst, reg)}
	}
	return nil
}

func unusedLabels(program *ast.Program, referenced map[string]bool) []errors.CompilerError {
	var diagnostics []errors.CompilerError
	seen := make(map[string]bool)

	for _, label := range program.Labels() {
		if referenced[label.Name] || seen[label.Name] {
			continue
		}
		seen[label.Name] = true
		diagnostics = append(diagnostics, errors.UnusedLabel(label.Name, label.Pos))
	}

	return diagnostics
}
