package ast

import "fmt"

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int // 1-based
	Column   int // 1-based
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Program is the root of a Bessambly source file.
// Statements are kept in program order; control falls through from one to the next.
type Program struct {
	Pos        Position
	Statements []Statement
}

// LabelDecl declares a jump target.
// Example: "loop:"
type LabelDecl struct {
	Pos    Position
	EndPos Position
	Name   string
}

// Instruction is an opcode with up to three operands.
// Example: "MOV R0, 0x10"
type Instruction struct {
	Pos      Position
	EndPos   Position
	Opcode   Opcode
	Operands []Operand

	// Address is the virtual address assigned by the optimizer.
	Address uint32
}

// MaxOperands is the syntactic operand limit of a single instruction.
const MaxOperands = 3

func NewProgram(pos Position, statements ...Statement) *Program {
	return &Program{Pos: pos, Statements: statements}
}

func NewLabelDecl(pos Position, name string) *LabelDecl {
	return &LabelDecl{Pos: pos, EndPos: pos, Name: name}
}

func NewInstruction(pos Position, op Opcode, operands ...Operand) *Instruction {
	return &Instruction{Pos: pos, EndPos: pos, Opcode: op, Operands: operands}
}

// NewNode creates an empty node of the given kind. Operand kinds and
// unknown kinds are rejected.
func NewNode(kind NodeType, pos Position) (Node, error) {
	switch kind {
	case PROGRAM:
		return &Program{Pos: pos}, nil
	case LABEL_DECL:
		return &LabelDecl{Pos: pos, EndPos: pos}, nil
	case INSTRUCTION:
		return &Instruction{Pos: pos, EndPos: pos}, nil
	}
	return nil, fmt.Errorf("cannot create node of kind %s", kind)
}

// Len returns the number of statements.
func (p *Program) Len() int {
	return len(p.Statements)
}

// Append adds statements at the end of the program.
func (p *Program) Append(stmts ...Statement) {
	p.Statements = append(p.Statements, stmts...)
}

// RemoveAt deletes the statement at index i, releasing it.
func (p *Program) RemoveAt(i int) {
	copy(p.Statements[i:], p.Statements[i+1:])
	p.Statements[len(p.Statements)-1] = nil
	p.Statements = p.Statements[:len(p.Statements)-1]
}

// Instructions returns the instructions in program order.
func (p *Program) Instructions() []*Instruction {
	var out []*Instruction
	for _, stmt := range p.Statements {
		if inst, ok := stmt.(*Instruction); ok {
			out = append(out, inst)
		}
	}
	return out
}

// Labels returns the label declarations in program order.
func (p *Program) Labels() []*LabelDecl {
	var out []*LabelDecl
	for _, stmt := range p.Statements {
		if label, ok := stmt.(*LabelDecl); ok {
			out = append(out, label)
		}
	}
	return out
}

// JumpTarget returns the label named by a single-operand jump, or ""
// if the instruction is not of that shape.
func (i *Instruction) JumpTarget() string {
	if !i.Opcode.IsJump() || len(i.Operands) != 1 {
		return ""
	}
	if ref, ok := i.Operands[0].(*LabelRef); ok {
		return ref.Name
	}
	return ""
}
