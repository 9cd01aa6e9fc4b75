package ast

import "fmt"

// Opcode is the mnemonic of an instruction. The set is closed.
type Opcode int

const (
	MOV Opcode = iota
	ADD
	SUB
	MUL
	DIV
	CMP
	JMP
	JEQ
	JNE
	JLT
	JGT
	SYSCALL
	RET
)

var opcodeNames = [...]string{
	MOV:     "MOV",
	ADD:     "ADD",
	SUB:     "SUB",
	MUL:     "MUL",
	DIV:     "DIV",
	CMP:     "CMP",
	JMP:     "JMP",
	JEQ:     "JEQ",
	JNE:     "JNE",
	JLT:     "JLT",
	JGT:     "JGT",
	SYSCALL: "SYSCALL",
	RET:     "RET",
}

var opcodesByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = Opcode(op)
	}
	return m
}()

// LookupOpcode returns the opcode spelled exactly as name.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodesByName[name]
	return op, ok
}

// Opcodes returns every opcode in declaration order.
func Opcodes() []Opcode {
	ops := make([]Opcode, len(opcodeNames))
	for i := range opcodeNames {
		ops[i] = Opcode(i)
	}
	return ops
}

func (op Opcode) String() string {
	if op >= 0 && int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// IsJump reports whether op is JMP or one of the conditional jumps.
func (op Opcode) IsJump() bool {
	switch op {
	case JMP, JEQ, JNE, JLT, JGT:
		return true
	}
	return false
}

// IsArithmetic reports whether op takes a destination register and a source.
func (op Opcode) IsArithmetic() bool {
	switch op {
	case MOV, ADD, SUB, MUL, DIV:
		return true
	}
	return false
}

// IsTerminator reports whether control never falls through op to the next statement.
func (op Opcode) IsTerminator() bool {
	switch op {
	case JMP, RET, SYSCALL:
		return true
	}
	return false
}
