package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramString(t *testing.T) {
	program := NewProgram(Position{},
		NewInstruction(Position{}, MOV, &Register{Index: 0}, &IntegerLiteral{Value: 5}),
		NewInstruction(Position{}, JMP, &LabelRef{Name: "END"}),
		NewLabelDecl(Position{}, "END"),
		NewInstruction(Position{}, RET),
	)

	expected := "    MOV R0, 5\n    JMP END\nEND:\n    RET\n"
	assert.Equal(t, expected, program.String())
}

func TestEmptyProgramString(t *testing.T) {
	assert.Equal(t, "", NewProgram(Position{}).String())
}

func TestOperandString(t *testing.T) {
	assert.Equal(t, "R15", (&Register{Index: 15}).String())
	assert.Equal(t, "42", (&IntegerLiteral{Value: 42}).String())
	assert.Equal(t, "0xFF", (&HexIntegerLiteral{Value: 255}).String())
	assert.Equal(t, "loop", (&LabelRef{Name: "loop"}).String())
}

func TestSyscallString(t *testing.T) {
	inst := NewInstruction(Position{}, SYSCALL, &HexIntegerLiteral{Value: 0x3c}, &Register{Index: 1}, &Register{Index: 2})
	assert.Equal(t, "    SYSCALL 0x3C, R1, R2", inst.String())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:7", Position{Line: 3, Column: 7}.String())
	assert.Equal(t, "main.bsm:3:7", Position{Filename: "main.bsm", Line: 3, Column: 7}.String())
}
