package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder

	for _, stmt := range p.Statements {
		b.WriteString(stmt.String())
		b.WriteString("\n")
	}

	return b.String()
}

func (l *LabelDecl) String() string {
	return l.Name + ":"
}

func (i *Instruction) String() string {
	var b strings.Builder

	b.WriteString("    ")
	b.WriteString(i.Opcode.String())
	for idx, op := range i.Operands {
		if idx == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(op.String())
	}

	return b.String()
}

func (r *Register) String() string {
	return fmt.Sprintf("R%d", r.Index)
}

func (l *IntegerLiteral) String() string {
	return fmt.Sprintf("%d", l.Value)
}

func (l *HexIntegerLiteral) String() string {
	return fmt.Sprintf("0x%X", l.Value)
}

func (r *LabelRef) String() string {
	return r.Name
}
