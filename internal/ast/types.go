package ast

import "fmt"

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Nodes
	PROGRAM
	LABEL_DECL
	INSTRUCTION

	// Operands
	REGISTER
	INTEGER_LITERAL
	HEX_INTEGER_LITERAL
	LABEL_REF
)

var nodeTypeNames = [...]string{
	ILLEGAL:             "ILLEGAL",
	PROGRAM:             "PROGRAM",
	LABEL_DECL:          "LABEL_DECL",
	INSTRUCTION:         "INSTRUCTION",
	REGISTER:            "REGISTER",
	INTEGER_LITERAL:     "INTEGER_LITERAL",
	HEX_INTEGER_LITERAL: "HEX_INTEGER_LITERAL",
	LABEL_REF:           "LABEL_REF",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// IsOperand reports whether t names one of the operand variants.
func (t NodeType) IsOperand() bool {
	return t >= REGISTER && t <= LABEL_REF
}
