package ast

// Operand is one of *Register, *IntegerLiteral, *HexIntegerLiteral or *LabelRef.
type Operand interface {
	Node
	operandNode()
}

// Register names a machine register by index.
// Example: "R3"
type Register struct {
	Pos    Position
	EndPos Position
	Index  int
}

// IntegerLiteral is a decimal literal.
// Example: "42"
type IntegerLiteral struct {
	Pos    Position
	EndPos Position
	Value  int64
}

// HexIntegerLiteral is a literal written with a 0x prefix.
// Example: "0x2A"
type HexIntegerLiteral struct {
	Pos    Position
	EndPos Position
	Value  int64
}

// LabelRef refers to a label by name. It is resolved through the symbol
// table and never holds the declaring node.
// Example: "loop" in "JMP loop"
type LabelRef struct {
	Pos    Position
	EndPos Position
	Name   string
}

func (*Register) operandNode()          {}
func (*IntegerLiteral) operandNode()    {}
func (*HexIntegerLiteral) operandNode() {}
func (*LabelRef) operandNode()          {}

// IsImmediate reports whether op is an integer or hex literal.
func IsImmediate(op Operand) bool {
	switch op.(type) {
	case *IntegerLiteral, *HexIntegerLiteral:
		return true
	}
	return false
}

// ImmediateValue returns the value of a literal operand.
func ImmediateValue(op Operand) (int64, bool) {
	switch o := op.(type) {
	case *IntegerLiteral:
		return o.Value, true
	case *HexIntegerLiteral:
		return o.Value, true
	}
	return 0, false
}
