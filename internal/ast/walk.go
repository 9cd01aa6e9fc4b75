package ast

import "fmt"

// Inspect traverses the tree rooted at node in depth-first order, calling fn
// for every node and operand. If fn returns false the children of that node
// are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Inspect(stmt, fn)
		}
	case *Instruction:
		for _, op := range n.Operands {
			Inspect(op, fn)
		}
	case *LabelDecl, *Register, *IntegerLiteral, *HexIntegerLiteral, *LabelRef:
		// leaves
	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node type %T", n))
	}
}

// Clone returns a deep copy of the program. The copy shares no statements,
// operands or strings with p.
func (p *Program) Clone() *Program {
	out := &Program{Pos: p.Pos}
	if p.Statements != nil {
		out.Statements = make([]Statement, len(p.Statements))
		for i, stmt := range p.Statements {
			out.Statements[i] = cloneStatement(stmt)
		}
	}
	return out
}

func cloneStatement(stmt Statement) Statement {
	switch s := stmt.(type) {
	case *LabelDecl:
		c := *s
		return &c
	case *Instruction:
		c := *s
		if s.Operands != nil {
			c.Operands = make([]Operand, len(s.Operands))
			for i, op := range s.Operands {
				c.Operands[i] = CloneOperand(op)
			}
		}
		return &c
	default:
		panic(fmt.Sprintf("ast: unexpected statement type %T", s))
	}
}

// CloneOperand returns a copy of op.
func CloneOperand(op Operand) Operand {
	switch o := op.(type) {
	case *Register:
		c := *o
		return &c
	case *IntegerLiteral:
		c := *o
		return &c
	case *HexIntegerLiteral:
		c := *o
		return &c
	case *LabelRef:
		c := *o
		return &c
	default:
		panic(fmt.Sprintf("ast: unexpected operand type %T", o))
	}
}
