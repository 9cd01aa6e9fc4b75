package ast

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

// Statement is either a *LabelDecl or an *Instruction.
type Statement interface {
	Node
	statementNode()
}

func (*LabelDecl) statementNode()   {}
func (*Instruction) statementNode() {}

func (p *Program) NodePos() Position { return p.Pos }
func (p *Program) NodeEndPos() Position {
	if len(p.Statements) == 0 {
		return p.Pos
	}
	return p.Statements[len(p.Statements)-1].NodeEndPos()
}
func (*Program) NodeType() NodeType { return PROGRAM }

func (l *LabelDecl) NodePos() Position    { return l.Pos }
func (l *LabelDecl) NodeEndPos() Position { return l.EndPos }
func (*LabelDecl) NodeType() NodeType     { return LABEL_DECL }

func (i *Instruction) NodePos() Position    { return i.Pos }
func (i *Instruction) NodeEndPos() Position { return i.EndPos }
func (*Instruction) NodeType() NodeType     { return INSTRUCTION }

func (r *Register) NodePos() Position    { return r.Pos }
func (r *Register) NodeEndPos() Position { return r.EndPos }
func (*Register) NodeType() NodeType     { return REGISTER }

func (l *IntegerLiteral) NodePos() Position    { return l.Pos }
func (l *IntegerLiteral) NodeEndPos() Position { return l.EndPos }
func (*IntegerLiteral) NodeType() NodeType     { return INTEGER_LITERAL }

func (l *HexIntegerLiteral) NodePos() Position    { return l.Pos }
func (l *HexIntegerLiteral) NodeEndPos() Position { return l.EndPos }
func (*HexIntegerLiteral) NodeType() NodeType     { return HEX_INTEGER_LITERAL }

func (r *LabelRef) NodePos() Position    { return r.Pos }
func (r *LabelRef) NodeEndPos() Position { return r.EndPos }
func (*LabelRef) NodeType() NodeType     { return LABEL_REF }
