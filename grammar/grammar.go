package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a Bessambly source file, one Line per source line.
type File struct {
	Pos   lexer.Position
	Lines []*Line `parser:"@@*"`
}

type Line struct {
	Pos         lexer.Position
	Label       *Label       `parser:"@@?"`
	Instruction *Instruction `parser:"@@?"`
	Comment     *Comment     `parser:"@@?"`
	End         string       `parser:"@EOL"`
}

type Label struct {
	Pos  lexer.Position
	Name string `parser:"@Ident \":\""`
}

type Comment struct {
	Pos  lexer.Position
	Text string `parser:"@Comment"`
}

type Instruction struct {
	Pos      lexer.Position
	Opcode   string     `parser:"@Opcode"`
	Operands []*Operand `parser:"( @@ ( \",\" @@ )* )?"`
}

type Operand struct {
	Pos      lexer.Position
	Register *string `parser:"  @Register"`
	Hex      *string `parser:"| @Hex"`
	Integer  *string `parser:"| @Integer"`
	Label    *string `parser:"| @Ident"`
}

// IsBlank reports whether the line holds nothing but its line break.
func (l *Line) IsBlank() bool {
	return l.Label == nil && l.Instruction == nil && l.Comment == nil
}
