package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	REGISTER
	INTEGER
	HEX_INTEGER

	// Opcodes
	opcodeStart
	MOV
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
	opcodeEnd

	// Separators
	COLON
	COMMA
)

var tokenTypeNames = map[TokenType]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	IDENTIFIER:  "IDENTIFIER",
	REGISTER:    "REGISTER",
	INTEGER:     "INTEGER",
	HEX_INTEGER: "HEX_INTEGER",
	MOV:         "MOV",
	ADD:         "ADD",
	SUB:         "SUB",
	MUL:         "MUL",
	DIV:         "DIV",
	CMP:         "CMP",
	JMP:         "JMP",
	JEQ:         "JEQ",
	JNE:         "JNE",
	JLT:         "JLT",
	JGT:         "JGT",
	SYSCALL:     "SYSCALL",
	RET:         "RET",
	COLON:       "COLON",
	COMMA:       "COMMA",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "TokenType(?)"
}

// IsOpcode reports whether t is one of the instruction mnemonics.
func (t TokenType) IsOpcode() bool {
	return t > opcodeStart && t < opcodeEnd
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}
