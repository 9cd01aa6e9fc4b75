package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var BessamblyLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `;[^\n]*`, Action: nil},

		// Line breaks end a statement
		{Name: "EOL", Pattern: `\n`, Action: nil},

		// Opcodes and registers (before identifiers)
		{Name: "Opcode", Pattern: `(MOV|ADD|SUB|MUL|DIV|CMP|JMP|JEQ|JNE|JLT|JGT|SYSCALL|RET)\b`, Action: nil},
		{Name: "Register", Pattern: `R[0-9]+\b`, Action: nil},

		// Identifiers
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},

		// Integer literals (hex first)
		{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`, Action: nil},
		{Name: "Integer", Pattern: `[0-9]+`, Action: nil},

		// Punctuation
		{Name: "Punctuation", Pattern: `[:,]`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r]+`, Action: nil},
	},
})
