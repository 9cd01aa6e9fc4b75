package parser

import "bessambly/internal/ast"

var KEYWORDS = map[string]TokenType{
	"MOV":     MOV,
	"ADD":     ADD,
	"SUB":     SUB,
	"MUL":     MUL,
	"DIV":     DIV,
	"CMP":     CMP,
	"JMP":     JMP,
	"JEQ":     JEQ,
	"JNE":     JNE,
	"JLT":     JLT,
	"JGT":     JGT,
	"SYSCALL": SYSCALL,
	"RET":     RET,
}

// opcodeOf maps an opcode token to its AST opcode. The mnemonic table in
// package ast is the single source of truth for names.
func opcodeOf(tok Token) (ast.Opcode, bool) {
	if !tok.Type.IsOpcode() {
		return 0, false
	}
	return ast.LookupOpcode(tok.Lexeme)
}
