package parser

import (
	"fmt"

	"bessambly/internal/ast"
	"bessambly/internal/errors"
)

type Parser struct {
	filename string
	tokens   []Token
	current  int
	errors   []ParseError
}

// NewParser creates a parser over tokens. The slice must end with an EOF
// token, as produced by Scanner.ScanTokens.
func NewParser(filename string, tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		tokens = append(tokens, Token{Type: EOF, Position: Position{Line: 1, Column: 1}})
	}
	return &Parser{
		filename: filename,
		tokens:   tokens,
	}
}

// ParseProgram parses the whole token stream. It returns nil when any syntax
// error was recorded; the errors are available from Errors.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{
		Pos: ast.Position{Filename: p.filename, Line: 1, Column: 1},
	}

	for !p.isAtEnd() {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	if len(p.errors) > 0 {
		return nil
	}
	return program
}

// Errors returns every syntax error recorded so far, in source order.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

func (p *Parser) parseStatement() ast.Statement {
	tok := p.peek()

	switch {
	case tok.Type == IDENTIFIER && p.peekNext().Type == COLON:
		return p.parseLabelDecl()
	case tok.Type.IsOpcode():
		if inst := p.parseInstruction(); inst != nil {
			return inst
		}
		return nil
	case tok.Type == ILLEGAL:
		p.errorIllegal(tok)
	case tok.Type == IDENTIFIER:
		p.errorAt(tok, errors.ErrorInvalidStatement,
			fmt.Sprintf("expected label declaration or opcode, found identifier '%s'", tok.Lexeme))
	default:
		p.errorAt(tok, errors.ErrorInvalidStatement,
			fmt.Sprintf("expected label declaration or opcode, found %s", describeToken(tok)))
	}

	p.synchronize()
	return nil
}

func (p *Parser) parseLabelDecl() *ast.LabelDecl {
	name := p.advance()
	colon := p.advance()

	return &ast.LabelDecl{
		Pos:    p.makePos(name),
		EndPos: p.makeEndPos(colon),
		Name:   name.Lexeme,
	}
}

func (p *Parser) parseInstruction() *ast.Instruction {
	opTok := p.advance()
	opcode, ok := opcodeOf(opTok)
	if !ok {
		p.errorAt(opTok, errors.ErrorUnexpectedToken, fmt.Sprintf("unknown opcode '%s'", opTok.Lexeme))
		return nil
	}

	inst := &ast.Instruction{
		Pos:    p.makePos(opTok),
		EndPos: p.makeEndPos(opTok),
		Opcode: opcode,
	}

	inst.Operands = p.parseOperands(opcode)
	if n := len(inst.Operands); n > 0 {
		inst.EndPos = inst.Operands[n-1].NodeEndPos()
	}

	return inst
}

// parseOperands parses a comma-separated operand list. Operands past the
// third are consumed and reported once.
func (p *Parser) parseOperands(opcode ast.Opcode) []ast.Operand {
	if !p.atOperandStart() && !p.check(COMMA) {
		return nil
	}

	var operands []ast.Operand
	count := 0
	for {
		tok := p.peek()
		if op, consumed := p.parseOperand(); consumed {
			count++
			switch {
			case count == ast.MaxOperands+1:
				p.errorAt(tok, errors.ErrorTooManyOperands,
					fmt.Sprintf("too many operands for %s: at most %d allowed", opcode, ast.MaxOperands))
			case count <= ast.MaxOperands && op != nil:
				operands = append(operands, op)
			}
		}

		if !p.match(COMMA) {
			break
		}
	}

	return operands
}

// parseOperand returns the operand at the current token. consumed is false
// when the current token cannot start an operand; the token is left in place
// unless it could not start a statement either, like a stray ':'.
func (p *Parser) parseOperand() (op ast.Operand, consumed bool) {
	tok := p.peek()

	switch tok.Type {
	case REGISTER:
		p.advance()
		return &ast.Register{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Index: int(tok.Value)}, true
	case INTEGER:
		p.advance()
		return &ast.IntegerLiteral{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: tok.Value}, true
	case HEX_INTEGER:
		p.advance()
		return &ast.HexIntegerLiteral{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: tok.Value}, true
	case IDENTIFIER:
		if p.peekNext().Type == COLON {
			p.errorAt(tok, errors.ErrorMalformedOperand,
				fmt.Sprintf("expected operand, found label declaration '%s:'", tok.Lexeme))
			return nil, false
		}
		p.advance()
		return &ast.LabelRef{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Name: tok.Lexeme}, true
	case ILLEGAL:
		p.errorIllegal(tok)
		p.advance()
		return nil, true
	case COLON:
		p.errorAt(tok, errors.ErrorMalformedOperand,
			fmt.Sprintf("expected operand, found %s", describeToken(tok)))
		p.advance()
		return nil, true
	default:
		p.errorAt(tok, errors.ErrorMalformedOperand,
			fmt.Sprintf("expected operand, found %s", describeToken(tok)))
		return nil, false
	}
}

func (p *Parser) atOperandStart() bool {
	switch p.peek().Type {
	case REGISTER, INTEGER, HEX_INTEGER, ILLEGAL:
		return true
	case IDENTIFIER:
		return p.peekNext().Type != COLON
	default:
		return false
	}
}

func describeToken(tok Token) string {
	switch {
	case tok.Type == EOF:
		return "end of file"
	case tok.Type == COMMA:
		return "','"
	case tok.Type == COLON:
		return "':'"
	case tok.Type.IsOpcode():
		return fmt.Sprintf("opcode '%s'", tok.Lexeme)
	case tok.Type == REGISTER:
		return fmt.Sprintf("register '%s'", tok.Lexeme)
	case tok.Type == INTEGER, tok.Type == HEX_INTEGER:
		return fmt.Sprintf("number '%s'", tok.Lexeme)
	default:
		return fmt.Sprintf("'%s'", tok.Lexeme)
	}
}
