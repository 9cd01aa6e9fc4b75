package parser

import (
	"unicode/utf8"

	"bessambly/internal/ast"
	"bessambly/internal/errors"
)

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

// peekNext returns the token after the current one, or the EOF token.
func (p *Parser) peekNext() Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) errorAt(tok Token, code, message string) {
	length := utf8.RuneCountInString(tok.Lexeme)
	if length == 0 {
		length = 1
	}
	p.errors = append(p.errors, ParseError{
		Code:     code,
		Message:  message,
		Position: tok.Position,
		Length:   length,
	})
}

func (p *Parser) errorIllegal(tok Token) {
	message := tok.Err
	if message == "" {
		message = "illegal token '" + tok.Lexeme + "'"
	}
	p.errorAt(tok, errors.ErrorLexical, message)
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + len(tok.Lexeme),
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + len(tok.Lexeme),
	}
}

// synchronize skips past the offending token and then up to the next token
// that can begin a statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		switch t := p.peek().Type; {
		case t.IsOpcode(), t == IDENTIFIER, t == COLON:
			return
		}

		p.advance()
	}
}
