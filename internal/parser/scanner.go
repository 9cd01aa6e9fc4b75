package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
	Value    int64  // register index or decoded literal
	Err      string // set on ILLEGAL tokens
}

type Scanner struct {
	source      string
	tokens      []Token
	start       int
	current     int
	line        int
	startColumn int
	startLine   int
	column      int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// ScanTokens scans the whole source. The returned slice always ends with
// exactly one EOF token; lexical problems become ILLEGAL tokens in place.
func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Position: Position{Line: s.line, Column: s.column, Offset: s.current}})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case ',':
		s.addToken(COMMA)
	case ':':
		s.addToken(COLON)
	case ';':
		s.skipComment()

	// Whitespace (ignored)
	case ' ', '\r', '\t', '\n':

	default:
		s.scanDefault(c)
	}
}

func (s *Scanner) scanDefault(c byte) {
	if isDigit(c) {
		s.scanNumber(c)
	} else if isAlpha(c) {
		s.scanWord()
	} else {
		s.reportError(fmt.Sprintf("unrecognized character '%c'", s.finishRune()))
	}
}

// finishRune consumes the continuation bytes of a multi-byte character whose
// lead byte was just advanced over, so it is reported once and counted as a
// single column.
func (s *Scanner) finishRune() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.start:])
	if size > 1 {
		s.current = s.start + size
	}
	return r
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) addToken(tokenType TokenType) {
	s.addValueToken(tokenType, 0)
}

func (s *Scanner) addValueToken(tokenType TokenType, value int64) {
	s.tokens = append(s.tokens, Token{
		Type:     tokenType,
		Lexeme:   s.source[s.start:s.current],
		Position: s.startPosition(),
		Value:    value,
	})
}

func (s *Scanner) reportError(message string) {
	s.tokens = append(s.tokens, Token{
		Type:     ILLEGAL,
		Lexeme:   s.source[s.start:s.current],
		Position: s.startPosition(),
		Err:      message,
	})
}

func (s *Scanner) startPosition() Position {
	return Position{Line: s.startLine, Column: s.startColumn, Offset: s.start}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') ||
		('a' <= c && c <= 'f') ||
		('A' <= c && c <= 'F')
}

func (s *Scanner) skipComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *Scanner) scanWord() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]

	if isRegisterName(text) {
		index, err := strconv.Atoi(text[1:])
		if err != nil {
			s.reportError(fmt.Sprintf("register number '%s' out of range", text))
			return
		}
		s.addValueToken(REGISTER, int64(index))
		return
	}

	s.addToken(lookupIdentifier(text))
}

func (s *Scanner) scanNumber(first byte) {
	if first == '0' && (s.peek() == 'x' || s.peek() == 'X') {
		s.advance()
		if !isHexDigit(s.peek()) {
			s.reportError("invalid hex literal: expected hex digit after 0x")
			return
		}
		for isHexDigit(s.peek()) {
			s.advance()
		}
		text := s.source[s.start:s.current]
		value, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			s.reportError(fmt.Sprintf("hex literal '%s' out of range", text))
			return
		}
		s.addValueToken(HEX_INTEGER, value)
		return
	}

	for isDigit(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		s.reportError(fmt.Sprintf("integer literal '%s' out of range", text))
		return
	}
	s.addValueToken(INTEGER, value)
}

// isRegisterName reports whether text is 'R' followed only by digits.
func isRegisterName(text string) bool {
	if len(text) < 2 || text[0] != 'R' {
		return false
	}
	for i := 1; i < len(text); i++ {
		if !isDigit(text[i]) {
			return false
		}
	}
	return true
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}
