package parser

import (
	"testing"
)

func TestOpcodesAndIdentifiers(t *testing.T) {
	input := "MOV ADD SUB MUL DIV CMP JMP JEQ JNE JLT JGT SYSCALL RET mov loop_1 _x"
	expected := []TokenType{
		MOV, ADD, SUB, MUL, DIV, CMP, JMP, JEQ, JNE, JLT, JGT, SYSCALL, RET,
		IDENTIFIER, IDENTIFIER, IDENTIFIER, EOF,
	}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, tokens[i].Type)
		}
	}
}

func TestRegisters(t *testing.T) {
	input := "R0 R15 R99 R Rx R1a"
	expected := []struct {
		typ   TokenType
		value int64
	}{
		{REGISTER, 0}, {REGISTER, 15}, {REGISTER, 99},
		{IDENTIFIER, 0}, {IDENTIFIER, 0}, {IDENTIFIER, 0},
	}

	tokens := NewScanner(input).ScanTokens()

	for i, exp := range expected {
		if tokens[i].Type != exp.typ || tokens[i].Value != exp.value {
			t.Errorf("token %d (%q): expected %s/%d, got %s/%d",
				i, tokens[i].Lexeme, exp.typ, exp.value, tokens[i].Type, tokens[i].Value)
		}
	}
}

func TestNumbers(t *testing.T) {
	input := "42 0 12345 0x0 0x1F 0Xabc"
	expected := []struct {
		typ   TokenType
		value int64
	}{
		{INTEGER, 42}, {INTEGER, 0}, {INTEGER, 12345},
		{HEX_INTEGER, 0}, {HEX_INTEGER, 0x1F}, {HEX_INTEGER, 0xABC},
	}

	tokens := NewScanner(input).ScanTokens()

	for i, exp := range expected {
		if tokens[i].Type != exp.typ || tokens[i].Value != exp.value {
			t.Errorf("token %d (%q): expected %s/%d, got %s/%d",
				i, tokens[i].Lexeme, exp.typ, exp.value, tokens[i].Type, tokens[i].Value)
		}
	}
}

func TestLiteralOverflowIsRejected(t *testing.T) {
	inputs := []string{
		"9223372036854775808",
		"0x8000000000000000",
		"R99999999999999999999",
	}

	for _, input := range inputs {
		tokens := NewScanner(input).ScanTokens()
		if tokens[0].Type != ILLEGAL {
			t.Errorf("%s: expected ILLEGAL, got %s", input, tokens[0].Type)
			continue
		}
		if tokens[0].Err == "" {
			t.Errorf("%s: ILLEGAL token carries no message", input)
		}
	}

	tokens := NewScanner("9223372036854775807").ScanTokens()
	if tokens[0].Type != INTEGER || tokens[0].Value != 9223372036854775807 {
		t.Errorf("max int64 should scan, got %s %d", tokens[0].Type, tokens[0].Value)
	}
}

func TestInvalidHexLiteral(t *testing.T) {
	tokens := NewScanner("0x").ScanTokens()
	if tokens[0].Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tokens[0].Type)
	}
}

func TestSeparatorsAndComments(t *testing.T) {
	input := "start: ; a comment, with: punctuation\n  MOV R1, R2 ; trailing"
	expected := []TokenType{IDENTIFIER, COLON, MOV, REGISTER, COMMA, REGISTER, EOF}

	tokens := NewScanner(input).ScanTokens()

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, tokens[i].Type)
		}
	}
}

func TestUnrecognizedCharacter(t *testing.T) {
	tokens := NewScanner("MOV R0, $5").ScanTokens()

	tok := tokens[3]
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if tok.Err != "unrecognized character '$'" {
		t.Errorf("unexpected message %q", tok.Err)
	}
	if tokens[4].Type != INTEGER {
		t.Errorf("scanning should resume after the bad character, got %s", tokens[4].Type)
	}
}

func TestMultiByteCharacterIsOneToken(t *testing.T) {
	tokens := NewScanner("MOV R0, é\nRET é").ScanTokens()

	var illegal []Token
	for _, tok := range tokens {
		if tok.Type == ILLEGAL {
			illegal = append(illegal, tok)
		}
	}
	if len(illegal) != 2 {
		t.Fatalf("expected 2 ILLEGAL tokens, got %d: %v", len(illegal), tokens)
	}
	if illegal[0].Err != "unrecognized character 'é'" {
		t.Errorf("unexpected message %q", illegal[0].Err)
	}
	if illegal[0].Lexeme != "é" {
		t.Errorf("expected the whole character as lexeme, got %q", illegal[0].Lexeme)
	}

	ret := tokens[4]
	if ret.Type != RET {
		t.Fatalf("expected RET after the newline, got %s", ret.Type)
	}
	if want := (Position{Line: 2, Column: 1, Offset: 11}); ret.Position != want {
		t.Errorf("RET: expected %+v, got %+v", want, ret.Position)
	}
	if illegal[1].Position.Column != 5 {
		t.Errorf("expected column 5 for the second character, got %d", illegal[1].Position.Column)
	}
	if eof := tokens[len(tokens)-1]; eof.Position.Column != 6 {
		t.Errorf("a multi-byte character should advance one column, EOF at %d", eof.Position.Column)
	}
}

func TestTokenPositions(t *testing.T) {
	input := "MOV R0, 1\n  RET"
	tokens := NewScanner(input).ScanTokens()

	expected := []Position{
		{Line: 1, Column: 1, Offset: 0},  // MOV
		{Line: 1, Column: 5, Offset: 4},  // R0
		{Line: 1, Column: 7, Offset: 6},  // ,
		{Line: 1, Column: 9, Offset: 8},  // 1
		{Line: 2, Column: 3, Offset: 12}, // RET
		{Line: 2, Column: 6, Offset: 15}, // EOF
	}

	for i, pos := range expected {
		if tokens[i].Position != pos {
			t.Errorf("token %d (%s): expected %+v, got %+v", i, tokens[i].Type, pos, tokens[i].Position)
		}
	}
}

func TestEmptySource(t *testing.T) {
	tokens := NewScanner("").ScanTokens()
	if len(tokens) != 1 || tokens[0].Type != EOF {
		t.Fatalf("expected a single EOF token, got %v", tokens)
	}
}

func TestTokenTypeString(t *testing.T) {
	if SYSCALL.String() != "SYSCALL" || HEX_INTEGER.String() != "HEX_INTEGER" {
		t.Errorf("unexpected names %s %s", SYSCALL, HEX_INTEGER)
	}
	if !RET.IsOpcode() || IDENTIFIER.IsOpcode() || COLON.IsOpcode() {
		t.Errorf("IsOpcode misclassified a token type")
	}
}
