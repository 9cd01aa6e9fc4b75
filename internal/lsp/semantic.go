package lsp

import (
	"sort"

	"bessambly/internal/ast"
)

// SemanticTokenTypes is the token type legend advertised to clients.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"function",
}

// SemanticTokenModifiers is the token modifier legend advertised to clients.
var SemanticTokenModifiers = []string{
	"declaration",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

func collectSemanticTokens(program *ast.Program) []SemanticToken {
	var tokens []SemanticToken

	if program == nil {
		return tokens
	}

	ast.Inspect(program, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.LabelDecl:
			tokens = append(tokens, makeToken(v.Pos, len(v.Name), "function", 1)...)
		case *ast.Instruction:
			tokens = append(tokens, makeToken(v.Pos, len(v.Opcode.String()), "keyword", 0)...)
		case *ast.Register:
			tokens = append(tokens, spanToken(v.Pos, v.EndPos, "variable")...)
		case *ast.IntegerLiteral:
			tokens = append(tokens, spanToken(v.Pos, v.EndPos, "number")...)
		case *ast.HexIntegerLiteral:
			tokens = append(tokens, spanToken(v.Pos, v.EndPos, "number")...)
		case *ast.LabelRef:
			tokens = append(tokens, makeToken(v.Pos, len(v.Name), "function", 0)...)
		}
		return true
	})

	// Clients require tokens in document order
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	return tokens
}

// encodeSemanticTokens converts tokens into the LSP wire format of
// delta-line, delta-start quintuples.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return data
}

func spanToken(pos, endPos ast.Position, tokenType string) []SemanticToken {
	return makeToken(pos, endPos.Column-pos.Column, tokenType, 0)
}

func makeToken(pos ast.Position, length int, tokenType string, declModifier int) []SemanticToken {
	if length <= 0 || pos.Line <= 0 || pos.Column <= 0 {
		return nil
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
