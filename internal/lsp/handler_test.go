package lsp_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"bessambly/internal/lsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				return
			}
			if p, ok := params.(*protocol.PublishDiagnosticsParams); ok {
				r.published = append(r.published, p)
			}
		},
	}
}

func (r *recorder) last() *protocol.PublishDiagnosticsParams {
	if len(r.published) == 0 {
		return nil
	}
	return r.published[len(r.published)-1]
}

func open(t *testing.T, h *lsp.Handler, ctx *glsp.Context, uri, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "bessambly", Text: text},
	})
	require.NoError(t, err)
}

func TestSemanticTokens(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}
	ctx := rec.context()

	uri := "file:///work/tokens.bsm"
	open(t, h, ctx, uri, "start:\n    MOV R0, 0x10\n    JMP start\n")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 6)

	assertToken(t, &decoded[0], 1, 1, 5, "function", []string{"declaration"})
	assertToken(t, &decoded[1], 2, 5, 3, "keyword", nil)
	assertToken(t, &decoded[2], 2, 9, 2, "variable", nil)
	assertToken(t, &decoded[3], 2, 13, 4, "number", nil)
	assertToken(t, &decoded[4], 3, 5, 3, "keyword", nil)
	assertToken(t, &decoded[5], 3, 9, 5, "function", nil)
}

func TestSemanticTokensFromDisk(t *testing.T) {
	h := lsp.NewHandler()

	absPath, err := filepath.Abs(filepath.Join("../../examples", "countdown.bsm"))
	require.NoError(t, err, "Failed to get absolute path")
	uri := "file://" + filepath.ToSlash(absPath)

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.NotEmpty(t, decoded)

	// line 1 is a comment
	assertToken(t, &decoded[0], 2, 1, 5, "function", []string{"declaration"})
	assertToken(t, &decoded[1], 3, 5, 3, "keyword", nil)
}

func TestSemanticTokensMissingFile(t *testing.T) {
	h := lsp.NewHandler()

	_, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///does/not/exist.bsm"},
	})
	assert.Error(t, err)
}

func TestDiagnosticsPublishedOnOpen(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}
	uri := "file:///work/bad.bsm"

	open(t, h, rec.context(), uri, "JMP nowhere\n")

	published := rec.last()
	require.NotNil(t, published)
	assert.Equal(t, uri, published.URI)
	require.Len(t, published.Diagnostics, 1)

	diag := published.Diagnostics[0]
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, diag.Range.Start, "anchored on the jump")
	assert.Equal(t, protocol.Position{Line: 0, Character: 11}, diag.Range.End)
	require.NotNil(t, diag.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
	require.NotNil(t, diag.Code)
	assert.Equal(t, "E0002", diag.Code.Value)
	require.NotNil(t, diag.Source)
	assert.Equal(t, "bessambly/semantic-analysis", *diag.Source)
	assert.Contains(t, diag.Message, "undefined label 'nowhere'")
	assert.Contains(t, diag.Message, "1:5: not declared anywhere")
	assert.Contains(t, diag.Message, "E0002: Jump refers to a label that is not declared")
}

func TestParseErrorSource(t *testing.T) {
	h := lsp.NewHandler()
	uri := "file:///work/lexical.bsm"

	open(t, h, (&recorder{}).context(), uri, "MOV R0, é\n")

	diags := h.Diagnostics(uri)
	require.Len(t, diags, 1)
	assert.Equal(t, "bessambly/parser", *diags[0].Source)
	assert.Equal(t, protocol.Position{Line: 0, Character: 9}, diags[0].Range.End)
}

func TestSemanticTokensSurviveAnalysisErrors(t *testing.T) {
	h := lsp.NewHandler()
	uri := "file:///work/broken.bsm"

	open(t, h, (&recorder{}).context(), uri, "JMP nowhere\nMOV R0, 1\n")
	require.NotEmpty(t, h.Diagnostics(uri))

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 5)
	assertToken(t, &decoded[0], 1, 1, 3, "keyword", nil)
	assertToken(t, &decoded[2], 2, 1, 3, "keyword", nil)
}

func TestSemanticTokensCoverDeadCode(t *testing.T) {
	h := lsp.NewHandler()
	uri := "file:///work/dead.bsm"

	open(t, h, (&recorder{}).context(), uri, "top:\n    JMP top\n    RET\n")

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 4, "the unreachable RET is still highlighted")
	assertToken(t, &decoded[3], 3, 5, 3, "keyword", nil)
}

func TestWarningsHaveWarningSeverity(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}
	uri := "file:///work/unused.bsm"

	open(t, h, rec.context(), uri, "unused:\n    RET\n")

	diags := h.Diagnostics(uri)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diags[0].Severity)
	assert.Equal(t, "W0001", diags[0].Code.Value)
}

func TestDidChangeRecompiles(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}
	ctx := rec.context()
	uri := "file:///work/edit.bsm"

	open(t, h, ctx, uri, "JMP nowhere\n")
	require.Len(t, rec.last().Diagnostics, 1)

	err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "nowhere:\n    JMP nowhere\n"},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, rec.last().Diagnostics)
	assert.Len(t, rec.published, 2)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}
	ctx := rec.context()
	uri := "file:///work/close.bsm"

	open(t, h, ctx, uri, "MOV R0\n")
	require.NotEmpty(t, h.Diagnostics(uri))

	err := h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	assert.Nil(t, h.Diagnostics(uri))
	assert.Empty(t, rec.last().Diagnostics)
}

func TestCompletion(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}
	ctx := rec.context()
	uri := "file:///work/complete.bsm"

	open(t, h, ctx, uri, "top:\n    JMP top\n")

	result, err := h.TextDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)

	var labels []string
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "MOV")
	assert.Contains(t, labels, "SYSCALL")
	assert.Contains(t, labels, "top")
}

func TestInitializeAdvertisesLegend(t *testing.T) {
	h := lsp.NewHandler()

	result, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	initResult, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	opts, ok := initResult.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, opts.Legend.TokenTypes)
}

type DecodedToken struct {
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if raw[i+4]&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Line:      line + 1,
			Char:      char + 1,
			Length:    raw[i+2],
			Type:      lsp.SemanticTokenTypes[raw[i+3]],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	t.Helper()
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
