package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"bessambly/internal/ast"
	"bessambly/internal/compiler"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("bessambly.lsp")

// document is the server's view of one open file.
type document struct {
	source  string
	program *ast.Program // nil when the source does not parse
	result  *compiler.Result
}

// Handler implements the LSP server handlers for Bessambly
type Handler struct {
	mu        sync.RWMutex
	documents map[protocol.DocumentUri]*document
	options   compiler.Options
}

// NewHandler creates a handler that compiles documents with the default options.
func NewHandler() *Handler {
	return NewHandlerWithOptions(compiler.DefaultOptions())
}

func NewHandlerWithOptions(opts compiler.Options) *Handler {
	return &Handler{
		documents: make(map[protocol.DocumentUri]*document),
		options:   opts,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen compiles the opened document and publishes its diagnostics
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

// TextDocumentDidChange recompiles the document. Only full-content sync is
// advertised; for anything else the file is re-read from disk.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	text, ok := lastWholeChange(params.ContentChanges)
	if !ok {
		source, err := readDocument(uri)
		if err != nil {
			return err
		}
		text = source
	}

	h.update(ctx, uri, text)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("closed %s", uri)

	h.mu.Lock()
	delete(h.documents, uri)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// TextDocumentCompletion offers every opcode and the labels of the document
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	items := make([]protocol.CompletionItem, 0, len(ast.Opcodes()))

	keyword := protocol.CompletionItemKindKeyword
	for _, op := range ast.Opcodes() {
		items = append(items, protocol.CompletionItem{
			Label: op.String(),
			Kind:  &keyword,
		})
	}

	if doc, err := h.documentFor(ctx, params.TextDocument.URI); err == nil && doc.program != nil {
		reference := protocol.CompletionItemKindReference
		for _, label := range doc.program.Labels() {
			items = append(items, protocol.CompletionItem{
				Label:  label.Name,
				Kind:   &reference,
				Detail: ptrString("label"),
			})
		}
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.documentFor(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc.program)),
	}, nil
}

// Diagnostics returns the diagnostics last published for uri.
func (h *Handler) Diagnostics(uri protocol.DocumentUri) []protocol.Diagnostic {
	h.mu.RLock()
	defer h.mu.RUnlock()

	doc, ok := h.documents[uri]
	if !ok || doc.result == nil {
		return nil
	}
	return ConvertDiagnostics(doc.result.Diagnostics)
}

// documentFor returns the cached document, loading it from disk when the
// client never opened it.
func (h *Handler) documentFor(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.documents[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	source, err := readDocument(uri)
	if err != nil {
		return nil, err
	}
	return h.update(ctx, uri, source), nil
}

func (h *Handler) update(ctx *glsp.Context, uri protocol.DocumentUri, source string) *document {
	filename := uri
	if path, err := uriToPath(uri); err == nil {
		filename = path
	}

	// A failed compilation still carries its diagnostics
	result, err := compiler.Compile(filename, source, h.options)
	if err != nil {
		log.Debugf("%s: %s", uri, err)
	}

	doc := &document{source: source, result: result}
	if result != nil {
		doc.program = result.Parsed
	}

	h.mu.Lock()
	h.documents[uri] = doc
	h.mu.Unlock()

	var diags []protocol.Diagnostic
	if result != nil {
		diags = ConvertDiagnostics(result.Diagnostics)
	}
	sendDiagnosticNotification(ctx, uri, diags)

	return doc
}

func lastWholeChange(changes []any) (string, bool) {
	for i := len(changes) - 1; i >= 0; i-- {
		switch change := changes[i].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return change.Text, true
		case *protocol.TextDocumentContentChangeEventWhole:
			return change.Text, true
		}
	}
	return "", false
}

func readDocument(uri protocol.DocumentUri) (string, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return "", fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
