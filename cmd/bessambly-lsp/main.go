// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"bessambly/internal/lsp"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "bessambly" // Name identifier for the language server

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)
	log := commonlog.GetLogger("bessambly.lsp.main")

	bessamblyHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:                     bessamblyHandler.Initialize,
		Initialized:                    bessamblyHandler.Initialized,
		Shutdown:                       bessamblyHandler.Shutdown,
		SetTrace:                       bessamblyHandler.SetTrace,
		TextDocumentDidOpen:            bessamblyHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           bessamblyHandler.TextDocumentDidClose,
		TextDocumentDidChange:          bessamblyHandler.TextDocumentDidChange,
		TextDocumentCompletion:         bessamblyHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: bessamblyHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
