// Package lsp serves parse diagnostics and document symbols over the
// Language Server Protocol.
package lsp

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/scopec/lang/parser"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "scopec"

var log = commonlog.GetLogger("scopec.lsp")

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	options []parser.Option

	mu        sync.Mutex
	documents map[protocol.DocumentUri]Analysis
}

// NewServer creates a server whose parsers are built with opts.
func NewServer(version string, opts ...parser.Option) *Server {
	s := &Server{
		version:   version,
		options:   opts,
		documents: make(map[protocol.DocumentUri]Analysis),
	}

	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDidSave:        s.textDocumentDidSave,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		log.Infof("initialize from %s", params.ClientInfo.Name)
	}

	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.publish(ctx, uri, s.update(uri, []byte(params.TextDocument.Text)))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	uri := params.TextDocument.URI
	s.publish(ctx, uri, s.update(uri, []byte(textChange.Text)))
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.documents, uri)
	s.mu.Unlock()
	s.publish(ctx, uri, Analysis{Diagnostics: []protocol.Diagnostic{}})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	var text []byte
	if params.Text != nil {
		text = []byte(*params.Text)
	} else {
		path, err := uriToPath(uri)
		if err != nil {
			return nil
		}
		if text, err = os.ReadFile(path); err != nil {
			log.Warningf("read %s: %s", path, err)
			return nil
		}
	}
	s.publish(ctx, uri, s.update(uri, text))
	return nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	s.mu.Lock()
	a, ok := s.documents[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok || a.Symbols == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	return a.Symbols, nil
}

// update parses text as the current content of uri and remembers the result.
func (s *Server) update(uri protocol.DocumentUri, text []byte) Analysis {
	path, err := uriToPath(uri)
	if err != nil {
		path = uri
	}
	a := Analyze(path, text, s.options...)
	log.Debugf("%s: %d diagnostics, %d symbols", path, len(a.Diagnostics), len(a.Symbols))

	s.mu.Lock()
	s.documents[uri] = a
	s.mu.Unlock()
	return a
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, a Analysis) {
	if ctx == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: a.Diagnostics,
	})
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
