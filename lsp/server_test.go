package lsp

import (
	"testing"

	"github.com/dhamidi/scopec/lang/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/user/main.sc", "/home/user/main.sc"},
		{"file:///tmp/a%20b/x.sc", "/tmp/a b/x.sc"},
		{"untitled:1", "untitled:1"},
	}

	for _, tt := range tests {
		got, err := uriToPath(tt.uri)
		if err != nil {
			t.Errorf("uriToPath(%q): %v", tt.uri, err)
			continue
		}
		if got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func symbolsOf(t *testing.T, s *Server, uri string) []protocol.DocumentSymbol {
	t.Helper()
	result, err := s.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("documentSymbol: %v", err)
	}
	symbols, ok := result.([]protocol.DocumentSymbol)
	if !ok {
		t.Fatalf("documentSymbol returned %T", result)
	}
	return symbols
}

func TestDocumentLifecycle(t *testing.T) {
	s := NewServer("test")
	uri := "file:///work/main.sc"

	err := s.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "#a;"},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	if got := symbolsOf(t, s, uri); len(got) != 1 || got[0].Name != "a" {
		t.Errorf("after open: %+v, want symbol a", got)
	}

	err = s.textDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "#a; @b;"},
		},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	if got := symbolsOf(t, s, uri); len(got) != 2 {
		t.Errorf("after change: got %d symbols, want 2", len(got))
	}

	if err := s.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}); err != nil {
		t.Fatalf("didClose: %v", err)
	}
	if got := symbolsOf(t, s, uri); len(got) != 0 {
		t.Errorf("after close: got %d symbols, want 0", len(got))
	}
}

func TestUpdateUsesParserOptions(t *testing.T) {
	s := NewServer("test", parser.WithBlockSize(1), parser.WithMaxBlocks(1))
	a := s.update("file:///work/big.sc", []byte("#a; #b;"))
	if len(a.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want arena exhaustion", len(a.Diagnostics))
	}
}

func TestBrokenDocumentHasNoSymbols(t *testing.T) {
	s := NewServer("test")
	uri := "file:///work/bad.sc"
	a := s.update(uri, []byte(": #x"))
	if len(a.Diagnostics) != 1 {
		t.Errorf("got %d diagnostics, want 1", len(a.Diagnostics))
	}
	if got := symbolsOf(t, s, uri); len(got) != 0 {
		t.Errorf("got %d symbols, want 0", len(got))
	}
}
