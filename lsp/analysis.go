package lsp

import (
	"errors"
	"fmt"

	"github.com/dhamidi/scopec/lang/lexer"
	"github.com/dhamidi/scopec/lang/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "scopec"

// Analysis is what the server knows about one document after parsing it.
// Diagnostics is never nil so that publishing it clears stale results.
type Analysis struct {
	Diagnostics []protocol.Diagnostic
	Symbols     []protocol.DocumentSymbol
}

// Analyze parses text with a fresh parser and releases it before returning.
func Analyze(path string, text []byte, opts ...parser.Option) Analysis {
	p := parser.NewParser(opts...)
	defer p.Destroy()

	if err := p.Create(lexer.Tokenize(text, path), nil); err != nil {
		return Analysis{Diagnostics: Diagnostics(err)}
	}
	return Analysis{
		Diagnostics: []protocol.Diagnostic{},
		Symbols:     Symbols(p.Graph()),
	}
}

// Diagnostics converts a parse failure into a single error diagnostic at the
// offending token.
func Diagnostics(err error) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}

	var synErr *parser.SyntaxError
	var lexErr *lexer.LexicalError
	switch {
	case errors.As(err, &synErr):
		return []protocol.Diagnostic{diagnostic(spanRange(synErr.Token.Span), synErr.Message())}
	case errors.As(err, &lexErr):
		return []protocol.Diagnostic{diagnostic(spanRange(lexErr.Token.Span), fmt.Sprintf("invalid token %q", lexErr.Token.Literal))}
	}
	return []protocol.Diagnostic{diagnostic(protocol.Range{}, err.Error())}
}

func diagnostic(r protocol.Range, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

type symbolFrame struct {
	symbol   protocol.DocumentSymbol
	children []protocol.DocumentSymbol
}

// Symbols lists identifications nested under the scopes that contain them.
// Labels are reported as functions, everything else as variables.
func Symbols(g *parser.Graph) []protocol.DocumentSymbol {
	if g == nil {
		return []protocol.DocumentSymbol{}
	}
	stack := []symbolFrame{{}}

	for _, n := range g.All() {
		if n.IsChild {
			continue
		}
		switch n.Type {
		case parser.TypeScopeStart:
			r := nodeRange(g, n)
			stack = append(stack, symbolFrame{symbol: protocol.DocumentSymbol{
				Name:           scopeName(n.ScopeKind()),
				Kind:           protocol.SymbolKindNamespace,
				Range:          r,
				SelectionRange: r,
			}})

		case parser.TypeScopeEnd:
			if len(stack) < 2 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.symbol.Range.End = nodeRange(g, n).End
			top.symbol.Children = top.children
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, top.symbol)

		case parser.TypeIdentification:
			tok, ok := g.Token(n)
			if !ok {
				continue
			}
			id, err := n.Identification()
			if err != nil {
				continue
			}
			kind := protocol.SymbolKindVariable
			if id.Scoped != parser.ScopedNo {
				kind = protocol.SymbolKindFunction
			}
			detail := id.String()
			r := spanRange(tok.Span)
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, protocol.DocumentSymbol{
				Name:           tok.Literal,
				Detail:         &detail,
				Kind:           kind,
				Range:          r,
				SelectionRange: r,
			})
		}
	}

	if stack[0].children == nil {
		return []protocol.DocumentSymbol{}
	}
	return stack[0].children
}

func scopeName(kind parser.ScopeKind) string {
	if kind == parser.ScopeNo {
		return "scope"
	}
	return kind.String() + " scope"
}

func nodeRange(g *parser.Graph, n *parser.Node) protocol.Range {
	tok, ok := g.Token(n)
	if !ok {
		return protocol.Range{}
	}
	return spanRange(tok.Span)
}

// spanRange converts 1-based line and column positions to the 0-based
// positions of the protocol.
func spanRange(s lexer.Span) protocol.Range {
	return protocol.Range{Start: position(s.Start), End: position(s.End)}
}

func position(p lexer.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(p.Line-1, 0)),
		Character: protocol.UInteger(max(p.Column-1, 0)),
	}
}
