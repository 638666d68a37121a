// Package grammar carries the reference EBNF grammar of the language and
// checks lexed tokens against it.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/ebnf"
)

//go:embed scope.ebnf
var source []byte

const (
	// Filename is the name positions in the built-in grammar refer to.
	Filename = "scope.ebnf"
	// Start is the production a whole source file is derived from.
	Start = "Module"
)

// Source returns a copy of the built-in grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the built-in grammar.
func Load() (ebnf.Grammar, error) {
	return Parse(Filename, bytes.NewReader(source))
}

func Parse(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// LoadFile parses a grammar from disk.
func LoadFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(filename, f)
}

// Verify checks that every production referenced is defined, that all
// productions are reachable from start, and that lexical productions only
// refer to lexical productions.
func Verify(g ebnf.Grammar, start string) error {
	return ebnf.Verify(g, start)
}

// Terminals collects the literal tokens used by non-lexical productions.
func Terminals(g ebnf.Grammar) map[string]bool {
	out := make(map[string]bool)
	for name, prod := range g {
		if isLexical(name) || prod.Expr == nil {
			continue
		}
		collectTerminals(prod.Expr, out)
	}
	return out
}

func collectTerminals(expr ebnf.Expression, out map[string]bool) {
	switch e := expr.(type) {
	case *ebnf.Token:
		out[e.String] = true
	case ebnf.Sequence:
		for _, item := range e {
			collectTerminals(item, out)
		}
	case ebnf.Alternative:
		for _, alt := range e {
			collectTerminals(alt, out)
		}
	case *ebnf.Repetition:
		collectTerminals(e.Body, out)
	case *ebnf.Option:
		collectTerminals(e.Body, out)
	case *ebnf.Group:
		collectTerminals(e.Body, out)
	}
}

func isLexical(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
