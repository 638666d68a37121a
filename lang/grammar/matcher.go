package grammar

import (
	"fmt"

	"github.com/dhamidi/scopec/lang/lexer"
	"golang.org/x/exp/ebnf"
)

// productions names the lexical production each literal-carrying token
// subtype must be derivable from.
var productions = map[lexer.Subtype]string{
	lexer.SubtypeIdentifier:       "identifier",
	lexer.SubtypeLiteralNumber:    "number",
	lexer.SubtypeLiteralCharacter: "character",
	lexer.SubtypeLiteralString:    "string",
}

// ProductionFor returns the lexical production for a token subtype.
func ProductionFor(subtype lexer.Subtype) (string, bool) {
	name, ok := productions[subtype]
	return name, ok
}

type memoKey struct {
	name   string
	offset int
}

// Matcher matches text and token streams against the productions of a
// grammar. Repetitions are greedy and alternatives take the longest match;
// there is no backtracking. A Matcher is safe for concurrent use.
type Matcher struct {
	grammar   ebnf.Grammar
	terminals map[string]bool
}

func NewMatcher(g ebnf.Grammar) *Matcher {
	return &Matcher{
		grammar:   g,
		terminals: Terminals(g),
	}
}

// Match returns the length of the longest prefix of input derivable from
// the named production, or 0 if there is none.
func (m *Matcher) Match(name string, input []byte) int {
	r := &textRun{
		grammar:  m.grammar,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
	return r.matchName(name, 0)
}

// Recognizes reports whether all of literal is derivable from the named
// production.
func (m *Matcher) Recognizes(name, literal string) bool {
	return literal != "" && m.Match(name, []byte(literal)) == len(literal)
}

// textRun holds the state of one Match call.
type textRun struct {
	grammar  ebnf.Grammar
	input    []byte
	memo     map[memoKey]int // -1 = no match
	visiting map[memoKey]bool
}

func (r *textRun) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return r.matchToken(e.String, offset)

	case *ebnf.Range:
		return r.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		pos := offset
		for _, item := range e {
			n := r.match(item, pos)
			if n == 0 && !optional(item) {
				return 0
			}
			pos += n
		}
		return pos - offset

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := r.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		pos := offset
		for {
			n := r.match(e.Body, pos)
			if n == 0 {
				break
			}
			pos += n
		}
		return pos - offset

	case *ebnf.Option:
		return r.match(e.Body, offset)

	case *ebnf.Group:
		return r.match(e.Body, offset)

	case *ebnf.Name:
		return r.matchName(e.String, offset)
	}
	return 0
}

// optional reports whether expr may derive the empty string.
func optional(expr ebnf.Expression) bool {
	switch e := expr.(type) {
	case *ebnf.Repetition, *ebnf.Option:
		return true
	case *ebnf.Group:
		return optional(e.Body)
	}
	return false
}

func (r *textRun) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := r.memo[key]; ok {
		if n < 0 {
			return 0
		}
		return n
	}
	// left recursion
	if r.visiting[key] {
		return 0
	}

	prod, ok := r.grammar[name]
	if !ok || prod.Expr == nil {
		r.memo[key] = -1
		return 0
	}

	r.visiting[key] = true
	n := r.match(prod.Expr, offset)
	delete(r.visiting, key)

	if n == 0 {
		r.memo[key] = -1
	} else {
		r.memo[key] = n
	}
	return n
}

func (r *textRun) matchToken(token string, offset int) int {
	if token == "" || offset+len(token) > len(r.input) {
		return 0
	}
	if string(r.input[offset:offset+len(token)]) == token {
		return len(token)
	}
	return 0
}

func (r *textRun) matchRange(begin, end string, offset int) int {
	if offset >= len(r.input) || len(begin) != 1 || len(end) != 1 {
		return 0
	}
	if ch := r.input[offset]; ch >= begin[0] && ch <= end[0] {
		return 1
	}
	return 0
}

// TokenError reports a token the grammar cannot derive.
type TokenError struct {
	Token      lexer.Token
	Production string
}

func (e *TokenError) Error() string {
	if e.Production == "" {
		return fmt.Sprintf("%s: %q is not a terminal of the grammar", e.Token.Span.Start, e.Token.Literal)
	}
	return fmt.Sprintf("%s: %q does not match production %s", e.Token.Span.Start, e.Token.Literal, e.Production)
}

// CheckStream matches every token of s against the grammar. Literal-carrying
// tokens must derive from their lexical production and punctuation must be a
// terminal. Sentinels and error tokens are skipped.
func (m *Matcher) CheckStream(s *lexer.Stream) []error {
	var errs []error
	for _, tok := range s.Tokens() {
		if tok.Subtype.IsSentinel() || tok.Subtype == lexer.SubtypeError {
			continue
		}
		if name, ok := productions[tok.Subtype]; ok {
			if !m.Recognizes(name, tok.Literal) {
				errs = append(errs, &TokenError{Token: tok, Production: name})
			}
			continue
		}
		if !m.terminals[tok.Literal] {
			errs = append(errs, &TokenError{Token: tok})
		}
	}
	return errs
}
