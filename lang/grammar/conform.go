package grammar

import (
	"fmt"

	"github.com/dhamidi/scopec/lang/lexer"
	"golang.org/x/exp/ebnf"
)

// ConformanceError reports the furthest token a stream could be derived up
// to before the grammar rejected it.
type ConformanceError struct {
	Token      lexer.Token
	Index      int
	Production string
}

func (e *ConformanceError) Error() string {
	if e.Token.Subtype == lexer.SubtypeEnd {
		return fmt.Sprintf("%s: input ends before %s is complete", e.Token.Span.Start, e.Production)
	}
	return fmt.Sprintf("%s: %q does not conform to %s", e.Token.Span.Start, e.Token.Literal, e.Production)
}

// Conforms checks that the tokens of s, sentinels excluded, derive from the
// start production. Names of lexical productions match a single token of the
// corresponding subtype. Scope balance is not part of the grammar and is
// not checked.
func (m *Matcher) Conforms(s *lexer.Stream, start string) error {
	all := s.Tokens()
	var tokens []lexer.Token
	if len(all) >= 2 {
		tokens = all[1 : len(all)-1]
	}

	r := &tokenRun{
		grammar:  m.grammar,
		tokens:   tokens,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
	if r.matchName(start, 0) == len(tokens) {
		return nil
	}
	return &ConformanceError{
		Token:      s.At(r.furthest + 1),
		Index:      r.furthest + 1,
		Production: start,
	}
}

// tokenRun holds the state of one Conforms call. Offsets count tokens.
type tokenRun struct {
	grammar  ebnf.Grammar
	tokens   []lexer.Token
	memo     map[memoKey]int // -1 = no match
	visiting map[memoKey]bool
	furthest int
}

func (r *tokenRun) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return r.matchTerminal(e.String, offset)

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
		if isLexical(e.String) {
			return r.matchLexical(e.String, offset)
		}
		return r.matchName(e.String, offset)
	}
	return 0
}

func (r *tokenRun) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := r.memo[key]; ok {
		if n < 0 {
			return 0
		}
		return n
	}
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

// matchTerminal matches one punctuation token spelled exactly as terminal.
func (r *tokenRun) matchTerminal(terminal string, offset int) int {
	if offset < len(r.tokens) {
		tok := r.tokens[offset]
		if _, literal := productions[tok.Subtype]; !literal && tok.Literal == terminal {
			return 1
		}
	}
	r.miss(offset)
	return 0
}

// matchLexical matches one token whose subtype derives from the lexical
// production name.
func (r *tokenRun) matchLexical(name string, offset int) int {
	if offset < len(r.tokens) && productions[r.tokens[offset].Subtype] == name {
		return 1
	}
	r.miss(offset)
	return 0
}

func (r *tokenRun) miss(offset int) {
	if offset > r.furthest {
		r.furthest = offset
	}
}
