package parser

import (
	"github.com/dhamidi/scopec/arena"
	"github.com/dhamidi/scopec/lang/lexer"
)

// ScopeOpener recognizes the token at i as the opening of a scope. A match
// always consumes exactly that one token.
type ScopeOpener interface {
	OpenScope(s *lexer.Stream, i int) (ScopeKind, bool)
}

// TokenScopeOpener maps single opener tokens to scope kinds.
type TokenScopeOpener map[lexer.Subtype]ScopeKind

// DefaultScopeOpener opens plain scopes on ":" and kinded scopes on the
// conditional and loop markers.
var DefaultScopeOpener = TokenScopeOpener{
	lexer.SubtypeColon:               ScopeNo,
	lexer.SubtypeQuestionMark:        ScopeThen,
	lexer.SubtypeQuestionExclamation: ScopeThenNot,
	lexer.SubtypeTilde:               ScopeThrough,
	lexer.SubtypeTildeExclamation:    ScopeThroughNot,
	lexer.SubtypeDollar:              ScopeTest,
}

func (o TokenScopeOpener) OpenScope(s *lexer.Stream, i int) (ScopeKind, bool) {
	kind, ok := o[s.Subtype(i)]
	return kind, ok
}

// ScopeStack holds the scopes opened but not yet closed, innermost last.
type ScopeStack struct {
	open []arena.Ref
}

func (s *ScopeStack) Push(ref arena.Ref) {
	s.open = append(s.open, ref)
}

func (s *ScopeStack) Pop() (arena.Ref, bool) {
	if len(s.open) == 0 {
		return arena.Nil, false
	}
	ref := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	return ref, true
}

func (s *ScopeStack) Peek() (arena.Ref, bool) {
	if len(s.open) == 0 {
		return arena.Nil, false
	}
	return s.open[len(s.open)-1], true
}

func (s *ScopeStack) Len() int {
	return len(s.open)
}

func (s *ScopeStack) Reset() {
	s.open = s.open[:0]
}

// Open commits a scope start of the given kind for the opener token at and
// pushes it.
func (s *ScopeStack) Open(b *Builder, kind ScopeKind, at int) (arena.Ref, error) {
	ref, err := b.Commit(Node{
		Type:    TypeScopeStart,
		Subtype: Subtype(kind),
		Payload: TokenRef(at),
	})
	if err != nil {
		return arena.Nil, err
	}
	s.Push(ref)
	return ref, nil
}

// Close resolves the innermost open scope: it commits a scope end for the
// closer token at, carrying the start's subtype, and links the two nodes to
// each other.
func (s *ScopeStack) Close(b *Builder, at int) (arena.Ref, error) {
	start, ok := s.Pop()
	if !ok {
		return arena.Nil, ErrUnopenedScope
	}
	end, err := b.Commit(Node{
		Type:    TypeScopeEnd,
		Subtype: b.Node(start).Subtype,
		Payload: TokenRef(at),
		Child1:  start,
	})
	if err != nil {
		return arena.Nil, err
	}
	b.Node(start).Child1 = end
	return end, nil
}
