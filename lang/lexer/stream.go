package lexer

import "fmt"

// Stream is a sentinel-bounded token sequence. Index 0 always holds a
// SubtypeStart token and the last index a SubtypeEnd token.
type Stream struct {
	file   string
	tokens []Token
}

// NewStream wraps content tokens with the two sentinels.
func NewStream(file string, tokens ...Token) *Stream {
	all := make([]Token, 0, len(tokens)+2)
	all = append(all, Token{Subtype: SubtypeStart, Span: sentinelSpan(file, tokens, true)})
	all = append(all, tokens...)
	all = append(all, Token{Subtype: SubtypeEnd, Span: sentinelSpan(file, tokens, false)})
	return &Stream{file: file, tokens: all}
}

func sentinelSpan(file string, tokens []Token, start bool) Span {
	if len(tokens) == 0 {
		pos := Position{File: file, Line: 1, Column: 1}
		return Span{Start: pos, End: pos}
	}
	if start {
		pos := tokens[0].Span.Start
		return Span{Start: pos, End: pos}
	}
	pos := tokens[len(tokens)-1].Span.End
	return Span{Start: pos, End: pos}
}

func (s *Stream) File() string {
	return s.file
}

func (s *Stream) Len() int {
	return len(s.tokens)
}

// At returns the token at i. Indexes past either end yield the nearest
// sentinel.
func (s *Stream) At(i int) Token {
	if i <= 0 {
		return s.tokens[0]
	}
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

func (s *Stream) Subtype(i int) Subtype {
	return s.At(i).Subtype
}

// Tokens returns a copy of every token, sentinels included.
func (s *Stream) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

type LexicalError struct {
	Token Token
	Index int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s: invalid token %q", e.Token.Span.Start, e.Token.Literal)
}

// Err reports the first lexical error token of the stream.
func (s *Stream) Err() error {
	for i, tok := range s.tokens {
		if tok.Subtype == SubtypeError {
			return &LexicalError{Token: tok, Index: i}
		}
	}
	return nil
}
