package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/scopec/lang/lexer"
)

type TokenJSONEncoder struct {
	w      io.Writer
	stream *lexer.Stream
}

func NewTokenJSONEncoder(w io.Writer) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w}
}

func (e *TokenJSONEncoder) Encode(s *lexer.Stream) error {
	e.stream = s
	return writeAll(e.w, e)
}

func (e *TokenJSONEncoder) MarshalText() ([]byte, error) {
	out := tokensJSON{Tokens: []tokenJSON{}}
	if e.stream != nil {
		out.File = e.stream.File()
		for i, tok := range e.stream.Tokens() {
			out.Tokens = append(out.Tokens, tokenJSON{
				Index:   i,
				Subtype: tok.Subtype.String(),
				Literal: tok.Literal,
				Span:    spanToJSON(tok.Span),
			})
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

type tokensJSON struct {
	File   string      `json:"file"`
	Tokens []tokenJSON `json:"tokens"`
}

type tokenJSON struct {
	Index   int       `json:"index"`
	Subtype string    `json:"subtype"`
	Literal string    `json:"literal,omitempty"`
	Span    *jsonSpan `json:"span,omitempty"`
}

// TokenTextEncoder writes one token per line: index, position, subtype and
// literal.
type TokenTextEncoder struct {
	w      io.Writer
	stream *lexer.Stream
}

func NewTokenTextEncoder(w io.Writer) *TokenTextEncoder {
	return &TokenTextEncoder{w: w}
}

func (e *TokenTextEncoder) Encode(s *lexer.Stream) error {
	e.stream = s
	return writeAll(e.w, e)
}

func (e *TokenTextEncoder) MarshalText() ([]byte, error) {
	if e.stream == nil {
		return nil, nil
	}
	var b strings.Builder
	for i, tok := range e.stream.Tokens() {
		fmt.Fprintf(&b, "%d\t%d:%d\t%s\n", i, tok.Span.Start.Line, tok.Span.Start.Column, tok)
	}
	return []byte(b.String()), nil
}
