// Package format renders parse results for people and tools.
package format

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/scopec/lang/lexer"
	"github.com/dhamidi/scopec/lang/parser"
)

var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the names accepted by NewGraphEncoder and NewTokenEncoder.
var Formats = []string{"json", "text"}

type GraphEncoder interface {
	encoding.TextMarshaler
	Encode(g *parser.Graph) error
}

type TokenEncoder interface {
	encoding.TextMarshaler
	Encode(s *lexer.Stream) error
}

func NewGraphEncoder(name string, w io.Writer) (GraphEncoder, error) {
	switch name {
	case "json":
		return NewGraphJSONEncoder(w), nil
	case "text":
		return NewGraphTextEncoder(w), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

func NewTokenEncoder(name string, w io.Writer) (TokenEncoder, error) {
	switch name {
	case "json":
		return NewTokenJSONEncoder(w), nil
	case "text":
		return NewTokenTextEncoder(w), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func spanToJSON(s lexer.Span) *jsonSpan {
	if s.Start.Line == 0 && s.End.Line == 0 {
		return nil
	}
	return &jsonSpan{
		Start: jsonPosition{Line: s.Start.Line, Column: s.Start.Column},
		End:   jsonPosition{Line: s.End.Line, Column: s.End.Column},
	}
}

func writeAll(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
