package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/scopec/lang/lexer"
)

var (
	ErrNoStream              = errors.New("no token stream")
	ErrInUse                 = errors.New("parser already holds a graph")
	ErrLexical               = errors.New("token stream contains lexical errors")
	ErrUnexpectedToken       = errors.New("unexpected token")
	ErrUnopenedScope         = errors.New("scope closed without an open scope")
	ErrUnclosedScope         = errors.New("unclosed scope")
	ErrInvalidIdentification = errors.New("invalid identification subtype")
	ErrInvalidCommand        = errors.New("invalid identification command")
	ErrInvalidDeclaration    = errors.New("invalid identification declaration kind")
	ErrInvalidScoped         = errors.New("invalid identification scoped kind")
)

// SyntaxError locates a structural failure in the token stream.
type SyntaxError struct {
	Index    int
	Token    lexer.Token
	Expected []lexer.Subtype
	Err      error
}

func (e *SyntaxError) Error() string {
	return e.Token.Span.Start.String() + ": " + e.Message()
}

// Message is Error without the leading position.
func (e *SyntaxError) Message() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	switch {
	case e.Token.Subtype == lexer.SubtypeEnd:
		b.WriteString(" at end of input")
	case e.Token.Literal != "":
		fmt.Fprintf(&b, " %q", e.Token.Literal)
	}
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, s := range e.Expected {
			names[i] = s.String()
		}
		fmt.Fprintf(&b, " (expected %s)", strings.Join(names, ", "))
	}
	return b.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxError(s *lexer.Stream, i int, err error, expected ...lexer.Subtype) *SyntaxError {
	return &SyntaxError{
		Index:    i,
		Token:    s.At(i),
		Expected: expected,
		Err:      err,
	}
}
