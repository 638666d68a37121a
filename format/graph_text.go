package format

import (
	"io"

	"github.com/dhamidi/scopec/lang/parser"
)

// GraphTextEncoder writes the indented dump produced by Graph.String.
type GraphTextEncoder struct {
	w     io.Writer
	graph *parser.Graph
}

func NewGraphTextEncoder(w io.Writer) *GraphTextEncoder {
	return &GraphTextEncoder{w: w}
}

func (e *GraphTextEncoder) Encode(g *parser.Graph) error {
	e.graph = g
	return writeAll(e.w, e)
}

func (e *GraphTextEncoder) MarshalText() ([]byte, error) {
	if e.graph == nil {
		return nil, nil
	}
	return []byte(e.graph.String()), nil
}
