package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/scopec/arena"
	"github.com/dhamidi/scopec/lang/parser"
)

type GraphJSONEncoder struct {
	w     io.Writer
	graph *parser.Graph
}

func NewGraphJSONEncoder(w io.Writer) *GraphJSONEncoder {
	return &GraphJSONEncoder{w: w}
}

func (e *GraphJSONEncoder) Encode(g *parser.Graph) error {
	e.graph = g
	return writeAll(e.w, e)
}

func (e *GraphJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(graphToJSON(e.graph), "", "  ")
}

type graphJSON struct {
	File  string           `json:"file"`
	Nodes []*graphJSONNode `json:"nodes"`
}

type graphJSONNode struct {
	Ref            int                      `json:"ref"`
	Child          bool                     `json:"child,omitempty"`
	Type           string                   `json:"type"`
	Subtype        string                   `json:"subtype,omitempty"`
	Identification *graphJSONIdentification `json:"identification,omitempty"`
	Payload        string                   `json:"payload,omitempty"`
	Token          *graphJSONToken          `json:"token,omitempty"`
	Value          *uint64                  `json:"value,omitempty"`
	Child1         *int                     `json:"child1,omitempty"`
	Child2         *int                     `json:"child2,omitempty"`
}

type graphJSONIdentification struct {
	Command     string `json:"command"`
	Declaration string `json:"declaration"`
	Scoped      string `json:"scoped"`
}

type graphJSONToken struct {
	Index   int       `json:"index"`
	Literal string    `json:"literal"`
	Span    *jsonSpan `json:"span,omitempty"`
}

func graphToJSON(g *parser.Graph) *graphJSON {
	out := &graphJSON{Nodes: []*graphJSONNode{}}
	if g == nil {
		return out
	}
	out.File = g.Stream().File()
	for ref, n := range g.All() {
		out.Nodes = append(out.Nodes, nodeToJSON(g, ref, n))
	}
	return out
}

func nodeToJSON(g *parser.Graph, ref arena.Ref, n *parser.Node) *graphJSONNode {
	jn := &graphJSONNode{
		Ref:     ref.Index(),
		Child:   n.IsChild,
		Type:    n.TypeName(),
		Subtype: n.SubtypeName(),
		Child1:  refToJSON(n.Child1),
		Child2:  refToJSON(n.Child2),
	}

	if !n.IsChild && n.Type == parser.TypeIdentification {
		if id, err := n.Identification(); err == nil {
			jn.Subtype = ""
			jn.Identification = &graphJSONIdentification{
				Command:     id.Command.String(),
				Declaration: id.Declaration.String(),
				Scoped:      id.Scoped.String(),
			}
		}
	}

	switch p := n.Payload.(type) {
	case parser.TokenRef:
		tok := g.Stream().At(int(p))
		jn.Payload = "token"
		jn.Token = &graphJSONToken{
			Index:   int(p),
			Literal: tok.Literal,
			Span:    spanToJSON(tok.Span),
		}
	case parser.Value:
		v := uint64(p)
		jn.Payload = "value"
		jn.Value = &v
	case parser.Data:
		jn.Payload = "data"
	case parser.Func:
		jn.Payload = "func"
	}

	return jn
}

func refToJSON(ref arena.Ref) *int {
	if ref.IsNil() {
		return nil
	}
	i := ref.Index()
	return &i
}
