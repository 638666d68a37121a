package parser

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dhamidi/scopec/arena"
	"github.com/dhamidi/scopec/lang/lexer"
)

// Graph is a read-only view of a successful parse. Nodes appear in commit
// order; the first node is the root.
type Graph struct {
	nodes  *arena.Chain[Node]
	stream *lexer.Stream
}

func (g *Graph) Len() int {
	return g.nodes.Len()
}

func (g *Graph) Root() arena.Ref {
	if g.nodes.Len() == 0 {
		return arena.Nil
	}
	return arena.RefAt(0)
}

func (g *Graph) Node(ref arena.Ref) *Node {
	return g.nodes.At(ref)
}

func (g *Graph) All() iter.Seq2[arena.Ref, *Node] {
	return g.nodes.All()
}

func (g *Graph) Stream() *lexer.Stream {
	return g.stream
}

// Token returns the token a node originates from, if its payload is a
// TokenRef.
func (g *Graph) Token(n *Node) (lexer.Token, bool) {
	idx, ok := n.TokenIndex()
	if !ok {
		return lexer.Token{}, false
	}
	return g.stream.At(idx), true
}

// String dumps the graph in commit order, indenting scope contents and
// child nodes.
func (g *Graph) String() string {
	var b strings.Builder
	depth := 0
	for ref, n := range g.All() {
		if n.Type == TypeScopeEnd && !n.IsChild && depth > 0 {
			depth--
		}
		indent := depth
		if n.IsChild {
			indent++
		}
		b.WriteString(strings.Repeat("  ", indent))
		fmt.Fprintf(&b, "%d %s", ref.Index(), n.TypeName())
		if sub := n.SubtypeName(); sub != "" {
			b.WriteString(" " + sub)
		}
		switch p := n.Payload.(type) {
		case TokenRef:
			fmt.Fprintf(&b, " %q", g.stream.At(int(p)).Literal)
		case Value:
			fmt.Fprintf(&b, " =%d", uint64(p))
		}
		if !n.Child1.IsNil() {
			fmt.Fprintf(&b, " ->%d", n.Child1.Index())
		}
		if !n.Child2.IsNil() {
			fmt.Fprintf(&b, " =>%d", n.Child2.Index())
		}
		b.WriteString("\n")
		if n.Type == TypeScopeStart && !n.IsChild {
			depth++
		}
	}
	return b.String()
}
