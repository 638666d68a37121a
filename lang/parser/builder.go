package parser

import (
	"fmt"

	"github.com/dhamidi/scopec/arena"
	"github.com/dhamidi/scopec/lang/lexer"
)

// Identifier records a name introduced by an identification.
type Identifier struct {
	Node  arena.Ref
	Token int
}

// Parameter records one parameter of a parameterized label.
type Parameter struct {
	Label arena.Ref
	Token int
}

// Scratch is working memory for the identifier sub-parser. It may be reused
// across parses to avoid reallocating its stacks; it holds nothing once a
// construct has been parsed.
type Scratch struct {
	operands  []arena.Ref
	operators []int
}

func (s *Scratch) Reset() {
	s.operands = s.operands[:0]
	s.operators = s.operators[:0]
}

// Builder is the view of a parse in progress handed to sub-parsers.
type Builder struct {
	p       *Parser
	scratch *Scratch
}

func (b *Builder) Stream() *lexer.Stream {
	return b.p.stream
}

func (b *Builder) Scratch() *Scratch {
	return b.scratch
}

// Commit acquires one node slot and stores n in it.
func (b *Builder) Commit(n Node) (arena.Ref, error) {
	ref, slot, err := b.p.nodes.Acquire()
	if err != nil {
		b.p.errAllocator = true
		return arena.Nil, fmt.Errorf("commit %s node: %w", n.TypeName(), err)
	}
	*slot = n
	return ref, nil
}

func (b *Builder) Node(ref arena.Ref) *Node {
	return b.p.nodes.At(ref)
}

func (b *Builder) Len() int {
	return b.p.nodes.Len()
}

func (b *Builder) AddIdentifier(id Identifier) error {
	_, slot, err := b.p.identifiers.Acquire()
	if err != nil {
		b.p.errAllocator = true
		return fmt.Errorf("record identifier: %w", err)
	}
	*slot = id
	return nil
}

func (b *Builder) AddParameter(param Parameter) error {
	_, slot, err := b.p.parameters.Acquire()
	if err != nil {
		b.p.errAllocator = true
		return fmt.Errorf("record parameter: %w", err)
	}
	*slot = param
	return nil
}
