// Package parser builds the node graph of a scope-oriented language from a
// finished token stream.
//
// A parse is a single pass over the stream. Each statement is either a scope
// opener, or an optional identification construct followed by a terminator:
// ";" ends a statement and "." ends the innermost open scope. The first
// structural error aborts the whole parse and releases every node committed
// so far; no partial graph is ever returned.
package parser

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/scopec/arena"
	"github.com/dhamidi/scopec/lang/lexer"
)

var log = commonlog.GetLogger("scopec.parser")

type State int

const (
	StateScanning State = iota
	StateOpeningScope
	StateDelegatingIdentifier
	StateExpectingTerminator
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateScanning:             "Scanning",
	StateOpeningScope:         "OpeningScope",
	StateDelegatingIdentifier: "DelegatingIdentifier",
	StateExpectingTerminator:  "ExpectingTerminator",
	StateDone:                 "Done",
	StateFailed:               "Failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

type Option func(*Parser)

// WithBlockSize sets how many nodes each arena block holds.
func WithBlockSize(n int) Option {
	return func(p *Parser) {
		p.blockSize = n
	}
}

// WithMaxBlocks bounds the node arena. Zero leaves it unbounded.
func WithMaxBlocks(n int) Option {
	return func(p *Parser) {
		p.maxBlocks = n
	}
}

func WithScopeOpener(o ScopeOpener) Option {
	return func(p *Parser) {
		p.opener = o
	}
}

func WithIdentifierParser(ip IdentifierParser) Option {
	return func(p *Parser) {
		p.identifier = ip
	}
}

type Parser struct {
	stream       *lexer.Stream
	nodes        arena.Chain[Node]
	identifiers  arena.Chain[Identifier]
	parameters   arena.Chain[Parameter]
	errAllocator bool
	state        State
	scopes       ScopeStack

	blockSize  int
	maxBlocks  int
	opener     ScopeOpener
	identifier IdentifierParser
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	p.Initialize(opts...)
	return p
}

// Initialize resets p to an empty parser with no token stream bound.
func (p *Parser) Initialize(opts ...Option) {
	*p = Parser{
		opener:     DefaultScopeOpener,
		identifier: Identifications{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.nodes.Init(p.blockSize, p.maxBlocks)
	p.identifiers.Init(p.blockSize, p.maxBlocks)
	p.parameters.Init(p.blockSize, p.maxBlocks)
}

// Create parses stream into the parser's node arena. On failure the parser is
// destroyed before returning and holds no nodes. A nil scratch gets a fresh
// one.
func (p *Parser) Create(stream *lexer.Stream, scratch *Scratch) (err error) {
	if stream == nil || stream.Len() < 2 {
		return ErrNoStream
	}
	if p.stream != nil {
		return ErrInUse
	}
	if p.opener == nil {
		p.opener = DefaultScopeOpener
	}
	if p.identifier == nil {
		p.identifier = Identifications{}
	}
	if scratch == nil {
		scratch = &Scratch{}
	}

	p.stream = stream
	p.state = StateScanning
	p.scopes.Reset()
	defer func() {
		if err != nil {
			log.Debugf("%s: parse failed: %s", stream.File(), err)
			p.Destroy()
			p.state = StateFailed
		}
	}()

	if lexErr := stream.Err(); lexErr != nil {
		return fmt.Errorf("%w: %w", ErrLexical, lexErr)
	}

	b := &Builder{p: p, scratch: scratch}
	var outcome latch
	last := stream.Len() - 1

	for i := 1; i < last; {
		p.state = StateScanning
		if err := p.nodes.Reserve(); err != nil {
			p.errAllocator = true
			outcome.set(Fatal)
			return syntaxError(stream, i, err)
		}

		p.state = StateOpeningScope
		if kind, ok := p.opener.OpenScope(stream, i); ok {
			ref, err := p.scopes.Open(b, kind, i)
			if err != nil {
				outcome.set(Fatal)
				return syntaxError(stream, i, err)
			}
			log.Debugf("%s: open %s scope %d", stream.At(i).Span.Start, kind, ref.Index())
			i++
			continue
		}

		p.state = StateDelegatingIdentifier
		m, err := p.identifier.ParseIdentifier(b, i)
		if err != nil {
			m.Outcome = Fatal
		}
		if outcome.set(m.Outcome) == Fatal {
			if err == nil {
				err = syntaxError(stream, i, ErrUnexpectedToken)
			}
			return err
		}
		if m.Outcome == Matched {
			if m.Len <= 0 {
				outcome.set(Fatal)
				return syntaxError(stream, i, ErrUnexpectedToken)
			}
			i += m.Len
		}

		p.state = StateExpectingTerminator
		var cause error
		switch stream.Subtype(i) {
		case lexer.SubtypePeriod:
			ref, err := p.scopes.Close(b, i)
			if err != nil {
				outcome.set(Fatal)
				cause = syntaxError(stream, i, err)
				break
			}
			log.Debugf("%s: close scope %d", stream.At(i).Span.Start, b.Node(ref).Child1.Index())
			i++
		case lexer.SubtypeSemicolon:
			i++
		default:
			outcome.set(Fatal)
			cause = syntaxError(stream, i, ErrUnexpectedToken, lexer.SubtypeSemicolon, lexer.SubtypePeriod)
		}

		if outcome.fatal() {
			return cause
		}
	}

	if p.scopes.Len() > 0 {
		return syntaxError(stream, last, ErrUnclosedScope)
	}

	p.state = StateDone
	log.Infof("%s: parsed %d tokens into %d nodes", stream.File(), stream.Len(), p.nodes.Len())
	return nil
}

// Destroy releases every arena and unbinds the token stream. It is safe to
// call on a nil, never-created, or already destroyed parser.
func (p *Parser) Destroy() {
	if p == nil {
		return
	}
	p.stream = nil
	p.nodes.ReleaseAll()
	p.identifiers.ReleaseAll()
	p.parameters.ReleaseAll()
	p.scopes.Reset()
}

func (p *Parser) State() State {
	return p.state
}

// Stream returns the bound token stream, or nil when none is bound.
func (p *Parser) Stream() *lexer.Stream {
	return p.stream
}

// AllocatorFailed reports whether an arena ran out during the last parse.
func (p *Parser) AllocatorFailed() bool {
	return p.errAllocator
}

// Graph returns the committed nodes after a successful Create, or nil.
func (p *Parser) Graph() *Graph {
	if p.stream == nil || p.state != StateDone {
		return nil
	}
	return &Graph{nodes: &p.nodes, stream: p.stream}
}

func (p *Parser) Identifiers() []Identifier {
	out := make([]Identifier, 0, p.identifiers.Len())
	for _, id := range p.identifiers.All() {
		out = append(out, *id)
	}
	return out
}

func (p *Parser) Parameters() []Parameter {
	out := make([]Parameter, 0, p.parameters.Len())
	for _, param := range p.parameters.All() {
		out = append(out, *param)
	}
	return out
}

// ParseSource tokenizes input and parses it with a new parser.
func ParseSource(input []byte, file string, opts ...Option) (*Parser, error) {
	p := NewParser(opts...)
	if err := p.Create(lexer.Tokenize(input, file), nil); err != nil {
		return nil, err
	}
	return p, nil
}

// IsExhausted reports whether err stems from a node arena running out.
func IsExhausted(err error) bool {
	return errors.Is(err, arena.ErrExhausted)
}
