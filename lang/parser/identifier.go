package parser

import (
	"strconv"

	"github.com/dhamidi/scopec/arena"
	"github.com/dhamidi/scopec/lang/lexer"
)

// Match is what an IdentifierParser reports back to the driver. Len is the
// number of tokens consumed and is only meaningful for Matched.
type Match struct {
	Outcome Outcome
	Len     int
}

// IdentifierParser consumes one identification construct starting at token i.
// On NoMatch it must not commit any node. A non-nil error is always fatal.
type IdentifierParser interface {
	ParseIdentifier(b *Builder, i int) (Match, error)
}

// Identifications is the default IdentifierParser. It accepts affectations
// ("x = 1") and identifications ("pub #x[4] = y + 1", "@loop(a b)").
type Identifications struct{}

var commands = map[lexer.Subtype]Command{
	lexer.SubtypeHash:            CommandHash,
	lexer.SubtypeAt:              CommandAt,
	lexer.SubtypeExclamationMark: CommandExclamationMark,
}

var prefixModifiers = map[lexer.Subtype]ModifierKind{
	lexer.SubtypeAmpersand: ModifierAmpersandLeft,
	lexer.SubtypeMinus:     ModifierMinusLeft,
	lexer.SubtypePipe:      ModifierPipeLeft,
	lexer.SubtypePlus:      ModifierPlusLeft,
}

var suffixModifiers = map[lexer.Subtype]ModifierKind{
	lexer.SubtypeAmpersand: ModifierAmpersandRight,
	lexer.SubtypeMinus:     ModifierMinusRight,
	lexer.SubtypePipe:      ModifierPipeRight,
	lexer.SubtypePlus:      ModifierPlusRight,
}

var operators = map[lexer.Subtype]struct {
	kind       ExpressionKind
	precedence int
}{
	lexer.SubtypePlus:     {ExpressionAdd, 1},
	lexer.SubtypeMinus:    {ExpressionSubtract, 1},
	lexer.SubtypeAsterisk: {ExpressionMultiply, 2},
	lexer.SubtypeSlash:    {ExpressionDivide, 2},
}

func (Identifications) ParseIdentifier(b *Builder, i int) (Match, error) {
	s := b.Stream()
	j := i
	for s.Subtype(j) == lexer.SubtypeIdentifier {
		j++
	}
	qualifiers := j - i

	c := &construct{b: b, s: s, pos: i}
	var err error
	switch _, isCommand := commands[s.Subtype(j)]; {
	case isCommand:
		err = c.identification(qualifiers)
	case qualifiers == 1 && s.Subtype(j) == lexer.SubtypeEqual:
		err = c.affectation()
	default:
		return Match{Outcome: NoMatch}, nil
	}
	if err != nil {
		return Match{Outcome: Fatal}, err
	}
	return Match{Outcome: Matched, Len: c.pos - i}, nil
}

// construct tracks one identification construct being committed.
type construct struct {
	b    *Builder
	s    *lexer.Stream
	pos  int
	tail arena.Ref
}

func (c *construct) peek() lexer.Subtype {
	return c.s.Subtype(c.pos)
}

func (c *construct) expect(subtype lexer.Subtype) (int, error) {
	if c.peek() != subtype {
		return 0, syntaxError(c.s, c.pos, ErrUnexpectedToken, subtype)
	}
	c.pos++
	return c.pos - 1, nil
}

// appendChild commits an is_child node and links it at the end of owner's
// child chain.
func (c *construct) appendChild(owner arena.Ref, n Node) (arena.Ref, error) {
	n.IsChild = true
	ref, err := c.b.Commit(n)
	if err != nil {
		return arena.Nil, err
	}
	if c.tail.IsNil() {
		c.b.Node(owner).Child1 = ref
	} else {
		c.b.Node(c.tail).Child1 = ref
	}
	c.tail = ref
	return ref, nil
}

func (c *construct) identification(qualifiers int) error {
	prev := arena.Nil
	for k := 0; k < qualifiers; k++ {
		ref, err := c.b.Commit(Node{Type: TypeQualifier, Payload: TokenRef(c.pos)})
		if err != nil {
			return err
		}
		if !prev.IsNil() {
			c.b.Node(prev).Child1 = ref
		}
		prev = ref
		c.pos++
	}

	id := Identification{
		Command:     commands[c.peek()],
		Declaration: Declaration,
		Scoped:      ScopedNo,
	}
	provisional, err := id.Encode()
	if err != nil {
		return err
	}
	owner, err := c.b.Commit(Node{Type: TypeIdentification, Subtype: provisional})
	if err != nil {
		return err
	}
	if !prev.IsNil() {
		c.b.Node(prev).Child1 = owner
	}
	c.pos++

	for {
		kind, ok := prefixModifiers[c.peek()]
		if !ok {
			break
		}
		if _, err := c.appendChild(owner, Node{Type: Type(ChildModifier), Subtype: Subtype(kind), Payload: TokenRef(c.pos)}); err != nil {
			return err
		}
		c.pos++
	}

	name, err := c.expect(lexer.SubtypeIdentifier)
	if err != nil {
		return err
	}
	c.b.Node(owner).Payload = TokenRef(name)
	if err := c.b.AddIdentifier(Identifier{Node: owner, Token: name}); err != nil {
		return err
	}

	if err := c.suffixes(owner); err != nil {
		return err
	}

	if c.peek() == lexer.SubtypeLeftParenthesis {
		if id.Scoped, err = c.label(owner); err != nil {
			return err
		}
	}

	if c.peek() == lexer.SubtypeEqual {
		c.pos++
		value, err := c.expression()
		if err != nil {
			return err
		}
		id.Declaration = Initialization
		c.b.Node(owner).Child2 = value
	}

	subtype, err := id.Encode()
	if err != nil {
		return err
	}
	c.b.Node(owner).Subtype = subtype
	return nil
}

func (c *construct) suffixes(owner arena.Ref) error {
	for {
		start := c.pos
		if kind, ok := suffixModifiers[c.peek()]; ok {
			if _, err := c.appendChild(owner, Node{Type: Type(ChildModifier), Subtype: Subtype(kind), Payload: TokenRef(start)}); err != nil {
				return err
			}
			c.pos++
			continue
		}
		if c.peek() != lexer.SubtypeLeftBracket {
			return nil
		}
		c.pos++

		n := Node{Type: Type(ChildModifier), Subtype: Subtype(ModifierArray), Payload: TokenRef(start)}
		if c.peek() == lexer.SubtypeLiteralNumber {
			bound, err := strconv.ParseUint(c.s.At(c.pos).Literal, 10, 64)
			if err != nil {
				return syntaxError(c.s, c.pos, err)
			}
			n.Subtype = Subtype(ModifierArrayBound)
			n.Payload = Value(bound)
			c.pos++
		}
		if _, err := c.expect(lexer.SubtypeRightBracket); err != nil {
			return err
		}
		if _, err := c.appendChild(owner, n); err != nil {
			return err
		}
	}
}

// label parses "(" { identifier } ")" into lock children and reports whether
// the label is parameterized.
func (c *construct) label(owner arena.Ref) (ScopedKind, error) {
	open := c.pos
	c.pos++
	if c.peek() == lexer.SubtypeRightParenthesis {
		if _, err := c.appendChild(owner, Node{Type: Type(ChildLock), Subtype: Subtype(LockParameterNone), Payload: TokenRef(open)}); err != nil {
			return ScopedInvalid, err
		}
		c.pos++
		return ScopedLabel, nil
	}

	for c.peek() == lexer.SubtypeIdentifier {
		if _, err := c.appendChild(owner, Node{Type: Type(ChildLock), Subtype: Subtype(LockParameter), Payload: TokenRef(c.pos)}); err != nil {
			return ScopedInvalid, err
		}
		if err := c.b.AddParameter(Parameter{Label: owner, Token: c.pos}); err != nil {
			return ScopedInvalid, err
		}
		c.pos++
	}
	if c.peek() != lexer.SubtypeRightParenthesis {
		return ScopedInvalid, syntaxError(c.s, c.pos, ErrUnexpectedToken, lexer.SubtypeIdentifier, lexer.SubtypeRightParenthesis)
	}
	c.pos++
	return ScopedLabelParameterized, nil
}

func (c *construct) affectation() error {
	owner, err := c.b.Commit(Node{Type: TypeAffectation, Payload: TokenRef(c.pos)})
	if err != nil {
		return err
	}
	c.pos += 2
	value, err := c.expression()
	if err != nil {
		return err
	}
	c.b.Node(owner).Child1 = value
	return nil
}

// expression parses operands separated by binary operators using the
// scratch stacks. Operator nodes are committed when reduced, after their
// right operand.
func (c *construct) expression() (arena.Ref, error) {
	sc := c.b.Scratch()
	operandBase, operatorBase := len(sc.operands), len(sc.operators)
	defer func() {
		sc.operands = sc.operands[:operandBase]
		sc.operators = sc.operators[:operatorBase]
	}()

	reduce := func() error {
		top := len(sc.operands)
		left, right := sc.operands[top-2], sc.operands[top-1]
		at := sc.operators[len(sc.operators)-1]
		sc.operators = sc.operators[:len(sc.operators)-1]
		ref, err := c.b.Commit(Node{
			Type:    TypeExpression,
			Subtype: Subtype(operators[c.s.Subtype(at)].kind),
			Payload: TokenRef(at),
			Child1:  left,
			Child2:  right,
		})
		if err != nil {
			return err
		}
		sc.operands = append(sc.operands[:top-2], ref)
		return nil
	}

	operand, err := c.operand()
	if err != nil {
		return arena.Nil, err
	}
	sc.operands = append(sc.operands, operand)

	for {
		op, ok := operators[c.peek()]
		if !ok {
			break
		}
		for len(sc.operators) > operatorBase && operators[c.s.Subtype(sc.operators[len(sc.operators)-1])].precedence >= op.precedence {
			if err := reduce(); err != nil {
				return arena.Nil, err
			}
		}
		sc.operators = append(sc.operators, c.pos)
		c.pos++

		operand, err := c.operand()
		if err != nil {
			return arena.Nil, err
		}
		sc.operands = append(sc.operands, operand)
	}
	for len(sc.operators) > operatorBase {
		if err := reduce(); err != nil {
			return arena.Nil, err
		}
	}
	return sc.operands[len(sc.operands)-1], nil
}

func (c *construct) operand() (arena.Ref, error) {
	at := c.pos
	switch subtype := c.peek(); {
	case subtype.IsLiteral():
		c.pos++
		return c.b.Commit(Node{Type: TypeLiteral, Subtype: Subtype(subtype), Payload: TokenRef(at)})
	case subtype == lexer.SubtypeIdentifier:
		c.pos++
		return c.b.Commit(Node{Type: TypeExpression, Subtype: Subtype(ExpressionReference), Payload: TokenRef(at)})
	case subtype == lexer.SubtypeLeftParenthesis:
		c.pos++
		ref, err := c.expression()
		if err != nil {
			return arena.Nil, err
		}
		if _, err := c.expect(lexer.SubtypeRightParenthesis); err != nil {
			return arena.Nil, err
		}
		return ref, nil
	}
	return arena.Nil, syntaxError(c.s, at, ErrUnexpectedToken,
		lexer.SubtypeLiteralNumber, lexer.SubtypeLiteralCharacter, lexer.SubtypeLiteralString,
		lexer.SubtypeIdentifier, lexer.SubtypeLeftParenthesis)
}
