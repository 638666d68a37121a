package parser

import (
	"github.com/dhamidi/scopec/arena"
	"github.com/dhamidi/scopec/lang/lexer"
)

type Type uint64

const (
	TypeNone Type = iota
	TypeModule
	TypeScopeStart // Child1 holds the matching TypeScopeEnd node
	TypeScopeEnd   // Child1 holds the matching TypeScopeStart node
	TypeQualifier
	TypeIdentification // Subtype holds the encoded Identification
	TypeLiteral
	TypeAffectation
	TypeExpression
)

var typeNames = map[Type]string{
	TypeNone:           "None",
	TypeModule:         "Module",
	TypeScopeStart:     "ScopeStart",
	TypeScopeEnd:       "ScopeEnd",
	TypeQualifier:      "Qualifier",
	TypeIdentification: "Identification",
	TypeLiteral:        "Literal",
	TypeAffectation:    "Affectation",
	TypeExpression:     "Expression",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ChildType replaces Type on nodes allocated as part of a modifier or lock
// chain (Node.IsChild).
type ChildType uint64

const (
	ChildNo ChildType = iota
	ChildModifier
	ChildLock
)

var childTypeNames = map[ChildType]string{
	ChildNo:       "No",
	ChildModifier: "Modifier",
	ChildLock:     "Lock",
}

func (t ChildType) String() string {
	if name, ok := childTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Subtype is the raw subtype field. Its meaning depends on the node type.
type Subtype uint64

type ModuleKind uint64

const (
	ModuleNo ModuleKind = iota
	ModuleInput
	ModuleOutput
)

var moduleKindNames = map[ModuleKind]string{
	ModuleNo:     "No",
	ModuleInput:  "Input",
	ModuleOutput: "Output",
}

func (k ModuleKind) String() string {
	if name, ok := moduleKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type ScopeKind uint64

const (
	ScopeNo ScopeKind = iota
	ScopeFileStart
	ScopeFileEnd
	ScopeThen
	ScopeThenNot
	ScopeThrough
	ScopeThroughNot
	ScopeTest
)

var scopeKindNames = map[ScopeKind]string{
	ScopeNo:         "No",
	ScopeFileStart:  "FileStart",
	ScopeFileEnd:    "FileEnd",
	ScopeThen:       "Then",
	ScopeThenNot:    "ThenNot",
	ScopeThrough:    "Through",
	ScopeThroughNot: "ThroughNot",
	ScopeTest:       "Test",
}

func (k ScopeKind) String() string {
	if name, ok := scopeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// LiteralKind values are the lexer's literal token subtypes, so a literal
// node's subtype can be copied straight from its token.
type LiteralKind uint64

const (
	LiteralNo        LiteralKind = 0
	LiteralNumber    LiteralKind = LiteralKind(lexer.SubtypeLiteralNumber)
	LiteralCharacter LiteralKind = LiteralKind(lexer.SubtypeLiteralCharacter)
	LiteralString    LiteralKind = LiteralKind(lexer.SubtypeLiteralString)
)

var literalKindNames = map[LiteralKind]string{
	LiteralNo:        "No",
	LiteralNumber:    "Number",
	LiteralCharacter: "Character",
	LiteralString:    "String",
}

func (k LiteralKind) String() string {
	if name, ok := literalKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type ExpressionKind uint64

const (
	ExpressionNo ExpressionKind = iota
	ExpressionReference
	ExpressionAdd
	ExpressionSubtract
	ExpressionMultiply
	ExpressionDivide
)

var expressionKindNames = map[ExpressionKind]string{
	ExpressionNo:        "No",
	ExpressionReference: "Reference",
	ExpressionAdd:       "Add",
	ExpressionSubtract:  "Subtract",
	ExpressionMultiply:  "Multiply",
	ExpressionDivide:    "Divide",
}

func (k ExpressionKind) String() string {
	if name, ok := expressionKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type ModifierKind uint64

const (
	ModifierNo ModifierKind = iota
	ModifierAmpersandLeft
	ModifierAmpersandRight
	ModifierArray // brackets always come before the lock
	ModifierArrayBound
	ModifierMinusLeft
	ModifierMinusRight
	ModifierPipeLeft
	ModifierPipeRight
	ModifierPlusLeft
	ModifierPlusRight
)

var modifierKindNames = map[ModifierKind]string{
	ModifierNo:             "No",
	ModifierAmpersandLeft:  "AmpersandLeft",
	ModifierAmpersandRight: "AmpersandRight",
	ModifierArray:          "Array",
	ModifierArrayBound:     "ArrayBound",
	ModifierMinusLeft:      "MinusLeft",
	ModifierMinusRight:     "MinusRight",
	ModifierPipeLeft:       "PipeLeft",
	ModifierPipeRight:      "PipeRight",
	ModifierPlusLeft:       "PlusLeft",
	ModifierPlusRight:      "PlusRight",
}

func (k ModifierKind) String() string {
	if name, ok := modifierKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type LockKind uint64

const (
	LockReturnNone LockKind = iota + 1
	LockReturnLock
	LockReturnScopeStart
	LockReturnScopeEnd
	LockParameterNone
	LockParameter
	LockParameterLock
)

var lockKindNames = map[LockKind]string{
	LockReturnNone:       "ReturnNone",
	LockReturnLock:       "ReturnLock",
	LockReturnScopeStart: "ReturnScopeStart",
	LockReturnScopeEnd:   "ReturnScopeEnd",
	LockParameterNone:    "ParameterNone",
	LockParameter:        "Parameter",
	LockParameterLock:    "ParameterLock",
}

func (k LockKind) String() string {
	if name, ok := lockKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Payload is the node's single meaningful value. The variants are closed:
// Value, Data, Func and TokenRef.
type Payload interface {
	payload()
}

// Value is a scalar payload, such as an array bound.
type Value uint64

// Data is an opaque pointer payload.
type Data struct {
	Pointer any
}

// Func is a function reference payload.
type Func func()

// TokenRef is the stream index of the token a node originates from.
type TokenRef int

func (Value) payload()    {}
func (Data) payload()     {}
func (Func) payload()     {}
func (TokenRef) payload() {}

type Node struct {
	IsChild bool
	Type    Type
	Subtype Subtype
	Payload Payload
	Child1  arena.Ref
	Child2  arena.Ref
}

// Child is the single-child view of Child1.
func (n *Node) Child() arena.Ref {
	return n.Child1
}

func (n *Node) ChildType() ChildType {
	if !n.IsChild {
		return ChildNo
	}
	return ChildType(n.Type)
}

func (n *Node) ScopeKind() ScopeKind {
	return ScopeKind(n.Subtype)
}

func (n *Node) ModuleKind() ModuleKind {
	return ModuleKind(n.Subtype)
}

func (n *Node) LiteralKind() LiteralKind {
	return LiteralKind(n.Subtype)
}

func (n *Node) ExpressionKind() ExpressionKind {
	return ExpressionKind(n.Subtype)
}

func (n *Node) ModifierKind() ModifierKind {
	return ModifierKind(n.Subtype)
}

func (n *Node) LockKind() LockKind {
	return LockKind(n.Subtype)
}

// Identification decodes the subtype of a TypeIdentification node.
func (n *Node) Identification() (Identification, error) {
	return DecodeIdentification(n.Subtype)
}

// TokenIndex returns the originating token index when the payload is a
// TokenRef.
func (n *Node) TokenIndex() (int, bool) {
	ref, ok := n.Payload.(TokenRef)
	return int(ref), ok
}

// TypeName names the node's type, taking child nodes into account.
func (n *Node) TypeName() string {
	if n.IsChild {
		return n.ChildType().String()
	}
	return n.Type.String()
}

// SubtypeName names the subtype in the vocabulary of the node's type.
func (n *Node) SubtypeName() string {
	if n.IsChild {
		switch n.ChildType() {
		case ChildModifier:
			return n.ModifierKind().String()
		case ChildLock:
			return n.LockKind().String()
		}
		return "Unknown"
	}
	switch n.Type {
	case TypeModule:
		return n.ModuleKind().String()
	case TypeScopeStart, TypeScopeEnd:
		return n.ScopeKind().String()
	case TypeLiteral:
		return n.LiteralKind().String()
	case TypeExpression:
		return n.ExpressionKind().String()
	case TypeIdentification:
		id, err := n.Identification()
		if err != nil {
			return "Invalid"
		}
		return id.String()
	}
	return ""
}
