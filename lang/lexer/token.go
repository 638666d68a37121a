package lexer

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// Subtype tags a token. The literal subtypes are shared with the parser's
// literal node subtypes and must keep their values.
type Subtype uint64

const (
	SubtypeNo Subtype = iota

	// Sentinels bounding every stream
	SubtypeStart
	SubtypeEnd

	SubtypeError
	SubtypeIdentifier

	// Literals
	SubtypeLiteralNumber
	SubtypeLiteralCharacter
	SubtypeLiteralString

	// Commands
	SubtypeHash
	SubtypeAt
	SubtypeExclamationMark

	// Terminators
	SubtypePeriod
	SubtypeSemicolon

	// Scope openers
	SubtypeColon
	SubtypeQuestionMark
	SubtypeQuestionExclamation
	SubtypeTilde
	SubtypeTildeExclamation
	SubtypeDollar

	// Operators and punctuation
	SubtypeEqual
	SubtypeAmpersand
	SubtypeMinus
	SubtypePlus
	SubtypePipe
	SubtypeAsterisk
	SubtypeSlash
	SubtypeLeftBracket
	SubtypeRightBracket
	SubtypeLeftParenthesis
	SubtypeRightParenthesis
)

var subtypeNames = map[Subtype]string{
	SubtypeNo:                  "No",
	SubtypeStart:               "Start",
	SubtypeEnd:                 "End",
	SubtypeError:               "Error",
	SubtypeIdentifier:          "Identifier",
	SubtypeLiteralNumber:       "Number",
	SubtypeLiteralCharacter:    "Character",
	SubtypeLiteralString:       "String",
	SubtypeHash:                "#",
	SubtypeAt:                  "@",
	SubtypeExclamationMark:     "!",
	SubtypePeriod:              ".",
	SubtypeSemicolon:           ";",
	SubtypeColon:               ":",
	SubtypeQuestionMark:        "?",
	SubtypeQuestionExclamation: "?!",
	SubtypeTilde:               "~",
	SubtypeTildeExclamation:    "~!",
	SubtypeDollar:              "$",
	SubtypeEqual:               "=",
	SubtypeAmpersand:           "&",
	SubtypeMinus:               "-",
	SubtypePlus:                "+",
	SubtypePipe:                "|",
	SubtypeAsterisk:            "*",
	SubtypeSlash:               "/",
	SubtypeLeftBracket:         "[",
	SubtypeRightBracket:        "]",
	SubtypeLeftParenthesis:     "(",
	SubtypeRightParenthesis:    ")",
}

func (s Subtype) String() string {
	if name, ok := subtypeNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s Subtype) IsLiteral() bool {
	return s == SubtypeLiteralNumber || s == SubtypeLiteralCharacter || s == SubtypeLiteralString
}

func (s Subtype) IsSentinel() bool {
	return s == SubtypeStart || s == SubtypeEnd
}

type Token struct {
	Subtype Subtype
	Literal string
	Span    Span
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Subtype.String()
	}
	return fmt.Sprintf("%s %q", t.Subtype, t.Literal)
}
