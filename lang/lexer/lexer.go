// Package lexer turns source text into the sentinel-bounded token stream the
// parser consumes.
package lexer

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

// Tokenize lexes the whole input. Invalid input shows up as SubtypeError
// tokens in the stream rather than as an error return; see Stream.Err.
func Tokenize(input []byte, file string) *Stream {
	l := NewLexer(input, file)
	var tokens []Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return NewStream(file, tokens...)
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipBlank() {
	for l.pos < len(l.input) {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekN(1) == '/':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// NextToken returns the next token, or false once the input is exhausted.
func (l *Lexer) NextToken() (Token, bool) {
	l.skipBlank()
	if l.pos >= len(l.input) {
		return Token{}, false
	}

	start := l.Position()
	ch := l.peek()

	switch {
	case isLetter(ch):
		for isLetter(l.peek()) || isDigit(l.peek()) {
			l.advance()
		}
		return l.token(SubtypeIdentifier, start), true
	case isDigit(ch):
		for isDigit(l.peek()) {
			l.advance()
		}
		return l.token(SubtypeLiteralNumber, start), true
	case ch == '\'':
		return l.scanQuoted('\'', SubtypeLiteralCharacter, start), true
	case ch == '"':
		return l.scanQuoted('"', SubtypeLiteralString, start), true
	}

	if ch == '?' || ch == '~' {
		l.advance()
		if l.peek() == '!' {
			l.advance()
			if ch == '?' {
				return l.token(SubtypeQuestionExclamation, start), true
			}
			return l.token(SubtypeTildeExclamation, start), true
		}
		if ch == '?' {
			return l.token(SubtypeQuestionMark, start), true
		}
		return l.token(SubtypeTilde, start), true
	}

	l.advance()
	if subtype, ok := punctuation[ch]; ok {
		return l.token(subtype, start), true
	}
	return l.token(SubtypeError, start), true
}

var punctuation = map[byte]Subtype{
	'#': SubtypeHash,
	'@': SubtypeAt,
	'!': SubtypeExclamationMark,
	'.': SubtypePeriod,
	';': SubtypeSemicolon,
	':': SubtypeColon,
	'$': SubtypeDollar,
	'=': SubtypeEqual,
	'&': SubtypeAmpersand,
	'-': SubtypeMinus,
	'+': SubtypePlus,
	'|': SubtypePipe,
	'*': SubtypeAsterisk,
	'/': SubtypeSlash,
	'[': SubtypeLeftBracket,
	']': SubtypeRightBracket,
	'(': SubtypeLeftParenthesis,
	')': SubtypeRightParenthesis,
}

// scanQuoted reads a quoted literal. An unterminated literal, or an empty or
// multi-byte character literal, becomes an error token.
func (l *Lexer) scanQuoted(quote byte, subtype Subtype, start Position) Token {
	l.advance()
	n := 0
	for {
		ch := l.peek()
		if l.pos >= len(l.input) || ch == '\n' {
			return l.token(SubtypeError, start)
		}
		if ch == quote {
			l.advance()
			break
		}
		if ch == '\\' {
			l.advance()
			if l.pos >= len(l.input) {
				return l.token(SubtypeError, start)
			}
		}
		l.advance()
		n++
	}
	if quote == '\'' && n != 1 {
		return l.token(SubtypeError, start)
	}
	return l.token(subtype, start)
}

func (l *Lexer) token(subtype Subtype, start Position) Token {
	return Token{
		Subtype: subtype,
		Literal: string(l.input[start.Offset:l.pos]),
		Span:    Span{Start: start, End: l.Position()},
	}
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
