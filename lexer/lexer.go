// Package lexer turns source text into the token stream the parser
// consumes. It sits outside the core contract (spec.md treats the lexer
// as an external collaborator) but a concrete scanner is needed to drive
// the parser and evaluator end to end.
package lexer

import (
	"unicode/utf8"

	"github.com/midbel/monkey/token"
)

type cursor struct {
	char   rune
	curr   int
	next   int
	line   int
	column int
}

// Lexer scans a byte slice into a token.Token stream, one token per call
// to Next.
type Lexer struct {
	input []byte
	cursor
}

func New(input string) *Lexer {
	l := &Lexer{
		input: []byte(input),
	}
	l.cursor.line = 1
	l.read()
	return l
}

// Next returns the next token in the stream. Callers should stop once a
// token.EOF is returned.
func (l *Lexer) Next() token.Token {
	l.skipBlank()

	line, column := l.cursor.line, l.cursor.column
	tok := func(kind token.Kind, literal string) token.Token {
		return token.Token{Kind: kind, Literal: literal, Line: line, Column: column}
	}

	if l.done() {
		return tok(token.EOF, "")
	}

	switch {
	case isLetter(l.char):
		literal := l.readWhile(isAlnum)
		return tok(token.LookupIdentifier(literal), literal)
	case isDigit(l.char):
		return tok(token.Int, l.readWhile(isDigit))
	case l.char == '"':
		return tok(token.String, l.readString())
	default:
		return l.readPunct(line, column)
	}
}

func (l *Lexer) readPunct(line, column int) token.Token {
	tok := func(kind token.Kind, literal string) token.Token {
		return token.Token{Kind: kind, Literal: literal, Line: line, Column: column}
	}

	ch := l.char
	switch ch {
	case '=':
		if l.peek() == '=' {
			l.read()
			l.read()
			return tok(token.Equal, "==")
		}
		l.read()
		return tok(token.Assign, "=")
	case '!':
		if l.peek() == '=' {
			l.read()
			l.read()
			return tok(token.NotEqual, "!=")
		}
		l.read()
		return tok(token.Bang, "!")
	case '+':
		l.read()
		return tok(token.Plus, "+")
	case '-':
		l.read()
		return tok(token.Minus, "-")
	case '*':
		l.read()
		return tok(token.Asterisk, "*")
	case '/':
		l.read()
		return tok(token.Slash, "/")
	case '<':
		l.read()
		return tok(token.LessThan, "<")
	case '>':
		l.read()
		return tok(token.GreaterThan, ">")
	case ',':
		l.read()
		return tok(token.Comma, ",")
	case ';':
		l.read()
		return tok(token.Semicolon, ";")
	case '(':
		l.read()
		return tok(token.LeftParen, "(")
	case ')':
		l.read()
		return tok(token.RightParen, ")")
	case '{':
		l.read()
		return tok(token.LeftBrace, "{")
	case '}':
		l.read()
		return tok(token.RightBrace, "}")
	case '[':
		l.read()
		return tok(token.LeftBracket, "[")
	case ']':
		l.read()
		return tok(token.RightBracket, "]")
	default:
		l.read()
		return tok(token.Illegal, string(ch))
	}
}

func (l *Lexer) readWhile(accept func(rune) bool) string {
	start := l.cursor.curr
	for !l.done() && accept(l.char) {
		l.read()
	}
	return string(l.input[start:l.cursor.curr])
}

func (l *Lexer) readString() string {
	l.read() // opening quote
	start := l.cursor.curr
	for !l.done() && l.char != '"' {
		l.read()
	}
	literal := string(l.input[start:l.cursor.curr])
	l.read() // closing quote, or EOF if unterminated
	return literal
}

func (l *Lexer) skipBlank() {
	for !l.done() && isBlank(l.char) {
		l.read()
	}
}

func (l *Lexer) done() bool {
	return l.char == utf8.RuneError
}

func (l *Lexer) read() {
	if l.cursor.next >= len(l.input) {
		l.char = utf8.RuneError
		l.cursor.curr = l.cursor.next
		return
	}
	r, size := utf8.DecodeRune(l.input[l.cursor.next:])
	if r == '\n' {
		l.cursor.line++
		l.cursor.column = 0
	} else {
		l.cursor.column++
	}
	l.char, l.cursor.curr, l.cursor.next = r, l.cursor.next, l.cursor.next+size
}

func (l *Lexer) peek() rune {
	if l.cursor.next >= len(l.input) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRune(l.input[l.cursor.next:])
	return r
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlnum(r rune) bool {
	return isLetter(r) || isDigit(r)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
