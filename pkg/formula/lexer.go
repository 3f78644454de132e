package formula

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenLetter
	tokenNumber
	tokenOperator
	tokenCommand
	tokenLBrace
	tokenRBrace
	tokenCaret
	tokenUnderscore
)

type token struct {
	typ  tokenType
	text string // letter, digits, operator text, or command name without backslash
	pos  int
}

const operatorChars = "+-*/=<>,()[]|!':;."

type lexer struct {
	input string
	pos   int
}

func newLexer(src string) *lexer {
	return &lexer{input: src}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.input) {
		return token{typ: tokenEOF, pos: start}, nil
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	switch {
	case r == '{':
		l.pos++
		return token{typ: tokenLBrace, text: "{", pos: start}, nil
	case r == '}':
		l.pos++
		return token{typ: tokenRBrace, text: "}", pos: start}, nil
	case r == '^':
		l.pos++
		return token{typ: tokenCaret, text: "^", pos: start}, nil
	case r == '_':
		l.pos++
		return token{typ: tokenUnderscore, text: "_", pos: start}, nil
	case r == '\\':
		return l.readCommand()
	case r >= '0' && r <= '9':
		return l.readNumber(), nil
	case unicode.IsLetter(r):
		l.pos += size
		return token{typ: tokenLetter, text: string(r), pos: start}, nil
	case strings.ContainsRune(operatorChars, r):
		l.pos += size
		return token{typ: tokenOperator, text: string(r), pos: start}, nil
	}
	return token{}, &ParseError{Offset: start, Msg: "unexpected character " + quoteRune(r)}
}

func (l *lexer) readCommand() (token, error) {
	start := l.pos
	l.pos++ // backslash
	if l.pos >= len(l.input) {
		return token{}, &ParseError{Offset: start, Msg: "trailing backslash"}
	}
	nameStart := l.pos
	for l.pos < len(l.input) && isASCIILetter(l.input[l.pos]) {
		l.pos++
	}
	if l.pos == nameStart {
		// Control symbol such as \{ or \,
		_, size := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += size
	}
	return token{typ: tokenCommand, text: l.input[nameStart:l.pos], pos: start}, nil
}

// readNumber reads digits with at most one decimal point that is followed
// by a digit.
func (l *lexer) readNumber() token {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	return token{typ: tokenNumber, text: l.input[start:l.pos], pos: start}
}

// readRaw reads a brace-delimited argument verbatim, as used by color and
// weight arguments.
func (l *lexer) readRaw() (string, int, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.input) || l.input[l.pos] != '{' {
		return "", start, &ParseError{Offset: start, Msg: "expected {"}
	}
	depth := 0
	for i := l.pos; i < len(l.input); i++ {
		switch l.input[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				l.pos = i + 1
				return strings.TrimSpace(l.input[start+1 : i]), start, nil
			}
		}
	}
	return "", start, &ParseError{Offset: start, Msg: "missing }"}
}

func isASCIILetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool       { return c >= '0' && c <= '9' }

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
