// File: lexer.go
// Title: KQL Lexical Analyzer
// Description: Converts query text into tokens in one pass without
//              backtracking. Whitespace separates tokens and is dropped.
//              A trailing END token is always appended.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-04
//
// Change History:
// - 2026-10-04 v0.1.0: Initial lexer implementation

package parser

import (
	"strings"
	"unicode/utf8"
)

// Lexer performs lexical analysis of query input
type Lexer struct {
	input    string // Input string
	position int    // Current position in input (points to current char)
	readPos  int    // Current reading position (after current char)
	ch       byte   // Current char under examination
	line     int    // Line of the current char (1-based)
	column   int    // Column of the current char (1-based)
	done     bool   // Trailing END emitted
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The result always ends with an END
// token, so blank input yields exactly one token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token. The second result is false once the
// trailing END token has been returned.
func (l *Lexer) NextToken() (Token, bool) {
	if l.done {
		return Token{}, false
	}

	l.skipWhitespace()

	pos, line, column := l.position, l.line, l.column
	mark := func(t TokenType, value string) Token {
		return Token{Type: t, Value: value, Position: pos, Line: line, Column: column}
	}

	switch {
	case l.atEnd():
		l.done = true
		return endToken(pos, line, column), true
	case l.ch == ',':
		l.readChar()
		return mark(TokenDelimiter, ","), true
	case l.ch == ';':
		l.readChar()
		return mark(TokenEnd, ";"), true
	case l.ch == '[':
		l.readChar()
		return mark(TokenListStart, "["), true
	case l.ch == ']':
		l.readChar()
		return mark(TokenListEnd, "]"), true
	case l.ch == '\\':
		return mark(TokenCommand, l.readCommand()), true
	case l.ch == '"' || l.ch == '\'':
		value, terminated := l.readString()
		if !terminated {
			return mark(TokenUnknown, value), true
		}
		return mark(TokenString, value), true
	case isLetter(l.ch) || l.ch == '_':
		return mark(TokenIdentifier, l.readIdentifier()), true
	case l.ch == '-' && l.isOptionStart():
		return mark(TokenOption, l.readOption()), true
	case isNumberStart(l.ch, l.peekChar()):
		value, valid := l.readNumber()
		if !valid {
			return mark(TokenUnknown, value), true
		}
		return mark(TokenNumber, value), true
	default:
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		for i := 0; i < size; i++ {
			l.readChar()
		}
		return mark(TokenUnknown, string(r)), true
	}
}

// readCommand consumes a command word up to whitespace or ';'. Backslashes
// are dropped and the word is upper-cased.
func (l *Lexer) readCommand() string {
	var b strings.Builder
	for !l.atEnd() && !isWhitespace(l.ch) && l.ch != ';' {
		if l.ch != '\\' {
			b.WriteByte(l.ch)
		}
		l.readChar()
	}
	return strings.ToUpper(b.String())
}

// readString consumes a quoted string including both quotes. It reports
// false when the input ends before the matching quote.
func (l *Lexer) readString() (string, bool) {
	quote := l.ch
	start := l.position
	l.readChar()
	for !l.atEnd() && l.ch != quote {
		l.readChar()
	}
	if l.atEnd() {
		return l.input[start:], false
	}
	l.readChar()
	return l.input[start:l.position], true
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for !l.atEnd() && (isLetter(l.ch) || isDigit(l.ch) || l.ch == '_') {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readOption consumes -x or --word
func (l *Lexer) readOption() string {
	start := l.position
	for !l.atEnd() && l.ch == '-' {
		l.readChar()
	}
	for !l.atEnd() && (isLetter(l.ch) || isDigit(l.ch) || l.ch == '-' || l.ch == '_') {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber consumes a run of digits, signs and points, then checks it
// holds at most one leading sign, at most one point and at least one digit.
func (l *Lexer) readNumber() (string, bool) {
	start := l.position
	for !l.atEnd() && (isDigit(l.ch) || l.ch == '-' || l.ch == '+' || l.ch == '.') {
		l.readChar()
	}
	run := l.input[start:l.position]

	digits, points := 0, 0
	for i := 0; i < len(run); i++ {
		switch c := run[i]; {
		case c == '-' || c == '+':
			if i != 0 {
				return run, false
			}
		case c == '.':
			points++
		default:
			digits++
		}
	}
	return run, digits > 0 && points <= 1
}

func (l *Lexer) isOptionStart() bool {
	next := l.peekChar()
	if isLetter(next) {
		return true
	}
	return next == '-' && l.readPos+1 < len(l.input) && isLetter(l.input[l.readPos+1])
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.position < len(l.input) && l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.position = l.readPos
	l.readPos++
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isWhitespace(l.ch) {
		l.readChar()
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isNumberStart(ch, next byte) bool {
	return isDigit(ch) || ch == '-' || ch == '+' || (ch == '.' && isDigit(next))
}
