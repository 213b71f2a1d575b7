// File: token.go
// Title: KQL Tokens
// Description: Token kinds produced by the lexer and their positions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-04
//
// Change History:
// - 2026-10-04 v0.1.0: Initial token set

package parser

import (
	"fmt"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenCommand    TokenType = iota // \SET
	TokenIdentifier                  // _foo
	TokenNumber                      // 42, -1.5
	TokenString                      // 'abc', "abc"
	TokenListStart                   // [
	TokenListEnd                     // ]
	TokenDelimiter                   // ,
	TokenEnd                         // ;
	TokenUnknown                     // anything the lexer could not classify
	TokenOption                      // -y, --replace
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenCommand:
		return "COMMAND"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenListStart:
		return "LIST_START"
	case TokenListEnd:
		return "LIST_END"
	case TokenDelimiter:
		return "DELIMITER"
	case TokenEnd:
		return "END"
	case TokenUnknown:
		return "UNKNOWN"
	case TokenOption:
		return "OPTION"
	default:
		return "INVALID"
	}
}

// Token represents a lexical token with position information
type Token struct {
	Type     TokenType // Token type
	Value    string    // Token text; strings keep their quotes
	Position int       // Byte position in input
	Line     int       // Line number (1-based)
	Column   int       // Column number (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}

// endToken is appended after the last scanned token
func endToken(pos, line, column int) Token {
	return Token{Type: TokenEnd, Value: ";", Position: pos, Line: line, Column: column}
}
