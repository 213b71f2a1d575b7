// File: errors.go
// Title: Parse Errors
// Description: Constructors for the coded errors raised while parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-04
//
// Change History:
// - 2026-10-04 v0.1.0: Initial implementation

package parser

import (
	kverror "github.com/msto63/keplerkv/foundation/core/error"
)

func parseError(code kverror.Code, message string, tok Token) *kverror.Error {
	return kverror.New(message).
		WithCode(code).
		WithOperation("parse").
		WithDetail("token", tok.Value).
		WithDetail("line", tok.Line).
		WithDetail("column", tok.Column)
}

func invalidCommand(tok Token) *kverror.Error {
	return parseError(kverror.CodeInvalidCommand,
		"invalid command '"+tok.Value+"' (did you forget a quote or slash?)", tok)
}

func unknownToken(tok Token) *kverror.Error {
	return parseError(kverror.CodeUnknownToken, "unknown token [ "+tok.Value+" ]", tok)
}
