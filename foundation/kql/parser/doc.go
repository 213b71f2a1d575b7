// Package parser turns KeplerKV query text into command nodes.
//
// Package: parser
// Title: KQL Lexer and Parser
// Description: The lexer is a single linear scan producing a flat token
//              sequence. It never fails: malformed numbers, unterminated
//              strings and stray characters become UNKNOWN tokens so the
//              parser can report them precisely. The parser is a
//              recursive-descent consumer of that sequence producing one
//              ast.Command per ';'-terminated statement.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-04
//
// Change History:
// - 2026-10-04 v0.1.0: Initial lexer and parser
//
// Grammar:
//
//	query     = { statement } ;
//	statement = COMMAND { argument | DELIMITER } END ;
//	argument  = value | OPTION ;
//	value     = NUMBER | IDENTIFIER | STRING | list ;
//	list      = LIST_START { value | DELIMITER } LIST_END ;
package parser
