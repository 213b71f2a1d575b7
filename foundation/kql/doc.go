// Package kql is the query engine of KeplerKV.
//
// Package: kql
// Title: KeplerKV Query Engine
// Description: Ties the lexer, parser and executor together behind one
//              HandleQuery call and optionally records every query in a
//              journal.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-07
// Modified: 2026-10-07
//
// Change History:
// - 2026-10-07 v0.1.0: Initial implementation
//
// Subpackages:
//
//	ast       values and commands
//	parser    lexer and recursive-descent parser
//	registry  command names, aliases and usage
//	store     key-value map and KEPLER-SAVE files
//	executor  command execution, sessions and transactions
package kql
