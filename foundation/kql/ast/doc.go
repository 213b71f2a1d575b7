// Package ast defines the data model of the KeplerKV query language.
//
// Package: ast
// Title: KQL Values and Command Nodes
// Description: Value is a closed tagged union of the storable kinds (int,
//              float, string, identifier, list). Command is the node the
//              parser produces for one statement: a CommandKind, its
//              evaluated argument values and any option flags. Commands
//              validate their own arity and argument kinds before they are
//              executed.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-03
// Modified: 2026-10-03
//
// Change History:
// - 2026-10-03 v0.1.0: Initial value and command model
package ast
