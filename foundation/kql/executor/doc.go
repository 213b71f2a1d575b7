// Package executor runs parsed commands against a store on behalf of one
// session.
//
// Package: executor
// Title: KeplerKV Command Executor
// Description: Validates each command, runs system commands immediately and
//              store commands either immediately or through the session's
//              write-ahead queue while a transaction is open. Results are
//              reported as typed messages on an Output; rename overwrites
//              are confirmed through a Confirmer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-06
// Modified: 2026-10-06
//
// Change History:
// - 2026-10-06 v0.1.0: Initial implementation
//
// Per-argument outcomes such as a missing key, a non-numeric INCR target or
// an APPEND to a non-list are soft: they are emitted as messages and the
// remaining arguments still run. Everything else is returned as an error
// and ends the command.
package executor
