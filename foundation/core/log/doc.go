// Package log provides structured logging for KeplerKV.
//
// Package: log
// Title: KeplerKV Structured Logging
// Description: Leveled, structured logging with persistent context fields,
//              text/JSON/console/logfmt output and an audit level used to
//              trace executed store commands. Log output goes to stderr by
//              default so it never mixes with query results on stdout.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-02
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation
// - 2026-10-16 v0.2.0: Session context and command audit trail
//
// Usage:
//
//	import kvlog "github.com/msto63/keplerkv/foundation/core/log"
//
//	logger := kvlog.New().
//		WithLevel(kvlog.LevelDebug).
//		WithField("component", "kql-parser")
//
//	logger.Debug("statement parsed", kvlog.Fields{"command": "SET", "args": 2})
//	logger.Audit("command executed", kvlog.Fields{"command": "DELETE"})
package log
