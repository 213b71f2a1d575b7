// Package error provides the structured error type used across KeplerKV.
//
// Package: error
// Title: KeplerKV Error Handling
// Description: Structured errors carrying a code, a severity and optional
//              details. Every failure raised by the query pipeline (lexer,
//              parser, validation, store, save files) is expressed as an
//              *Error so callers can branch on Code instead of matching text.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-02
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation with codes and severities
// - 2026-10-16 v0.2.0: Query language and save file codes
//
// Usage:
//
//	import kverror "github.com/msto63/keplerkv/foundation/core/error"
//
//	err := kverror.New("circular reference detected").
//		WithCode(kverror.CodeCircularReference).
//		WithDetail("key", "_a")
//
//	if kverror.HasCode(err, kverror.CodeCircularReference) {
//		// ...
//	}
package error
