// File: errors.go
// Title: Store Errors
// Description: Coded errors raised by store operations.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-05
//
// Change History:
// - 2026-10-05 v0.1.0: Initial implementation

package store

import (
	kverror "github.com/msto63/keplerkv/foundation/core/error"
)

func errNotFound(key string) *kverror.Error {
	return kverror.New("key not found").
		WithCode(kverror.CodeNotFound).
		WithDetail("key", key)
}

func errNotNumeric(key string) *kverror.Error {
	return kverror.New("not numeric (integer or float)").
		WithCode(kverror.CodeNotNumeric).
		WithDetail("key", key)
}

func errNotAList(key string) *kverror.Error {
	return kverror.New("not a list").
		WithCode(kverror.CodeNotAList).
		WithDetail("key", key)
}

func errCircular(key string) *kverror.Error {
	return kverror.New("circular reference detected").
		WithCode(kverror.CodeCircularReference).
		WithDetail("key", key)
}

func errNotValidSave(reason string) *kverror.Error {
	return kverror.New("not a valid KEPLER-SAVE file").
		WithCode(kverror.CodeNotValidSaveFile).
		WithDetail("reason", reason)
}

func errUnknownSaveItem(tag byte) *kverror.Error {
	return kverror.New("unknown item type found in save file").
		WithCode(kverror.CodeUnknownSaveItem).
		WithDetail("tag", string(tag))
}
