// Package store holds the authoritative key-value map of a KeplerKV session.
//
// Package: store
// Title: KeplerKV Store
// Description: An in-memory map from key to ast.Value with reference
//              resolution, regex key search, in-place numeric and list
//              mutation, usage statistics and the KEPLER-SAVE binary file
//              format. A Store is owned by exactly one executor and is not
//              safe for concurrent use.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-05
//
// Change History:
// - 2026-10-05 v0.1.0: Initial store and save file codec
//
// KEPLER-SAVE layout (host byte order, size_t written as uint64):
//
//	"KEPLERKV-SAVE|"
//	repeated: key_size key_bytes '|' value
//	value:    'i' int32 | 'f' float32
//	          | 's' ('s'|'i') size bytes
//	          | 'l' count value...
package store
