// ============================================================================
// KeplerKV - Key-Value Store with Query Language
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2026-10-09
// License:     MIT
// ============================================================================

package version

import "github.com/msto63/keplerkv/foundation/kql/store"

// Version constants for all KeplerKV components
const (
	// Application version
	Application = "1.0.0"

	// Component versions
	Language = "1.0.0"
	Store    = "1.0.0"
	REPL     = "1.0.0"
	History  = "1.0.0"
)

// SaveFormat is the header every save file starts with
const SaveFormat = store.FileHeader

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "kql", "language":
		return Language
	case "store":
		return Store
	case "repl":
		return REPL
	case "history":
		return History
	default:
		return Application
	}
}

// Components lists the component names known to ComponentVersion
func Components() []string {
	return []string{"kql", "store", "repl", "history"}
}
