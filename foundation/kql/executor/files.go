// File: files.go
// Title: Save File Names
// Description: Maps the optional SAVE/LOAD argument to a file path.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-06
// Modified: 2026-10-06
//
// Change History:
// - 2026-10-06 v0.1.0: Initial implementation

package executor

import (
	"path/filepath"
	"strings"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	"github.com/msto63/keplerkv/foundation/kql/ast"
	"github.com/msto63/keplerkv/foundation/kql/store"
)

// savePath returns the file SAVE or LOAD works on. An identifier argument
// is used verbatim, a string without its quotes. The .kep extension is
// added when missing and relative names are placed under DataDir.
func (e *Executor) savePath(cmd *ast.Command) (string, error) {
	name := e.options.DefaultSaveFile
	if cmd.NumArgs() > 0 {
		arg := cmd.Args[0]
		if arg.Kind != ast.KindIdentifier && arg.Kind != ast.KindString {
			return "", errInvalidFilename(arg.Literal())
		}
		name = arg.Str
	}
	if err := validSaveName(name); err != nil {
		return "", err
	}

	if !strings.HasSuffix(name, store.FileExtension) {
		name += store.FileExtension
	}
	if !filepath.IsAbs(name) && e.options.DataDir != "" {
		name = filepath.Join(e.options.DataDir, name)
	}
	return name, nil
}

func validSaveName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.HasSuffix(trimmed, "/") || strings.ContainsRune(name, 0) {
		return errInvalidFilename(name)
	}
	return nil
}

func errInvalidFilename(name string) *kverror.Error {
	return kverror.New("invalid filename, must be valid string or identifier").
		WithCode(kverror.CodeInvalidFilename).
		WithDetail("filename", name)
}
