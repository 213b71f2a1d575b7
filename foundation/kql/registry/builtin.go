// File: builtin.go
// Title: Built-in Command Table
// Description: The fixed command set of the language with aliases and
//              usage strings.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-03
// Modified: 2026-10-03
//
// Change History:
// - 2026-10-03 v0.1.0: Initial command table

package registry

import (
	"github.com/msto63/keplerkv/foundation/kql/ast"
)

func builtinCommands() []*CommandDefinition {
	return []*CommandDefinition{
		{
			Kind:    ast.CmdSet,
			Aliases: []string{"SET", "S"},
			Usage:   `\SET _key value [_key value ...]`,
			Summary: "Create or overwrite keys",
		},
		{
			Kind:    ast.CmdGet,
			Aliases: []string{"GET", "G"},
			Usage:   `\GET _key [_key ...]`,
			Summary: "Print the stored value of keys",
		},
		{
			Kind:    ast.CmdDelete,
			Aliases: []string{"DELETE", "DEL", "D"},
			Usage:   `\DELETE _key [_key ...]`,
			Summary: "Remove keys",
		},
		{
			Kind:    ast.CmdUpdate,
			Aliases: []string{"UPDATE", "U"},
			Usage:   `\UPDATE _key value [_key value ...]`,
			Summary: "Overwrite keys that already exist",
		},
		{
			Kind:    ast.CmdResolve,
			Aliases: []string{"RESOLVE", "RES", "R"},
			Usage:   `\RESOLVE _key [_key ...]`,
			Summary: "Follow references to their final value, including inside lists",
		},
		{
			Kind:    ast.CmdList,
			Aliases: []string{"LIST", "LS", "L"},
			Usage:   `\LIST`,
			Summary: "Print every key and value",
		},
		{
			Kind:    ast.CmdSave,
			Aliases: []string{"SAVE"},
			Usage:   `\SAVE [file]`,
			Summary: "Write the store to a KEPLER-SAVE file",
		},
		{
			Kind:    ast.CmdLoad,
			Aliases: []string{"LOAD"},
			Usage:   `\LOAD [file] [--merge|--replace]`,
			Summary: "Read a KEPLER-SAVE file into the store",
			Options: []OptionDefinition{
				{Long: "merge", Description: "keep existing keys, loaded keys win on conflict"},
				{Long: "replace", Description: "clear the store before loading"},
			},
		},
		{
			Kind:    ast.CmdRename,
			Aliases: []string{"RENAME", "RN"},
			Usage:   `\RENAME _old _new [_old _new ...] [-y|-n]`,
			Summary: "Move values to new keys, asking before overwriting",
			Options: []OptionDefinition{
				{Short: "y", Long: "yes", Description: "overwrite existing keys without asking"},
				{Short: "n", Long: "no", Description: "never overwrite existing keys"},
			},
		},
		{
			Kind:    ast.CmdIncr,
			Aliases: []string{"INCR"},
			Usage:   `\INCR _key [_key ...]`,
			Summary: "Add one to numeric values",
		},
		{
			Kind:    ast.CmdDecr,
			Aliases: []string{"DECR"},
			Usage:   `\DECR _key [_key ...]`,
			Summary: "Subtract one from numeric values",
		},
		{
			Kind:    ast.CmdAppend,
			Aliases: []string{"APPEND"},
			Usage:   `\APPEND _list value [value ...]`,
			Summary: "Add values to the end of a list",
		},
		{
			Kind:    ast.CmdPrepend,
			Aliases: []string{"PREPEND"},
			Usage:   `\PREPEND _list value [value ...]`,
			Summary: "Add values to the front of a list",
		},
		{
			Kind:    ast.CmdSearch,
			Aliases: []string{"SEARCH"},
			Usage:   `\SEARCH pattern [pattern ...]`,
			Summary: "List keys fully matching regular expressions",
		},
		{
			Kind:    ast.CmdStats,
			Aliases: []string{"STATS"},
			Usage:   `\STATS`,
			Summary: "Show key counts and memory usage per type",
		},
		{
			Kind:    ast.CmdQuit,
			Aliases: []string{"QUIT", "Q"},
			Usage:   `\QUIT`,
			Summary: "Leave the session",
		},
		{
			Kind:    ast.CmdClear,
			Aliases: []string{"CLEAR"},
			Usage:   `\CLEAR`,
			Summary: "Clear the screen",
		},
		{
			Kind:    ast.CmdBegin,
			Aliases: []string{"BEGIN"},
			Usage:   `\BEGIN`,
			Summary: "Start queueing store commands",
		},
		{
			Kind:    ast.CmdCommit,
			Aliases: []string{"COMMIT"},
			Usage:   `\COMMIT`,
			Summary: "Run queued commands in order",
		},
		{
			Kind:    ast.CmdRollback,
			Aliases: []string{"ROLLBACK"},
			Usage:   `\ROLLBACK`,
			Summary: "Discard queued commands",
		},
	}
}
