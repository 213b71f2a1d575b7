// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes raised by the KeplerKV query pipeline,
//              grouped by the stage that produces them.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-02
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation with generic codes
// - 2026-10-16 v0.2.0: Parse, validation, store and save file codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"

	// Parse stage
	CodeInvalidCommand   Code = "INVALID_COMMAND"
	CodeUnknownToken     Code = "UNKNOWN_TOKEN"
	CodeNestedCommand    Code = "NESTED_COMMAND"
	CodeCommandInList    Code = "COMMAND_IN_LIST"
	CodeWrongIntFormat   Code = "WRONG_INT_FORMAT"
	CodeWrongFloatFormat Code = "WRONG_FLOAT_FORMAT"
	CodeUnterminatedList Code = "UNTERMINATED_LIST"
	CodeInputTooLong     Code = "INPUT_TOO_LONG"

	// Validation stage
	CodeWrongCommandFormat Code = "WRONG_COMMAND_FORMAT"

	// Store and execution
	CodeNotFound          Code = "NOT_FOUND"
	CodeNotNumeric        Code = "NOT_NUMERIC"
	CodeNotAList          Code = "NOT_A_LIST"
	CodeCircularReference Code = "CIRCULAR_REFERENCE"
	CodeInvalidPattern    Code = "INVALID_PATTERN"

	// Save files
	CodeInvalidFilename  Code = "INVALID_FILENAME"
	CodeFileOpenFailure  Code = "FILE_OPEN_FAILURE"
	CodeNotValidSaveFile Code = "NOT_VALID_SAVE_FILE"
	CodeUnknownSaveItem  Code = "UNKNOWN_SAVE_ITEM"

	// Configuration and environment
	CodeConfigError  Code = "CONFIG_ERROR"
	CodeHistoryError Code = "HISTORY_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	return c.Category() != "" || c == CodeUnknown || c == CodeInternal
}

// Category returns the pipeline stage the code belongs to, or "" for
// generic codes.
func (c Code) Category() string {
	switch c {
	case CodeInvalidCommand, CodeUnknownToken, CodeNestedCommand, CodeCommandInList,
		CodeWrongIntFormat, CodeWrongFloatFormat, CodeUnterminatedList, CodeInputTooLong:
		return "parse"
	case CodeWrongCommandFormat:
		return "validation"
	case CodeNotFound, CodeNotNumeric, CodeNotAList, CodeCircularReference, CodeInvalidPattern:
		return "store"
	case CodeInvalidFilename, CodeFileOpenFailure, CodeNotValidSaveFile, CodeUnknownSaveItem:
		return "file"
	case CodeConfigError, CodeHistoryError:
		return "environment"
	default:
		return ""
	}
}

// IsSoft reports whether errors with this code are reported inline for a
// single argument instead of aborting the command.
func (c Code) IsSoft() bool {
	switch c {
	case CodeNotFound, CodeNotNumeric, CodeNotAList:
		return true
	default:
		return false
	}
}
