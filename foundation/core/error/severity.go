// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to decide how an error is logged.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-02
// Modified: 2026-10-02
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers user input mistakes such as a malformed query
	SeverityLow Severity = iota

	// SeverityMedium covers failed operations the session recovers from
	SeverityMedium

	// SeverityHigh covers unreadable or corrupt files and broken environments
	SeverityHigh

	// SeverityCritical indicates the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for a code
func GetSeverityFromCode(code Code) Severity {
	switch code.Category() {
	case "parse", "validation", "store":
		if code == CodeCircularReference {
			return SeverityMedium
		}
		return SeverityLow
	case "file":
		if code == CodeInvalidFilename {
			return SeverityLow
		}
		return SeverityHigh
	case "environment":
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
