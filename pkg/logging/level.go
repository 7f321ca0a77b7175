package logging

import "strings"

// Level represents a log level
type Level int

const (
	// DebugLevel is for per-frame detail (picking, transitions); very noisy
	DebugLevel Level = iota
	// InfoLevel is the default: document mutations and lifecycle events
	InfoLevel
	// WarnLevel marks declined gestures and contract violations
	WarnLevel
	// ErrorLevel marks failures the user will notice (I/O, clipboard)
	ErrorLevel
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level. Unknown values map to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
