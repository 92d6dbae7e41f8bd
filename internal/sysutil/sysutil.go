// Package sysutil holds small process-level helpers used by the server
// entry point: log level selection and environment flag parsing.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// ParseLogLevel maps a LOG_LEVEL value to a zerolog level. Matching is
// case-insensitive; "warning" is accepted for warn. Empty or unknown values
// yield InfoLevel.
func ParseLogLevel(lvl string) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(lvl))
	if s == "warning" {
		s = "warn"
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// SetLogLevel sets the global zerolog level from a LOG_LEVEL value.
func SetLogLevel(lvl string) {
	zerolog.SetGlobalLevel(ParseLogLevel(lvl))
}

// IsTruthy reports whether an environment value reads as true:
// "1", "true", "yes", "y" or "on", case-insensitive.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// FirstNonEmpty returns the first value that is not blank, unmodified.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
