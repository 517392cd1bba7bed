// Package logger provides slog attribute helpers shared by the library's
// debug logging.
package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety, so call sites
// never need explicit nil checks.

// Error creates an attribute for a single error under the key "error".
// Returns an empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for an elapsed duration under the key
// "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component tags log records with the emitting component name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
