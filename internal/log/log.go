// Package log provides a leveled debug logger for diagnostics that must not
// surface in the user-facing view (background fetch failures, response-shape
// mismatches, per-table detail errors).
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level controls how much diagnostic output is emitted.
type Level int

const (
	// Off disables all debug output.
	Off Level = iota
	// Basic logs operation outcomes (fetch failed, upload rejected).
	Basic
	// Detailed adds per-request context (URLs, counts, shape fallbacks).
	Detailed
	// Trace adds control-flow detail inside the coordinators.
	Trace
	// Wire logs request and response bodies.
	Wire
)

var (
	mu      sync.Mutex
	level   = Off
	output  io.Writer = os.Stderr
	enabled bool
)

// LevelFromInt clamps an integer (typically a -d flag count) to a Level.
func LevelFromInt(n int) Level {
	switch {
	case n <= 0:
		return Off
	case n >= int(Wire):
		return Wire
	default:
		return Level(n)
	}
}

// SetLevel sets the global debug level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	enabled = l > Off
}

// SetOutput redirects debug output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// CurrentLevel returns the active debug level.
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// Debug writes a formatted message when the given level is enabled.
func Debug(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled || l > level || l == Off {
		return
	}
	fmt.Fprintf(output, format, args...)
}
