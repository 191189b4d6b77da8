// Package debug provides conditional debug logging for the canvas core.
//
// Debug logging is enabled by setting the NEWSCANVAS_DEBUG environment
// variable:
//
//	NEWSCANVAS_DEBUG=1 canvas-inspect --mode center-out graph.json
//
// When enabled, debug messages are written to stderr with timestamps.
// When disabled (default), all debug functions are no-ops with zero overhead.
// Layout computation runs inside the frame budget, so nothing in this
// package allocates unless enabled.
package debug

import (
	"log"
	"os"
	"time"
)

var (
	// enabled is true when NEWSCANVAS_DEBUG env var is set
	enabled bool
	// logger writes to stderr with [canvas] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("NEWSCANVAS_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[canvas] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[canvas] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogLayout logs one layout computation: mode, input size, bucket count.
func LogLayout(mode string, nodes, edges, groups int, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("layout %s: %d nodes / %d edges -> %d groups (%v)", mode, nodes, edges, groups, d)
}

// LogEnterExit logs function entry and exit with timing.
// Usage:
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	    // ...
//	}
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value with its type for debugging complex structures.
func Dump(name string, v any) {
	if !enabled {
		return
	}
	logger.Printf("%s: %T = %+v", name, v, v)
}
