package worldwind

import (
	"log/slog"

	"github.com/gogpu/worldwind/internal/logging"
)

// SetLogger configures the logger for worldwind and all its sub-packages.
// By default, worldwind produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by worldwind:
//   - [slog.LevelDebug]: per-frame diagnostics (queue sizes, pick resolution)
//   - [slog.LevelInfo]: window lifecycle (render and draw loops started/stopped)
//   - [slog.LevelWarn]: non-fatal issues (drawable failures, read-back errors,
//     pick identifier exhaustion)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	worldwind.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	worldwind.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by worldwind.
// Sub-packages share the same configuration through internal/logging.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
