// Package logger exposes the process-wide structured logger. Handlers log
// through the shared L; the level is adjustable at runtime via SetLevel.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// L is the shared JSON logger. The level defaults to info until SetLevel
// is called with the configured value.
var L = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

// SetLevel adjusts the global log level. Recognized values are debug, warn
// and error; anything else means info.
func SetLevel(lvl string) {
	switch strings.ToLower(lvl) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}
