// Package log provides logging configuration and handler construction.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minicore-io/minicore/pkg/coreerrors"
)

const (
	JSONFormat   = "json"
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
)

// CreateHandlerWithStrings creates a [slog.Handler] writing to w, with the
// level and format given as strings.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case TextFormat, LogfmtFormat, "":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), nil
	}

	return nil, fmt.Errorf("%w: log format %q", coreerrors.ErrInvalidFormat, logFormat)
}

// GetLevel parses a [slog.Level] from a string.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "panic", "fatal", "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	}

	return slog.LevelInfo, fmt.Errorf("%w: log level %q", coreerrors.ErrInvalidFormat, level)
}
