// Package logging backs instruction.Logger with log/slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	errorslib "github.com/goliatone/go-errors"
)

// Logger adapts a slog.Logger to the printf-style instruction.Logger.
type Logger struct {
	slog *slog.Logger
}

var _ instruction.Logger = (*Logger)(nil)

// New creates a logger writing to w. Format "json" selects the JSON
// handler, anything else the text handler.
func New(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{slog: slog.New(handler)}
}

// FromSlog wraps an existing slog.Logger.
func FromSlog(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{slog: logger}
}

// ParseLevel maps debug/info/warn/error to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

func (l *Logger) Debugf(format string, args ...any) {
	l.slog.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.slog.Info(fmt.Sprintf(format, args...))
}

// Errorf logs at error level. The last error argument, if any, is
// expanded into go-errors attributes (category, text code, validation
// fields).
func (l *Logger) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	var attrs []slog.Attr
	for i := len(args) - 1; i >= 0; i-- {
		if err, ok := args[i].(error); ok {
			attrs = errorslib.ToSlogAttributes(instruction.AsGoError(err))
			break
		}
	}
	l.slog.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}
