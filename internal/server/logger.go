package server

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// ZeroLogger is the production Logger, backed by zerolog.
type ZeroLogger struct {
	logger zerolog.Logger
}

// NewLogger builds a ZeroLogger writing to w. format is "json" or "console";
// level is parsed by zerolog and falls back to info.
func NewLogger(w io.Writer, level, format string) *ZeroLogger {
	if w == nil {
		w = os.Stderr
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05.000"}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return &ZeroLogger{
		logger: zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}
}

// NewDefaultLogger logs human readable lines to stderr at info level.
func NewDefaultLogger() *ZeroLogger {
	return NewLogger(os.Stderr, "info", "console")
}

func (l *ZeroLogger) Debug(msg string, fields ...Field) {
	l.log(l.logger.Debug(), msg, fields)
}

func (l *ZeroLogger) Info(msg string, fields ...Field) {
	l.log(l.logger.Info(), msg, fields)
}

func (l *ZeroLogger) Error(msg string, fields ...Field) {
	l.log(l.logger.Error(), msg, fields)
}

func (l *ZeroLogger) Warn(msg string, fields ...Field) {
	l.log(l.logger.Warn(), msg, fields)
}

func (l *ZeroLogger) log(e *zerolog.Event, msg string, fields []Field) {
	// nil when the level is disabled
	if e == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			e = e.AnErr(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		default:
			e = e.Interface(f.Key, sanitizeValue(v))
		}
	}
	e.Msg(msg)
}

// sanitizeValue truncates long strings, which in practice are client
// supplied request lines or header values.
func sanitizeValue(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		if len(s) > 100 {
			return s[:100] + "...[truncated]"
		}
	}
	return v
}

// NullLogger discards all logs (for testing)
type NullLogger struct{}

func (n *NullLogger) Debug(msg string, fields ...Field) {}
func (n *NullLogger) Info(msg string, fields ...Field)  {}
func (n *NullLogger) Error(msg string, fields ...Field) {}
func (n *NullLogger) Warn(msg string, fields ...Field)  {}
