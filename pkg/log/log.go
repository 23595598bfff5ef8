package log

import (
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
)

// New creates a zerolog logger. It writes JSON to stderr inside Kubernetes or
// when BLOCKFLOW_LOG_FORMAT=json, and console output to stdout otherwise.
// BLOCKFLOW_LOG_LEVEL sets the minimum level (default info).
func New() *zerolog.Logger {
	var output io.Writer
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" || os.Getenv("BLOCKFLOW_LOG_FORMAT") == "json" {
		output = os.Stderr
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02T15:04:05.999Z07:00"}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := NewWithWriter(output, ParseLevel(os.Getenv("BLOCKFLOW_LOG_LEVEL")))
	return &logger
}

// NewWithWriter creates a timestamped zerolog logger writing to w.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel parses a zerolog level name, falling back to info.
func ParseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Logr adapts l to logr. logr verbosity 1 maps to debug, 2 to trace.
func Logr(l *zerolog.Logger) logr.Logger {
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"
	return zerologr.New(l)
}

// NewLogr is Logr(New()).
func NewLogr() logr.Logger {
	return Logr(New())
}
