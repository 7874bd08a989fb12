package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Setup initializes the zerolog logger writing to stdout.
//   - level: log level string (trace, debug, info, warn, error, fatal, panic)
//   - format: "json", "pretty", or "auto" (pretty only when stdout is a terminal)
func Setup(level, format string) zerolog.Logger {
	return New(os.Stdout, level, resolveFormat(format, os.Stdout))
}

// New builds a logger on an arbitrary writer. Setup wraps it for the process
// logger; tests use it with a buffer.
func New(out io.Writer, level, format string) zerolog.Logger {
	writer := out
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()
}

func resolveFormat(format string, f *os.File) string {
	if format != "auto" {
		return format
	}
	if term.IsTerminal(int(f.Fd())) {
		return "pretty"
	}
	return "json"
}
