// Package logger is the process-wide structured logger. Call sites use the
// slog key/value convention; a bare error argument is recorded under "error".
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log *slog.Logger
)

func init() {
	log = slog.New(newZerologHandler(build("development", os.Stderr)))
}

// Init configures the logger for env. Production writes JSON at info level,
// anything else writes human readable console output at debug level.
func Init(env string) {
	InitWithWriter(env, os.Stderr)
}

func InitWithWriter(env string, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = slog.New(newZerologHandler(build(env, w)))
}

func build(env string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "production" {
		return zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	if f, ok := w.(*os.File); !ok || f != os.Stderr {
		console.NoColor = true
	}
	return zerolog.New(console).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug(msg string, args ...any) { current().Debug(msg, normalize(args)...) }
func Info(msg string, args ...any)  { current().Info(msg, normalize(args)...) }
func Warn(msg string, args ...any)  { current().Warn(msg, normalize(args)...) }
func Error(msg string, args ...any) { current().Error(msg, normalize(args)...) }

// Fatal logs at error level and exits the process.
func Fatal(msg string, args ...any) {
	current().Error(msg, normalize(args)...)
	os.Exit(1)
}

// With returns a slog.Logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return current().With(normalize(args)...)
}

// normalize turns positional values that are not keys into attributes so
// logger.Error("msg", err) does not produce a !BADKEY entry.
func normalize(args []any) []any {
	if len(args) == 0 {
		return nil
	}

	out := make([]any, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case slog.Attr:
			out = append(out, v)
		case error:
			out = append(out, slog.Any("error", v))
		case string:
			if i+1 < len(args) {
				out = append(out, v, args[i+1])
				i++
			} else {
				out = append(out, slog.String("detail", v))
			}
		default:
			out = append(out, slog.Any("detail", v))
		}
	}
	return out
}
