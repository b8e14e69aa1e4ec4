package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"linkstat/internal/config"
)

// ErrStdoutOutput is returned for the "stdout" output path, which is
// reserved for the result line
var ErrStdoutOutput = errors.New("logs cannot be written to stdout")

// Logger is a slog.Logger that owns its log file, if any
type Logger struct {
	*slog.Logger
	file *os.File
}

// ParseLevel maps a level name to a slog.Level; unknown names mean warn
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New builds a logger from cfg. stderr is the writer used for the
// "stderr" output path (and for an empty one), so stdout stays reserved
// for the result line.
func New(cfg config.LoggerConfig, stderr io.Writer) (*Logger, error) {
	level := ParseLevel(cfg.Level)

	l := &Logger{}

	var writer io.Writer
	switch strings.ToLower(cfg.OutputPath) {
	case "stderr", "":
		writer = stderr
	case "stdout":
		return nil, ErrStdoutOutput
	default:
		file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = file
		writer = file
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			NoColor:    !isTerminal(writer),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == "error" && a.Value.Kind() == slog.KindAny {
					if err, ok := a.Value.Any().(error); ok {
						return tint.Err(err)
					}
				}
				return a
			},
		})
	}

	l.Logger = slog.New(handler)
	return l, nil
}

// WithComponent tags every record with the emitting component
func (l *Logger) WithComponent(name string) *slog.Logger {
	return l.Logger.With("component", name)
}

// Close closes the log file, if the logger opened one
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
