// Package logging wraps log/slog for kview. Logs go to a rotated file and
// never to the terminal, which the TUI owns.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFormat is the output format of the log file.
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// Config holds logger settings. An empty FilePath disables logging.
type Config struct {
	FilePath   string
	Level      slog.Level
	Format     LogFormat
	MaxSizeMB  int
	MaxBackups int
}

// Logger is a slog.Logger that knows whether it writes anywhere.
type Logger struct {
	logger  *slog.Logger
	enabled bool
}

var (
	mu           sync.RWMutex
	globalLogger *Logger
	writer       *lumberjack.Logger

	noopLogger = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
)

// Init configures the global logger.
func Init(config Config) error {
	mu.Lock()
	defer mu.Unlock()

	if writer != nil {
		writer.Close()
		writer = nil
	}

	if config.FilePath == "" {
		globalLogger = noopLogger
		return nil
	}

	writer = &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	globalLogger = &Logger{logger: slog.New(handler), enabled: true}
	return nil
}

// Shutdown closes the log file.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()

	globalLogger = noopLogger
	if writer == nil {
		return nil
	}
	err := writer.Close()
	writer = nil
	return err
}

// Get returns the global logger, or a noop logger before Init.
func Get() *Logger {
	mu.RLock()
	defer mu.RUnlock()

	if globalLogger == nil {
		return noopLogger
	}
	return globalLogger
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), enabled: l.enabled}
}

// IsEnabled reports whether the logger writes to a file.
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// IsEnabled reports whether the global logger writes to a file.
func IsEnabled() bool {
	return Get().IsEnabled()
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat converts a format name to LogFormat, defaulting to text.
func ParseFormat(format string) LogFormat {
	if strings.ToLower(format) == "json" {
		return FormatJSON
	}
	return FormatText
}
