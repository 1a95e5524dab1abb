package logger

import (
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(NewLogger(charm.NewWithOptions(os.Stderr, charm.Options{Level: InfoLevel})))
}

// Default returns the global logger.
func Default() *Logger {
	return defaultLogger.Load().(*Logger)
}

// SetDefault replaces the global logger. Nil is ignored.
func SetDefault(logger *Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// Trace logs at trace level on the global logger.
func Trace(msg any, keyvals ...any) {
	Default().Trace(msg, keyvals...)
}

// Tracef logs a formatted message at trace level on the global logger.
func Tracef(format string, args ...any) {
	Default().Tracef(format, args...)
}

// Debug logs at debug level on the global logger.
func Debug(msg any, keyvals ...any) {
	Default().Debug(msg, keyvals...)
}

// Info logs at info level on the global logger.
func Info(msg any, keyvals ...any) {
	Default().Info(msg, keyvals...)
}

// Warn logs at warn level on the global logger.
func Warn(msg any, keyvals ...any) {
	Default().Warn(msg, keyvals...)
}

// Error logs at error level on the global logger.
func Error(msg any, keyvals ...any) {
	Default().Error(msg, keyvals...)
}

// GetLevel returns the level of the global logger.
func GetLevel() Level {
	return Default().GetLevel()
}
