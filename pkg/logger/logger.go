package logger

import (
	"io"
	"os"

	charm "github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

// Level is the logging level type shared with charmbracelet/log.
type Level = charm.Level

const (
	// TraceLevel is one step more verbose than debug.
	TraceLevel Level = charm.DebugLevel - 1
	DebugLevel Level = charm.DebugLevel
	InfoLevel  Level = charm.InfoLevel
	WarnLevel  Level = charm.WarnLevel
	ErrorLevel Level = charm.ErrorLevel
	// OffLevel silences every message, fatal included.
	OffLevel Level = charm.FatalLevel + 1
)

// LogLevel is the user-facing level name, as written in config and flags.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
	LogLevelError   LogLevel = "Error"
)

const (
	devStdout = "/dev/stdout"
	devStderr = "/dev/stderr"
	devNull   = "/dev/null"

	logFilePermissions = 0o644
)

// Logger wraps charmbracelet/log with a trace level.
type Logger struct {
	*charm.Logger
}

// NewLogger wraps an existing charm logger and applies the tfmatrix styles.
func NewLogger(l *charm.Logger) *Logger {
	l.SetStyles(getLogStyles())
	return &Logger{Logger: l}
}

// NewLoggerFromConfig creates a logger writing to cfg.Logs.File at cfg.Logs.Level.
func NewLoggerFromConfig(cfg *schema.Configuration) (*Logger, error) {
	level, err := ParseLogLevel(cfg.Logs.Level)
	if err != nil {
		return nil, err
	}

	w, err := openLogOutput(cfg.Logs.File)
	if err != nil {
		return nil, err
	}

	l := NewLogger(charm.NewWithOptions(w, charm.Options{
		Level:           level,
		ReportTimestamp: false,
	}))
	return l, nil
}

// ParseLogLevel converts a configured level name into a Level.
// An empty name means Info. Names are case-sensitive.
func ParseLogLevel(logLevel string) (Level, error) {
	switch LogLevel(logLevel) {
	case "", LogLevelInfo:
		return InfoLevel, nil
	case LogLevelTrace:
		return TraceLevel, nil
	case LogLevelDebug:
		return DebugLevel, nil
	case LogLevelWarning:
		return WarnLevel, nil
	case LogLevelError:
		return ErrorLevel, nil
	case LogLevelOff:
		return OffLevel, nil
	default:
		return InfoLevel, errUtils.Build(errUtils.ErrInvalidLogLevel).
			WithCause(errors.Newf("unsupported log level %q", logLevel)).
			WithHint("Supported log levels are Trace, Debug, Info, Warning, Error, Off").
			Err()
	}
}

// Trace logs a message at trace level.
func (l *Logger) Trace(msg any, keyvals ...any) {
	l.Log(TraceLevel, msg, keyvals...)
}

// Tracef logs a formatted message at trace level.
func (l *Logger) Tracef(format string, args ...any) {
	l.Logf(TraceLevel, format, args...)
}

// GetLevelString returns the lowercase name of the current level.
func (l *Logger) GetLevelString() string {
	switch level := l.GetLevel(); level {
	case TraceLevel:
		return "trace"
	case OffLevel:
		return "off"
	default:
		return level.String()
	}
}

func openLogOutput(file string) (io.Writer, error) {
	switch file {
	case "", devStderr:
		return os.Stderr, nil
	case devStdout:
		return os.Stdout, nil
	case devNull:
		return io.Discard, nil
	}

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_APPEND|os.O_CREATE, logFilePermissions)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log file %s", file)
	}
	return f, nil
}
