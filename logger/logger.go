package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger wraps zerolog.Logger to implement the Logger interface.
type ZeroLogger struct {
	zlog *zerolog.Logger
}

// Ensure ZeroLogger implements the interface
var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger with the given level. If pretty is true, output is
// formatted for human readability instead of JSON.
func New(level string, pretty bool) *ZeroLogger {
	var l zerolog.Logger

	if pretty {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l}
}

// FromZerolog wraps an existing zerolog.Logger. Useful when the host
// application already configured its own logger.
func FromZerolog(zl zerolog.Logger) *ZeroLogger {
	return &ZeroLogger{zlog: &zl}
}

// WithFields returns a logger with additional fields attached to all entries.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	log := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &log}
}

// Info creates an info-level log event
func (l *ZeroLogger) Info() LogEvent {
	return &logEvent{event: l.zlog.Info()}
}

// Error creates an error-level log event
func (l *ZeroLogger) Error() LogEvent {
	return &logEvent{event: l.zlog.Error()}
}

// Debug creates a debug-level log event
func (l *ZeroLogger) Debug() LogEvent {
	return &logEvent{event: l.zlog.Debug()}
}

// Warn creates a warning-level log event
func (l *ZeroLogger) Warn() LogEvent {
	return &logEvent{event: l.zlog.Warn()}
}

// logEvent adapts zerolog events to the LogEvent interface.
type logEvent struct {
	event *zerolog.Event
}

func (e *logEvent) Msg(msg string) {
	e.event.Msg(msg)
}

func (e *logEvent) Msgf(format string, args ...any) {
	e.event.Msgf(format, args...)
}

func (e *logEvent) Err(err error) LogEvent {
	return &logEvent{event: e.event.Err(err)}
}

func (e *logEvent) Str(key, value string) LogEvent {
	return &logEvent{event: e.event.Str(key, value)}
}

func (e *logEvent) Int(key string, value int) LogEvent {
	return &logEvent{event: e.event.Int(key, value)}
}

func (e *logEvent) Int64(key string, value int64) LogEvent {
	return &logEvent{event: e.event.Int64(key, value)}
}

func (e *logEvent) Dur(key string, d time.Duration) LogEvent {
	return &logEvent{event: e.event.Dur(key, d)}
}

func (e *logEvent) Bool(key string, value bool) LogEvent {
	return &logEvent{event: e.event.Bool(key, value)}
}

func (e *logEvent) Interface(key string, i any) LogEvent {
	return &logEvent{event: e.event.Interface(key, i)}
}
