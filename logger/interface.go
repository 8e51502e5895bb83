// Package logger defines the structured logging contract used by the adapter
// packages and provides a zerolog-backed implementation.
package logger

import "time"

// Logger is the contract for structured logging throughout the library.
type Logger interface {
	Info() LogEvent
	Error() LogEvent
	Debug() LogEvent
	Warn() LogEvent
	WithFields(fields map[string]any) Logger
}

// LogEvent represents a structured log event that is built with fields and
// finished with Msg or Msgf.
type LogEvent interface {
	Msg(msg string)
	Msgf(format string, args ...any)
	Err(err error) LogEvent
	Str(key, value string) LogEvent
	Int(key string, value int) LogEvent
	Int64(key string, value int64) LogEvent
	Dur(key string, d time.Duration) LogEvent
	Bool(key string, value bool) LogEvent
	Interface(key string, i any) LogEvent
}
