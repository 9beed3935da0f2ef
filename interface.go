package logex

import "time"

// Logger is the leveled structured-logging surface. Service implements it,
// and With().Logger() returns bound loggers carrying pre-populated fields
// that are included in every subsequent message.
type Logger interface {
	TraceWith() LogEvent
	DebugWith() LogEvent
	InfoWith() LogEvent
	SuccessWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent
	CriticalWith() LogEvent

	// With starts a context logger chain.
	// Example: reqLogger := logger.With().Str("request_id", id).Logger()
	With() LogContext
}

// DispatchAdapter is the sink boundary. The façade resolves configuration
// and renders messages; the adapter owns sink lifecycle and asynchronous
// delivery.
//
// Write must be safe to call concurrently and must be a silent no-op before
// InitializeSink and after Teardown. Flush blocks until every write accepted
// before the call is durable.
type DispatchAdapter interface {
	InitializeSink(settings LoggerSettings) error
	Write(severity Severity, message string)
	Teardown() error
	Flush() error
}

// LogEvent provides a fluent interface for building a single log record
// with typed fields. A record is dispatched by Msg, Msgf or Send.
type LogEvent interface {
	Str(key, val string) LogEvent
	Strs(key string, vals []string) LogEvent
	Int(key string, val int) LogEvent
	Int64(key string, val int64) LogEvent
	Uint(key string, val uint) LogEvent
	Uint64(key string, val uint64) LogEvent
	Float64(key string, val float64) LogEvent
	Bool(key string, val bool) LogEvent
	Time(key string, val time.Time) LogEvent
	Dur(key string, val time.Duration) LogEvent
	Err(err error) LogEvent
	AnErr(key string, err error) LogEvent
	Interface(key string, val interface{}) LogEvent
	Msg(msg string)
	Msgf(format string, v ...interface{})
	Send()
}

// LogContext provides a fluent interface for building a context logger with
// pre-populated fields.
type LogContext interface {
	Str(key, val string) LogContext
	Strs(key string, vals []string) LogContext
	Int(key string, val int) LogContext
	Int64(key string, val int64) LogContext
	Uint(key string, val uint) LogContext
	Uint64(key string, val uint64) LogContext
	Float64(key string, val float64) LogContext
	Bool(key string, val bool) LogContext
	Time(key string, val time.Time) LogContext
	Err(err error) LogContext
	Interface(key string, val interface{}) LogContext

	// Logger creates and returns the new context logger.
	Logger() Logger
}
