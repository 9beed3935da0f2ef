package logex

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/atomic"
)

// Service is the logging façade. It moves between two states, Unconfigured
// and Configured: the transition happens lazily on the first logging call,
// or explicitly through Configure. SetConfig reconfigures atomically and
// Close returns the Service to Unconfigured.
//
// Logging calls are safe for concurrent use. Reconfiguration assumes a
// single writer at a time; serializing SetConfig/Close callers is a caller
// responsibility.
type Service struct {
	// ConfigPath pins an explicit config file. Empty means discovery.
	ConfigPath string

	// Manager resolves configuration. Nil means a manager rooted at
	// WorkDir is created on first configure.
	Manager *ConfigManager

	// Adapter owns the sinks. Nil means a ZerologAdapter rooted at
	// WorkDir is created on first configure.
	Adapter DispatchAdapter

	// WorkDir anchors discovery and relative log file paths for the
	// defaults above. Empty means the current working directory.
	WorkDir string

	mu           sync.RWMutex
	isConfigured atomic.Bool
	settings     LoggerSettings
	warnOnce     sync.Once
}

// New returns an unconfigured Service.
func New() *Service {
	return &Service{}
}

// Configure resolves configuration and initializes the sinks. The first
// logging call runs it implicitly; call it explicitly to fail fast at
// startup. Configuring an already configured Service is a no-op.
func (s *Service) Configure() error {
	if s == nil {
		return NewError("service", errMsgNilService)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isConfigured.Load() {
		return nil
	}
	return s.configureLocked(s.ConfigPath)
}

func (s *Service) configureLocked(path string) error {
	manager := s.managerLocked()
	adapter := s.adapterLocked()

	if path != emptyString {
		if err := manager.Load(path); err != nil {
			return err
		}
	}
	settings, err := manager.LoggerConfig()
	if err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}
	if err := adapter.InitializeSink(settings); err != nil {
		return err
	}

	s.settings = settings
	s.isConfigured.Store(true)
	return nil
}

// SetConfig reconfigures the Service from the config at path; an empty path
// rediscovers. The new configuration is loaded and validated before the old
// sinks are torn down, so a config error leaves the previous sinks live.
// Logging calls issued after SetConfig returns see exactly one
// configuration.
func (s *Service) SetConfig(path string) error {
	if s == nil {
		return NewError("service", errMsgNilService)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	manager := s.managerLocked()
	if err := manager.Load(path); err != nil {
		return err
	}
	settings, err := manager.LoggerConfig()
	if err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	adapter := s.adapterLocked()
	if s.isConfigured.Load() {
		s.isConfigured.Store(false)
		if err := adapter.Teardown(); err != nil {
			return err
		}
	}
	if err := adapter.InitializeSink(settings); err != nil {
		return err
	}

	s.ConfigPath = path
	s.settings = settings
	s.isConfigured.Store(true)
	return nil
}

// Close tears the sinks down and returns the Service to Unconfigured. A
// later logging call configures again lazily. Safe to call multiple times.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isConfigured.Load() {
		return nil
	}
	s.isConfigured.Store(false)
	if s.Adapter == nil {
		return nil
	}
	return s.Adapter.Teardown()
}

// Complete blocks until every record accepted before the call is durably
// written. Use it before process exit or test assertions.
func (s *Service) Complete() error {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	adapter := s.Adapter
	configured := s.isConfigured.Load()
	s.mu.RUnlock()
	if !configured || adapter == nil {
		return nil
	}
	return adapter.Flush()
}

// Settings returns the resolved settings of the active configuration, or
// the zero value while unconfigured.
func (s *Service) Settings() LoggerSettings {
	if s == nil {
		return LoggerSettings{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// ensure performs the lazy Unconfigured -> Configured transition. A failed
// lazy configure prints one stderr notice and logging stays a no-op until
// an explicit Configure or SetConfig succeeds.
func (s *Service) ensure() bool {
	if s.isConfigured.Load() {
		return true
	}
	if err := s.Configure(); err != nil {
		s.warnOnce.Do(func() {
			fmt.Fprintf(os.Stderr, "logex: logging disabled, configuration failed: %v\n", err)
		})
		return false
	}
	return true
}

func (s *Service) dispatch(severity Severity, message string) {
	if s == nil || !s.ensure() {
		return
	}
	s.mu.RLock()
	adapter := s.Adapter
	configured := s.isConfigured.Load()
	s.mu.RUnlock()
	if !configured || adapter == nil {
		return
	}
	adapter.Write(severity, message)
}

func (s *Service) managerLocked() *ConfigManager {
	if s.Manager == nil {
		s.Manager = &ConfigManager{WorkDir: s.WorkDir}
	}
	return s.Manager
}

func (s *Service) adapterLocked() DispatchAdapter {
	if s.Adapter == nil {
		s.Adapter = &ZerologAdapter{WorkDir: s.WorkDir}
	}
	return s.Adapter
}

// Trace logs a message at TRACE level.
func (s *Service) Trace(msg string) { s.dispatch(SeverityTrace, msg) }

// Debug logs a message at DEBUG level.
func (s *Service) Debug(msg string) { s.dispatch(SeverityDebug, msg) }

// Info logs a message at INFO level.
func (s *Service) Info(msg string) { s.dispatch(SeverityInfo, msg) }

// Success logs a message at SUCCESS level.
func (s *Service) Success(msg string) { s.dispatch(SeveritySuccess, msg) }

// Warning logs a message at WARNING level.
func (s *Service) Warning(msg string) { s.dispatch(SeverityWarning, msg) }

// Error logs a message at ERROR level.
func (s *Service) Error(msg string) { s.dispatch(SeverityError, msg) }

// Critical logs a message at CRITICAL level. The process keeps running;
// CRITICAL is a severity, not an exit.
func (s *Service) Critical(msg string) { s.dispatch(SeverityCritical, msg) }

// Tracef logs a formatted message at TRACE level.
func (s *Service) Tracef(format string, args ...any) {
	s.dispatch(SeverityTrace, fmt.Sprintf(format, args...))
}

// Debugf logs a formatted message at DEBUG level.
func (s *Service) Debugf(format string, args ...any) {
	s.dispatch(SeverityDebug, fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at INFO level.
func (s *Service) Infof(format string, args ...any) {
	s.dispatch(SeverityInfo, fmt.Sprintf(format, args...))
}

// Successf logs a formatted message at SUCCESS level.
func (s *Service) Successf(format string, args ...any) {
	s.dispatch(SeveritySuccess, fmt.Sprintf(format, args...))
}

// Warningf logs a formatted message at WARNING level.
func (s *Service) Warningf(format string, args ...any) {
	s.dispatch(SeverityWarning, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at ERROR level.
func (s *Service) Errorf(format string, args ...any) {
	s.dispatch(SeverityError, fmt.Sprintf(format, args...))
}

// Criticalf logs a formatted message at CRITICAL level.
func (s *Service) Criticalf(format string, args ...any) {
	s.dispatch(SeverityCritical, fmt.Sprintf(format, args...))
}

// Log dispatches msg at the named level. Unrecognized levels dispatch at
// INFO rather than dropping the record.
func (s *Service) Log(level, msg string) {
	severity, _ := ParseSeverity(level)
	s.dispatch(severity, msg)
}

// Exception logs err at ERROR level with the full formatted traceback.
func (s *Service) Exception(err error) {
	s.ExceptionAt("ERROR", err, nil)
}

// ExceptionAt logs err at the requested level. Only DEBUG, INFO, WARNING
// and CRITICAL are honored; any other level, ERROR included, dispatches at
// ERROR. The optional context renders as sorted key=value pairs.
func (s *Service) ExceptionAt(level string, err error, context map[string]any) {
	if s == nil || err == nil {
		return
	}
	s.dispatch(exceptionSeverity(level), FormatExceptionForLogging(err, context))
}

func (s *Service) eventAt(severity Severity) LogEvent {
	if s == nil || !s.ensure() {
		return &logEvent{}
	}
	return &logEvent{svc: s, severity: severity}
}

// TraceWith returns a LogEvent for structured TRACE-level logging.
func (s *Service) TraceWith() LogEvent { return s.eventAt(SeverityTrace) }

// DebugWith returns a LogEvent for structured DEBUG-level logging.
func (s *Service) DebugWith() LogEvent { return s.eventAt(SeverityDebug) }

// InfoWith returns a LogEvent for structured INFO-level logging.
// Example: logger.InfoWith().Str("user_id", id).Int("count", 5).Msg("User processed")
func (s *Service) InfoWith() LogEvent { return s.eventAt(SeverityInfo) }

// SuccessWith returns a LogEvent for structured SUCCESS-level logging.
func (s *Service) SuccessWith() LogEvent { return s.eventAt(SeveritySuccess) }

// WarnWith returns a LogEvent for structured WARNING-level logging.
func (s *Service) WarnWith() LogEvent { return s.eventAt(SeverityWarning) }

// ErrorWith returns a LogEvent for structured ERROR-level logging.
// Example: logger.ErrorWith().Err(err).Str("operation", "database").Msg("Query failed")
func (s *Service) ErrorWith() LogEvent { return s.eventAt(SeverityError) }

// CriticalWith returns a LogEvent for structured CRITICAL-level logging.
func (s *Service) CriticalWith() LogEvent { return s.eventAt(SeverityCritical) }

// With returns a LogContext for creating a child logger with pre-populated
// fields.
// Example: reqLogger := logger.With().Str("request_id", id).Logger()
func (s *Service) With() LogContext {
	if s == nil || !s.ensure() {
		return &noopLogContext{}
	}
	return &logContext{svc: s}
}

// Bind returns a child logger with alternating key/value pairs attached to
// every record. Non-string keys are stringified; a trailing key without a
// value is dropped.
func (s *Service) Bind(kv ...any) Logger {
	ctx := s.With()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		ctx = ctx.Interface(key, kv[i+1])
	}
	return ctx.Logger()
}

var (
	defaultService     *Service
	defaultServiceOnce sync.Once
)

// Default returns the process-wide Service behind the package-level
// functions. It is constructed once, on first use.
func Default() *Service {
	defaultServiceOnce.Do(func() {
		defaultService = New()
	})
	return defaultService
}

// Package-level mirrors over Default().

// Trace logs a message at TRACE level on the default Service.
func Trace(msg string) { Default().Trace(msg) }

// Debug logs a message at DEBUG level on the default Service.
func Debug(msg string) { Default().Debug(msg) }

// Info logs a message at INFO level on the default Service.
func Info(msg string) { Default().Info(msg) }

// Success logs a message at SUCCESS level on the default Service.
func Success(msg string) { Default().Success(msg) }

// Warning logs a message at WARNING level on the default Service.
func Warning(msg string) { Default().Warning(msg) }

// Error logs a message at ERROR level on the default Service.
func Error(msg string) { Default().Error(msg) }

// Critical logs a message at CRITICAL level on the default Service.
func Critical(msg string) { Default().Critical(msg) }

// Tracef logs a formatted message at TRACE level on the default Service.
func Tracef(format string, args ...any) { Default().Tracef(format, args...) }

// Debugf logs a formatted message at DEBUG level on the default Service.
func Debugf(format string, args ...any) { Default().Debugf(format, args...) }

// Infof logs a formatted message at INFO level on the default Service.
func Infof(format string, args ...any) { Default().Infof(format, args...) }

// Successf logs a formatted message at SUCCESS level on the default Service.
func Successf(format string, args ...any) { Default().Successf(format, args...) }

// Warningf logs a formatted message at WARNING level on the default Service.
func Warningf(format string, args ...any) { Default().Warningf(format, args...) }

// Errorf logs a formatted message at ERROR level on the default Service.
func Errorf(format string, args ...any) { Default().Errorf(format, args...) }

// Criticalf logs a formatted message at CRITICAL level on the default Service.
func Criticalf(format string, args ...any) { Default().Criticalf(format, args...) }

// Log logs a message at the named level on the default Service.
func Log(level, msg string) { Default().Log(level, msg) }

// Exception logs err at ERROR level on the default Service.
func Exception(err error) { Default().Exception(err) }

// ExceptionAt logs err at the requested level on the default Service.
func ExceptionAt(level string, err error, context map[string]any) {
	Default().ExceptionAt(level, err, context)
}

// Bind returns a child of the default Service with the given fields.
func Bind(kv ...any) Logger { return Default().Bind(kv...) }

// With opens a field-binding context on the default Service.
func With() LogContext { return Default().With() }

// TraceWith starts a structured TRACE event on the default Service.
func TraceWith() LogEvent { return Default().TraceWith() }

// DebugWith starts a structured DEBUG event on the default Service.
func DebugWith() LogEvent { return Default().DebugWith() }

// InfoWith starts a structured INFO event on the default Service.
func InfoWith() LogEvent { return Default().InfoWith() }

// SuccessWith starts a structured SUCCESS event on the default Service.
func SuccessWith() LogEvent { return Default().SuccessWith() }

// WarnWith starts a structured WARNING event on the default Service.
func WarnWith() LogEvent { return Default().WarnWith() }

// ErrorWith starts a structured ERROR event on the default Service.
func ErrorWith() LogEvent { return Default().ErrorWith() }

// CriticalWith starts a structured CRITICAL event on the default Service.
func CriticalWith() LogEvent { return Default().CriticalWith() }

// Configure configures the default Service.
func Configure() error { return Default().Configure() }

// SetConfig reconfigures the default Service from the config at path.
func SetConfig(path string) error { return Default().SetConfig(path) }

// Complete flushes the default Service.
func Complete() error { return Default().Complete() }

// Close tears down the default Service's sinks.
func Close() error { return Default().Close() }
