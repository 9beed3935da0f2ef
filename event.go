package logex

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// logEvent implements LogEvent. Fields render into the dispatched line as a
// " | k=v k2=v2" suffix. A zero logEvent is the no-op event.
type logEvent struct {
	svc      *Service
	severity Severity
	fields   []string
}

func (e *logEvent) add(field string) LogEvent {
	if e == nil || e.svc == nil {
		return e
	}
	e.fields = append(e.fields, field)
	return e
}

func (e *logEvent) Str(key, val string) LogEvent {
	return e.add(renderField(key, val))
}

func (e *logEvent) Strs(key string, vals []string) LogEvent {
	return e.add(key + "=[" + strings.Join(vals, ",") + "]")
}

func (e *logEvent) Int(key string, val int) LogEvent {
	return e.add(key + "=" + strconv.Itoa(val))
}

func (e *logEvent) Int64(key string, val int64) LogEvent {
	return e.add(key + "=" + strconv.FormatInt(val, 10))
}

func (e *logEvent) Uint(key string, val uint) LogEvent {
	return e.add(key + "=" + strconv.FormatUint(uint64(val), 10))
}

func (e *logEvent) Uint64(key string, val uint64) LogEvent {
	return e.add(key + "=" + strconv.FormatUint(val, 10))
}

func (e *logEvent) Float64(key string, val float64) LogEvent {
	return e.add(key + "=" + strconv.FormatFloat(val, 'g', -1, 64))
}

func (e *logEvent) Bool(key string, val bool) LogEvent {
	return e.add(key + "=" + strconv.FormatBool(val))
}

func (e *logEvent) Time(key string, val time.Time) LogEvent {
	return e.add(key + "=" + val.Format(time.RFC3339))
}

func (e *logEvent) Dur(key string, val time.Duration) LogEvent {
	return e.add(key + "=" + val.String())
}

func (e *logEvent) Err(err error) LogEvent {
	return e.anErr("error", err)
}

func (e *logEvent) AnErr(key string, err error) LogEvent {
	return e.anErr(key, err)
}

// anErr renders an error with its cause chain. Wrapped errors additionally
// carry the joined history and the root message for grep-ability.
func (e *logEvent) anErr(key string, err error) LogEvent {
	if e == nil || e.svc == nil || err == nil {
		return e
	}
	e.fields = append(e.fields, renderField(key, err.Error()))
	chain, _, root, rootKind := buildErrorChain(err)
	if len(chain) > 1 {
		e.fields = append(e.fields, renderField(key+"_history", joinChain(chain)))
		e.fields = append(e.fields, renderField(key+"_root", root))
		if rootKind != emptyString {
			e.fields = append(e.fields, renderField(key+"_root_kind", rootKind))
		}
	}
	return e
}

func (e *logEvent) Interface(key string, val interface{}) LogEvent {
	return e.add(renderField(key, fmt.Sprint(val)))
}

func (e *logEvent) Msg(msg string) {
	if e == nil || e.svc == nil {
		return
	}
	line := msg
	if len(e.fields) > 0 {
		if line == emptyString {
			line = strings.Join(e.fields, " ")
		} else {
			line += " | " + strings.Join(e.fields, " ")
		}
	}
	e.svc.dispatch(e.severity, line)
}

func (e *logEvent) Msgf(format string, v ...interface{}) {
	e.Msg(fmt.Sprintf(format, v...))
}

func (e *logEvent) Send() {
	e.Msg(emptyString)
}

// renderField formats one key=value pair, quoting the value the way a
// console writer would when it contains spaces or metacharacters.
func renderField(key, value string) string {
	if needsQuote(value) {
		return key + "=" + strconv.Quote(value)
	}
	return key + "=" + value
}

func needsQuote(s string) bool {
	if s == emptyString {
		return true
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e || s[i] == ' ' || s[i] == '\\' || s[i] == '"' || s[i] == '=' {
			return true
		}
	}
	return false
}

// logContext implements LogContext, accumulating fields for a bound logger.
type logContext struct {
	svc    *Service
	fields []string
}

func (c *logContext) add(field string) LogContext {
	c.fields = append(c.fields, field)
	return c
}

func (c *logContext) Str(key, val string) LogContext {
	return c.add(renderField(key, val))
}

func (c *logContext) Strs(key string, vals []string) LogContext {
	return c.add(key + "=[" + strings.Join(vals, ",") + "]")
}

func (c *logContext) Int(key string, val int) LogContext {
	return c.add(key + "=" + strconv.Itoa(val))
}

func (c *logContext) Int64(key string, val int64) LogContext {
	return c.add(key + "=" + strconv.FormatInt(val, 10))
}

func (c *logContext) Uint(key string, val uint) LogContext {
	return c.add(key + "=" + strconv.FormatUint(uint64(val), 10))
}

func (c *logContext) Uint64(key string, val uint64) LogContext {
	return c.add(key + "=" + strconv.FormatUint(val, 10))
}

func (c *logContext) Float64(key string, val float64) LogContext {
	return c.add(key + "=" + strconv.FormatFloat(val, 'g', -1, 64))
}

func (c *logContext) Bool(key string, val bool) LogContext {
	return c.add(key + "=" + strconv.FormatBool(val))
}

func (c *logContext) Time(key string, val time.Time) LogContext {
	return c.add(key + "=" + val.Format(time.RFC3339))
}

func (c *logContext) Err(err error) LogContext {
	if err == nil {
		return c
	}
	return c.add(renderField("error", err.Error()))
}

func (c *logContext) Interface(key string, val interface{}) LogContext {
	return c.add(renderField(key, fmt.Sprint(val)))
}

func (c *logContext) Logger() Logger {
	fields := make([]string, len(c.fields))
	copy(fields, c.fields)
	return &boundLogger{svc: c.svc, fields: fields}
}

// boundLogger is a context logger carrying pre-populated fields. It
// delegates dispatch to the parent Service, so teardown and reconfigure
// semantics stay in one place.
type boundLogger struct {
	svc    *Service
	fields []string
}

func (l *boundLogger) event(severity Severity) LogEvent {
	if l == nil || l.svc == nil {
		return &logEvent{}
	}
	fields := make([]string, len(l.fields), len(l.fields)+4)
	copy(fields, l.fields)
	return &logEvent{svc: l.svc, severity: severity, fields: fields}
}

func (l *boundLogger) TraceWith() LogEvent    { return l.event(SeverityTrace) }
func (l *boundLogger) DebugWith() LogEvent    { return l.event(SeverityDebug) }
func (l *boundLogger) InfoWith() LogEvent     { return l.event(SeverityInfo) }
func (l *boundLogger) SuccessWith() LogEvent  { return l.event(SeveritySuccess) }
func (l *boundLogger) WarnWith() LogEvent     { return l.event(SeverityWarning) }
func (l *boundLogger) ErrorWith() LogEvent    { return l.event(SeverityError) }
func (l *boundLogger) CriticalWith() LogEvent { return l.event(SeverityCritical) }

func (l *boundLogger) With() LogContext {
	if l == nil || l.svc == nil {
		return &noopLogContext{}
	}
	fields := make([]string, len(l.fields))
	copy(fields, l.fields)
	return &logContext{svc: l.svc, fields: fields}
}

// noopLogContext is a no-op implementation of LogContext.
type noopLogContext struct{}

func (n *noopLogContext) Str(key, val string) LogContext             { return n }
func (n *noopLogContext) Strs(key string, vals []string) LogContext  { return n }
func (n *noopLogContext) Int(key string, val int) LogContext         { return n }
func (n *noopLogContext) Int64(key string, val int64) LogContext     { return n }
func (n *noopLogContext) Uint(key string, val uint) LogContext       { return n }
func (n *noopLogContext) Uint64(key string, val uint64) LogContext   { return n }
func (n *noopLogContext) Float64(key string, val float64) LogContext { return n }
func (n *noopLogContext) Bool(key string, val bool) LogContext       { return n }
func (n *noopLogContext) Time(key string, val time.Time) LogContext  { return n }
func (n *noopLogContext) Err(err error) LogContext                   { return n }
func (n *noopLogContext) Interface(key string, val interface{}) LogContext {
	return n
}
func (n *noopLogContext) Logger() Logger { return &noopLogger{} }

// noopLogger is a no-op implementation of Logger.
type noopLogger struct{}

func (n *noopLogger) TraceWith() LogEvent    { return &logEvent{} }
func (n *noopLogger) DebugWith() LogEvent    { return &logEvent{} }
func (n *noopLogger) InfoWith() LogEvent     { return &logEvent{} }
func (n *noopLogger) SuccessWith() LogEvent  { return &logEvent{} }
func (n *noopLogger) WarnWith() LogEvent     { return &logEvent{} }
func (n *noopLogger) ErrorWith() LogEvent    { return &logEvent{} }
func (n *noopLogger) CriticalWith() LogEvent { return &logEvent{} }
func (n *noopLogger) With() LogContext       { return &noopLogContext{} }
