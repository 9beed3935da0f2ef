package logex

import (
	"fmt"
	"runtime"
)

// Frame is a single captured stack frame.
type Frame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// TracedError is the library's error type. It carries a short
// machine-readable kind, a human-readable message, an optional wrapped
// cause and the stack captured at construction time.
//
// Frames are stored outermost first, matching the order in which
// FormatException renders a traceback.
type TracedError struct {
	kind    string
	message string
	cause   error
	frames  []Frame
}

// NewError creates a TracedError with the given kind and message.
func NewError(kind, message string) *TracedError {
	return &TracedError{
		kind:    kind,
		message: message,
		frames:  captureFrames(2),
	}
}

// NewErrorf creates a TracedError with a formatted message.
func NewErrorf(kind, format string, args ...any) *TracedError {
	return &TracedError{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
		frames:  captureFrames(2),
	}
}

// WrapError wraps an existing error with kind and message context.
// A nil err returns nil.
func WrapError(err error, kind, message string) *TracedError {
	if err == nil {
		return nil
	}
	return &TracedError{
		kind:    kind,
		message: message,
		cause:   err,
		frames:  captureFrames(2),
	}
}

// WrapErrorf wraps an existing error with a formatted message.
// A nil err returns nil.
func WrapErrorf(err error, kind, format string, args ...any) *TracedError {
	if err == nil {
		return nil
	}
	return &TracedError{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		frames:  captureFrames(2),
	}
}

func (e *TracedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the wrapped cause, if any.
func (e *TracedError) Unwrap() error {
	return e.cause
}

// Kind returns the machine-readable error kind.
func (e *TracedError) Kind() string {
	return e.kind
}

// StackTrace returns the frames captured at construction, outermost first.
func (e *TracedError) StackTrace() []Frame {
	return e.frames
}

// captureFrames walks the call stack starting skip frames above the caller.
// runtime.Caller yields innermost first; the result is reversed so callers
// always see outermost-first order.
func captureFrames(skip int) []Frame {
	frames := make([]Frame, 0, MaxStackFrames)
	for i := skip; i < MaxStackFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		frames = append(frames, Frame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}
	return frames
}

// ConfigNotFoundError reports a config file pinned by EnvConfig that does
// not exist. Discovery returns it from the environment tier only; all
// other tiers fall through or synthesize defaults.
type ConfigNotFoundError struct {
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

// ConfigParseError reports a config file that exists but cannot be parsed.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("config file %s is malformed: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}
