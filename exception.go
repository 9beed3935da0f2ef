package logex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ExceptionRecord is the structured context extracted from an error. The
// scalar fields describe the innermost frame, where the failure originated;
// Frames holds the full captured stack, outermost first.
type ExceptionRecord struct {
	Kind     string
	Message  string
	File     string
	FullPath string
	Line     int
	Function string
	Code     string
	Frames   []Frame
}

// GetExceptionContext extracts a record from err. It never fails: a nil
// error yields a record of kind "nil", and an error without stack
// information degrades to kind and message only.
func GetExceptionContext(err error) ExceptionRecord {
	if err == nil {
		return ExceptionRecord{Kind: "nil"}
	}
	record := ExceptionRecord{
		Kind:    errorKind(err),
		Message: err.Error(),
	}

	frames := stackFrames(err)
	if len(frames) == 0 {
		return record
	}
	record.Frames = frames

	last := frames[len(frames)-1]
	record.File = filepath.Base(last.File)
	record.FullPath = last.File
	record.Line = last.Line
	record.Function = shortFuncName(last.Function)
	record.Code = sourceLine(last.File, last.Line)
	return record
}

// FormatException renders err as a traceback. The first and last non-empty
// lines both carry "Kind: message"; frames render outermost first with the
// source line when it can be read. A positive maxFrames keeps only the
// innermost maxFrames frames; zero or negative keeps all.
//
// An error without stack information renders as the bare "Kind: message".
func FormatException(err error, maxFrames int) string {
	if err == nil {
		return emptyString
	}
	header := fmt.Sprintf("%s: %s", errorKind(err), err.Error())

	frames := stackFrames(err)
	if len(frames) == 0 {
		return header
	}
	if maxFrames > 0 && len(frames) > maxFrames {
		frames = frames[len(frames)-maxFrames:]
	}

	lines := make([]string, 0, len(frames)*2+3)
	lines = append(lines, "\n"+header)
	lines = append(lines, "\nTraceback (most recent call last):")
	for _, frame := range frames {
		lines = append(lines, fmt.Sprintf("  File %q, line %d, in %s",
			frame.File, frame.Line, shortFuncName(frame.Function)))
		if code := sourceLine(frame.File, frame.Line); code != emptyString {
			lines = append(lines, "    "+code)
		}
	}
	lines = append(lines, "\n"+header)
	return strings.Join(lines, "\n")
}

// FormatExceptionForLogging renders err for a log record: a summary line,
// Location and Code lines when the origin is known, the full traceback, and
// the supplied context as sorted key=value pairs.
func FormatExceptionForLogging(err error, context map[string]any) string {
	if err == nil {
		return emptyString
	}
	record := GetExceptionContext(err)

	parts := []string{fmt.Sprintf("%s: %s", record.Kind, record.Message)}

	if record.File != emptyString {
		location := record.File
		if record.Function != emptyString {
			location += ":" + record.Function
		}
		if record.Line > 0 {
			location += ":" + strconv.Itoa(record.Line)
		}
		parts = append(parts, "Location: "+location)
	}

	if record.Code != emptyString {
		parts = append(parts, "Code: "+record.Code)
	}

	parts = append(parts, "\n"+FormatException(err, 0))

	if len(context) > 0 {
		keys := make([]string, 0, len(context))
		for k := range context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, context[k]))
		}
		parts = append(parts, "\nContext: "+strings.Join(pairs, ", "))
	}

	return strings.Join(parts, "\n")
}

// errorKind resolves the machine-readable kind of err: the first Kind()
// along the unwrap chain, else the dynamic type name stripped of pointer
// and package qualifiers.
func errorKind(err error) string {
	probe := err
	for depth := 0; probe != nil && depth < maxChainDepth; depth++ {
		if kinder, ok := probe.(interface{ Kind() string }); ok {
			if kind := kinder.Kind(); kind != emptyString {
				return kind
			}
		}
		probe = errors.Unwrap(probe)
	}
	return typeName(err)
}

// stackFrames returns the first captured stack along the unwrap chain.
func stackFrames(err error) []Frame {
	probe := err
	for depth := 0; probe != nil && depth < maxChainDepth; depth++ {
		if tracer, ok := probe.(interface{ StackTrace() []Frame }); ok {
			if frames := tracer.StackTrace(); len(frames) > 0 {
				return frames
			}
		}
		probe = errors.Unwrap(probe)
	}
	return nil
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if name := t.Name(); name != emptyString {
		return name
	}
	return t.String()
}

// shortFuncName trims a runtime function name to its package-local form,
// e.g. "github.com/acme/app.(*Server).run" becomes "(*Server).run".
func shortFuncName(full string) string {
	if idx := strings.LastIndex(full, "/"); idx >= 0 {
		full = full[idx+1:]
	}
	if idx := strings.Index(full, "."); idx >= 0 {
		full = full[idx+1:]
	}
	return full
}

// sourceLine reads the given line of a source file, trimmed. Any failure
// yields the empty string; formatting never breaks on unreadable sources.
func sourceLine(path string, line int) string {
	if path == emptyString || line <= 0 {
		return emptyString
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return emptyString
	}
	lines := strings.Split(string(content), "\n")
	if line > len(lines) {
		return emptyString
	}
	return strings.TrimSpace(lines[line-1])
}
