package logex

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// maxChainDepth bounds error chain traversal.
const maxChainDepth = 50

// Severity is the closed set of log levels. The ordering matches the
// configuration vocabulary: a sink configured at a given level accepts that
// severity and everything above it.
type Severity int8

const (
	SeverityTrace Severity = iota - 1
	SeverityDebug
	SeverityInfo
	SeveritySuccess
	SeverityWarning
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityTrace:
		return "TRACE"
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeveritySuccess:
		return "SUCCESS"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityCritical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// ParseSeverity parses a level string, case-insensitively. Unrecognized
// input returns SeverityInfo and an error so records are not lost when the
// caller chooses to ignore the failure.
func ParseSeverity(level string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return SeverityTrace, nil
	case "DEBUG":
		return SeverityDebug, nil
	case "INFO":
		return SeverityInfo, nil
	case "SUCCESS":
		return SeveritySuccess, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "ERROR":
		return SeverityError, nil
	case "CRITICAL", "FATAL":
		return SeverityCritical, nil
	}
	return SeverityInfo, NewErrorf("level", "unknown level %q", level)
}

// zerologLevel maps a Severity onto the zerolog level used for emission.
// SUCCESS emits at info and CRITICAL at fatal; dispatch uses WithLevel, so
// fatal does not exit the process.
func zerologLevel(s Severity) zerolog.Level {
	switch s {
	case SeverityTrace:
		return zerolog.TraceLevel
	case SeverityDebug:
		return zerolog.DebugLevel
	case SeverityInfo, SeveritySuccess:
		return zerolog.InfoLevel
	case SeverityWarning:
		return zerolog.WarnLevel
	case SeverityError:
		return zerolog.ErrorLevel
	case SeverityCritical:
		return zerolog.FatalLevel
	}
	return zerolog.ErrorLevel
}

// exceptionSeverity maps a requested level string to the dispatch severity
// for exception records. Only DEBUG, INFO, WARNING and CRITICAL dispatch at
// themselves; everything else, ERROR and SUCCESS and TRACE included, falls
// back to ERROR. The fallback is a deliberate default-deny.
func exceptionSeverity(level string) Severity {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "WARNING":
		return SeverityWarning
	case "CRITICAL":
		return SeverityCritical
	}
	return SeverityError
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - kinds: the machine-readable kind per link ("" if not available)
//   - root: the innermost error message
//   - rootKind: the innermost kind if available
//
// It guards against excessive depth and repeated messages to avoid cycles.
func buildErrorChain(err error) (chain []string, kinds []string, root string, rootKind string) {
	seen := map[string]bool{}

	for depth := 0; err != nil && depth < maxChainDepth; depth++ {
		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)

		if kinder, ok := err.(interface{ Kind() string }); ok {
			kinds = append(kinds, kinder.Kind())
		} else {
			kinds = append(kinds, emptyString)
		}
		err = errors.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
		rootKind = kinds[len(kinds)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return emptyString
	}
	return strings.Join(chain, " -> ")
}
