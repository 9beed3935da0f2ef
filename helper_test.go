package logex

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "TRACE", SeverityTrace.String())
	assert.Equal(t, "DEBUG", SeverityDebug.String())
	assert.Equal(t, "INFO", SeverityInfo.String())
	assert.Equal(t, "SUCCESS", SeveritySuccess.String())
	assert.Equal(t, "WARNING", SeverityWarning.String())
	assert.Equal(t, "ERROR", SeverityError.String())
	assert.Equal(t, "CRITICAL", SeverityCritical.String())
	assert.Equal(t, "UNKNOWN", Severity(42).String())
}

func TestSeverityOrdering(t *testing.T) {
	// The numeric order is what sink filtering relies on.
	assert.True(t, SeverityTrace < SeverityDebug)
	assert.True(t, SeverityDebug < SeverityInfo)
	assert.True(t, SeverityInfo < SeveritySuccess)
	assert.True(t, SeveritySuccess < SeverityWarning)
	assert.True(t, SeverityWarning < SeverityError)
	assert.True(t, SeverityError < SeverityCritical)
}

func TestParseSeverity(t *testing.T) {
	tcs := []struct {
		in   string
		want Severity
	}{
		{"TRACE", SeverityTrace},
		{"debug", SeverityDebug},
		{"Info", SeverityInfo},
		{"SUCCESS", SeveritySuccess},
		{"warning", SeverityWarning},
		{"WARN", SeverityWarning},
		{"error", SeverityError},
		{"CRITICAL", SeverityCritical},
		{"fatal", SeverityCritical},
		{"  info  ", SeverityInfo},
	}
	for _, tc := range tcs {
		got, err := ParseSeverity(tc.in)
		require.NoError(t, err, "ParseSeverity(%q)", tc.in)
		assert.Equal(t, tc.want, got, "ParseSeverity(%q)", tc.in)
	}

	t.Run("unknown levels default to info with an error", func(t *testing.T) {
		got, err := ParseSeverity("LOUD")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown level "LOUD"`)
		assert.Equal(t, SeverityInfo, got)
	})
}

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, zerologLevel(SeverityTrace))
	assert.Equal(t, zerolog.DebugLevel, zerologLevel(SeverityDebug))
	assert.Equal(t, zerolog.InfoLevel, zerologLevel(SeverityInfo))
	assert.Equal(t, zerolog.InfoLevel, zerologLevel(SeveritySuccess))
	assert.Equal(t, zerolog.WarnLevel, zerologLevel(SeverityWarning))
	assert.Equal(t, zerolog.ErrorLevel, zerologLevel(SeverityError))
	assert.Equal(t, zerolog.FatalLevel, zerologLevel(SeverityCritical))
}

func TestExceptionSeverity(t *testing.T) {
	assert.Equal(t, SeverityDebug, exceptionSeverity("DEBUG"))
	assert.Equal(t, SeverityInfo, exceptionSeverity("info"))
	assert.Equal(t, SeverityWarning, exceptionSeverity(" WARNING "))
	assert.Equal(t, SeverityCritical, exceptionSeverity("CRITICAL"))

	// Everything else is pinned to ERROR.
	assert.Equal(t, SeverityError, exceptionSeverity("ERROR"))
	assert.Equal(t, SeverityError, exceptionSeverity("SUCCESS"))
	assert.Equal(t, SeverityError, exceptionSeverity("TRACE"))
	assert.Equal(t, SeverityError, exceptionSeverity(""))
	assert.Equal(t, SeverityError, exceptionSeverity("LOUD"))
}