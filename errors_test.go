package logex

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracedError(t *testing.T) {
	t.Run("new carries kind and message", func(t *testing.T) {
		err := NewError("ValueError", "bad input")
		assert.Equal(t, "bad input", err.Error())
		assert.Equal(t, "ValueError", err.Kind())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("newf formats", func(t *testing.T) {
		err := NewErrorf("ValueError", "bad input %d", 7)
		assert.Equal(t, "bad input 7", err.Error())
	})

	t.Run("wrap chains the cause", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := WrapError(inner, "io", "reading failed")

		assert.Equal(t, "reading failed: connection refused", err.Error())
		assert.Equal(t, "io", err.Kind())
		assert.ErrorIs(t, err, inner)
	})

	t.Run("wrapf formats", func(t *testing.T) {
		err := WrapErrorf(errors.New("refused"), "io", "dial %s", "db:5432")
		assert.Equal(t, "dial db:5432: refused", err.Error())
	})

	t.Run("wrapping nil returns nil", func(t *testing.T) {
		assert.Nil(t, WrapError(nil, "io", "ignored"))
		assert.Nil(t, WrapErrorf(nil, "io", "ignored %d", 1))
	})

	t.Run("captures the construction stack", func(t *testing.T) {
		err := NewError("ValueError", "boom")
		frames := err.StackTrace()

		require.NotEmpty(t, frames)
		assert.LessOrEqual(t, len(frames), MaxStackFrames)

		// Frames are outermost first, so the construction site is last.
		site := frames[len(frames)-1]
		assert.Contains(t, site.Function, "TestTracedError")
		assert.Contains(t, site.File, "errors_test.go")
		assert.Positive(t, site.Line)
	})
}

func TestConfigErrors(t *testing.T) {
	t.Run("not found names the path", func(t *testing.T) {
		err := &ConfigNotFoundError{Path: "/etc/app/logging.yaml"}
		assert.Equal(t, "config file not found: /etc/app/logging.yaml", err.Error())
	})

	t.Run("parse error wraps the cause", func(t *testing.T) {
		cause := errors.New("yaml: line 3: mapping values are not allowed")
		err := &ConfigParseError{Path: "logging.yaml", Err: cause}

		assert.Equal(t, "config file logging.yaml is malformed: yaml: line 3: mapping values are not allowed", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("wrapped os errors stay inspectable", func(t *testing.T) {
		err := WrapErrorf(os.ErrNotExist, "io", "reading config file %s", "x.yaml")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestBuildErrorChain(t *testing.T) {
	t.Run("traced chain", func(t *testing.T) {
		inner := NewError("ConnectionError", "dial tcp 127.0.0.1:5432: connect: connection refused")
		middle := WrapError(inner, "DatabaseError", "failed to connect to database")
		outer := WrapError(middle, "StartupError", "startup failed")

		chain, kinds, root, rootKind := buildErrorChain(outer)

		assert.Equal(t, []string{
			"startup failed: failed to connect to database: dial tcp 127.0.0.1:5432: connect: connection refused",
			"failed to connect to database: dial tcp 127.0.0.1:5432: connect: connection refused",
			"dial tcp 127.0.0.1:5432: connect: connection refused",
		}, chain)
		assert.Equal(t, []string{"StartupError", "DatabaseError", "ConnectionError"}, kinds)
		assert.Equal(t, "dial tcp 127.0.0.1:5432: connect: connection refused", root)
		assert.Equal(t, "ConnectionError", rootKind)
	})

	t.Run("std chain has empty kinds", func(t *testing.T) {
		wrapped := fmt.Errorf("wrap: %w", errors.New("bottom"))

		chain, kinds, root, rootKind := buildErrorChain(wrapped)

		assert.Equal(t, []string{"wrap: bottom", "bottom"}, chain)
		assert.Equal(t, []string{"", ""}, kinds)
		assert.Equal(t, "bottom", root)
		assert.Empty(t, rootKind)
	})

	t.Run("mixed chain keeps traced kinds", func(t *testing.T) {
		traced := NewError("ValueError", "bad input")
		wrapped := fmt.Errorf("handler: %w", traced)

		_, kinds, _, rootKind := buildErrorChain(wrapped)
		assert.Equal(t, []string{"", "ValueError"}, kinds)
		assert.Equal(t, "ValueError", rootKind)
	})

	t.Run("nil yields an empty chain", func(t *testing.T) {
		chain, kinds, root, rootKind := buildErrorChain(nil)
		assert.Empty(t, chain)
		assert.Empty(t, kinds)
		assert.Empty(t, root)
		assert.Empty(t, rootKind)
	})

	t.Run("self-referential errors terminate", func(t *testing.T) {
		chain, _, root, _ := buildErrorChain(&loopError{})
		assert.Equal(t, []string{"loop"}, chain)
		assert.Equal(t, "loop", root)
	})

	t.Run("depth is bounded", func(t *testing.T) {
		err := errors.New("level 0")
		for i := 1; i < maxChainDepth+10; i++ {
			err = fmt.Errorf("level %d: %w", i, err)
		}
		chain, _, _, _ := buildErrorChain(err)
		assert.Len(t, chain, maxChainDepth)
	})
}

type loopError struct{}

func (e *loopError) Error() string { return "loop" }
func (e *loopError) Unwrap() error { return e }

func TestJoinChain(t *testing.T) {
	assert.Empty(t, joinChain(nil))
	assert.Equal(t, "only", joinChain([]string{"only"}))
	assert.Equal(t, "a -> b -> c", joinChain([]string{"a", "b", "c"}))
}