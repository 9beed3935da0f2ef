package logex

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogEvent_FieldRendering(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	tcs := map[string]struct {
		build func(e LogEvent) LogEvent
		want  string
	}{
		"str": {
			func(e LogEvent) LogEvent { return e.Str("user", "alice") },
			"m | user=alice",
		},
		"str with space is quoted": {
			func(e LogEvent) LogEvent { return e.Str("path", "/var/my dir") },
			`m | path="/var/my dir"`,
		},
		"empty value is quoted": {
			func(e LogEvent) LogEvent { return e.Str("blank", "") },
			`m | blank=""`,
		},
		"strs": {
			func(e LogEvent) LogEvent { return e.Strs("hosts", []string{"a", "b"}) },
			"m | hosts=[a,b]",
		},
		"int": {
			func(e LogEvent) LogEvent { return e.Int("count", -3) },
			"m | count=-3",
		},
		"int64": {
			func(e LogEvent) LogEvent { return e.Int64("offset", 1<<40) },
			"m | offset=1099511627776",
		},
		"uint": {
			func(e LogEvent) LogEvent { return e.Uint("port", 8080) },
			"m | port=8080",
		},
		"uint64": {
			func(e LogEvent) LogEvent { return e.Uint64("id", 18446744073709551615) },
			"m | id=18446744073709551615",
		},
		"float64": {
			func(e LogEvent) LogEvent { return e.Float64("ratio", 2.5) },
			"m | ratio=2.5",
		},
		"bool": {
			func(e LogEvent) LogEvent { return e.Bool("active", true) },
			"m | active=true",
		},
		"time": {
			func(e LogEvent) LogEvent { return e.Time("at", ts) },
			"m | at=2026-01-02T15:04:05Z",
		},
		"dur": {
			func(e LogEvent) LogEvent { return e.Dur("took", 1500*time.Millisecond) },
			"m | took=1.5s",
		},
		"interface": {
			func(e LogEvent) LogEvent { return e.Interface("pair", struct{ A, B int }{1, 2}) },
			`m | pair="{1 2}"`,
		},
		"fields chain in order": {
			func(e LogEvent) LogEvent { return e.Str("a", "1").Int("b", 2).Bool("c", false) },
			"m | a=1 b=2 c=false",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			svc, rec := newTestService(t)
			tc.build(svc.InfoWith()).Msg("m")
			assert.Equal(t, tc.want, rec.last(t).message)
		})
	}
}

func TestLogEvent_Err(t *testing.T) {
	t.Run("single error renders one field", func(t *testing.T) {
		svc, rec := newTestService(t)
		svc.ErrorWith().Err(errors.New("refused")).Msg("boom")
		assert.Equal(t, "boom | error=refused", rec.last(t).message)
	})

	t.Run("wrapped error carries history and root", func(t *testing.T) {
		svc, rec := newTestService(t)
		inner := NewError("ConnectionError", "connection refused")
		outer := WrapError(inner, "io", "reading failed")

		svc.ErrorWith().Err(outer).Msg("boom")

		assert.Equal(t,
			`boom | error="reading failed: connection refused"`+
				` error_history="reading failed: connection refused -> connection refused"`+
				` error_root="connection refused"`+
				` error_root_kind=ConnectionError`,
			rec.last(t).message)
	})

	t.Run("plain chains omit the root kind", func(t *testing.T) {
		svc, rec := newTestService(t)
		wrapped := fmt.Errorf("wrap: %w", errors.New("bottom"))

		svc.ErrorWith().Err(wrapped).Msg("boom")

		assert.Equal(t,
			`boom | error="wrap: bottom" error_history="wrap: bottom -> bottom" error_root=bottom`,
			rec.last(t).message)
	})

	t.Run("anerr uses the given key", func(t *testing.T) {
		svc, rec := newTestService(t)
		svc.WarnWith().AnErr("cause", errors.New("slow disk")).Msg("degraded")
		assert.Equal(t, `degraded | cause="slow disk"`, rec.last(t).message)
	})

	t.Run("nil errors add nothing", func(t *testing.T) {
		svc, rec := newTestService(t)
		svc.ErrorWith().Err(nil).AnErr("cause", nil).Msg("boom")
		assert.Equal(t, "boom", rec.last(t).message)
	})
}

func TestLogEvent_Emission(t *testing.T) {
	t.Run("message without fields passes through", func(t *testing.T) {
		svc, rec := newTestService(t)
		svc.InfoWith().Msg("bare")
		assert.Equal(t, "bare", rec.last(t).message)
	})

	t.Run("empty message with fields renders fields only", func(t *testing.T) {
		svc, rec := newTestService(t)
		svc.InfoWith().Str("k", "v").Msg("")
		assert.Equal(t, "k=v", rec.last(t).message)
	})

	t.Run("msgf formats", func(t *testing.T) {
		svc, rec := newTestService(t)
		svc.InfoWith().Int("n", 1).Msgf("try %d of %d", 2, 3)
		assert.Equal(t, "try 2 of 3 | n=1", rec.last(t).message)
	})

	t.Run("send is an empty message", func(t *testing.T) {
		svc, rec := newTestService(t)
		svc.InfoWith().Send()
		assert.Equal(t, "", rec.last(t).message)
	})

	t.Run("zero event is inert", func(t *testing.T) {
		assert.NotPanics(t, func() {
			e := &logEvent{}
			e.Str("k", "v").Int("n", 1).Err(errors.New("x")).Msg("dropped")
			e.Send()
		})
	})
}

func TestNeedsQuote(t *testing.T) {
	tcs := []struct {
		in   string
		want bool
	}{
		{"plain-123_ok", false},
		{"/var/log/app.log", false},
		{"", true},
		{"has space", true},
		{"tab\there", true},
		{"a=b", true},
		{`say "hi"`, true},
		{`back\slash`, true},
		{"naïve", true},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, needsQuote(tc.in), "needsQuote(%q)", tc.in)
	}
}

func TestRenderField(t *testing.T) {
	assert.Equal(t, "k=v", renderField("k", "v"))
	assert.Equal(t, `k="two words"`, renderField("k", "two words"))
	assert.Equal(t, `k="line\nbreak"`, renderField("k", "line\nbreak"))
}