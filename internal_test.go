package logex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRotationMB(t *testing.T) {
	tcs := []struct {
		in   string
		want int
	}{
		{"500 MB", 500},
		{"500MB", 500},
		{"500 mb", 500},
		{"2 M", 2},
		{"1 GB", 1024},
		{"1.5 GB", 1536},
		{"2g", 2048},
		{"1024 KB", 1},
		{"100 KB", 1},
		{"10", 10},
		{"", defaultRotationMB},
		{"garbage", defaultRotationMB},
		{"0 MB", defaultRotationMB},
		{"-5 MB", defaultRotationMB},
		{"1 week", defaultRotationMB},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, parseRotationMB(tc.in), "parseRotationMB(%q)", tc.in)
	}
}

func TestParseRetentionDays(t *testing.T) {
	tcs := []struct {
		in   string
		want int
	}{
		{"10 days", 10},
		{"1 day", 1},
		{"3d", 3},
		{"1 week", 7},
		{"2 WEEKS", 14},
		{"1 month", 30},
		{"2 months", 60},
		{"36 hours", 1},
		{"12 hours", 1},
		{"48h", 2},
		{"5", 5},
		{"", defaultRetentionDays},
		{"soon", defaultRetentionDays},
		{"0 days", defaultRetentionDays},
		{"500 MB", defaultRetentionDays},
	}
	for _, tc := range tcs {
		assert.Equal(t, tc.want, parseRetentionDays(tc.in), "parseRetentionDays(%q)", tc.in)
	}
}

func TestSplitAmount(t *testing.T) {
	tcs := []struct {
		in    string
		value float64
		unit  string
		ok    bool
	}{
		{"500 MB", 500, "MB", true},
		{"500MB", 500, "MB", true},
		{"1.5gb", 1.5, "GB", true},
		{"10", 10, "", true},
		{"  7 days  ", 7, "DAYS", true},
		{"", 0, "", false},
		{"MB", 0, "", false},
		{"1 2 3", 0, "", false},
	}
	for _, tc := range tcs {
		value, unit, ok := splitAmount(tc.in)
		assert.Equal(t, tc.ok, ok, "splitAmount(%q)", tc.in)
		assert.Equal(t, tc.value, value, "splitAmount(%q)", tc.in)
		assert.Equal(t, tc.unit, unit, "splitAmount(%q)", tc.in)
	}
}

func TestTimeLayoutFromTemplate(t *testing.T) {
	tcs := map[string]struct {
		format string
		want   string
	}{
		"default template": {
			DefaultFormat,
			"2006-01-02 15:04:05",
		},
		"date only": {
			"{time:YYYY-MM-DD}",
			"2006-01-02",
		},
		"fractional seconds": {
			"{time:HH:mm:ss.SSS}",
			"15:04:05.000",
		},
		"microseconds": {
			"{time:HH:mm:ss.SSSSSS}",
			"15:04:05.000000",
		},
		"embedded in markup": {
			"<green>{time:YYYY/MM/DD}</green> | {message}",
			"2006/01/02",
		},
		"no time token": {
			"{level} {message}",
			"2006-01-02 15:04:05",
		},
		"unclosed token": {
			"{time:YYYY-MM",
			"2006-01-02 15:04:05",
		},
		"empty token": {
			"{time:}",
			"2006-01-02 15:04:05",
		},
		"empty format": {
			"",
			"2006-01-02 15:04:05",
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, timeLayoutFromTemplate(tc.format))
		})
	}
}

func TestSeverityOrDefault(t *testing.T) {
	assert.Equal(t, SeverityDebug, severityOrDefault("debug", SeverityInfo))
	assert.Equal(t, SeverityInfo, severityOrDefault("", SeverityInfo))
	assert.Equal(t, SeverityWarning, severityOrDefault("bogus", SeverityWarning))
}