package logex

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultQueueSize         = 1024
	defaultShutdownTimeoutMS = 5000
	defaultRotationMB        = 500
	defaultRetentionDays     = 10
)

// sinkSet is the immutable sink snapshot owned by one worker run. Re-init
// builds a fresh set, so the worker never races sink replacement.
type sinkSet struct {
	fileLogger    zerolog.Logger
	consoleLogger zerolog.Logger
	fileSev       Severity
	consoleSev    Severity
	consoleOn     bool
}

func (a *ZerologAdapter) runWorker(queue <-chan dispatchEntry, sinks sinkSet) {
	defer a.workerWg.Done()
	for entry := range queue {
		if entry.barrier != nil {
			close(entry.barrier)
			continue
		}
		sinks.emit(entry)
	}
}

func (s sinkSet) emit(entry dispatchEntry) {
	if entry.severity >= s.fileSev {
		logSinkLine(&s.fileLogger, entry)
	}
	if s.consoleOn && entry.severity >= s.consoleSev {
		logSinkLine(&s.consoleLogger, entry)
	}
}

// logSinkLine emits one record through zerolog. WithLevel never exits the
// process, so CRITICAL maps onto fatal rendering without fatal behavior.
// SUCCESS has no zerolog counterpart and keeps its tag as a field.
func logSinkLine(logger *zerolog.Logger, entry dispatchEntry) {
	event := logger.WithLevel(zerologLevel(entry.severity))
	if entry.severity == SeveritySuccess {
		event = event.Str("severity", "SUCCESS")
	}
	event.Msg(entry.message)
}

// buildFileWriter resolves the log file path and constructs the rolling
// writer. The file is probe-opened once so permission and directory errors
// surface at configure time instead of on the first asynchronous write.
func (a *ZerologAdapter) buildFileWriter(settings LoggerSettings) (*lumberjack.Logger, error) {
	path := settings.File
	if path == emptyString {
		path = "app.log"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.workDir(), path)
	}
	if err := EnsureParentDir(path); err != nil {
		return nil, WrapErrorf(err, "io", "creating log directory for %s", path)
	}
	probe, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, WrapErrorf(err, "io", "opening log file %s", path)
	}
	_ = probe.Close()

	return &lumberjack.Logger{
		Filename: path,
		MaxSize:  parseRotationMB(settings.Rotation),
		MaxAge:   parseRetentionDays(settings.Retention),
		Compress: settings.Compression != emptyString,
	}, nil
}

func (a *ZerologAdapter) workDir() string {
	if a.WorkDir != emptyString {
		return a.WorkDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// newSinkSet builds the zerolog pipeline: a non-colorized console writer on
// the rolling file and, when enabled, a console writer on consoleOut with
// color gated on the colorize setting and TTY detection.
func newSinkSet(fileWriter *lumberjack.Logger, consoleOut io.Writer, settings LoggerSettings) sinkSet {
	layout := timeLayoutFromTemplate(settings.Format)

	fileConsole := zerolog.ConsoleWriter{Out: fileWriter, NoColor: true, TimeFormat: layout}
	set := sinkSet{
		fileLogger: zerolog.New(fileConsole).With().Timestamp().Logger(),
		fileSev:    severityOrDefault(settings.Level, SeverityInfo),
	}

	if settings.Console.Enabled {
		noColor := !settings.Console.Colorize
		if f, ok := consoleOut.(*os.File); ok {
			if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
				noColor = true
			}
		} else {
			noColor = true
		}
		console := zerolog.ConsoleWriter{Out: consoleOut, NoColor: noColor, TimeFormat: layout}
		set.consoleLogger = zerolog.New(console).With().Timestamp().Logger()
		set.consoleSev = severityOrDefault(settings.Console.Level, SeverityInfo)
		set.consoleOn = true
	}
	return set
}

func severityOrDefault(level string, fallback Severity) Severity {
	sev, err := ParseSeverity(level)
	if err != nil {
		return fallback
	}
	return sev
}

// parseRotationMB converts a human-readable rotation threshold to whole
// megabytes for the rolling writer. Size units KB, MB and GB are honored;
// time-based thresholds and unparseable input fall back to the default.
func parseRotationMB(rotation string) int {
	value, unit, ok := splitAmount(rotation)
	if !ok || value <= 0 {
		return defaultRotationMB
	}
	var mb float64
	switch unit {
	case "KB":
		mb = value / 1024
	case "MB", "M", emptyString:
		mb = value
	case "GB", "G":
		mb = value * 1024
	default:
		return defaultRotationMB
	}
	if mb < 1 {
		return 1
	}
	return int(mb)
}

// parseRetentionDays converts a human-readable retention window to whole
// days. Unparseable input falls back to the default.
func parseRetentionDays(retention string) int {
	value, unit, ok := splitAmount(retention)
	if !ok || value <= 0 {
		return defaultRetentionDays
	}
	var days float64
	switch unit {
	case "DAY", "DAYS", "D", emptyString:
		days = value
	case "WEEK", "WEEKS", "W":
		days = value * 7
	case "MONTH", "MONTHS":
		days = value * 30
	case "HOUR", "HOURS", "H":
		days = value / 24
	default:
		return defaultRetentionDays
	}
	if days < 1 {
		return 1
	}
	return int(days)
}

// splitAmount splits strings like "500 MB", "500MB" or "10" into a numeric
// value and an upper-cased unit.
func splitAmount(s string) (float64, string, bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	var numPart, unitPart string
	switch len(fields) {
	case 1:
		numPart = fields[0]
		for i, r := range numPart {
			if (r < '0' || r > '9') && r != '.' {
				unitPart = numPart[i:]
				numPart = numPart[:i]
				break
			}
		}
	case 2:
		numPart, unitPart = fields[0], fields[1]
	default:
		return 0, emptyString, false
	}
	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, emptyString, false
	}
	return value, strings.ToUpper(strings.TrimSpace(unitPart)), true
}

// timeLayoutFromTemplate derives the sink timestamp layout from the
// {time:...} token of a format template. Missing or unrecognized tokens
// fall back to the default layout.
func timeLayoutFromTemplate(format string) string {
	const fallback = "2006-01-02 15:04:05"
	start := strings.Index(format, "{time:")
	if start < 0 {
		return fallback
	}
	rest := format[start+len("{time:"):]
	end := strings.Index(rest, "}")
	if end < 0 {
		return fallback
	}
	pattern := rest[:end]
	layout := strings.NewReplacer(
		"YYYY", "2006",
		"MM", "01",
		"DD", "02",
		"HH", "15",
		"mm", "04",
		"ss", "05",
		"SSSSSS", "000000",
		"SSS", "000",
	).Replace(pattern)
	if layout == emptyString || strings.ContainsAny(layout, "{}") {
		return fallback
	}
	return layout
}
