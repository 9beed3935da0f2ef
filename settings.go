package logex

import (
	"fmt"
	"strings"
)

// RawConfig is a parsed configuration document. A missing or empty file is
// represented as an empty map, never nil dereference territory.
type RawConfig = map[string]any

// LoggerSettings is the fully resolved logger configuration. Every field has
// a value after merging; absent raw keys are filled from the built-in
// defaults field by field.
type LoggerSettings struct {
	File        string          `yaml:"file"`
	Level       string          `yaml:"level"       validate:"required,oneof=TRACE DEBUG INFO SUCCESS WARNING ERROR CRITICAL"`
	Rotation    string          `yaml:"rotation"`
	Retention   string          `yaml:"retention"`
	Compression string          `yaml:"compression"`
	Format      string          `yaml:"format"      validate:"required"`
	Console     ConsoleSettings `yaml:"console"`
}

// ConsoleSettings controls the console sink. It merges key by key: a partial
// override keeps the defaults for the keys it does not mention.
type ConsoleSettings struct {
	Enabled  bool   `yaml:"enabled"`
	Level    string `yaml:"level"    validate:"required,oneof=TRACE DEBUG INFO SUCCESS WARNING ERROR CRITICAL"`
	Colorize bool   `yaml:"colorize"`
}

// mergeLoggerSettings resolves the logger section of a raw document over the
// built-in defaults. A present, non-nil raw key wins; console merges key by
// key; a console value that is not a mapping is ignored wholesale. Level
// strings canonicalize to upper case and the {script_name} placeholder in
// File is substituted after the merge.
func mergeLoggerSettings(section map[string]any, scriptName string) LoggerSettings {
	settings := DefaultSettings()
	if v, ok := stringValue(section, "file"); ok {
		settings.File = v
	}
	if v, ok := stringValue(section, "level"); ok {
		settings.Level = strings.ToUpper(v)
	}
	if v, ok := stringValue(section, "rotation"); ok {
		settings.Rotation = v
	}
	if v, ok := stringValue(section, "retention"); ok {
		settings.Retention = v
	}
	if v, ok := stringValue(section, "compression"); ok {
		settings.Compression = v
	}
	if v, ok := stringValue(section, "format"); ok {
		settings.Format = v
	}
	if console, ok := mappingValue(section, "console"); ok {
		if v, ok := boolValue(console, "enabled"); ok {
			settings.Console.Enabled = v
		}
		if v, ok := stringValue(console, "level"); ok {
			settings.Console.Level = strings.ToUpper(v)
		}
		if v, ok := boolValue(console, "colorize"); ok {
			settings.Console.Colorize = v
		}
	}
	settings.File = strings.ReplaceAll(settings.File, ScriptNamePlaceholder, scriptName)
	return settings
}

// loggerSection extracts the logger mapping from a raw document. Missing or
// non-mapping sections yield an empty map so merging falls through to pure
// defaults.
func loggerSection(config RawConfig) map[string]any {
	if config == nil {
		return map[string]any{}
	}
	if section, ok := mappingValue(config, "logger"); ok {
		return section
	}
	return map[string]any{}
}

func stringValue(m map[string]any, key string) (string, bool) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return emptyString, false
	}
	if s, ok := raw.(string); ok {
		return s, true
	}
	return fmt.Sprint(raw), true
}

func boolValue(m map[string]any, key string) (bool, bool) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return false, false
	}
	b, ok := raw.(bool)
	return b, ok
}

func mappingValue(m map[string]any, key string) (map[string]any, bool) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, false
	}
	nested, ok := raw.(map[string]any)
	return nested, ok
}
