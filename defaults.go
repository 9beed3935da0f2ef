package logex

import "strings"

// ScriptNamePlaceholder is the literal token substituted with the running
// script's name in file paths and templates.
const ScriptNamePlaceholder = "{script_name}"

// DefaultFormat is the line template applied when the config file does not
// specify one. The {time:...} portion also drives the sink timestamp layout.
const DefaultFormat = "<green>{time:YYYY-MM-DD HH:mm:ss}</green> | <level>{level: <8}</level> | <cyan>{name}</cyan>:<cyan>{function}</cyan>:<cyan>{line}</cyan> - <level>{message}</level>"

const defaultConfigTemplate = `# logex Configuration File
# Auto-generated - modify as needed

logger:
  file: "{script_name}.log"
  level: "INFO"
  rotation: "500 MB"
  retention: "10 days"
  compression: "zip"
  format: "<green>{time:YYYY-MM-DD HH:mm:ss}</green> | <level>{level: <8}</level> | <cyan>{name}</cyan>:<cyan>{function}</cyan>:<cyan>{line}</cyan> - <level>{message}</level>"

  console:
    enabled: true
    level: "INFO"
`

// DefaultSettings returns the built-in logger defaults. The File field keeps
// the {script_name} placeholder; substitution happens after merging.
func DefaultSettings() LoggerSettings {
	return LoggerSettings{
		File:        "{script_name}.log",
		Level:       "INFO",
		Rotation:    "500 MB",
		Retention:   "10 days",
		Compression: "zip",
		Format:      DefaultFormat,
		Console: ConsoleSettings{
			Enabled:  true,
			Level:    "INFO",
			Colorize: true,
		},
	}
}

// DefaultConfigTemplate renders the default YAML config file content with
// the script name substituted. An empty name falls back to "app".
func DefaultConfigTemplate(scriptName string) string {
	if scriptName == emptyString {
		scriptName = "app"
	}
	return strings.ReplaceAll(defaultConfigTemplate, ScriptNamePlaceholder, scriptName)
}
