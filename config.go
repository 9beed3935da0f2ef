package logex

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// ConfigManager locates, loads and caches the logging configuration.
//
// Reads are safe for concurrent use. Reconfiguration (Load, Reset) assumes a
// single writer at a time; serializing writers is a caller responsibility.
type ConfigManager struct {
	// WorkDir is the base directory for discovery. Empty means the current
	// working directory.
	WorkDir string

	// ScriptName overrides the {script_name} substitution. Empty means the
	// running executable's name.
	ScriptName string

	// HomeDirName is the per-user config directory name under $HOME.
	// Empty means DefaultHomeDirName.
	HomeDirName string

	mu         sync.RWMutex
	config     RawConfig
	configPath string
	loaded     bool
}

// Discover locates a config file without loading it. Tiers, in order:
//
//  1. The EnvConfig environment variable. When set, the file must exist;
//     a missing file returns ConfigNotFoundError. This is the only tier
//     that fails this way.
//  2. Walking up from WorkDir, searching at most MaxWalkUpLevels directories.
//  3. The common locations from CommonConfigLocations.
//  4. Synthesis: the default template is written to WorkDir and that path
//     returned. Directory-creation and write failures surface as I/O
//     errors.
//
// The environment variable is read on every call, never cached.
func (m *ConfigManager) Discover() (string, error) {
	if override := os.Getenv(EnvConfig); override != emptyString {
		if info, err := os.Stat(override); err == nil && info.Mode().IsRegular() {
			return override, nil
		}
		return emptyString, &ConfigNotFoundError{Path: override}
	}

	start := m.workDir()
	if path, ok := WalkUpFindFile(ConfigFilename, start, MaxWalkUpLevels); ok {
		return path, nil
	}

	for _, candidate := range commonConfigLocations(start, ConfigFilename, m.homeDirName()) {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}

	return m.synthesizeDefault()
}

// synthesizeDefault writes the default template into WorkDir and returns
// its path. Directory-creation and write failures surface as I/O errors.
func (m *ConfigManager) synthesizeDefault() (string, error) {
	path := filepath.Join(m.workDir(), ConfigFilename)
	content := DefaultConfigTemplate(m.scriptName())
	if err := EnsureParentDir(path); err != nil {
		return emptyString, WrapErrorf(err, "io", "creating config directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return emptyString, WrapErrorf(err, "io", "writing default config %s", path)
	}
	return path, nil
}

// Load reads and caches the config at path. An empty path triggers
// discovery. A non-empty path clears the cache before reading, so a failed
// explicit load leaves the manager unloaded rather than serving stale data.
// The cache updates only on success.
//
// A missing explicit file surfaces the wrapped OS error, not
// ConfigNotFoundError; that type is reserved for the environment tier.
// Malformed content returns ConfigParseError.
func (m *ConfigManager) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked(path)
}

func (m *ConfigManager) loadLocked(path string) error {
	if path == emptyString {
		discovered, err := m.Discover()
		if err != nil {
			return err
		}
		path = discovered
	} else {
		m.config = nil
		m.configPath = emptyString
		m.loaded = false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return WrapErrorf(err, "io", "reading config file %s", path)
	}
	parsed, err := parseConfig(path, content)
	if err != nil {
		return err
	}

	m.config = parsed
	m.configPath = path
	m.loaded = true
	return nil
}

// parseConfig deserializes config content by file extension: .toml parses as
// TOML, everything else as YAML. Blank content is an empty document, not a
// parse failure.
func parseConfig(path string, content []byte) (RawConfig, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return RawConfig{}, nil
	}
	var parsed RawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(content, &parsed); err != nil {
			return nil, &ConfigParseError{Path: path, Err: err}
		}
	default:
		if err := yaml.Unmarshal(content, &parsed); err != nil {
			return nil, &ConfigParseError{Path: path, Err: err}
		}
	}
	if parsed == nil {
		parsed = RawConfig{}
	}
	return parsed, nil
}

// Config returns the cached document, loading it via discovery on first use.
func (m *ConfigManager) Config() (RawConfig, error) {
	m.mu.RLock()
	if m.loaded {
		defer m.mu.RUnlock()
		return m.config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		return m.config, nil
	}
	if err := m.loadLocked(emptyString); err != nil {
		return nil, err
	}
	return m.config, nil
}

// LoggerConfig resolves the logger section over the built-in defaults.
func (m *ConfigManager) LoggerConfig() (LoggerSettings, error) {
	config, err := m.Config()
	if err != nil {
		return LoggerSettings{}, err
	}
	return mergeLoggerSettings(loggerSection(config), m.scriptName()), nil
}

// ConfigPath returns the path of the active config file. It is empty before
// the first successful load.
func (m *ConfigManager) ConfigPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configPath
}

// Reset drops the cache. The next access discovers again.
func (m *ConfigManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = nil
	m.configPath = emptyString
	m.loaded = false
}

func (m *ConfigManager) workDir() string {
	if m.WorkDir != emptyString {
		return m.WorkDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (m *ConfigManager) scriptName() string {
	if m.ScriptName != emptyString {
		return m.ScriptName
	}
	return ScriptName()
}

func (m *ConfigManager) homeDirName() string {
	if m.HomeDirName != emptyString {
		return m.HomeDirName
	}
	return DefaultHomeDirName
}
