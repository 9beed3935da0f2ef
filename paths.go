package logex

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ScriptName returns the stem of the running executable, used to substitute
// {script_name} in configured file names. Test binaries and failed lookups
// fall back to the caller's source file, then to "app". It never fails.
func ScriptName() string {
	if exe, err := os.Executable(); err == nil {
		base := filepath.Base(exe)
		if !strings.HasSuffix(base, ".test") {
			if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != emptyString {
				return stem
			}
		}
	}
	if _, file, _, ok := runtime.Caller(1); ok {
		base := filepath.Base(file)
		if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != emptyString {
			return stem
		}
	}
	return "app"
}

// WalkUpFindFile searches for filename in at most maxLevels directories,
// the start directory first and then one parent per step, stopping early
// at the filesystem root. It returns the absolute path of the first regular
// file hit.
func WalkUpFindFile(filename, start string, maxLevels int) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return emptyString, false
	}
	for level := 0; level < maxLevels; level++ {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return emptyString, false
}

// CommonConfigLocations returns the conventional config file locations in
// priority order as absolute paths: the working directory, its config/,
// configs/, src/config/ and .config/ subdirectories, then the per-user
// directory under $HOME. The home entry is omitted when the home directory
// cannot be resolved.
func CommonConfigLocations(filename string) []string {
	return commonConfigLocations(emptyString, filename, DefaultHomeDirName)
}

func commonConfigLocations(workDir, filename, homeDirName string) []string {
	base := workDir
	if base == emptyString {
		if wd, err := os.Getwd(); err == nil {
			base = wd
		} else {
			base = "."
		}
	}
	locations := make([]string, 0, 6)
	for _, rel := range []string{
		emptyString,
		"config",
		"configs",
		filepath.Join("src", "config"),
		".config",
	} {
		locations = append(locations, filepath.Join(base, rel, filename))
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, homeDirName, filename))
	}
	return locations
}

// EnsureParentDir creates the parent directory of path if it is missing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == emptyString || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, os.ModePerm)
}
