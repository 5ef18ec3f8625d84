// Package taskdir provides constants and naming rules for the task directory.
package taskdir

import (
	"path/filepath"
	"strings"
)

const (
	// Ext is the extension a file must carry to be treated as a task.
	// The match is case-sensitive.
	Ext = ".txt"

	// DefaultDir is the task directory used when none is configured.
	DefaultDir = "."

	// ConfigFile is the preferred project config file name.
	ConfigFile = "tasker.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".tasker.toml"

	// UserDir is the per-user state directory under $HOME.
	UserDir = ".tasker"
)

// IsTaskFile reports whether name is an eligible task file name.
// Dotfiles such as ".txt" have no stem and are not tasks.
func IsTaskFile(name string) bool {
	if filepath.Ext(name) != Ext {
		return false
	}
	return Stem(name) != ""
}

// Stem returns name without its task extension.
func Stem(name string) string {
	return strings.TrimSuffix(filepath.Base(name), Ext)
}

// Path returns the location of name inside dir.
func Path(dir, name string) string {
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, name)
}

// UserConfigPath returns the user-level config path under home.
func UserConfigPath(home string) string {
	return filepath.Join(home, UserDir, ConfigFile)
}
