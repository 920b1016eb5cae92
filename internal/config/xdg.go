// Package config provides XDG path helpers.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "sortednames"

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// DefaultDataDir returns the default directory holding yobYYYY.txt files.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName, "names")
}

// DefaultNamePath returns the representative year file used when none is configured.
func DefaultNamePath() string {
	return filepath.Join(DefaultDataDir(), "yob2000.txt")
}
