// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const (
	// AppName names the per-user config directory under os.UserConfigDir.
	AppName = "rb"
	// ConfigFileName is the config file name inside that directory.
	ConfigFileName = "rb.toml"
	// dotfileName is the cross-platform home-directory fallback.
	dotfileName = ".rb.toml"
)

// Locate finds the ambient config file. Order: the RB_CONFIG environment
// variable, then <user-config-dir>/rb/rb.toml, then ~/.rb.toml; first
// existing file wins. Absence is not an error — defaults apply.
//
// An explicitly requested path (--config flag) never goes through Locate;
// Resolve handles it directly so a missing explicit file stays fatal.
func Locate(lookupEnv func(string) (string, bool)) string {
	if path, ok := lookupEnv(EnvConfigFile); ok && path != "" {
		log.Debug("checking config path from environment", "var", EnvConfigFile, "path", path)
		if fileExists(path) {
			return path
		}
	}

	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, AppName, ConfigFileName)
		log.Debug("checking user config directory", "path", path)
		if fileExists(path) {
			return path
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, dotfileName)
		log.Debug("checking home dotfile", "path", path)
		if fileExists(path) {
			return path
		}
	}

	log.Debug("no config file found, using defaults")
	return ""
}

// fileExists reports whether path is an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
