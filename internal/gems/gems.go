// SPDX-License-Identifier: MPL-2.0

// Package gems derives the gem-home and bundler shim paths for a selected
// Ruby. One directory serves as both the install target and the only search
// root (GEM_HOME == GEM_PATH); multi-root gem search is deliberately out of
// scope.
package gems

import (
	"os"
	"path/filepath"

	"rb-cli/internal/version"
)

// DefaultBase returns the user-level gem base directory, ~/.gem. The
// versioned gem home hangs off it per runtime.
func DefaultBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gem"
	}
	return filepath.Join(home, ".gem")
}

// HomeFor returns the gem home under base for the given runtime version:
// <base>/ruby/<abi>. Compiled gems are ABI-compatible across patch releases,
// so the path is keyed on major.minor.0.
func HomeFor(base string, v version.Version) string {
	return filepath.Join(base, "ruby", v.ABI())
}

// BinDir returns the executable directory of a gem home.
func BinDir(gemHome string) string {
	return filepath.Join(gemHome, "bin")
}

// ShimDir returns the project-local bundler shim directory for projectRoot:
// <root>/.rb/vendor/bundler/ruby/<abi>/bin. Bundler installs thin executable
// wrappers there; they take precedence over globally installed gem
// executables.
func ShimDir(projectRoot string, v version.Version) string {
	return filepath.Join(projectRoot, ".rb", "vendor", "bundler", "ruby", v.ABI(), "bin")
}
