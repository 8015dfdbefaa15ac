// SPDX-License-Identifier: MPL-2.0

// Package project detects an enclosing Ruby project next to the invocation
// directory: the dependency manifest (Gemfile or gems.rb), the .ruby-version
// pin file, the lockfile, and rbproject.toml scripts.
//
// Detection looks in the starting directory only. Project files must be
// adjacent to the invocation; there is no upward walk.
package project

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"rb-cli/internal/version"

	"github.com/charmbracelet/log"
)

// Manifest filenames in priority order, and their lockfile companions.
const (
	ManifestPrimary   = "Gemfile"
	ManifestAlternate = "gems.rb"

	lockPrimary   = "Gemfile.lock"
	lockAlternate = "gems.locked"

	// PinFileName is the one-line version marker file.
	PinFileName = ".ruby-version"
)

// rubyDeclaration matches a manifest-embedded constraint: ruby '3.2.4' or
// ruby "3.2.4".
var rubyDeclaration = regexp.MustCompile(`^ruby\s+['"]([^'"]+)['"]`)

// Context describes a detected project. Constructed fresh per invocation by
// filesystem probing; never persisted.
type Context struct {
	// Dir is the directory containing the manifest.
	Dir string
	// ManifestPath is the manifest that was found.
	ManifestPath string
	// PinnedVersion is the .ruby-version content, nil when absent or
	// unparsable.
	PinnedVersion *version.Version
	// ManifestVersion is the constraint embedded in the manifest body, nil
	// when absent or unparsable.
	ManifestVersion *version.Version
	// HasLockfile reports whether the manifest-adjacent lockfile exists.
	HasLockfile bool
}

// Detect probes startDir for a project. Returns nil (no error) when no
// manifest is present; a manifest that cannot be read degrades to nil with a
// warning, never an error.
func Detect(startDir string) *Context {
	for _, name := range []string{ManifestPrimary, ManifestAlternate} {
		manifest := filepath.Join(startDir, name)
		info, err := os.Stat(manifest)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		log.Debug("found project manifest", "path", manifest)
		ctx := &Context{Dir: startDir, ManifestPath: manifest}

		body, err := os.ReadFile(manifest)
		if err != nil {
			log.Warn("cannot read project manifest, ignoring project", "path", manifest, "err", err)
			return nil
		}
		ctx.ManifestVersion = manifestRubyVersion(string(body))
		ctx.PinnedVersion = readPinFile(filepath.Join(startDir, PinFileName))

		lock := lockPrimary
		if name == ManifestAlternate {
			lock = lockAlternate
		}
		if _, err := os.Stat(filepath.Join(startDir, lock)); err == nil {
			ctx.HasLockfile = true
		}

		return ctx
	}

	log.Debug("no project manifest found", "dir", startDir)
	return nil
}

// RequestedVersion returns the project's requested Ruby version. The pin
// file wins over the manifest-embedded constraint.
func (c *Context) RequestedVersion() *version.Version {
	if c == nil {
		return nil
	}
	if c.PinnedVersion != nil {
		return c.PinnedVersion
	}
	return c.ManifestVersion
}

// NeedsSync reports whether the project's dependencies look unsynchronized:
// a manifest without its lockfile. Synchronization itself (bundle install)
// is the package manager's job, not rb's.
func (c *Context) NeedsSync() bool {
	return c != nil && !c.HasLockfile
}

// manifestRubyVersion extracts a `ruby 'X.Y.Z'` declaration from the
// manifest body. Unparsable declarations are logged and dropped.
func manifestRubyVersion(body string) *version.Version {
	for _, line := range strings.Split(body, "\n") {
		m := rubyDeclaration.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		v, err := version.Parse(m[1])
		if err != nil {
			log.Warn("ignoring unparsable ruby declaration in manifest", "value", m[1])
			return nil
		}
		return &v
	}
	return nil
}

// readPinFile reads a one-line .ruby-version file. Absence and parse
// failures both yield nil.
func readPinFile(path string) *version.Version {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	text := strings.TrimSpace(string(content))
	// Tolerate a "ruby-" prefix, written by some version managers.
	text = strings.TrimPrefix(text, "ruby-")
	v, err := version.Parse(text)
	if err != nil {
		log.Warn("ignoring unparsable version pin", "path", path, "value", text)
		return nil
	}
	return &v
}
