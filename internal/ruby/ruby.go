// SPDX-License-Identifier: MPL-2.0

// Package ruby discovers installed Ruby runtimes on disk and selects one.
//
// A runtime installation is a directory named "ruby-X.Y.Z" directly under the
// rubies root, containing bin/ruby (bin/ruby.exe on Windows). The catalog is
// rebuilt on every invocation; the filesystem is the source of truth.
package ruby

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"rb-cli/internal/platform"
	"rb-cli/internal/version"
)

const (
	// dirPrefix is the recognized installation naming pattern prefix.
	dirPrefix = "ruby-"

	// interpreterName is the executable every valid installation must carry.
	interpreterName = "ruby"
)

var (
	// ErrRubiesDirMissing reports that the rubies root itself is absent or
	// unreadable. The one discovery failure that is fatal.
	ErrRubiesDirMissing = errors.New("rubies directory missing")

	// ErrRubyNotFound reports that a requested version matched no catalog
	// entry even though the root was readable.
	ErrRubyNotFound = errors.New("requested ruby not found")
)

type (
	// Installation is a validated Ruby runtime on disk.
	Installation struct {
		// Version is the parsed version from the directory name.
		Version version.Version
		// Root is the installation directory (e.g. ~/.rubies/ruby-3.2.4).
		Root string
	}

	// Catalog is an ordered set of installations, descending by version.
	Catalog []Installation

	// NotFoundError is the concrete error behind ErrRubyNotFound. It keeps
	// both the requested version and the readable root so the message tells
	// the user whether to check spelling or check installation.
	NotFoundError struct {
		Requested string
		RubiesDir string
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no ruby matching %q under %s (directory was readable; check the version spelling or install it)",
		e.Requested, e.RubiesDir)
}

// Unwrap returns ErrRubyNotFound for errors.Is detection.
func (e *NotFoundError) Unwrap() error { return ErrRubyNotFound }

// Name returns an identifier like "CRuby-3.2.4".
func (i Installation) Name() string {
	return "CRuby-" + i.Version.String()
}

// BinDir returns <root>/bin.
func (i Installation) BinDir() string {
	return filepath.Join(i.Root, "bin")
}

// Executable returns the interpreter path, <root>/bin/ruby with the platform
// executable suffix.
func (i Installation) Executable() string {
	return filepath.Join(i.BinDir(), interpreterName+platform.ExeSuffix())
}

// GemsDir returns <root>/lib/ruby/gems/<abi>. RubyGems keys the stdlib gem
// tree by ABI version (major.minor.0), not the full patch version.
func (i Installation) GemsDir() string {
	return filepath.Join(i.Root, "lib", "ruby", "gems", i.Version.ABI())
}

// Latest returns the highest-versioned installation, or false when the
// catalog is empty.
func (c Catalog) Latest() (Installation, bool) {
	if len(c) == 0 {
		return Installation{}, false
	}
	return c[0], true
}

// Versions returns the catalog's versions in catalog order.
func (c Catalog) Versions() []version.Version {
	out := make([]version.Version, len(c))
	for i, inst := range c {
		out[i] = inst.Version
	}
	return out
}

// Select picks the installation matching the requested version string, or the
// latest one when requested is empty. A requested version that matches no
// entry returns a *NotFoundError (wrapping ErrRubyNotFound); selection never
// falls back silently.
func (c Catalog) Select(requested, rubiesDir string) (Installation, error) {
	if requested == "" {
		inst, ok := c.Latest()
		if !ok {
			return Installation{}, &NotFoundError{Requested: "latest", RubiesDir: rubiesDir}
		}
		return inst, nil
	}

	want, err := version.Parse(requested)
	if err != nil {
		// Unparsable requests can still match by raw prefix, e.g. "3.2".
		return c.selectByPrefix(requested, rubiesDir)
	}

	for _, inst := range c {
		if inst.Version.Equal(want) {
			return inst, nil
		}
	}
	return Installation{}, &NotFoundError{Requested: requested, RubiesDir: rubiesDir}
}

// selectByPrefix matches "3" or "3.2" style requests against the catalog,
// taking the first (highest) entry whose version string extends the request.
func (c Catalog) selectByPrefix(requested, rubiesDir string) (Installation, error) {
	for _, inst := range c {
		s := inst.Version.String()
		if s == requested || strings.HasPrefix(s, requested+".") {
			return inst, nil
		}
	}
	return Installation{}, &NotFoundError{Requested: requested, RubiesDir: rubiesDir}
}
