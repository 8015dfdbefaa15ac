// SPDX-License-Identifier: MPL-2.0

// Package version parses and orders Ruby version strings.
//
// Versions are dotted numeric triples with an optional trailing qualifier
// ("3.2.4", "3.3.0-rc1", "3.4.0.preview2"). Ordering is numeric on the
// triple; equal triples tie-break on the raw qualifier string, which means a
// release ("" qualifier) sorts before its own pre-releases. That is not
// semver precedence, but it is the documented behavior.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidVersion is the sentinel wrapped by ParseError.
var ErrInvalidVersion = errors.New("invalid ruby version")

// versionPattern matches MAJOR.MINOR.PATCH with an optional qualifier
// introduced by "-" or ".".
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:[-.]([0-9A-Za-z][0-9A-Za-z.-]*))?$`)

type (
	// Version is a parsed Ruby version. Immutable once parsed.
	Version struct {
		Major, Minor, Patch int
		// Qualifier is the trailing pre-release/build text, "" for releases.
		Qualifier string
		// source is the original unparsed text, preserved for display.
		source string
	}

	// ParseError reports a version string that does not conform to the
	// recognized format. Callers treat it as "exclude from catalog".
	ParseError struct {
		Text string
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid ruby version %q", e.Text)
}

// Unwrap returns ErrInvalidVersion for errors.Is detection.
func (e *ParseError) Unwrap() error { return ErrInvalidVersion }

// Parse parses text into a Version. Any non-conforming string returns a
// *ParseError; callers must never treat that as fatal.
func Parse(text string) (Version, error) {
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Version{}, &ParseError{Text: text}
	}

	// The pattern guarantees plain decimal digits; Atoi only fails on
	// overflow-sized components, which are malformed too.
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, &ParseError{Text: text}
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, &ParseError{Text: text}
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, &ParseError{Text: text}
	}

	return Version{
		Major:     major,
		Minor:     minor,
		Patch:     patch,
		Qualifier: m[4],
		source:    strings.TrimSpace(text),
	}, nil
}

// MustParse parses text and panics on failure. Test helper.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or +1 comparing v against other. The triple compares
// numerically; equal triples fall back to raw string collation of the
// qualifier, so "3.2.0" < "3.2.0-rc1" here. Best-effort, not semver.
func (v Version) Compare(other Version) int {
	if c := cmpInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmpInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmpInt(v.Patch, other.Patch); c != 0 {
		return c
	}
	return strings.Compare(v.Qualifier, other.Qualifier)
}

// Equal reports whether v and other compare as the same version.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// String returns the original source text when available, otherwise a
// canonical rendering.
func (v Version) String() string {
	if v.source != "" {
		return v.source
	}
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Qualifier != "" {
		s += "-" + v.Qualifier
	}
	return s
}

// ABI returns the Ruby ABI version string (major.minor.0), which RubyGems
// uses for install paths: gems compiled against 3.3.7 live under "3.3.0".
func (v Version) ABI() string {
	return fmt.Sprintf("%d.%d.0", v.Major, v.Minor)
}

// Latest returns the maximum of versions by Compare, and false when the
// slice is empty.
func Latest(versions []Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	best := versions[0]
	for _, v := range versions[1:] {
		if v.Compare(best) > 0 {
			best = v
		}
	}
	return best, true
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
