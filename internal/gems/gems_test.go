// SPDX-License-Identifier: MPL-2.0

package gems

import (
	"path/filepath"
	"testing"

	"rb-cli/internal/version"
)

func TestHomeFor_UsesABIVersion(t *testing.T) {
	t.Parallel()

	got := HomeFor("/home/u/.gem", version.MustParse("3.3.7"))
	want := filepath.Join("/home/u/.gem", "ruby", "3.3.0")
	if got != want {
		t.Errorf("HomeFor = %s, want %s", got, want)
	}
}

func TestBinDir(t *testing.T) {
	t.Parallel()

	got := BinDir("/tmp/g")
	if got != filepath.Join("/tmp/g", "bin") {
		t.Errorf("BinDir = %s", got)
	}
}

func TestShimDir_VersionScopedToABI(t *testing.T) {
	t.Parallel()

	got := ShimDir("/proj", version.MustParse("3.2.4"))
	want := filepath.Join("/proj", ".rb", "vendor", "bundler", "ruby", "3.2.0", "bin")
	if got != want {
		t.Errorf("ShimDir = %s, want %s", got, want)
	}
}
