// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestIsExecutableFile(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("execute bits are POSIX-only")
	}

	dir := t.TempDir()
	runnable := filepath.Join(dir, "runnable")
	if err := os.WriteFile(runnable, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "plain")
	if err := os.WriteFile(plain, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !IsExecutableFile(runnable) {
		t.Error("file with execute bit should be executable")
	}
	if IsExecutableFile(plain) {
		t.Error("file without execute bit should not be executable")
	}
	if IsExecutableFile(dir) {
		t.Error("a directory is never executable in this sense")
	}
	if IsExecutableFile(filepath.Join(dir, "absent")) {
		t.Error("a missing file is not executable")
	}
}

func TestExecutableCandidates(t *testing.T) {
	t.Parallel()

	got := ExecutableCandidates("/some/dir/rake")
	if runtime.GOOS == "windows" {
		if len(got) != len(ExecutableExts) {
			t.Errorf("candidates = %v", got)
		}
		return
	}
	if len(got) != 1 || got[0] != "/some/dir/rake" {
		t.Errorf("POSIX lookup should try the bare name only, got %v", got)
	}
}

func TestIsPathKey(t *testing.T) {
	t.Parallel()

	if !IsPathKey("PATH") {
		t.Error("PATH must match")
	}
	if IsPathKey("GEM_PATH") {
		t.Error("GEM_PATH must not match")
	}
	if runtime.GOOS != "windows" && IsPathKey("Path") {
		t.Error("POSIX environment names are case-sensitive")
	}
}
