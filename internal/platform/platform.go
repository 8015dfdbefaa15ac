// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities: the
// executable naming rules and PATH semantics that differ between POSIX and
// Windows.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExecutableExts are the suffixes that make a file runnable on Windows, in
// lookup order. Empty on POSIX, where the execute bit decides instead.
var ExecutableExts = []string{".exe", ".bat", ".cmd", ".com"}

// ExeSuffix returns the suffix native binaries carry: ".exe" on Windows,
// empty elsewhere.
func ExeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// IsExecutableFile reports whether path is a regular file the current user
// can execute. On Windows a suffixed regular file is enough; on POSIX the
// mode must carry an execute bit.
func IsExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// ExecutableCandidates expands a lookup path into the filenames to probe. On
// POSIX the name is tried as-is; on Windows each executable suffix is
// appended unless the name already carries one.
func ExecutableCandidates(path string) []string {
	if runtime.GOOS != "windows" {
		return []string{path}
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ExecutableExts {
		if ext == e {
			return []string{path}
		}
	}
	names := make([]string, 0, len(ExecutableExts))
	for _, e := range ExecutableExts {
		names = append(names, path+e)
	}
	return names
}

// IsPathKey matches the PATH environment variable name. Windows environment
// names are case-insensitive ("Path" is common there).
func IsPathKey(key string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(key, "PATH")
	}
	return key == "PATH"
}
