// SPDX-License-Identifier: MPL-2.0

// Package butler composes the isolated child-process environment for a
// selected Ruby runtime and spawns commands inside it. Composition is pure
// given its inputs aside from one existence check on the bundler shim
// directory.
package butler

import (
	"os"
	"strings"

	"rb-cli/internal/gems"
	"rb-cli/internal/platform"
	"rb-cli/internal/project"
	"rb-cli/internal/ruby"

	"github.com/charmbracelet/log"
)

// Environment variable names rb rewrites in the child environment.
const (
	pathVar    = "PATH"
	gemHomeVar = "GEM_HOME"
	gemPathVar = "GEM_PATH"
)

// ComposedEnvironment is the environment a child command runs in. PathEntries
// holds the directories prepended to the parent PATH, highest priority first.
type ComposedEnvironment struct {
	PathEntries []string
	GemHome     string

	// base is the parent environment the composition started from.
	base []string
}

// Compose builds the child environment for inst. The search path layers, in
// order:
//
//  1. project bundler shim dir, when a project is present, bundler is not
//     disabled, and the dir exists on disk
//  2. the runtime's own bin dir
//  3. the gem home's bin dir
//  4. the parent PATH
//
// GEM_HOME and GEM_PATH are both set to gemHome; everything else in baseEnv
// passes through untouched.
func Compose(inst ruby.Installation, gemHome string, proj *project.Context, noBundler bool, baseEnv []string) ComposedEnvironment {
	env := ComposedEnvironment{GemHome: gemHome, base: baseEnv}

	if proj != nil && !noBundler {
		shim := gems.ShimDir(proj.Dir, inst.Version)
		if info, err := os.Stat(shim); err == nil && info.IsDir() {
			env.PathEntries = append(env.PathEntries, shim)
		} else {
			log.Debug("bundler shim dir absent, skipping", "path", shim)
		}
	}

	env.PathEntries = append(env.PathEntries, inst.BinDir(), gems.BinDir(gemHome))
	return env
}

// SearchPath returns every directory a program lookup consults, in priority
// order: the composed entries followed by the parent PATH split into its
// components.
func (e ComposedEnvironment) SearchPath() []string {
	dirs := make([]string, 0, len(e.PathEntries)+4)
	dirs = append(dirs, e.PathEntries...)
	if parent := e.parentPath(); parent != "" {
		for _, d := range strings.Split(parent, string(os.PathListSeparator)) {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
	}
	return dirs
}

// PathValue returns the final PATH string for the child.
func (e ComposedEnvironment) PathValue() string {
	sep := string(os.PathListSeparator)
	value := strings.Join(e.PathEntries, sep)
	if parent := e.parentPath(); parent != "" {
		value += sep + parent
	}
	return value
}

// Environ renders the full child environment in exec.Cmd form. The parent
// environment passes through except for PATH, GEM_HOME and GEM_PATH, which
// are replaced.
func (e ComposedEnvironment) Environ() []string {
	out := make([]string, 0, len(e.base)+3)
	for _, kv := range e.base {
		key, _, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if platform.IsPathKey(key) || key == gemHomeVar || key == gemPathVar {
			continue
		}
		out = append(out, kv)
	}
	out = append(out,
		pathVar+"="+e.PathValue(),
		gemHomeVar+"="+e.GemHome,
		gemPathVar+"="+e.GemHome,
	)
	return out
}

// parentPath extracts PATH from the parent environment.
func (e ComposedEnvironment) parentPath() string {
	for _, kv := range e.base {
		key, val, ok := strings.Cut(kv, "=")
		if ok && platform.IsPathKey(key) {
			return val
		}
	}
	return ""
}
