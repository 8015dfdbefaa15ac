// SPDX-License-Identifier: MPL-2.0

// Package config resolves rb's effective settings from four ranked sources:
// CLI argument > config file > environment variable > built-in default.
// Every field records which source won, so `rb config show` can display
// provenance.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Source identifies where a resolved settings field came from.
type Source int

// Sources in ascending priority order.
const (
	SourceDefault Source = iota
	SourceEnv
	SourceConfigFile
	SourceCLI
)

// String renders the source for diagnostic display.
func (s Source) String() string {
	switch s {
	case SourceCLI:
		return "CLI argument"
	case SourceConfigFile:
		return "config file"
	case SourceEnv:
		return "environment"
	default:
		return "default"
	}
}

// Environment variable names, one per settings field plus the config-file
// override and verbosity.
const (
	EnvRubiesDir   = "RB_RUBIES_DIR"
	EnvRubyVersion = "RB_RUBY_VERSION"
	EnvGemHome     = "RB_GEM_HOME"
	EnvNoBundler   = "RB_NO_BUNDLER"
	EnvWorkDir     = "RB_WORK_DIR"
	EnvProjectFile = "RB_PROJECT_FILE"
	EnvVerbose     = "RB_VERBOSE"
	EnvConfigFile  = "RB_CONFIG"
)

type (
	// Value is a resolved settings field together with its winning source.
	Value[T any] struct {
		Val    T
		Source Source
	}

	// CLIArgs carries the flag values the CLI layer collected. Nil pointers
	// mean "flag not given" so absence is distinguishable from zero values.
	CLIArgs struct {
		RubiesDir   *string
		RubyVersion *string
		GemHome     *string
		NoBundler   *bool
		WorkDir     *string
		ProjectFile *string
		Verbose     *bool
	}

	// fileConfig mirrors the rb.toml schema. Keys are kebab-case twins of
	// the CLI flags. Pointers distinguish "absent" from "empty".
	fileConfig struct {
		RubiesDir   *string `mapstructure:"rubies-dir"`
		RubyVersion *string `mapstructure:"ruby-version"`
		GemHome     *string `mapstructure:"gem-home"`
		NoBundler   *bool   `mapstructure:"no-bundler"`
		WorkDir     *string `mapstructure:"work-dir"`
		ProjectFile *string `mapstructure:"project-file"`
		Verbose     *bool   `mapstructure:"verbose"`
	}

	// Settings is the effective configuration for one invocation. Built once
	// by Resolve and treated as read-only afterwards.
	Settings struct {
		// RubiesDir is the root directory holding ruby-X.Y.Z installations.
		RubiesDir Value[string]
		// RubyVersion is the requested version; empty means "latest".
		RubyVersion Value[string]
		// GemHome is the gem base directory (~/.gem by default). The
		// versioned gem home hangs off it: <gem-home>/ruby/<abi>.
		GemHome Value[string]
		// NoBundler disables project-local bundler shim activation.
		NoBundler Value[bool]
		// WorkDir is the directory to run as if started in.
		WorkDir Value[string]
		// ProjectFile overrides rbproject.toml discovery.
		ProjectFile Value[string]
		// Verbose raises log output to debug level.
		Verbose Value[bool]

		// ConfigFilePath is the config file that contributed values, empty
		// when none was found.
		ConfigFilePath string
	}

	// Field is one (name, value, source) tuple for diagnostic rendering.
	Field struct {
		Name   string
		Value  string
		Source Source
	}
)

// Fields returns the settings in display order for `rb config show`.
func (s *Settings) Fields() []Field {
	rubyVersion := s.RubyVersion.Val
	if rubyVersion == "" {
		rubyVersion = "(latest)"
	}
	return []Field{
		{"rubies-dir", s.RubiesDir.Val, s.RubiesDir.Source},
		{"ruby-version", rubyVersion, s.RubyVersion.Source},
		{"gem-home", s.GemHome.Val, s.GemHome.Source},
		{"no-bundler", fmt.Sprintf("%v", s.NoBundler.Val), s.NoBundler.Source},
		{"work-dir", s.WorkDir.Val, s.WorkDir.Source},
		{"project-file", s.ProjectFile.Val, s.ProjectFile.Source},
		{"verbose", fmt.Sprintf("%v", s.Verbose.Val), s.Verbose.Source},
	}
}

// defaultRubiesDir is ~/.rubies.
func defaultRubiesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rubies"
	}
	return filepath.Join(home, ".rubies")
}

// defaultGemBase is ~/.gem.
func defaultGemBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gem"
	}
	return filepath.Join(home, ".gem")
}

// defaultWorkDir is the current working directory.
func defaultWorkDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
