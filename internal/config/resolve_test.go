// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// envOf builds a lookupEnv func from a map.
func envOf(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// writeConfig writes a TOML config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rb.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolve_PrecedenceLadder(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, `rubies-dir = "/from/file"`)
	env := envOf(map[string]string{EnvRubiesDir: "/from/env"})

	// CLI beats everything.
	s, err := Resolve(CLIArgs{RubiesDir: strPtr("/from/cli")}, cfgPath, env)
	if err != nil {
		t.Fatal(err)
	}
	if s.RubiesDir.Val != "/from/cli" || s.RubiesDir.Source != SourceCLI {
		t.Errorf("with CLI set: got %q from %s", s.RubiesDir.Val, s.RubiesDir.Source)
	}

	// Without CLI, the config file wins.
	s, err = Resolve(CLIArgs{}, cfgPath, env)
	if err != nil {
		t.Fatal(err)
	}
	if s.RubiesDir.Val != "/from/file" || s.RubiesDir.Source != SourceConfigFile {
		t.Errorf("with file set: got %q from %s", s.RubiesDir.Val, s.RubiesDir.Source)
	}

	// Without CLI and file, the environment wins.
	s, err = Resolve(CLIArgs{}, "", env)
	if err != nil {
		t.Fatal(err)
	}
	if s.RubiesDir.Val != "/from/env" || s.RubiesDir.Source != SourceEnv {
		t.Errorf("with env set: got %q from %s", s.RubiesDir.Val, s.RubiesDir.Source)
	}

	// With nothing, the default applies.
	s, err = Resolve(CLIArgs{}, "", envOf(nil))
	if err != nil {
		t.Fatal(err)
	}
	if s.RubiesDir.Source != SourceDefault || s.RubiesDir.Val == "" {
		t.Errorf("with nothing set: got %q from %s", s.RubiesDir.Val, s.RubiesDir.Source)
	}
}

func TestResolve_MergeIsPerField(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, `
ruby-version = "3.2.4"
gem-home = "/file/gems"
`)
	env := envOf(map[string]string{EnvWorkDir: "/env/wd"})

	s, err := Resolve(CLIArgs{RubiesDir: strPtr("/cli/rubies")}, cfgPath, env)
	if err != nil {
		t.Fatal(err)
	}

	if s.RubiesDir.Source != SourceCLI {
		t.Errorf("rubies-dir source = %s, want CLI", s.RubiesDir.Source)
	}
	if s.RubyVersion.Val != "3.2.4" || s.RubyVersion.Source != SourceConfigFile {
		t.Errorf("ruby-version = %q from %s", s.RubyVersion.Val, s.RubyVersion.Source)
	}
	if s.GemHome.Val != "/file/gems" || s.GemHome.Source != SourceConfigFile {
		t.Errorf("gem-home = %q from %s", s.GemHome.Val, s.GemHome.Source)
	}
	if s.WorkDir.Val != "/env/wd" || s.WorkDir.Source != SourceEnv {
		t.Errorf("work-dir = %q from %s", s.WorkDir.Val, s.WorkDir.Source)
	}
	if s.NoBundler.Val || s.NoBundler.Source != SourceDefault {
		t.Errorf("no-bundler = %v from %s", s.NoBundler.Val, s.NoBundler.Source)
	}
}

func TestResolve_ExplicitMissingFileIsFatal(t *testing.T) {
	t.Parallel()

	_, err := Resolve(CLIArgs{}, filepath.Join(t.TempDir(), "absent.toml"), envOf(nil))
	if !errors.Is(err, ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing, got: %v", err)
	}
}

func TestResolve_ExplicitMalformedFileIsFatal(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "rubies-dir = [not valid toml")
	_, err := Resolve(CLIArgs{}, cfgPath, envOf(nil))
	if !errors.Is(err, ErrConfigMalformed) {
		t.Fatalf("expected ErrConfigMalformed, got: %v", err)
	}
}

func TestResolve_AmbientMalformedFileDegrades(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "rubies-dir = [not valid toml")
	env := envOf(map[string]string{EnvConfigFile: cfgPath})

	s, err := Resolve(CLIArgs{}, "", env)
	if err != nil {
		t.Fatalf("ambient malformed file should not be fatal, got: %v", err)
	}
	if s.RubiesDir.Source != SourceDefault {
		t.Errorf("rubies-dir should fall back to default, got %s", s.RubiesDir.Source)
	}
}

func TestResolve_NoFileAnywhereUsesDefaults(t *testing.T) {
	t.Parallel()

	s, err := Resolve(CLIArgs{}, "", envOf(nil))
	if err != nil {
		t.Fatalf("absence of any config file should not error: %v", err)
	}
	for _, f := range []Source{
		s.RubiesDir.Source, s.GemHome.Source, s.NoBundler.Source, s.WorkDir.Source,
	} {
		if f != SourceDefault {
			t.Errorf("expected default source, got %s", f)
		}
	}
}

func TestResolve_BoolFromEnv(t *testing.T) {
	t.Parallel()

	s, err := Resolve(CLIArgs{}, "", envOf(map[string]string{EnvNoBundler: "true"}))
	if err != nil {
		t.Fatal(err)
	}
	if !s.NoBundler.Val || s.NoBundler.Source != SourceEnv {
		t.Errorf("no-bundler = %v from %s, want true from environment", s.NoBundler.Val, s.NoBundler.Source)
	}

	// Garbage boolean env values are ignored, not fatal.
	s, err = Resolve(CLIArgs{}, "", envOf(map[string]string{EnvNoBundler: "maybe"}))
	if err != nil {
		t.Fatal(err)
	}
	if s.NoBundler.Source != SourceDefault {
		t.Errorf("unparsable boolean should fall through to default, got %s", s.NoBundler.Source)
	}
}

func TestResolve_CLIBoolOverridesFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "no-bundler = true")
	s, err := Resolve(CLIArgs{NoBundler: boolPtr(false)}, cfgPath, envOf(nil))
	if err != nil {
		t.Fatal(err)
	}
	if s.NoBundler.Val || s.NoBundler.Source != SourceCLI {
		t.Errorf("explicit CLI false should beat file true, got %v from %s",
			s.NoBundler.Val, s.NoBundler.Source)
	}
}

func TestSettings_FieldsProvenance(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, `ruby-version = "3.4.5"`)
	s, err := Resolve(CLIArgs{GemHome: strPtr("/g")}, cfgPath, envOf(nil))
	if err != nil {
		t.Fatal(err)
	}

	bySource := map[string]Source{}
	for _, f := range s.Fields() {
		bySource[f.Name] = f.Source
	}
	if bySource["gem-home"] != SourceCLI {
		t.Errorf("gem-home provenance = %s", bySource["gem-home"])
	}
	if bySource["ruby-version"] != SourceConfigFile {
		t.Errorf("ruby-version provenance = %s", bySource["ruby-version"])
	}
	if bySource["work-dir"] != SourceDefault {
		t.Errorf("work-dir provenance = %s", bySource["work-dir"])
	}
}
