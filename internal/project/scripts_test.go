// SPDX-License-Identifier: MPL-2.0

package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScriptFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ScriptFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScripts_MissingFile(t *testing.T) {
	t.Parallel()

	file, err := LoadScripts(filepath.Join(t.TempDir(), ScriptFileName))
	if err != nil {
		t.Fatalf("missing script file should not error: %v", err)
	}
	if file != nil {
		t.Errorf("expected nil file, got %+v", file)
	}
}

func TestLoadScripts_StringAndTableForms(t *testing.T) {
	t.Parallel()

	path := writeScriptFile(t, `
[project]
name = "demo"

[scripts]
test = "rspec"
lint = { cmd = "rubocop --autocorrect", description = "style check" }
`)

	file, err := LoadScripts(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(file.Scripts) != 2 {
		t.Fatalf("got %d scripts, want 2", len(file.Scripts))
	}

	lint, ok := file.Lookup("lint")
	if !ok {
		t.Fatal("lint script not found")
	}
	if lint.Command != "rubocop --autocorrect" || lint.Description != "style check" {
		t.Errorf("lint = %+v", lint)
	}

	test, ok := file.Lookup("test")
	if !ok || test.Command != "rspec" || test.Description != "" {
		t.Errorf("test = %+v, ok=%v", test, ok)
	}
}

func TestLoadScripts_SortedByName(t *testing.T) {
	t.Parallel()

	path := writeScriptFile(t, `
[scripts]
zz = "echo z"
aa = "echo a"
mm = "echo m"
`)

	file, err := LoadScripts(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"aa", "mm", "zz"}
	for i, name := range want {
		if file.Scripts[i].Name != name {
			t.Errorf("Scripts[%d] = %s, want %s", i, file.Scripts[i].Name, name)
		}
	}
}

func TestLoadScripts_MalformedEntrySkipped(t *testing.T) {
	t.Parallel()

	path := writeScriptFile(t, `
[scripts]
good = "rspec"
bad = 42

[scripts.empty]
description = "a table without cmd"
`)

	file, err := LoadScripts(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(file.Scripts) != 1 || file.Scripts[0].Name != "good" {
		t.Errorf("only the well-formed entry should survive, got %+v", file.Scripts)
	}
}

func TestLoadScripts_MalformedTOML(t *testing.T) {
	t.Parallel()

	path := writeScriptFile(t, "[scripts\nbroken")
	if _, err := LoadScripts(path); err == nil {
		t.Error("malformed TOML should be an error")
	}
}

func TestScriptFile_LookupOnNil(t *testing.T) {
	t.Parallel()

	var f *ScriptFile
	if _, ok := f.Lookup("anything"); ok {
		t.Error("nil file should never match")
	}
}
