// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"os"
	"sort"

	"rb-cli/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// ScriptFileName is the project script file consumed by `rb run`.
const ScriptFileName = "rbproject.toml"

type (
	// ScriptEntry is one named project script, normalized from the two
	// accepted manifest shapes at parse time so the rest of the code never
	// sees the surface syntax.
	ScriptEntry struct {
		Name        string
		Command     string
		Description string
	}

	// ScriptFile is a parsed rbproject.toml.
	ScriptFile struct {
		Path    string
		Scripts []ScriptEntry
	}

	// scriptFileDoc mirrors the TOML document. Script values are either a
	// plain command string or a {cmd, description} table, so they decode
	// into any and get normalized afterwards.
	scriptFileDoc struct {
		Project struct {
			Name        string `toml:"name"`
			Description string `toml:"description"`
		} `toml:"project"`
		Scripts map[string]any `toml:"scripts"`
	}
)

// LoadScripts parses the rbproject.toml at path. A missing file returns
// (nil, nil); a malformed file is an error the caller may surface or demote
// depending on whether the path was explicit.
func LoadScripts(path string) (*ScriptFile, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, issue.Wrap(err, "read project scripts", path)
	}

	var doc scriptFileDoc
	if err := toml.Unmarshal(body, &doc); err != nil {
		return nil, issue.NewContext().
			WithOperation("parse project scripts").
			WithResource(path).
			WithSuggestion("Check that the file contains valid TOML").
			WithSuggestion(`Scripts are either strings ("rspec") or tables ({cmd = "rspec", description = "..."})`).
			Wrap(err).
			BuildError()
	}

	file := &ScriptFile{Path: path}
	for name, raw := range doc.Scripts {
		entry, err := normalizeScript(name, raw)
		if err != nil {
			log.Warn("skipping malformed script entry", "script", name, "err", err)
			continue
		}
		file.Scripts = append(file.Scripts, entry)
	}
	sort.Slice(file.Scripts, func(i, j int) bool {
		return file.Scripts[i].Name < file.Scripts[j].Name
	})

	log.Debug("loaded project scripts", "path", path, "count", len(file.Scripts))
	return file, nil
}

// Lookup returns the script with the given name.
func (f *ScriptFile) Lookup(name string) (ScriptEntry, bool) {
	if f == nil {
		return ScriptEntry{}, false
	}
	for _, s := range f.Scripts {
		if s.Name == name {
			return s, true
		}
	}
	return ScriptEntry{}, false
}

// normalizeScript folds the string-or-table variants into a ScriptEntry.
func normalizeScript(name string, raw any) (ScriptEntry, error) {
	switch v := raw.(type) {
	case string:
		return ScriptEntry{Name: name, Command: v}, nil
	case map[string]any:
		cmd, ok := v["cmd"].(string)
		if !ok || cmd == "" {
			return ScriptEntry{}, fmt.Errorf("script table needs a string 'cmd' field")
		}
		desc, _ := v["description"].(string)
		return ScriptEntry{Name: name, Command: cmd, Description: desc}, nil
	default:
		return ScriptEntry{}, fmt.Errorf("script must be a string or a table, got %T", raw)
	}
}
