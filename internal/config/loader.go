// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"rb-cli/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

var (
	// ErrConfigMissing reports an explicitly requested config file that does
	// not exist. Fatal: the user asked for something specific and it is
	// absent.
	ErrConfigMissing = errors.New("config file missing")

	// ErrConfigMalformed reports a config file that exists but cannot be
	// parsed. Fatal only for explicitly requested files; the ambient file
	// degrades to defaults with a warning.
	ErrConfigMalformed = errors.New("config file malformed")
)

// loadFile parses the TOML config file at path into the file layer.
// explicit marks a path the user requested via flag, which upgrades both
// missing-file and parse failures to fatal errors.
func loadFile(path string, explicit bool) (*fileConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		if explicit && !fileExists(path) {
			return nil, issue.NewContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'rb config show' to see the effective defaults").
				Wrap(fmt.Errorf("%w: %s", ErrConfigMissing, path)).
				BuildError()
		}
		return nil, parseFailure(path, err)
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, parseFailure(path, err)
	}

	log.Debug("loaded config file", "path", path)
	return &cfg, nil
}

// parseFailure wraps a parse error; Resolve decides whether it is fatal
// (explicit file) or a degrade-to-defaults warning (ambient file).
func parseFailure(path string, cause error) error {
	return issue.NewContext().
		WithOperation("parse configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid TOML").
		WithSuggestion("Keys are kebab-case: rubies-dir, ruby-version, gem-home, no-bundler, work-dir").
		Wrap(fmt.Errorf("%w: %v", ErrConfigMalformed, cause)).
		BuildError()
}
