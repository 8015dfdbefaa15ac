// SPDX-License-Identifier: MPL-2.0

package config

import (
	"strconv"

	"github.com/charmbracelet/log"
)

// lookup is one provider in a field's resolution chain: it either yields the
// field's raw value with its source, or passes.
type lookup struct {
	source Source
	get    func() (string, bool)
}

// Resolve merges the four configuration layers into effective settings.
// The merge is field-by-field: each field independently walks its provider
// chain (CLI, config file, environment, default) and takes the first hit.
//
// explicitConfigPath is the --config flag value; when non-empty, a missing
// or malformed file is fatal. Otherwise the ambient file located by Locate
// contributes values, and a malformed ambient file is logged and ignored.
//
// lookupEnv abstracts os.LookupEnv so tests can inject an environment.
func Resolve(cli CLIArgs, explicitConfigPath string, lookupEnv func(string) (string, bool)) (*Settings, error) {
	var (
		file     = &fileConfig{}
		filePath string
	)

	if explicitConfigPath != "" {
		loaded, err := loadFile(explicitConfigPath, true)
		if err != nil {
			return nil, err
		}
		file = loaded
		filePath = explicitConfigPath
	} else if path := Locate(lookupEnv); path != "" {
		loaded, err := loadFile(path, false)
		if err != nil {
			log.Warn("ignoring malformed config file", "path", path, "err", err)
		} else {
			file = loaded
			filePath = path
		}
	}

	s := &Settings{
		RubiesDir:      resolveString(cli.RubiesDir, file.RubiesDir, EnvRubiesDir, defaultRubiesDir, lookupEnv),
		RubyVersion:    resolveString(cli.RubyVersion, file.RubyVersion, EnvRubyVersion, func() string { return "" }, lookupEnv),
		GemHome:        resolveString(cli.GemHome, file.GemHome, EnvGemHome, defaultGemBase, lookupEnv),
		NoBundler:      resolveBool(cli.NoBundler, file.NoBundler, EnvNoBundler, false, lookupEnv),
		WorkDir:        resolveString(cli.WorkDir, file.WorkDir, EnvWorkDir, defaultWorkDir, lookupEnv),
		ProjectFile:    resolveString(cli.ProjectFile, file.ProjectFile, EnvProjectFile, func() string { return "" }, lookupEnv),
		Verbose:        resolveBool(cli.Verbose, file.Verbose, EnvVerbose, false, lookupEnv),
		ConfigFilePath: filePath,
	}

	for _, f := range s.Fields() {
		log.Debug("resolved setting", "field", f.Name, "value", f.Value, "source", f.Source.String())
	}

	return s, nil
}

// resolveString walks the provider chain for one string field.
func resolveString(cli, file *string, envKey string, def func() string, lookupEnv func(string) (string, bool)) Value[string] {
	chain := []lookup{
		{SourceCLI, func() (string, bool) { return deref(cli) }},
		{SourceConfigFile, func() (string, bool) { return deref(file) }},
		{SourceEnv, func() (string, bool) { return lookupEnv(envKey) }},
	}
	for _, l := range chain {
		if v, ok := l.get(); ok {
			return Value[string]{Val: v, Source: l.source}
		}
	}
	return Value[string]{Val: def(), Source: SourceDefault}
}

// resolveBool walks the provider chain for one boolean field. Env values
// that fail strconv.ParseBool are treated as unset.
func resolveBool(cli, file *bool, envKey string, def bool, lookupEnv func(string) (string, bool)) Value[bool] {
	if cli != nil {
		return Value[bool]{Val: *cli, Source: SourceCLI}
	}
	if file != nil {
		return Value[bool]{Val: *file, Source: SourceConfigFile}
	}
	if raw, ok := lookupEnv(envKey); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			return Value[bool]{Val: v, Source: SourceEnv}
		}
		log.Warn("ignoring unparsable boolean environment variable", "var", envKey, "value", raw)
	}
	return Value[bool]{Val: def, Source: SourceDefault}
}

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}
