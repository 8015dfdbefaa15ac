// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"rb-cli/internal/butler"
	"rb-cli/internal/config"
	"rb-cli/internal/gems"
	"rb-cli/internal/project"
	"rb-cli/internal/ruby"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// session is everything one invocation needs after settings resolution,
// discovery, project detection, runtime selection and environment
// composition have all run. Built fresh per command, never cached.
type session struct {
	settings *config.Settings
	catalog  ruby.Catalog
	proj     *project.Context
	inst     ruby.Installation
	gemHome  string
	env      butler.ComposedEnvironment
}

// newSession runs the full preparation pipeline. Selection honors the
// explicit version request first (flag, config file or environment); the
// project's pin or manifest constraint applies only when no explicit request
// was made.
func newSession(cmd *cobra.Command) (*session, error) {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}

	catalog, err := ruby.Discover(settings.RubiesDir.Val)
	if err != nil {
		return nil, err
	}

	workDir := settings.WorkDir.Val
	proj := project.Detect(workDir)

	requested := settings.RubyVersion.Val
	if requested == "" {
		if v := proj.RequestedVersion(); v != nil {
			requested = v.String()
			log.Debug("using project-requested version", "version", requested)
		}
	}

	inst, err := catalog.Select(requested, settings.RubiesDir.Val)
	if err != nil {
		return nil, err
	}
	log.Debug("selected runtime", "name", inst.Name(), "root", inst.Root)

	gemHome := gems.HomeFor(settings.GemHome.Val, inst.Version)

	return &session{
		settings: settings,
		catalog:  catalog,
		proj:     proj,
		inst:     inst,
		gemHome:  gemHome,
		env:      butler.Compose(inst, gemHome, proj, settings.NoBundler.Val, os.Environ()),
	}, nil
}

// resolveSettings merges the configuration layers and applies the resolved
// verbosity. Usable on its own by commands that stop before discovery.
func resolveSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Resolve(cliArgs(cmd), flagConfigFile, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if settings.Verbose.Val {
		log.SetLevel(log.DebugLevel)
	}
	return settings, nil
}

// scriptFilePath is where `rb run` looks for project scripts: the explicit
// project-file setting, or rbproject.toml in the work dir.
func (s *session) scriptFilePath() string {
	if p := s.settings.ProjectFile.Val; p != "" {
		return p
	}
	return filepath.Join(s.settings.WorkDir.Val, project.ScriptFileName)
}

// noticeIfUnsynced prints a one-line hint when the project has a manifest but
// no lockfile. Dependency synchronization itself stays bundler's job.
func (s *session) noticeIfUnsynced(cmd *cobra.Command) {
	if s.proj == nil || s.settings.NoBundler.Val || !s.proj.NeedsSync() {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("note: ")+
		"project dependencies are not synced (no lockfile); run "+
		HighlightStyle.Render("bundle install"))
}
