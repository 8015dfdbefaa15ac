// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"rb-cli/internal/issue"
	"rb-cli/internal/project"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"
)

// runCmd executes a named script from rbproject.toml inside the composed
// environment. Extra arguments are appended to the script's argv.
var runCmd = &cobra.Command{
	Use:   "run <script> [args...]",
	Short: "Run a project script from rbproject.toml",
	Example: `  rb run test
  rb run lint --autocorrect`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return fail(cmd, err, 1)
		}

		path := s.scriptFilePath()
		file, err := project.LoadScripts(path)
		if err != nil {
			return fail(cmd, err, 1)
		}
		if file == nil {
			return fail(cmd, issue.NewContext().
				WithOperation("load project scripts").
				WithResource(path).
				WithSuggestion("Create one with: rb init").
				BuildError(), 1)
		}

		entry, ok := file.Lookup(args[0])
		if !ok {
			return fail(cmd, unknownScriptError(args[0], file), 1)
		}

		argv, err := shell.Fields(entry.Command, nil)
		if err != nil || len(argv) == 0 {
			return fail(cmd, issue.NewContext().
				WithOperation("parse script command").
				WithResource(entry.Name).
				WithSuggestion(fmt.Sprintf("Check the quoting in: %s", entry.Command)).
				Wrap(err).
				BuildError(), 1)
		}

		s.noticeIfUnsynced(cmd)
		return runInSession(cmd, s, argv[0], append(argv[1:], args[1:]...))
	},
}

// unknownScriptError names the available scripts so the user does not need a
// second invocation to list them.
func unknownScriptError(name string, file *project.ScriptFile) error {
	ctx := issue.NewContext().
		WithOperation("resolve project script").
		WithResource(name)
	for _, s := range file.Scripts {
		hint := s.Name
		if s.Description != "" {
			hint += " - " + s.Description
		}
		ctx.WithSuggestion("Available: " + hint)
	}
	if len(file.Scripts) == 0 {
		ctx.WithSuggestion("No scripts defined in " + file.Path)
	}
	return ctx.BuildError()
}

func init() {
	runCmd.Flags().SetInterspersed(false)
}
