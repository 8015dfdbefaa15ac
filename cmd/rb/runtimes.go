// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"rb-cli/internal/project"
	"rb-cli/internal/ruby"

	"github.com/spf13/cobra"
)

// runtimesCmd lists the discovered runtimes, newest first, marking the one
// the current settings and project would select. Listing works without a
// selectable runtime: an empty catalog renders as such, and a version
// request matching nothing just leaves every entry unmarked.
var runtimesCmd = &cobra.Command{
	Use:     "runtimes",
	Aliases: []string{"list"},
	Short:   "List discovered Ruby runtimes",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return fail(cmd, err, 1)
		}

		catalog, err := ruby.Discover(settings.RubiesDir.Val)
		if err != nil {
			return fail(cmd, err, 1)
		}

		out := cmd.OutOrStdout()
		if len(catalog) == 0 {
			fmt.Fprintln(out, SubtitleStyle.Render("no runtimes found under ")+settings.RubiesDir.Val)
			return nil
		}

		requested := settings.RubyVersion.Val
		if requested == "" {
			if v := project.Detect(settings.WorkDir.Val).RequestedVersion(); v != nil {
				requested = v.String()
			}
		}
		selectedRoot := ""
		if inst, err := catalog.Select(requested, settings.RubiesDir.Val); err == nil {
			selectedRoot = inst.Root
		}

		for _, inst := range catalog {
			marker := "  "
			name := inst.Name()
			if inst.Root == selectedRoot {
				marker = SuccessStyle.Render("* ")
				name = HighlightStyle.Render(name)
			}
			fmt.Fprintf(out, "%s%s\t%s\n", marker, name, SubtitleStyle.Render(inst.Root))
		}
		return nil
	},
}
