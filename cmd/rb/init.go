// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"rb-cli/internal/issue"
	"rb-cli/internal/project"

	"github.com/spf13/cobra"
)

// starterScriptFile is the rbproject.toml written by `rb init`.
const starterScriptFile = `[project]
name = %q

[scripts]
test = "rspec"
console = { cmd = "irb", description = "interactive console" }
`

// initCmd writes a starter rbproject.toml into the work dir. Refuses to
// overwrite an existing one.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter rbproject.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return fail(cmd, err, 1)
		}

		dir := settings.WorkDir.Val
		path := filepath.Join(dir, project.ScriptFileName)
		if _, err := os.Stat(path); err == nil {
			return fail(cmd, issue.NewContext().
				WithOperation("create project script file").
				WithResource(path).
				WithSuggestion("A script file already exists; edit it instead").
				BuildError(), 1)
		}

		content := fmt.Sprintf(starterScriptFile, filepath.Base(dir))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fail(cmd, issue.Wrap(err, "create project script file", path), 1)
		}

		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Created ")+path)
		return nil
	},
}
