// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// envCmd prints the environment rb would give a child, in shell-evalable
// form, so `eval "$(rb env)"` activates the selection in the current shell.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the composed environment as shell export lines",
	Example: `  rb env
  eval "$(rb env)"
  rb env -r 3.2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return fail(cmd, err, 1)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "export PATH=%q\n", s.env.PathValue())
		fmt.Fprintf(out, "export GEM_HOME=%q\n", s.gemHome)
		fmt.Fprintf(out, "export GEM_PATH=%q\n", s.gemHome)
		return nil
	},
}
