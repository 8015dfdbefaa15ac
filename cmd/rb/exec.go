// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"rb-cli/internal/butler"
	"rb-cli/internal/issue"

	"github.com/spf13/cobra"
)

// execCmd runs an arbitrary program inside the composed environment. This is
// rb's main operation; everything else supports it.
var execCmd = &cobra.Command{
	Use:   "exec <program> [args...]",
	Short: "Run a program inside the selected Ruby environment",
	Long: `Run a program with PATH, GEM_HOME and GEM_PATH composed for the
selected Ruby runtime. The program is resolved against the composed PATH,
so bundler shims and gem executables win over system binaries. The child's
exit code becomes rb's exit code.`,
	Example: `  rb exec ruby -v
  rb exec -r 3.2 bundle install
  rb exec rake test`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return fail(cmd, err, 1)
		}
		s.noticeIfUnsynced(cmd)

		return runInSession(cmd, s, args[0], args[1:])
	},
}

func init() {
	// Flags after the program belong to the child, not to rb.
	execCmd.Flags().SetInterspersed(false)
}

// runInSession spawns program in s's composed environment and maps the
// outcome onto rb's exit conventions: lookup failures exit 127, spawn
// failures exit 1, and a child's own non-zero code passes through silently.
func runInSession(cmd *cobra.Command, s *session, program string, args []string) error {
	code, err := butler.Execute(cmd.Context(), butler.Command{
		Program: program,
		Args:    args,
		Env:     s.env,
		Dir:     s.settings.WorkDir.Val,
	})
	if err != nil {
		if errors.Is(err, butler.ErrCommandNotFound) {
			err = notFoundAdvice(program, err)
		}
		return fail(cmd, err, code)
	}
	if code != 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: code}
	}
	return nil
}

// notFoundAdvice upgrades a lookup failure with remediation hints: check the
// spelling, or install the missing gem.
func notFoundAdvice(program string, cause error) error {
	return issue.NewContext().
		WithOperation("resolve command").
		WithResource(program).
		WithSuggestion("Check the spelling of the command name").
		WithSuggestion("Install it with: gem install " + program).
		Wrap(cause).
		BuildError()
}
