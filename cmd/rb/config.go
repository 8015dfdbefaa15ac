// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration subcommands.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect rb configuration",
	}

	// configShowCmd prints every effective setting with the source that won
	// its resolution, so precedence surprises are diagnosable at a glance.
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show effective settings and where each came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd)
			if err != nil {
				return fail(cmd, err, 1)
			}

			out := cmd.OutOrStdout()
			if settings.ConfigFilePath != "" {
				fmt.Fprintln(out, SubtitleStyle.Render("config file: ")+settings.ConfigFilePath)
			} else {
				fmt.Fprintln(out, SubtitleStyle.Render("config file: (none found)"))
			}
			fmt.Fprintln(out)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, f := range settings.Fields() {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					f.Name, f.Value, SubtitleStyle.Render("("+f.Source.String()+")"))
			}
			return w.Flush()
		},
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}
