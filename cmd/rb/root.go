// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for rb.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"rb-cli/internal/config"
	"rb-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Global flag storage. Only flags the user actually set are forwarded to
	// the resolver, so flag defaults never masquerade as CLI choices.
	flagRubiesDir   string
	flagRubyVersion string
	flagGemHome     string
	flagNoBundler   bool
	flagWorkDir     string
	flagProjectFile string
	flagConfigFile  string
	flagVerbose     bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "rb",
		Short: "A Ruby environment butler",
		Long: TitleStyle.Render("rb") + SubtitleStyle.Render(" - A Ruby environment butler") + `

rb discovers the Ruby runtimes installed on this machine, selects one by
version, and runs commands inside an isolated environment: PATH, GEM_HOME
and GEM_PATH are composed per runtime so projects never bleed into each
other or into the system Ruby.

Runtimes live as ruby-X.Y.Z directories under the rubies dir (~/.rubies
by default). Version selection honors the project's .ruby-version pin and
Gemfile constraint when no explicit version is given.

` + SubtitleStyle.Render("Examples:") + `
  rb exec ruby -v           Run ruby from the selected runtime
  rb exec -r 3.2 rspec      Pick a runtime by version prefix
  rb run test               Run the 'test' script from rbproject.toml
  rb env                    Print the composed environment
  rb runtimes               List discovered runtimes
  rb config show            Show effective settings and their sources`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagRubiesDir, "rubies-dir", "R", "", "root directory holding ruby-X.Y.Z installations")
	pf.StringVarP(&flagRubyVersion, "ruby", "r", "", "ruby version to select (exact or prefix, e.g. 3.2)")
	pf.StringVarP(&flagGemHome, "gem-home", "G", "", "gem base directory (versioned home hangs off it)")
	pf.BoolVarP(&flagNoBundler, "no-bundler", "B", false, "skip the project bundler shim directory")
	pf.StringVarP(&flagWorkDir, "work-dir", "C", "", "run as if started in this directory")
	pf.StringVar(&flagProjectFile, "project-file", "", "path to rbproject.toml (default: work dir)")
	pf.StringVar(&flagConfigFile, "config", "", "config file (default: $XDG_CONFIG_HOME/rb/rb.toml, then ~/.rb.toml)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(runtimesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initLogging raises the log level before any command logic runs. The -v flag
// and RB_VERBOSE both count; the resolved settings may raise it again later
// when verbosity comes from the config file.
func initLogging() {
	if flagVerbose || envTruthy(config.EnvVerbose) {
		log.SetLevel(log.DebugLevel)
	}
}

// envTruthy reports whether an environment variable holds a true boolean.
// Parsing matches the settings resolver, so RB_VERBOSE behaves the same here
// and there; unparsable values count as unset.
func envTruthy(key string) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// cliArgs converts the flags the user actually set into resolver input.
func cliArgs(cmd *cobra.Command) config.CLIArgs {
	args := config.CLIArgs{}
	flags := cmd.Flags()
	if flags.Changed("rubies-dir") {
		args.RubiesDir = &flagRubiesDir
	}
	if flags.Changed("ruby") {
		args.RubyVersion = &flagRubyVersion
	}
	if flags.Changed("gem-home") {
		args.GemHome = &flagGemHome
	}
	if flags.Changed("no-bundler") {
		args.NoBundler = &flagNoBundler
	}
	if flags.Changed("work-dir") {
		args.WorkDir = &flagWorkDir
	}
	if flags.Changed("project-file") {
		args.ProjectFile = &flagProjectFile
	}
	if flags.Changed("verbose") {
		args.Verbose = &flagVerbose
	}
	return args
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// render their suggestions; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// fail prints err to stderr in display form and converts it into a silent
// ExitError so cobra does not print it a second time.
func fail(cmd *cobra.Command, err error, code int) error {
	fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, flagVerbose))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: code, Err: err}
}
