// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for depwalk.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the depwalk command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "depwalk",
		Short: "Inspect the installed dependency tree of a Node.js package",
		Long: TitleStyle.Render("depwalk") + SubtitleStyle.Render(" - Inspect the installed dependency tree of a Node.js package") + `

depwalk follows the dependencies declared in package.json through nested
node_modules directories, the way Node resolves them, and reports every
installed package with the strongest way it is depended upon (prod, dev,
optional, dev-optional) and whether it builds native code.

` + SubtitleStyle.Render("Examples:") + `
  depwalk walk                      List every package reachable from ./package.json
  depwalk walk ./app --type prod    Only production dependencies
  depwalk walk --native             Only packages that build native code
  depwalk walk --match '@types/**'  Only packages whose name matches a glob
  depwalk config show               Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd.Context())
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/depwalk/config.cue)")

	rootCmd.AddCommand(newWalkCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Main runs the CLI with os.Args and returns the process exit code.
func Main() int {
	app := NewApp(Dependencies{})

	// fang overrides rootCmd.Version, so the version is passed as an option.
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	return exitCode(err)
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Main())
}
