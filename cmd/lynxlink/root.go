// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/kafitra/lynxlink/internal/issue"
	"github.com/kafitra/lynxlink/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the lynxlink command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "lynxlink",
		Short: "Autolink Lynx native modules into an Android project",
		Long: TitleStyle.Render("lynxlink") + SubtitleStyle.Render(" - Autolinking for Lynx native modules") + `

lynxlink finds npm packages that ship a lynx.module.json, validates their
metadata and wires them into the Android project: settings.gradle,
app/build.gradle, AndroidManifest.xml and a generated LynxAutolinkRegistry.

Only the regions between lynxlink's markers are rewritten, so running it
again after installing or removing a module is always safe. Do not run two
link passes against the same project at the same time.

` + SubtitleStyle.Render("Examples:") + `
  lynxlink link                          Link every installed module
  lynxlink link --java-package com.app   Link with an explicit registry package
  lynxlink list --format json            Show the modules that would be linked
  lynxlink validate ./my-module          Check a module's lynx.module.json
  lynxlink config show                   Show the effective configuration`,
		SilenceUsage: true,
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is ./lynxlink.cue, then the user config directory)")

	rootCmd.AddCommand(newLinkCommand(app, flags))
	rootCmd.AddCommand(newListCommand(app, flags))
	rootCmd.AddCommand(newValidateCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the command's exit code.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		if code := exitCodeFor(err); !code.IsSuccess() {
			os.Exit(int(code))
		}
	}
}

// handleError prints errors that commands did not render themselves.
// ExitErrors without a cause were already reported.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// exitCodeFor maps an error returned by the command tree to a process exit code.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if validErr := exitErr.Code.Validate(); validErr != nil {
			return types.ExitFailure
		}
		return exitErr.Code
	}
	return types.ExitUsage
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
