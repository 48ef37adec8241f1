// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kafitra/lynxlink/internal/config"
)

// newConfigCommand creates the `lynxlink config` command tree.
func newConfigCommand(global *globalFlags) *cobra.Command {
	var projectRoot string

	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect lynxlink configuration",
		Long: `Inspect lynxlink configuration.

Configuration is read from the first file found:
  - the file passed with --config
  - ` + config.ProjectFileName + ` in the project root
  - the user config file:
      Linux:   ~/.config/lynxlink/config.cue
      macOS:   ~/Library/Application Support/lynxlink/config.cue
      Windows: %AppData%\lynxlink\config.cue

Any key can be overridden with a LYNXLINK_ environment variable, for
example LYNXLINK_JAVA_PACKAGE or LYNXLINK_UI_VERBOSE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cfgCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "", "host project directory (default is the current directory)")

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()

			root, err := resolveProjectRoot(projectRoot)
			if err != nil {
				return reportError(stderr, err, global.verbose, "")
			}

			cfg, source, err := config.LoadWithSource(cmd.Context(), config.LoadOptions{
				ConfigFilePath: global.configPath,
				ProjectRoot:    root,
			})
			if err != nil {
				return reportError(stderr, err, global.verbose, "")
			}

			if source == "" {
				fmt.Fprintln(stdout, "// source: defaults (no config file found)")
			} else {
				fmt.Fprintf(stdout, "// source: %s\n", source)
			}
			fmt.Fprint(stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the user configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return reportError(cmd.ErrOrStderr(), err, global.verbose, "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	return cfgCmd
}
