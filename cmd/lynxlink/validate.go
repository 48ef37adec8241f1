// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

func newValidateCommand(app *App, global *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate [package-dir]",
		Short: "Validate a module's " + lynxmod.MetadataFileName,
		Long: `Validate the ` + lynxmod.MetadataFileName + ` of a Lynx native module package and print the
normalized descriptor. The argument may be the package directory or the
metadata file itself; it defaults to the current directory.`,
		Example: `  lynxlink validate
  lynxlink validate ./packages/lynx-camera
  lynxlink validate node_modules/@kafitra/lynx-storage --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()

			f := outputFormat(strings.ToLower(format))
			if ok, errs := f.IsValid(); !ok {
				return errs[0]
			}

			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			metadataPath, err := resolveMetadataPath(target)
			if err != nil {
				return reportError(stderr, err, global.verbose, "")
			}

			wd, err := resolveProjectRoot("")
			if err != nil {
				return reportError(stderr, err, global.verbose, "")
			}
			sess, err := app.newSession(cmd.Context(), global, wd)
			if err != nil {
				return reportError(stderr, err, global.verbose, "")
			}

			desc, err := lynxmod.ParseFile(metadataPath)
			if err != nil {
				fmt.Fprintf(stdout, "%s %s\n", failureIcon, metadataPath)
				return reportError(stderr, err, sess.verbose, sess.cfg.UI.ColorScheme)
			}
			desc.PackageDir = filepath.Dir(metadataPath)

			if f != formatText {
				return writeDescriptors(stdout, f, []*lynxmod.Descriptor{desc})
			}

			fmt.Fprintf(stdout, "%s %s is valid\n\n", successIcon, metadataPath)
			writeDescriptorText(stdout, []*lynxmod.Descriptor{desc})
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(formatText), "output format: text, json, yaml or toml")

	return cmd
}

// resolveMetadataPath accepts a package directory or a metadata file path.
func resolveMetadataPath(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", target, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s does not exist", target)
		}
		return "", fmt.Errorf("failed to access %s: %w", target, err)
	}

	if info.IsDir() {
		abs = filepath.Join(abs, lynxmod.MetadataFileName)
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("no %s found in %s", lynxmod.MetadataFileName, target)
		}
	}
	return abs, nil
}
