// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kafitra/lynxlink/internal/scanner"
	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
	formatTOML outputFormat = "toml"
)

// ErrInvalidOutputFormat is returned for an unknown --format value.
var ErrInvalidOutputFormat = errors.New("invalid output format")

type (
	// outputFormat selects how list and validate print descriptors.
	outputFormat string

	// listOutput is the document printed by the structured formats. TOML
	// has no top-level arrays, so every format shares this wrapper.
	listOutput struct {
		Modules []*lynxmod.Descriptor `json:"modules" yaml:"modules" toml:"modules"`
	}
)

// IsValid returns whether the format is one of the supported formats.
func (f outputFormat) IsValid() (bool, []error) {
	switch f {
	case formatText, formatJSON, formatYAML, formatTOML:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w %q (valid: text, json, yaml, toml)", ErrInvalidOutputFormat, string(f))}
	}
}

func newListCommand(app *App, global *globalFlags) *cobra.Command {
	var (
		projectRoot   string
		dependencyDir string
		format        string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the Lynx native modules that link would wire in",
		Long: `Scan node_modules the same way link does and print the modules found,
without touching the Android project.`,
		Example: `  lynxlink list
  lynxlink list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stderr := cmd.ErrOrStderr()

			f := outputFormat(strings.ToLower(format))
			if ok, errs := f.IsValid(); !ok {
				return errs[0]
			}

			root, err := resolveProjectRoot(projectRoot)
			if err != nil {
				return reportError(stderr, err, global.verbose, "")
			}

			sess, err := app.newSession(cmd.Context(), global, root)
			if err != nil {
				return reportError(stderr, err, global.verbose, "")
			}

			result, err := scanner.ScanWithDiagnostics(root,
				scanner.WithDependencyDir(firstNonEmpty(dependencyDir, sess.cfg.DependencyDir)))
			if err != nil {
				return reportError(stderr, fmt.Errorf("module scan failed: %w", err), sess.verbose, sess.cfg.UI.ColorScheme)
			}
			for _, d := range result.Diagnostics {
				sess.logger.Warn(d.Message, "code", d.Code)
			}

			return writeDescriptors(cmd.OutOrStdout(), f, result.Modules)
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project-root", "", "host project directory (default is the current directory)")
	cmd.Flags().StringVar(&dependencyDir, "dependency-dir", "", "npm install directory name (default \"node_modules\")")
	cmd.Flags().StringVarP(&format, "format", "f", string(formatText), "output format: text, json, yaml or toml")

	return cmd
}

// writeDescriptors prints mods in the requested format.
func writeDescriptors(w io.Writer, f outputFormat, mods []*lynxmod.Descriptor) error {
	if mods == nil {
		mods = []*lynxmod.Descriptor{}
	}
	doc := listOutput{Modules: mods}

	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case formatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		writeDescriptorText(w, mods)
		return nil
	}
}

func writeDescriptorText(w io.Writer, mods []*lynxmod.Descriptor) {
	if len(mods) == 0 {
		fmt.Fprintln(w, WarningStyle.Render("No Lynx native modules found."))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("Lynx native modules (%d)", len(mods))))
	for _, mod := range mods {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s\n", CmdStyle.Render(mod.Name.String()))
		if mod.PackageName != "" {
			fmt.Fprintf(w, "  package:    %s\n", mod.PackageName)
		}
		if mod.HasModule() {
			fmt.Fprintf(w, "  module:     %s\n", mod.Android.ModuleClass)
		}
		if mod.HasComponent() {
			fmt.Fprintf(w, "  component:  %s <%s>\n", mod.Android.ComponentClass, mod.Android.ComponentTag)
		}
		fmt.Fprintf(w, "  project:    :%s (%s)\n", mod.ProjectName(), mod.Android.SourceDir)
		if len(mod.Android.Permissions) > 0 {
			perms := make([]string, len(mod.Android.Permissions))
			for i, p := range mod.Android.Permissions {
				perms[i] = p.String()
			}
			fmt.Fprintf(w, "  perms:      %s\n", strings.Join(perms, ", "))
		}
	}
}
