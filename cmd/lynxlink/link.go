// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kafitra/lynxlink/internal/android"
	"github.com/kafitra/lynxlink/internal/linker"
	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

const docsURL = "https://github.com/kafitramarna/kafitra-lynx-native#auto-linking"

type (
	// linkFlags are the flags of the link command. Empty values fall back to
	// the configuration.
	linkFlags struct {
		projectRoot   string
		androidDir    string
		javaPackage   string
		dependencyDir string
	}

	// stepLabel is how a linker step is announced and reported.
	stepLabel struct {
		running string
		done    string
	}
)

var stepLabels = map[string]stepLabel{
	"registry":     {running: "Generating " + android.RegistryClassName + ".java…", done: "Generated"},
	"settings":     {running: "Injecting settings.gradle entries…", done: "Updated"},
	"build script": {running: "Injecting app/build.gradle dependencies…", done: "Updated"},
	"manifest":     {running: "Injecting AndroidManifest.xml permissions…", done: "Updated"},
}

func newLinkCommand(app *App, global *globalFlags) *cobra.Command {
	flags := &linkFlags{}

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Wire installed Lynx native modules into the Android project",
		Long: `Scan node_modules for packages that ship a lynx.module.json and update the
Android project to match:

  android/settings.gradle                   include each module's library project
  android/app/build.gradle                  add implementation project(...) lines
  android/app/src/main/AndroidManifest.xml  add the modules' permissions
  android/app/src/main/java/<pkg>/` + android.RegistryClassName + `.java

Files are changed only between lynxlink's markers. Steps run in that order
and a failure stops the pass; files updated before the failure keep their
changes and are listed in the error.`,
		Example: `  lynxlink link
  lynxlink link --project-root ./apps/demo --java-package com.example.demo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLink(cmd, app, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.projectRoot, "project-root", "", "host project directory (default is the current directory)")
	cmd.Flags().StringVar(&flags.androidDir, "android-dir", "", "Android project directory, relative to the project root (default \"android\")")
	cmd.Flags().StringVar(&flags.javaPackage, "java-package", "", "Java package of the generated registry (default is applicationId)")
	cmd.Flags().StringVar(&flags.dependencyDir, "dependency-dir", "", "npm install directory name (default \"node_modules\")")

	return cmd
}

func runLink(cmd *cobra.Command, app *App, global *globalFlags, flags *linkFlags) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	projectRoot, err := resolveProjectRoot(flags.projectRoot)
	if err != nil {
		return reportError(stderr, err, global.verbose, "")
	}

	sess, err := app.newSession(cmd.Context(), global, projectRoot)
	if err != nil {
		return reportError(stderr, err, global.verbose, "")
	}

	opts := linker.Options{
		ProjectRoot:   projectRoot,
		AndroidDir:    firstNonEmpty(flags.androidDir, sess.cfg.AndroidDir),
		JavaPackage:   firstNonEmpty(flags.javaPackage, sess.cfg.JavaPackage),
		DependencyDir: firstNonEmpty(flags.dependencyDir, sess.cfg.DependencyDir),
		Logger:        sess.logger,
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, TitleStyle.Render("lynxlink link"))
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Scanning for Lynx native modules…\n", stepIcon)

	result, linkErr := linker.Link(cmd.Context(), opts)
	if result != nil && result.Layout.ProjectRoot != "" {
		scanned := linkErr == nil || result.Modules != nil || len(result.Steps) > 0
		renderScan(stdout, result, opts.DependencyDir, scanned)
		renderSteps(stdout, result)
	}
	if linkErr != nil {
		return reportError(stderr, linkErr, sess.verbose, sess.cfg.UI.ColorScheme)
	}

	renderSummary(stdout, result)
	return nil
}

// renderScan prints the modules the scan found. scanned is false when the
// pass failed before the scan finished.
func renderScan(w io.Writer, result *linker.Result, dependencyDir string, scanned bool) {
	if !scanned {
		return
	}

	if len(result.Modules) == 0 {
		if dependencyDir == "" {
			dependencyDir = "node_modules"
		}
		fmt.Fprintf(w, "%s No Lynx native modules found in %s.\n", warningIcon, dependencyDir)
		fmt.Fprintf(w, "  Make sure each module includes a `%s` at its package root.\n", lynxmod.MetadataFileName)
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "  Found %d module(s):\n", len(result.Modules))
	for _, mod := range result.Modules {
		fmt.Fprintf(w, "    • %s  (%s)\n", mod.Identity(), CmdStyle.Render(mod.Name.String()))
	}
	fmt.Fprintln(w)
}

func renderSteps(w io.Writer, result *linker.Result) {
	for _, step := range result.Steps {
		label, ok := stepLabels[step.Name]
		if !ok {
			label = stepLabel{running: "Running " + step.Name + "…", done: "Updated"}
		}
		rel := result.Layout.Rel(step.Path)

		switch step.Status {
		case linker.StatusSkipped:
			fmt.Fprintf(w, "%s Skipped: %s (file not found)\n", warningIcon, rel)
		case linker.StatusFailed:
			fmt.Fprintf(w, "%s %s\n", stepIcon, label.running)
			fmt.Fprintf(w, "%s %s failed: %v\n", failureIcon, step.Name, step.Err)
		default:
			fmt.Fprintf(w, "%s %s\n", stepIcon, label.running)
			fmt.Fprintf(w, "%s %s: %s\n", successIcon, label.done, rel)
		}
	}
}

// renderSummary closes a pass that ran every required step. Optional steps
// that failed turn the headline into a warning and are listed again.
func renderSummary(w io.Writer, result *linker.Result) {
	mods := result.Modules
	failed := result.Failed()

	fmt.Fprintln(w)
	if len(failed) == 0 {
		fmt.Fprintln(w, TitleStyle.Render("✔ Linking complete"))
	} else {
		fmt.Fprintln(w, WarningStyle.Render("⚠ Linking complete with warnings"))
		for _, step := range failed {
			fmt.Fprintf(w, "  %s %s: update %s by hand\n", warningIcon, step.Name, result.Layout.Rel(step.Path))
		}
	}
	fmt.Fprintln(w)

	if len(mods) > 0 {
		fmt.Fprintln(w, "Linked modules:")
		for _, mod := range mods {
			fmt.Fprintf(w, "  • %s\n", moduleSummary(mod))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "In your Application class, call:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+CmdStyle.Render(android.RegistryClassName+".registerAll();"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Learn more: "+docsURL))
	fmt.Fprintln(w)
}

// moduleSummary renders one module as "<name>  →  <class>  [perms: …]".
func moduleSummary(mod *lynxmod.Descriptor) string {
	var clsLabel string
	switch {
	case mod.HasModule():
		clsLabel = mod.Android.ModuleClass.String()
	case mod.HasComponent():
		clsLabel = fmt.Sprintf("[UI] %s <%s>", mod.Android.ComponentClass, mod.Android.ComponentTag)
	default:
		clsLabel = "(unknown)"
	}

	var permLabel string
	if len(mod.Android.Permissions) > 0 {
		perms := make([]string, len(mod.Android.Permissions))
		for i, p := range mod.Android.Permissions {
			perms[i] = p.String()
		}
		permLabel = "  [perms: " + strings.Join(perms, ", ") + "]"
	}

	return fmt.Sprintf("%s  →  %s%s", mod.Name, clsLabel, permLabel)
}

// resolveProjectRoot returns the absolute project root, defaulting to the
// working directory.
func resolveProjectRoot(flagValue string) (string, error) {
	if flagValue == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(flagValue)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root %s: %w", flagValue, err)
	}
	return abs, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
