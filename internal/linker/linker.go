// SPDX-License-Identifier: MPL-2.0

package linker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/kafitra/lynxlink/internal/android"
	"github.com/kafitra/lynxlink/internal/issue"
	"github.com/kafitra/lynxlink/internal/scanner"
	"github.com/kafitra/lynxlink/pkg/lynxmod"
)

const (
	// StatusDone means the step ran and its file is up to date.
	StatusDone Status = "done"
	// StatusSkipped means the step did not run because its optional target
	// file does not exist.
	StatusSkipped Status = "skipped"
	// StatusFailed means the step returned an error.
	StatusFailed Status = "failed"
)

// ErrJavaPackageNotFound is returned when no Java package was given and none
// could be read from app/build.gradle.
var ErrJavaPackageNotFound = errors.New("could not determine the Java package")

type (
	// Status is the outcome of a step.
	Status string

	// Options configures a linking pass.
	Options struct {
		// ProjectRoot is the host project directory (where package.json lives).
		ProjectRoot string
		// AndroidDir is the Android project directory, absolute or relative
		// to ProjectRoot. Defaults to "android".
		AndroidDir string
		// JavaPackage is the package for the generated registry. When empty
		// it is read from applicationId in app/build.gradle.
		JavaPackage string
		// DependencyDir is the npm install directory name. Defaults to
		// "node_modules".
		DependencyDir string
		// Logger receives progress and diagnostics. Defaults to a discarding
		// logger.
		Logger *log.Logger
	}

	// Step is one artifact of a linking pass.
	Step struct {
		// Name identifies the step in logs and errors.
		Name string
		// Path is the file the step writes.
		Path string
		// Optional steps are skipped when Path does not exist, and their
		// failures are reported without stopping the pass.
		Optional bool
		// Run performs the step.
		Run func() error
	}

	// StepResult is the recorded outcome of a step.
	StepResult struct {
		Name   string
		Path   string
		Status Status
		Err    error
	}

	// Result describes a linking pass, complete or not.
	Result struct {
		Layout      android.Layout
		JavaPackage string
		Modules     []*lynxmod.Descriptor
		Diagnostics []scanner.Diagnostic
		Steps       []StepResult
	}
)

// Link runs a complete linking pass. On failure the returned Result holds
// everything done up to that point; a failed step yields a *StepError.
func Link(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	layout, err := android.NewLayout(opts.ProjectRoot, opts.AndroidDir)
	if err != nil {
		return nil, err
	}
	result := &Result{Layout: layout}

	if err := layout.Check(); err != nil {
		return result, issue.NewErrorContext().
			WithOperation("locate the Android project").
			WithResource(layout.AndroidDir).
			WithSuggestion("Use --android-dir to specify the correct path").
			WithGuide(issue.AndroidDirNotFoundId).
			Wrap(err).
			BuildError()
	}

	logger.Debug("scanning for Lynx native modules", "root", layout.ProjectRoot)
	scanned, err := scanner.ScanWithDiagnostics(layout.ProjectRoot, scanner.WithDependencyDir(opts.DependencyDir))
	if err != nil {
		return result, fmt.Errorf("module scan failed: %w", err)
	}
	result.Modules = scanned.Modules
	result.Diagnostics = scanned.Diagnostics
	for _, d := range scanned.Diagnostics {
		logger.Warn(d.Message, "code", d.Code)
	}
	logger.Debug("scan complete", "modules", len(scanned.Modules), "searched", scanned.SearchedDirs)

	javaPackage, err := resolveJavaPackage(opts.JavaPackage, layout)
	if err != nil {
		return result, err
	}
	result.JavaPackage = javaPackage

	if err := ctx.Err(); err != nil {
		return result, err
	}

	return result, Run(ctx, logger, Steps(layout, javaPackage, result.Modules), result)
}

// Steps returns the linking steps in the order they must run.
func Steps(layout android.Layout, javaPackage string, mods []*lynxmod.Descriptor) []Step {
	return []Step{
		{
			Name: "registry",
			Path: layout.RegistryFile(javaPackage),
			Run: func() error {
				_, err := android.WriteRegistry(layout.AppDir, javaPackage, mods)
				return err
			},
		},
		{
			Name: "settings",
			Path: layout.SettingsFile,
			Run:  func() error { return android.InjectSettings(layout.SettingsFile, mods) },
		},
		{
			Name: "build script",
			Path: layout.BuildFile,
			Run:  func() error { return android.InjectBuildScript(layout.BuildFile, mods) },
		},
		{
			Name:     "manifest",
			Path:     layout.ManifestFile,
			Optional: true,
			Run:      func() error { return android.InjectManifestPermissions(layout.ManifestFile, mods) },
		},
	}
}

// Run executes steps in order, appending their outcomes to result. It stops
// at the first failing required step or when ctx is done.
func Run(ctx context.Context, logger *log.Logger, steps []Step, result *Result) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var completed []string
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: step.Name, Path: step.Path, Completed: completed, Err: err}
		}

		if step.Optional {
			if _, err := os.Stat(step.Path); errors.Is(err, fs.ErrNotExist) {
				logger.Warn("skipping step, file not found", "step", step.Name, "path", step.Path)
				result.Steps = append(result.Steps, StepResult{Name: step.Name, Path: step.Path, Status: StatusSkipped})
				continue
			}
		}

		logger.Debug("running step", "step", step.Name, "path", step.Path)
		if err := step.Run(); err != nil {
			result.Steps = append(result.Steps, StepResult{Name: step.Name, Path: step.Path, Status: StatusFailed, Err: err})
			if step.Optional {
				logger.Warn("optional step failed", "step", step.Name, "err", err)
				continue
			}
			return &StepError{Step: step.Name, Path: step.Path, Completed: completed, Err: err}
		}

		result.Steps = append(result.Steps, StepResult{Name: step.Name, Path: step.Path, Status: StatusDone})
		completed = append(completed, step.Name)
	}
	return nil
}

func resolveJavaPackage(explicit string, layout android.Layout) (string, error) {
	if explicit != "" {
		if err := android.ValidateJavaPackage(explicit); err != nil {
			return "", issue.NewErrorContext().
				WithOperation("use the Java package").
				WithSuggestion("Pass a dotted package such as --java-package com.example.myapp").
				WithGuide(issue.InvalidJavaPackageId).
				Wrap(err).
				BuildError()
		}
		return explicit, nil
	}

	id, ok := android.ReadApplicationID(layout.BuildFile)
	if !ok {
		return "", issue.NewErrorContext().
			WithOperation("determine applicationId").
			WithResource(layout.BuildFile).
			WithSuggestion("Use --java-package to specify the package name explicitly").
			WithGuide(issue.ApplicationIdNotFoundId).
			Wrap(ErrJavaPackageNotFound).
			BuildError()
	}
	if err := android.ValidateJavaPackage(id); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("use applicationId as the Java package").
			WithResource(layout.BuildFile).
			WithSuggestion("Use --java-package to specify a valid package name").
			WithGuide(issue.InvalidJavaPackageId).
			Wrap(err).
			BuildError()
	}
	return id, nil
}

// Failed returns the results of steps that failed, including optional ones.
func (r *Result) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			failed = append(failed, s)
		}
	}
	return failed
}
