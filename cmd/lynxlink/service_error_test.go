// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/kafitra/lynxlink/internal/android"
	"github.com/kafitra/lynxlink/internal/config"
	"github.com/kafitra/lynxlink/internal/issue"
	"github.com/kafitra/lynxlink/internal/linker"
	"github.com/kafitra/lynxlink/internal/managedblock"
	"github.com/kafitra/lynxlink/pkg/lynxmod"
	"github.com/kafitra/lynxlink/pkg/types"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	configErr := issue.NewErrorContext().
		WithOperation("load configuration").
		WithGuide(issue.ConfigLoadFailedId).
		Wrap(errors.New("bad")).
		BuildError()
	guided := issue.NewErrorContext().
		WithOperation("use applicationId as the Java package").
		WithGuide(issue.InvalidJavaPackageId).
		Wrap(linker.ErrJavaPackageNotFound).
		BuildError()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"android dir", fmt.Errorf("%w: /x/android", android.ErrAndroidDirNotFound), issue.AndroidDirNotFoundId},
		{"metadata", fmt.Errorf("scan: %w", lynxmod.ErrInvalidMetadata), issue.ModuleMetadataInvalidId},
		{"application id", linker.ErrJavaPackageNotFound, issue.ApplicationIdNotFoundId},
		{"java package", &android.InvalidJavaPackageError{Value: "1bad"}, issue.InvalidJavaPackageId},
		{"permission", fmt.Errorf("write: %w", os.ErrPermission), issue.PermissionDeniedId},
		{
			"build script anchor",
			&linker.StepError{Step: "build script", Err: &managedblock.AnchorNotFoundError{Anchor: "dependencies {"}},
			issue.BuildScriptInvalidId,
		},
		{"manifest step", &linker.StepError{Step: "manifest", Err: errors.New("boom")}, issue.ManifestInvalidId},
		{"color scheme", &config.InvalidColorSchemeError{Value: "neon"}, issue.ConfigLoadFailedId},
		{"config load", configErr, issue.ConfigLoadFailedId},
		{"attached guide wins", guided, issue.InvalidJavaPackageId},
		{"unknown", errors.New("something else"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReportError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := reportError(&buf, errors.New("it broke"), false, config.ColorSchemeDark)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T", err)
	}
	if exitErr.Code != types.ExitFailure || exitErr.Err != nil {
		t.Errorf("unexpected ExitError %+v", exitErr)
	}
	if !strings.Contains(buf.String(), "Error:") || !strings.Contains(buf.String(), "it broke") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestReportError_VerboseRendersGuide(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_ = reportError(&buf, linker.ErrJavaPackageNotFound, true, config.ColorScheme("notty"))

	if !strings.Contains(buf.String(), "applicationId") {
		t.Errorf("expected the issue guide in verbose output, got %q", buf.String())
	}
}

func TestReportError_VerboseHint(t *testing.T) {
	t.Parallel()

	const hint = "Run again with --verbose"
	withSuggestion := issue.NewErrorContext().
		WithOperation("determine applicationId").
		WithSuggestion("Use --java-package to specify the package name explicitly").
		WithGuide(issue.ApplicationIdNotFoundId).
		Wrap(linker.ErrJavaPackageNotFound).
		BuildError()

	tests := []struct {
		name     string
		err      error
		verbose  bool
		wantHint bool
	}{
		{"guide without suggestions", fmt.Errorf("scan: %w", lynxmod.ErrInvalidMetadata), false, true},
		{"suggestions already shown", withSuggestion, false, false},
		{"no guide", errors.New("it broke"), false, false},
		{"verbose renders the guide instead", fmt.Errorf("scan: %w", lynxmod.ErrInvalidMetadata), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			_ = reportError(&buf, tt.err, tt.verbose, config.ColorScheme("notty"))
			if got := strings.Contains(buf.String(), hint); got != tt.wantHint {
				t.Errorf("hint shown = %v, want %v\n%s", got, tt.wantHint, buf.String())
			}
		})
	}
}
