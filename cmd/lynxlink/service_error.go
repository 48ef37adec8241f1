// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/kafitra/lynxlink/internal/android"
	"github.com/kafitra/lynxlink/internal/config"
	"github.com/kafitra/lynxlink/internal/issue"
	"github.com/kafitra/lynxlink/internal/linker"
	"github.com/kafitra/lynxlink/internal/managedblock"
	"github.com/kafitra/lynxlink/pkg/lynxmod"
	"github.com/kafitra/lynxlink/pkg/types"
)

// classifyError maps a failure to the issue catalog entry that explains it.
// A guide attached to an ActionableError wins. It returns 0 when no guide
// applies.
func classifyError(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Guide != 0 {
		return ae.Guide
	}

	var stepErr *linker.StepError
	switch {
	case errors.Is(err, android.ErrAndroidDirNotFound):
		return issue.AndroidDirNotFoundId
	case errors.Is(err, lynxmod.ErrInvalidMetadata):
		return issue.ModuleMetadataInvalidId
	case errors.Is(err, linker.ErrJavaPackageNotFound):
		return issue.ApplicationIdNotFoundId
	case errors.Is(err, android.ErrInvalidJavaPackage):
		return issue.InvalidJavaPackageId
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId
	case errors.As(err, &stepErr):
		switch stepErr.Step {
		case "build script":
			if errors.Is(err, android.ErrBuildScriptNotFound) || errors.Is(err, managedblock.ErrAnchorNotFound) {
				return issue.BuildScriptInvalidId
			}
		case "manifest":
			return issue.ManifestInvalidId
		}
	case errors.Is(err, config.ErrInvalidColorScheme):
		return issue.ConfigLoadFailedId
	}
	return 0
}

// reportError renders err to w and returns the ExitError the command should
// return. In verbose mode the matching issue guide follows the message;
// otherwise errors that carry no suggestions point at --verbose.
func reportError(w io.Writer, err error, verbose bool, scheme config.ColorScheme) error {
	fmt.Fprintf(w, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))

	id := classifyError(err)
	switch {
	case id == 0:
	case !verbose:
		if !hasSuggestions(err) {
			fmt.Fprintln(w, SubtitleStyle.Render("Run again with --verbose for a guide to fixing this."))
		}
	default:
		if scheme == "" {
			scheme = config.ColorSchemeAuto
		}
		if catalogEntry := issue.Get(id); catalogEntry != nil {
			rendered, renderErr := catalogEntry.Render(scheme.String())
			if renderErr != nil {
				log.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
			} else {
				fmt.Fprint(w, rendered)
			}
		}
	}

	return &ExitError{Code: types.ExitFailure}
}

// hasSuggestions reports whether err, or an error it wraps, already prints
// next steps.
func hasSuggestions(err error) bool {
	var ae *issue.ActionableError
	return errors.As(err, &ae) && ae.HasSuggestions()
}
