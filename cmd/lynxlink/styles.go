// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output.
// These colors are designed for dark terminal backgrounds with good contrast.
const (
	// ColorPrimary is purple - used for titles, headers, and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles, secondary text, and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for success states and completed steps.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors and failed steps.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings and skipped steps.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for module names, class names and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for module names, class names and code.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

// Status icons used in progress output.
var (
	stepIcon    = CmdStyle.Render("→")
	successIcon = SuccessStyle.Render("✔")
	warningIcon = WarningStyle.Render("!")
	failureIcon = ErrorStyle.Render("✘")
)
