// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette for the CLI's own messages. Help screens are styled by the
// engine's theme instead.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for success states.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for names the user can type.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary text.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for theme names, paths and commands.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)
