// Package components provides the terminal studio's styles and renderers.
package components

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// Color Palette - Single Source of Truth
// =============================================================================

const (
	ColorPrimary   = "#7C3AED" // Violet - active mode, headings
	ColorSecondary = "#10B981" // Green - success
	ColorAccent    = "#60A5FA" // Blue - clip info
	ColorWarning   = "#F59E0B" // Amber - processing
	ColorError     = "#EF4444" // Red - errors

	ColorMuted   = "#6B7280" // Gray - hints, disabled triggers
	ColorBorder  = "#374151" // Dark gray - borders
	ColorSurface = "#1E293B" // Header background

	ColorText    = "#E5E7EB" // Base text
	ColorTextDim = "#9CA3AF" // Secondary text
)

var (
	Primary   = lipgloss.Color(ColorPrimary)
	Secondary = lipgloss.Color(ColorSecondary)
	Accent    = lipgloss.Color(ColorAccent)
	Warning   = lipgloss.Color(ColorWarning)
	Error     = lipgloss.Color(ColorError)
	Muted     = lipgloss.Color(ColorMuted)
	Border    = lipgloss.Color(ColorBorder)
	Surface   = lipgloss.Color(ColorSurface)
	Text      = lipgloss.Color(ColorText)
	TextDim   = lipgloss.Color(ColorTextDim)
)

// =============================================================================
// Header
// =============================================================================

var (
	HeaderStyle = lipgloss.NewStyle().
			Background(Surface).
			Foreground(Text).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 1)
)

// =============================================================================
// Status
// =============================================================================

var (
	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(Text)

	StatusProcessingStyle = lipgloss.NewStyle().
				Foreground(Warning).
				Bold(true)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// =============================================================================
// Panels
// =============================================================================

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	ActivePanelStyle = PanelStyle.
				BorderForeground(Primary)

	TriggerStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	DisabledTriggerStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Background(Border).
				Padding(0, 2)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Italic(true)

	ClipNameStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	InfoLabelStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Width(10)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)
)
