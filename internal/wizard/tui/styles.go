package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/offsite/internal/version"
)

// Application branding constants
const (
	AppName   = "OFFSITE ONBOARDING"
	GitHubURL = "github.com/muurk/offsite"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72 // Minimum supported terminal width
	SidebarWidth     = 34 // Step list column on the steps screen
	chromeHeight     = 7  // Container border, header and footer rows
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	AccentColor    = lipgloss.Color("#006F93") // Teal, the activity brand colour
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	TimeStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Border(lipgloss.RoundedBorder(), false, true).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	LinkStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Underline(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Tip box style
	TipBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(0, 1)

	// Info box style
	InfoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// Panel header style when the panel has focus
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(HighlightColor).
				Padding(0, 1)

	// Panel header style when the panel does not have focus
	BlurredPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(SubtleColor).
				Padding(0, 1)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("→ " + text)
	}
	return MenuItemStyle.Render("  " + text)
}

// RenderBadges renders step badges on one line.
func RenderBadges(badges []string) string {
	if len(badges) == 0 {
		return ""
	}
	parts := make([]string, len(badges))
	for i, b := range badges {
		parts[i] = BadgeStyle.Render(b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// TagColorStyle returns a bold foreground style for a catalog tag colour.
func TagColorStyle(hex string) lipgloss.Style {
	if hex == "" {
		return MutedStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
}

// BuildHeaderContent creates header content with app name and GitHub URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer is the wrapper for every screen in the application.
// It provides a full-screen bordered panel with the application header and
// a context-sensitive footer. Pattern:
//
//	func (m Model) View() string {
//	    content := m.buildContent()
//	    helpText := m.Help.View(m.Keys)
//	    return RenderApplicationContainer(content, helpText, m.Width, m.Height)
//	}
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalHeight < 12 {
		terminalHeight = 12
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	// Callers control their own content margins
	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		contentStyle.Render(content),
		footerStyle.Render(BuildFooterContent(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(innerContent)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}

// ContentWidth returns the usable width inside the application container.
func ContentWidth(terminalWidth int) int {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	return terminalWidth - 6
}

// ContentHeight returns the usable height inside the application container.
func ContentHeight(terminalHeight int) int {
	h := terminalHeight - chromeHeight
	if h < 8 {
		h = 8
	}
	return h
}
