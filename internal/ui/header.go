package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is a labelled value shown under a header title.
type Param struct {
	Key   string
	Value string
}

// Header represents a command banner with title, subtitle, and parameters.
type Header struct {
	Title    string  // e.g., "Git Command Reference"
	Subtitle string  // e.g., "Quick access to common Git commands"
	Params   []Param // Rendered in order
	Width    int     // Terminal width for responsive rendering
}

// NewHeader creates a new header sized to the terminal
func NewHeader(title, subtitle string, params ...Param) *Header {
	return &Header{
		Title:    title,
		Subtitle: subtitle,
		Params:   params,
		Width:    GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{HeaderTitleStyle.Render(strings.ToUpper(h.Title))}
	if h.Subtitle != "" {
		lines = append(lines, HeaderCommandStyle.Render(h.Subtitle))
	}

	if len(h.Params) > 0 {
		dividerWidth := width - 6 // Account for border and padding
		if dividerWidth < 10 {
			dividerWidth = 10
		}
		lines = append(lines, RenderHorizontalDivider(dividerWidth, "─"))

		keyWidth := 0
		for _, p := range h.Params {
			if w := lipgloss.Width(p.Key); w > keyWidth {
				keyWidth = w
			}
		}
		for _, p := range h.Params {
			key := HeaderParamKeyStyle.Render(p.Key + ":" + strings.Repeat(" ", keyWidth-lipgloss.Width(p.Key)))
			lines = append(lines, key+" "+HeaderParamValueStyle.Render(p.Value))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return HeaderBorderStyle(width).Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
