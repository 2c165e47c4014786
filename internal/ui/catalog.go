package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/offsite/internal/content"
	"github.com/muurk/offsite/internal/reference"
)

// CatalogView renders the visible commands of a reference panel.
type CatalogView struct {
	Panel   *reference.Panel
	Width   int
	Compact bool // One line per command, truncated to Width
}

// NewCatalogView creates a view sized to the terminal
func NewCatalogView(p *reference.Panel) *CatalogView {
	return &CatalogView{Panel: p, Width: GetTerminalWidth()}
}

// Render returns the styled catalog as a string
func (v *CatalogView) Render() string {
	cat := v.Panel.Catalog()
	groups := v.Panel.Groups()

	var lines []string
	if legend := v.renderLegend(cat); legend != "" {
		lines = append(lines, legend, "")
	}

	if len(groups) == 0 {
		lines = append(lines, NoteStyle.Render("  No commands match the active filters."))
		return strings.Join(lines, "\n")
	}

	for gi, g := range groups {
		if gi > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, CategoryStyle.Render(g.Category))
		for _, c := range g.Commands {
			lines = append(lines, v.renderCommand(cat, c))
		}
	}

	if cat.Tip != "" && !v.Compact {
		tip := lipgloss.NewStyle().Width(v.Width - 8).Render("Pro Tip: " + cat.Tip)
		lines = append(lines, "", TipBoxStyle(v.Width).Render(NoteStyle.Render(tip)))
	}
	return strings.Join(lines, "\n")
}

func (v *CatalogView) renderLegend(cat *content.Catalog) string {
	if len(cat.Tags) == 0 {
		return ""
	}
	var parts []string
	for _, t := range cat.Tags {
		mark := "○"
		if v.Panel.IsFilterActive(t.Tag) {
			mark = "●"
		}
		parts = append(parts, TagStyle(t.Color).Render(mark+" "+t.Label))
	}
	line := "  " + strings.Join(parts, "   ")
	if n := v.Panel.ActiveFilterCount(); n > 0 {
		line += NoteStyle.Render(fmt.Sprintf("   (%d active)", n))
	}
	return line
}

func (v *CatalogView) renderCommand(cat *content.Catalog, c content.Command) string {
	marker := " "
	if info, ok := cat.TagInfo(c.Tag); ok {
		marker = TagStyle(info.Color).Render("●")
	}

	if v.Compact {
		line := fmt.Sprintf("   %s %s  %s", marker, CommandStyle.Render(c.Command), DescriptionStyle.Render(c.Description))
		return ansi.Truncate(line, v.Width, "…")
	}

	desc := lipgloss.NewStyle().Width(v.Width - 8).Render(c.Description)
	return fmt.Sprintf("   %s %s\n%s",
		marker,
		CommandStyle.Render(c.Command),
		DescriptionStyle.PaddingLeft(5).Render(desc),
	)
}

// String implements fmt.Stringer
func (v *CatalogView) String() string {
	return v.Render()
}
