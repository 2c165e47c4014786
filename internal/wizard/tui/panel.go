package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/offsite/internal/content"
	"github.com/muurk/offsite/internal/logging"
	"github.com/muurk/offsite/internal/reference"
)

// panelKeyMap defines key bindings for a focused reference panel
type panelKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Copy    key.Binding
	Filter  key.Binding
	Clear   key.Binding
	Mac     key.Binding
	Windows key.Binding
	Blur    key.Binding
	Close   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k panelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Copy, k.Filter, k.Clear, k.Blur, k.Close}
}

// FullHelp returns keybindings for the expanded help view
func (k panelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Copy},
		{k.Filter, k.Clear, k.Mac, k.Windows},
		{k.Blur, k.Close},
	}
}

func newPanelKeyMap() panelKeyMap {
	return panelKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter/y", "copy"),
		),
		Filter: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle tag"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Mac: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "macOS"),
		),
		Windows: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Windows"),
		),
		Blur: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "back to steps"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close panel"),
		),
	}
}

// PanelModel is the interactive view of one reference panel. The panel
// state itself lives in reference.Panel; this adds the cursor.
type PanelModel struct {
	Panel  *reference.Panel
	Cursor int

	clipboard reference.Clipboard
	Keys      panelKeyMap
}

// panelAction tells the steps screen what a key press did to focus.
type panelAction int

const (
	panelStay panelAction = iota
	panelBlur
	panelClose
)

// NewPanelModel wraps a catalog in a closed panel.
func NewPanelModel(catalog *content.Catalog, os content.OS, cb reference.Clipboard) PanelModel {
	p := reference.New(catalog)
	p.SetOS(os)
	return PanelModel{
		Panel:     p,
		clipboard: cb,
		Keys:      newPanelKeyMap(),
	}
}

// Commands returns the visible commands in display order.
func (m PanelModel) Commands() []content.Command {
	var out []content.Command
	for _, g := range m.Panel.Groups() {
		out = append(out, g.Commands...)
	}
	return out
}

// Selected returns the command under the cursor.
func (m PanelModel) Selected() (content.Command, bool) {
	cmds := m.Commands()
	if m.Cursor < 0 || m.Cursor >= len(cmds) {
		return content.Command{}, false
	}
	return cmds[m.Cursor], true
}

func (m *PanelModel) clampCursor() {
	n := len(m.Commands())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// Update handles a key press while the panel has focus.
func (m PanelModel) Update(msg tea.KeyMsg) (PanelModel, panelAction, tea.Cmd) {
	cat := m.Panel.Catalog()

	switch {
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.Commands())-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Copy):
		if c, ok := m.Selected(); ok {
			return m, panelStay, reference.CopyCmd(m.clipboard, m.Panel.ID(), c.Command)
		}
	case key.Matches(msg, m.Keys.Filter):
		i := int(msg.String()[0] - '1')
		if i < len(cat.Tags) {
			tag := cat.Tags[i].Tag
			active := m.Panel.ToggleFilter(tag)
			m.clampCursor()
			logging.LogFilterChange(m.Panel.ID(), tag, active, len(m.Panel.Visible()))
		}
	case key.Matches(msg, m.Keys.Clear):
		m.Panel.ClearFilters()
		m.clampCursor()
	case key.Matches(msg, m.Keys.Mac):
		if cat.OSAware {
			m.Panel.SetOS(content.OSMac)
			m.clampCursor()
		}
	case key.Matches(msg, m.Keys.Windows):
		if cat.OSAware {
			m.Panel.SetOS(content.OSWindows)
			m.clampCursor()
		}
	case key.Matches(msg, m.Keys.Blur):
		return m, panelBlur, nil
	case key.Matches(msg, m.Keys.Close):
		m.Panel.SetOpen(false)
		logging.LogPanelToggle(m.Panel.ID(), false)
		return m, panelClose, nil
	}
	return m, panelStay, nil
}

// View renders the panel in a box of at most width x height cells. A
// collapsed panel renders as its one-line title.
func (m PanelModel) View(width, height int, focused bool, toggleKey string) string {
	cat := m.Panel.Catalog()
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	marker := "▸"
	if m.Panel.IsOpen() {
		marker = "▾"
	}
	title := fmt.Sprintf("%s %s  %s", marker, SectionTitleStyle.Render(cat.Title), MutedStyle.Render("["+toggleKey+"]"))
	if !m.Panel.IsOpen() {
		return title
	}

	var lines []string
	if cat.Subtitle != "" {
		lines = append(lines, MutedStyle.Render(ansi.Truncate(cat.Subtitle, inner, "…")))
	}
	if legend := m.renderLegend(); legend != "" {
		lines = append(lines, ansi.Truncate(legend, inner, "…"))
	}
	if cat.OSAware {
		lines = append(lines, m.renderOSSelector())
	}
	header := len(lines)

	rows, cursorRow := m.rows(inner)
	if len(rows) == 0 {
		rows = []string{MutedStyle.Render("No commands match the active filters.")}
	}

	// Window the rows around the cursor. Border and title take three rows.
	avail := height - 3 - header
	if avail < 3 {
		avail = 3
	}
	start := 0
	if cursorRow >= avail {
		start = cursorRow - avail + 1
	}
	end := start + avail
	if end > len(rows) {
		end = len(rows)
	}
	lines = append(lines, rows[start:end]...)

	style := BlurredPanelStyle
	if focused {
		style = FocusedPanelStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, style.Width(width-2).Render(strings.Join(lines, "\n")))
}

func (m PanelModel) renderLegend() string {
	cat := m.Panel.Catalog()
	if len(cat.Tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cat.Tags))
	for i, t := range cat.Tags {
		mark := "○"
		if m.Panel.IsFilterActive(t.Tag) {
			mark = "●"
		}
		parts = append(parts, TagColorStyle(t.Color).Render(fmt.Sprintf("%d %s %s", i+1, mark, t.Label)))
	}
	line := strings.Join(parts, "  ")
	if n := m.Panel.ActiveFilterCount(); n > 0 {
		line += MutedStyle.Render(fmt.Sprintf("  (%d active)", n))
	}
	return line
}

func (m PanelModel) renderOSSelector() string {
	var parts []string
	for _, os := range []content.OS{content.OSMac, content.OSWindows} {
		label := os.Label()
		if m.Panel.OS() == os {
			parts = append(parts, SelectedMenuItemStyle.PaddingLeft(0).Render("["+label+"]"))
		} else {
			parts = append(parts, MutedStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

// rows returns the category and command lines, and the row of the cursor.
func (m PanelModel) rows(width int) ([]string, int) {
	cat := m.Panel.Catalog()
	var rows []string
	cursorRow := 0
	i := 0
	for _, g := range m.Panel.Groups() {
		rows = append(rows, lipgloss.NewStyle().Bold(true).Render(g.Category))
		for _, c := range g.Commands {
			pointer := "  "
			if i == m.Cursor {
				pointer = SelectedMenuItemStyle.PaddingLeft(0).Render("→ ")
				cursorRow = len(rows)
			}
			dot := " "
			if info, ok := cat.TagInfo(c.Tag); ok {
				dot = TagColorStyle(info.Color).Render("●")
			}
			line := fmt.Sprintf("%s%s %s  %s", pointer, dot, CodeStyle.Render(c.Command), MutedStyle.Render(c.Description))
			if m.Panel.IsCopied(c.Command) {
				line = fmt.Sprintf("%s%s %s  %s", pointer, dot, CodeStyle.Render(c.Command), CopiedStyle.Render("✓ Copied!"))
			}
			rows = append(rows, ansi.Truncate(line, width, "…"))
			i++
		}
	}
	return rows, cursorRow
}
