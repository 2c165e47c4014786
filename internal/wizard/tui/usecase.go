package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/offsite/internal/content"
)

// useCaseKeyMap defines key bindings for the use-case preview
type useCaseKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	Toggle      key.Binding
	Start       key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k useCaseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.NextSection, k.Toggle, k.Start, k.Back, k.Help}
}

// FullHelp returns keybindings for the expanded help view
func (k useCaseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextSection, k.PrevSection, k.Toggle},
		{k.Start, k.Back, k.Help, k.Quit},
	}
}

func newUseCaseKeyMap() useCaseKeyMap {
	return useCaseKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous section"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand/collapse"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start tutorial"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// UseCaseModel previews the off-site activity before the tutorial starts.
// Its detail sections are collapsed until expanded.
type UseCaseModel struct {
	useCase  *content.UseCase
	sections []content.Section
	expanded []bool
	Selected int

	Width  int
	Height int

	viewport viewport.Model
	Help     help.Model
	Keys     useCaseKeyMap
}

// NewUseCaseModel creates the preview screen for a use case.
func NewUseCaseModel(uc *content.UseCase, showFullHelp bool) UseCaseModel {
	sections := detailSections(uc)
	h := help.New()
	h.ShowAll = showFullHelp
	m := UseCaseModel{
		useCase:  uc,
		sections: sections,
		expanded: make([]bool, len(sections)),
		viewport: viewport.New(ContentWidth(0), ContentHeight(0)),
		Help:     h,
		Keys:     newUseCaseKeyMap(),
	}
	m.refresh(false)
	return m
}

// detailSections returns the collapsible sections in display order. The
// category, business unit and languages form the first section when any
// is set.
func detailSections(uc *content.UseCase) []content.Section {
	var fields []string
	if len(uc.Languages) > 0 {
		fields = append(fields, "Language: "+strings.Join(uc.Languages, " / "))
	}
	if uc.Category != "" {
		fields = append(fields, "Category: "+uc.Category)
	}
	if uc.BusinessUnit != "" {
		fields = append(fields, "Business Unit: "+uc.BusinessUnit)
	}

	var out []content.Section
	if len(fields) > 0 {
		out = append(out, content.Section{Title: "Additional Details", Body: strings.Join(fields, "\n")})
	}
	return append(out, uc.Details...)
}

// Sections returns the collapsible sections.
func (m UseCaseModel) Sections() []content.Section {
	return m.sections
}

// IsExpanded reports whether section i is expanded.
func (m UseCaseModel) IsExpanded(i int) bool {
	return i >= 0 && i < len(m.expanded) && m.expanded[i]
}

// SetSize resizes the scrolling body.
func (m UseCaseModel) SetSize(width, height int) UseCaseModel {
	m.Width = width
	m.Height = height
	m.Help.Width = width
	m.viewport.Width = ContentWidth(width)
	m.viewport.Height = ContentHeight(height)
	m.refresh(false)
	return m
}

// Init implements tea.Model
func (m UseCaseModel) Init() tea.Cmd {
	return nil
}

// Update handles scrolling and section toggles
func (m UseCaseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(keyMsg, m.Keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(keyMsg, m.Keys.NextSection):
		if len(m.sections) > 0 {
			m.Selected = (m.Selected + 1) % len(m.sections)
			m.refresh(true)
		}
	case key.Matches(keyMsg, m.Keys.PrevSection):
		if len(m.sections) > 0 {
			m.Selected = (m.Selected + len(m.sections) - 1) % len(m.sections)
			m.refresh(true)
		}
	case key.Matches(keyMsg, m.Keys.Toggle):
		if len(m.sections) > 0 {
			// Copy so earlier model values keep their own state
			expanded := append([]bool(nil), m.expanded...)
			expanded[m.Selected] = !expanded[m.Selected]
			m.expanded = expanded
			m.refresh(true)
		}
	case key.Matches(keyMsg, m.Keys.Start):
		return m, transitionCmd(ScreenSteps)
	case key.Matches(keyMsg, m.Keys.Back):
		return m, goBackCmd
	case key.Matches(keyMsg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
	case key.Matches(keyMsg, m.Keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// refresh rebuilds the body. With follow set it scrolls just enough to
// keep the selected section header in view.
func (m *UseCaseModel) refresh(follow bool) {
	body, selectedLine := m.buildContent()
	m.viewport.SetContent(body)
	if !follow {
		return
	}
	if selectedLine < m.viewport.YOffset {
		m.viewport.SetYOffset(selectedLine)
	} else if bottom := m.viewport.YOffset + m.viewport.Height - 1; selectedLine > bottom {
		m.viewport.SetYOffset(selectedLine - m.viewport.Height + 1)
	}
}

// View renders the use-case preview
func (m UseCaseModel) View() string {
	return RenderApplicationContainer(m.viewport.View(), m.Help.View(m.Keys), m.Width, m.Height)
}

// buildContent returns the body and the line index of the selected section
// header.
func (m UseCaseModel) buildContent() (string, int) {
	width := ContentWidth(m.Width)
	wrap := lipgloss.NewStyle().Width(width)
	indent := lipgloss.NewStyle().Width(width - 4).PaddingLeft(4)
	uc := m.useCase

	var lines []string
	add := func(s string) {
		lines = append(lines, strings.Split(s, "\n")...)
	}

	add(RenderTitle(uc.Title))
	if uc.Summary != "" {
		add(wrap.Render(uc.Summary))
		add("")
	}

	if len(uc.Tools) > 0 {
		add(SectionTitleStyle.Render("Tools"))
		add("  " + strings.Join(uc.Tools, "  •  "))
		if uc.ToolsNote != "" {
			add(InfoBoxStyle.Width(width - 4).Render(uc.ToolsNote))
		}
		add("")
	}

	if len(uc.Agenda) > 0 {
		title := "Agenda"
		if uc.Duration != "" {
			title += "  " + TimeStyle.Render(uc.Duration)
		}
		add(SectionTitleStyle.Render(title))
		for i, s := range uc.Agenda {
			head := fmt.Sprintf("  %d. %s", i+1, s.Title)
			if s.Duration != "" {
				head += "  " + TimeStyle.Render(s.Duration)
			}
			add(lipgloss.NewStyle().Bold(true).Render(head))
			if s.Description != "" {
				add(indent.Render(s.Description))
			}
			for _, t := range s.Topics {
				add(indent.Render("• " + t.Name + ": " + MutedStyle.Render(t.Description)))
			}
			if s.Note != "" {
				add(indent.Render(MutedStyle.Render(s.Note)))
			}
		}
		add("")
	}

	if len(uc.Plan) > 0 {
		add(SectionTitleStyle.Render(fmt.Sprintf("Project Plan  %s",
			TimeStyle.Render(fmt.Sprintf("%d min total", uc.PlanMinutes())))))
		for i, p := range uc.Plan {
			add(fmt.Sprintf("  %d. %s  %s", i+1, p.Title, TimeStyle.Render(fmt.Sprintf("%d min", p.Minutes))))
			if p.Description != "" {
				add(indent.Render(MutedStyle.Render(p.Description)))
			}
		}
		add(CompletedStyle.Render(fmt.Sprintf("  Build your website in just %d steps!", len(uc.Plan))))
		add("")
	}

	selectedLine := 0
	for i, s := range m.sections {
		marker := "▸"
		if m.IsExpanded(i) {
			marker = "▾"
		}
		if i == m.Selected {
			selectedLine = len(lines)
		}
		add(RenderMenuItem(marker+" "+s.Title, i == m.Selected))
		if m.IsExpanded(i) {
			add(indent.Render(s.Body))
		}
	}

	if len(uc.Resources) > 0 {
		add("")
		add(SectionTitleStyle.Render("Resources"))
		for _, r := range uc.Resources {
			add("  • " + r.Title + ": " + MutedStyle.Render(r.Description))
			if r.URL != "" {
				add("    " + LinkStyle.Render(r.URL))
			}
		}
	}

	return strings.Join(lines, "\n"), selectedLine
}
