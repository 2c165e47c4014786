package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/offsite/internal/content"
	"github.com/muurk/offsite/internal/logging"
	"github.com/muurk/offsite/internal/navigator"
	"github.com/muurk/offsite/internal/reference"
	"github.com/muurk/offsite/internal/urls"
)

// stepsKeyMap defines key bindings for the step-by-step screen
type stepsKeyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Toggle     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Top        key.Binding
	Bottom     key.Binding
	GoTo       key.Binding
	Git        key.Binding
	Terminal   key.Binding
	FocusPanel key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k stepsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.Git, k.Terminal, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k stepsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.GoTo, k.Toggle},
		{k.ScrollUp, k.ScrollDown, k.Top, k.Bottom},
		{k.Git, k.Terminal, k.FocusPanel},
		{k.Back, k.Help, k.Quit},
	}
}

func newStepsKeyMap() stepsKeyMap {
	return stepsKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "mark complete"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "bottom"),
		),
		GoTo: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to step"),
		),
		Git: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "git commands"),
		),
		Terminal: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "terminal commands"),
		),
		FocusPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus open panel"),
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

// focus is the part of the steps screen receiving key presses.
type focus int

const (
	focusSteps focus = iota
	focusGit
	focusTerminal
)

// StepsModel is the step-by-step tutorial screen: a step list, the body of
// the current step, and the two reference panels.
type StepsModel struct {
	tutorial *content.Tutorial
	Nav      *navigator.Navigator
	Git      PanelModel
	Terminal PanelModel
	Focus    focus

	Width  int
	Height int

	markdown *MarkdownRenderer
	viewport viewport.Model
	bar      progress.Model
	Help     help.Model
	Keys     stepsKeyMap
}

// NewStepsModel creates the tutorial screen. opts.StartStep is 1-based.
func NewStepsModel(opts Options) (StepsModel, error) {
	b := opts.Content
	nav, err := navigator.New(b.Tutorial.Steps)
	if err != nil {
		return StepsModel{}, err
	}
	if opts.StartStep > 0 && !nav.GoTo(opts.StartStep-1) {
		return StepsModel{}, fmt.Errorf("step %d out of range (1-%d)", opts.StartStep, nav.Len())
	}

	os := opts.DefaultOS
	if os == "" || os == content.OSBoth {
		os = reference.DefaultOS()
	}

	h := help.New()
	h.ShowAll = opts.ShowFullHelp
	m := StepsModel{
		tutorial: &b.Tutorial,
		Nav:      nav,
		Git:      NewPanelModel(&b.Git, os, opts.Clipboard),
		Terminal: NewPanelModel(&b.Terminal, os, opts.Clipboard),
		markdown: NewMarkdownRenderer(opts.MarkdownStyle),
		viewport: viewport.New(0, 0),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
		Help: h,
		Keys: newStepsKeyMap(),
	}
	m.layout()
	return m, nil
}

// SetSize resizes the screen and reflows the step body.
func (m StepsModel) SetSize(width, height int) StepsModel {
	m.Width = width
	m.Height = height
	m.Help.Width = width
	m.layout()
	return m
}

// Init implements tea.Model
func (m StepsModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation, panel focus and clipboard results
func (m StepsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reference.CopiedMsg:
		var cmds []tea.Cmd
		for _, p := range []PanelModel{m.Git, m.Terminal} {
			if cmd := p.Panel.HandleCopied(msg); cmd != nil {
				logging.LogCopy(msg.PanelID, msg.Command)
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case reference.CopyExpiredMsg:
		m.Git.Panel.HandleExpired(msg)
		m.Terminal.Panel.HandleExpired(msg)
		return m, nil

	case reference.CopyFailedMsg:
		// Already logged; no acknowledgment is shown
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m StepsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Git):
		m.togglePanel(focusGit)
		return m, nil
	case key.Matches(msg, m.Keys.Terminal):
		m.togglePanel(focusTerminal)
		return m, nil
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	}

	if m.Focus != focusSteps {
		return m.handlePanelKey(msg)
	}

	nav := m.Nav
	from := nav.CurrentIndex()
	switch {
	case key.Matches(msg, m.Keys.Prev):
		if nav.Previous() {
			logging.LogNavigation("previous", from, nav.CurrentIndex(), nav.Len())
			m.refreshBody(true)
		}
	case key.Matches(msg, m.Keys.Next):
		if nav.Next() {
			logging.LogNavigation("next", from, nav.CurrentIndex(), nav.Len())
			m.refreshBody(true)
		}
	case key.Matches(msg, m.Keys.GoTo):
		to := int(msg.String()[0] - '1')
		if to != from && nav.GoTo(to) {
			logging.LogNavigation("goto", from, to, nav.Len())
			m.refreshBody(true)
		}
	case key.Matches(msg, m.Keys.Toggle):
		done := nav.ToggleComplete(from)
		logging.LogStepToggle(from, done, nav.ProgressFraction())
		m.refreshBody(false)
	case key.Matches(msg, m.Keys.ScrollUp):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.Keys.ScrollDown):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.Keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.Keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.Keys.FocusPanel):
		switch {
		case m.Git.Panel.IsOpen():
			m.Focus = focusGit
		case m.Terminal.Panel.IsOpen():
			m.Focus = focusTerminal
		}
	case key.Matches(msg, m.Keys.Back):
		return m, goBackCmd
	}
	return m, nil
}

func (m StepsModel) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		action panelAction
		cmd    tea.Cmd
	)
	switch m.Focus {
	case focusGit:
		m.Git, action, cmd = m.Git.Update(msg)
	case focusTerminal:
		m.Terminal, action, cmd = m.Terminal.Update(msg)
	}
	switch action {
	case panelBlur:
		m.Focus = focusSteps
	case panelClose:
		m.Focus = focusSteps
		m.layout()
	}
	return m, cmd
}

// togglePanel opens a closed panel and focuses it, or closes an open one.
func (m *StepsModel) togglePanel(which focus) {
	p := m.Git.Panel
	if which == focusTerminal {
		p = m.Terminal.Panel
	}

	open := p.ToggleOpen()
	logging.LogPanelToggle(p.ID(), open)
	switch {
	case open:
		m.Focus = which
	case m.Focus == which:
		m.Focus = focusSteps
	}
	m.layout()
}

// FocusedPanel returns the panel with focus, if any.
func (m StepsModel) FocusedPanel() (PanelModel, bool) {
	switch m.Focus {
	case focusGit:
		return m.Git, true
	case focusTerminal:
		return m.Terminal, true
	}
	return PanelModel{}, false
}

// bodyWidth is the width of the right-hand column.
func (m StepsModel) bodyWidth() int {
	return ContentWidth(m.Width) - SidebarWidth - 2
}

// panelHeights splits the right-hand column between the step body and the
// open panels. Closed panels take one line each.
func (m StepsModel) panelHeights() (body, panel int) {
	avail := ContentHeight(m.Height) - 3
	open := 0
	for _, p := range []PanelModel{m.Git, m.Terminal} {
		if p.Panel.IsOpen() {
			open++
		}
	}
	avail -= 2 - open
	if open == 0 {
		return max(avail, 3), 0
	}
	body = max(avail/(open+1), 5)
	panel = max((avail-body)/open, 6)
	return body, panel
}

// layout sizes the viewport and progress bar and re-renders the body.
func (m *StepsModel) layout() {
	bodyHeight, _ := m.panelHeights()
	m.viewport.Width = m.bodyWidth()
	m.viewport.Height = bodyHeight
	m.bar.Width = min(max(m.bodyWidth()/2, 10), 40)
	m.refreshBody(false)
}

func (m *StepsModel) refreshBody(resetScroll bool) {
	m.viewport.SetContent(m.renderStep(m.Nav.CurrentIndex(), m.bodyWidth()))
	if resetScroll {
		m.viewport.GotoTop()
	}
}

// View renders the steps screen
func (m StepsModel) View() string {
	var helpText string
	if p, ok := m.FocusedPanel(); ok {
		helpText = m.Help.View(p.Keys)
	} else {
		helpText = m.Help.View(m.Keys)
	}
	return RenderApplicationContainer(m.buildContent(), helpText, m.Width, m.Height)
}

func (m StepsModel) buildContent() string {
	nav := m.Nav
	header := fmt.Sprintf("Progress: %d of %d steps completed  %s",
		nav.CompletedCount(), nav.Len(),
		TimeStyle.Render(fmt.Sprintf("~%d min remaining", nav.RemainingMinutes())))

	_, panelHeight := m.panelHeights()
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.Git.View(m.bodyWidth(), panelHeight, m.Focus == focusGit, "g"),
		m.Terminal.View(m.bodyWidth(), panelHeight, m.Focus == focusTerminal, "t"),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.bar.ViewAs(nav.ProgressFraction()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", right),
	)
}

func (m StepsModel) renderSidebar() string {
	nav := m.Nav
	var lines []string
	lines = append(lines, SectionTitleStyle.Render(runewidth.Truncate(m.tutorial.Title, SidebarWidth, "…")))
	for i, s := range nav.Steps() {
		marker := MutedStyle.Render("○")
		if nav.IsComplete(i) {
			marker = CompletedStyle.Render("✓")
		}
		title := runewidth.Truncate(fmt.Sprintf("%d. %s", i+1, s.Title), SidebarWidth-4, "…")
		if i == nav.CurrentIndex() {
			title = SelectedMenuItemStyle.PaddingLeft(0).Render(title)
		}
		lines = append(lines, marker+" "+title)
	}
	lines = append(lines, "", MutedStyle.Render(fmt.Sprintf("~%d min total", nav.TotalMinutes())))
	return lipgloss.NewStyle().Width(SidebarWidth).Render(strings.Join(lines, "\n"))
}

// renderStep returns the body of step i wrapped to width.
func (m StepsModel) renderStep(i, width int) string {
	step, ok := m.Nav.Step(i)
	if !ok {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(MutedStyle.Render(fmt.Sprintf("Step %d of %d", i+1, m.Nav.Len())))
	b.WriteString("  ")
	b.WriteString(TimeStyle.Render(fmt.Sprintf("~%d min", step.EstimatedTime)))
	b.WriteString("\n")
	b.WriteString(RenderTitle(step.Title))
	b.WriteString("\n")
	if badges := RenderBadges(step.Badges); badges != "" {
		b.WriteString(badges)
		b.WriteString("\n")
	}
	if m.Nav.IsComplete(i) {
		b.WriteString(CompletedStyle.Render("✓ Completed"))
	} else {
		b.WriteString(MutedStyle.Render("○ Mark as Complete (space)"))
	}
	b.WriteString("\n\n")
	if step.Content != "" {
		b.WriteString(wrap.Render(step.Content))
		b.WriteString("\n\n")
	}

	if len(step.Instructions) > 0 {
		b.WriteString(SectionTitleStyle.Render("Instructions"))
		b.WriteString("\n")
		for n, line := range step.Instructions {
			b.WriteString(hangingIndent(fmt.Sprintf("  %d. ", n+1), line, width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if guide := m.renderGuide(step, width); guide != "" {
		b.WriteString(guide)
		b.WriteString("\n\n")
	}

	var nav []string
	if i > 0 {
		nav = append(nav, "← Previous")
	}
	if i < m.Nav.Len()-1 {
		nav = append(nav, "Next →")
	}
	if len(nav) > 0 {
		b.WriteString(MutedStyle.Render(strings.Join(nav, "   ")))
		b.WriteString("\n")
	}

	if i == m.Nav.Len()-1 && len(m.tutorial.Resources) > 0 {
		b.WriteString("\n")
		b.WriteString(SectionTitleStyle.Render("Resources"))
		b.WriteString("\n")
		for _, r := range m.tutorial.Resources {
			b.WriteString("  • " + r.Title + ": " + MutedStyle.Render(r.Description) + "\n")
			if r.URL != "" {
				b.WriteString("    " + LinkStyle.Render(r.URL) + "\n")
			}
			if r.Note != "" {
				b.WriteString("    " + MutedStyle.Render(r.Note) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderGuide renders the kind-specific part of a step.
func (m StepsModel) renderGuide(step content.Step, width int) string {
	var links []string
	switch step.Kind {
	case content.KindGeneric:
		if m.tutorial.Tip == "" {
			return ""
		}
		tip := lipgloss.NewStyle().Width(width - 4).Render("Pro Tip: " + m.tutorial.Tip)
		return TipBoxStyle.Render(tip)
	case content.KindRequestAccess:
		links = []string{"GitHub: " + urls.GitHub}
	case content.KindInstallVSCode:
		links = []string{"Download: " + urls.VSCodeDownload}
	case content.KindInstallNode:
		links = []string{"Download (LTS): " + urls.NodeDownload}
	case content.KindInstallGit:
		links = []string{"Download: " + urls.GitDownload}
	case content.KindSetupCopilot:
		links = []string{
			"Extension: " + urls.CopilotExtension,
			"Docs: " + urls.CopilotDocs,
		}
	}

	var parts []string
	if guide := m.markdown.Render(step.Guide, width); guide != "" {
		parts = append(parts, guide)
	}
	for _, l := range links {
		parts = append(parts, LinkStyle.Render(l))
	}
	return strings.Join(parts, "\n")
}

// hangingIndent wraps text to width, prefixing the first line and aligning
// the rest under it.
func hangingIndent(prefix, text string, width int) string {
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	body := lipgloss.NewStyle().Width(max(width-len(pad), 10)).Render(text)
	lines := strings.Split(body, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
