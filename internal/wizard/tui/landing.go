package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/offsite/internal/content"
)

// landingKeyMap defines key bindings for the landing screen
type landingKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k landingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k landingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Help, k.Quit},
	}
}

func newLandingKeyMap() landingKeyMap {
	return landingKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// landingItem is one entry of the landing menu. An empty target quits.
type landingItem struct {
	title       string
	description string
	target      Screen
}

var landingItems = []landingItem{
	{"Start Activity", "Preview the use case, agenda and project plan", ScreenUseCase},
	{"Setup Tutorial", "Go straight to the environment setup steps", ScreenSteps},
	{"Quit", "Leave the guide", ""},
}

// LandingModel is the welcome screen.
type LandingModel struct {
	useCase  *content.UseCase
	tutorial *content.Tutorial

	Cursor int
	Width  int
	Height int

	Help help.Model
	Keys landingKeyMap
}

// NewLandingModel creates the landing screen for a content bundle.
func NewLandingModel(b *content.Bundle, showFullHelp bool) LandingModel {
	h := help.New()
	h.ShowAll = showFullHelp
	return LandingModel{
		useCase:  &b.UseCase,
		tutorial: &b.Tutorial,
		Help:     h,
		Keys:     newLandingKeyMap(),
	}
}

// SetSize records the terminal dimensions.
func (m LandingModel) SetSize(width, height int) LandingModel {
	m.Width = width
	m.Height = height
	m.Help.Width = width
	return m
}

// Init implements tea.Model
func (m LandingModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses on the landing menu
func (m LandingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(keyMsg, m.Keys.Down):
		if m.Cursor < len(landingItems)-1 {
			m.Cursor++
		}
	case key.Matches(keyMsg, m.Keys.Select):
		target := landingItems[m.Cursor].target
		if target == "" {
			return m, tea.Quit
		}
		return m, transitionCmd(target)
	case key.Matches(keyMsg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
	case key.Matches(keyMsg, m.Keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// View renders the landing screen
func (m LandingModel) View() string {
	return RenderApplicationContainer(m.buildContent(), m.Help.View(m.Keys), m.Width, m.Height)
}

func (m LandingModel) buildContent() string {
	width := ContentWidth(m.Width)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(RenderTitle("Welcome to the off-site activity"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(RenderSubtitle(m.useCase.Title)))
	b.WriteString("\n\n")
	if m.useCase.Summary != "" {
		b.WriteString(wrap.Render(m.useCase.Summary))
		b.WriteString("\n\n")
	}

	if len(m.useCase.Agenda) > 0 {
		b.WriteString(SectionTitleStyle.Render("Activity Objectives"))
		b.WriteString("\n")
		for _, s := range m.useCase.Agenda {
			line := "  • " + s.Title
			if s.Duration != "" {
				line += "  " + TimeStyle.Render(s.Duration)
			}
			b.WriteString(line + "\n")
		}
		if m.useCase.Duration != "" {
			b.WriteString(MutedStyle.Render("  Total duration: " + m.useCase.Duration))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(MutedStyle.Render(fmt.Sprintf("Setup tutorial: %d steps, ~%d min",
		len(m.tutorial.Steps), m.tutorial.TotalMinutes())))
	b.WriteString("\n\n")

	for i, item := range landingItems {
		b.WriteString(RenderMenuItem(item.title, i == m.Cursor))
		b.WriteString("\n")
		if i == m.Cursor {
			b.WriteString(MutedStyle.PaddingLeft(4).Render(item.description))
			b.WriteString("\n")
		}
	}
	return b.String()
}
