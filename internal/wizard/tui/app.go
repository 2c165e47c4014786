package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/offsite/internal/config"
	"github.com/muurk/offsite/internal/content"
	"github.com/muurk/offsite/internal/logging"
	"github.com/muurk/offsite/internal/reference"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenLanding Screen = "landing"
	ScreenUseCase Screen = "usecase"
	ScreenSteps   Screen = "steps"
)

// routes maps each screen to the path it is reachable at.
var routes = []struct {
	path   string
	screen Screen
}{
	{"/", ScreenLanding},
	{"/usecase", ScreenUseCase},
	{"/step-by-step", ScreenSteps},
}

// Screens returns every screen in route table order.
func Screens() []Screen {
	out := make([]Screen, len(routes))
	for i, r := range routes {
		out[i] = r.screen
	}
	return out
}

// Route returns the path of a screen, or "" for an unknown screen.
func Route(s Screen) string {
	for _, r := range routes {
		if r.screen == s {
			return r.path
		}
	}
	return ""
}

// ParseRoute accepts a route path ("/step-by-step") or a screen name
// ("steps"). An empty string selects the landing screen.
func ParseRoute(s string) (Screen, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ScreenLanding, nil
	}
	for _, r := range routes {
		if s == r.path || s == string(r.screen) {
			return r.screen, nil
		}
	}
	return "", fmt.Errorf("unknown screen %q (want landing, usecase or steps)", s)
}

// Messages for screen transitions
type screenTransitionMsg struct {
	screen Screen
}

type goBackMsg struct{}

func transitionCmd(screen Screen) tea.Cmd {
	return func() tea.Msg { return screenTransitionMsg{screen: screen} }
}

func goBackCmd() tea.Msg { return goBackMsg{} }

// Options configure a new application model.
type Options struct {
	Content       *content.Bundle
	StartScreen   Screen
	StartStep     int // 1-based; 0 keeps the first step
	DefaultOS     content.OS
	MarkdownStyle string
	ShowFullHelp  bool
	Clipboard     reference.Clipboard
}

// AppModel is the top-level coordinator model that manages screen transitions.
// Every screen model is built up front so tutorial progress survives moving
// between screens.
type AppModel struct {
	// Current screen state
	CurrentScreen  Screen
	PreviousScreen Screen

	// Screen models
	Landing LandingModel
	UseCase UseCaseModel
	Steps   StepsModel

	// UI state
	Width  int
	Height int
}

// NewAppModel creates a new application model starting at opts.StartScreen.
func NewAppModel(opts Options) (AppModel, error) {
	if opts.Content == nil {
		return AppModel{}, fmt.Errorf("no content bundle")
	}
	if opts.StartScreen == "" {
		opts.StartScreen = ScreenLanding
	}
	if Route(opts.StartScreen) == "" {
		return AppModel{}, fmt.Errorf("unknown screen %q", opts.StartScreen)
	}
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = config.MarkdownAuto
	}
	if opts.Clipboard == nil {
		opts.Clipboard = reference.SystemClipboard{}
	}

	steps, err := NewStepsModel(opts)
	if err != nil {
		return AppModel{}, err
	}

	return AppModel{
		CurrentScreen: opts.StartScreen,
		Landing:       NewLandingModel(opts.Content, opts.ShowFullHelp),
		UseCase:       NewUseCaseModel(&opts.Content.UseCase, opts.ShowFullHelp),
		Steps:         steps,
	}, nil
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Propagate to all screens
		m.Landing = m.Landing.SetSize(msg.Width, msg.Height)
		m.UseCase = m.UseCase.SetSize(msg.Width, msg.Height)
		m.Steps = m.Steps.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screenTransitionMsg:
		return m.transitionTo(msg.screen)

	case goBackMsg:
		return m.goBack()

	// Clipboard results arrive asynchronously and belong to the steps
	// screen whichever screen is showing.
	case reference.CopiedMsg, reference.CopyFailedMsg, reference.CopyExpiredMsg:
		updated, cmd := m.Steps.Update(msg)
		m.Steps = updated.(StepsModel)
		return m, cmd
	}

	// Route to current screen
	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenLanding:
		updated, c := m.Landing.Update(msg)
		m.Landing = updated.(LandingModel)
		cmd = c

	case ScreenUseCase:
		updated, c := m.UseCase.Update(msg)
		m.UseCase = updated.(UseCaseModel)
		cmd = c

	case ScreenSteps:
		updated, c := m.Steps.Update(msg)
		m.Steps = updated.(StepsModel)
		cmd = c
	}

	return m, cmd
}

// transitionTo transitions to a new screen
func (m AppModel) transitionTo(screen Screen) (tea.Model, tea.Cmd) {
	if screen == m.CurrentScreen || Route(screen) == "" {
		return m, nil
	}
	logging.LogScreenTransition(string(m.CurrentScreen), string(screen))
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen
	return m, nil
}

// goBack returns to the previous screen
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenLanding:
		// Can't go back from the landing screen - quit instead
		return m, tea.Quit

	case ScreenSteps:
		if m.PreviousScreen == ScreenUseCase {
			return m.transitionTo(ScreenUseCase)
		}
		return m.transitionTo(ScreenLanding)

	default:
		return m.transitionTo(ScreenLanding)
	}
}

// View renders the current screen
// Each screen handles its own container using RenderApplicationContainer()
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenLanding:
		return m.Landing.View()
	case ScreenUseCase:
		return m.UseCase.View()
	case ScreenSteps:
		return m.Steps.View()
	default:
		return "Unknown screen"
	}
}
