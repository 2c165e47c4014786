package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/muurk/offsite/internal/content"
)

func TestDetailSections(t *testing.T) {
	uc := &content.UseCase{
		Category:  "Web Development",
		Languages: []string{"TypeScript", "JavaScript"},
		Details:   []content.Section{{Title: "Requirements", Body: "Node.js"}},
	}
	got := detailSections(uc)
	want := []content.Section{
		{Title: "Additional Details", Body: "Language: TypeScript / JavaScript\nCategory: Web Development"},
		{Title: "Requirements", Body: "Node.js"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("detailSections() mismatch (-want +got):\n%s", diff)
	}

	if got := detailSections(&content.UseCase{}); len(got) != 0 {
		t.Errorf("detailSections(empty) = %v, want none", got)
	}
}

func TestUseCaseSectionsCollapsed(t *testing.T) {
	m, _ := newTestApp(t, Options{StartScreen: ScreenUseCase})
	uc := m.UseCase
	if n := len(uc.Sections()); n != 4 {
		t.Fatalf("Sections() = %d, want 4", n)
	}
	for i := range uc.Sections() {
		if uc.IsExpanded(i) {
			t.Errorf("section %d expanded at start", i)
		}
	}
}

func TestUseCaseToggleSections(t *testing.T) {
	m, _ := newTestApp(t, Options{StartScreen: ScreenUseCase})

	m, _ = send(t, m, keyEnter)
	if !m.UseCase.IsExpanded(0) {
		t.Fatal("enter did not expand the first section")
	}

	m, _ = send(t, m, keyTab)
	if m.UseCase.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.UseCase.Selected)
	}
	m, _ = send(t, m, keySpace)
	if !m.UseCase.IsExpanded(1) || !m.UseCase.IsExpanded(0) {
		t.Error("sections should expand independently")
	}

	m, _ = send(t, m, keyEnter)
	if m.UseCase.IsExpanded(1) {
		t.Error("second enter did not collapse")
	}

	// tab wraps from the last section to the first
	m, _ = send(t, m, keyTab)
	m, _ = send(t, m, keyTab)
	m, _ = send(t, m, keyTab)
	if m.UseCase.Selected != 0 {
		t.Fatalf("Selected = %d, want 0 after wrapping", m.UseCase.Selected)
	}
}

func TestUseCaseContent(t *testing.T) {
	m, _ := newTestApp(t, Options{StartScreen: ScreenUseCase})
	uc := testBundle(t).UseCase

	body, _ := m.UseCase.buildContent()
	body = plain(body)
	for _, want := range []string{
		uc.Title,
		"Agenda",
		"Project Plan",
		"145 min total",
		"Build your website in just 7 steps!",
		"Technical Details",
		"Resources",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("use case body missing %q", want)
		}
	}
	if strings.Contains(body, uc.Details[0].Body[:20]) {
		t.Error("collapsed section body rendered")
	}
}

func TestUseCaseStartAndBack(t *testing.T) {
	m, _ := newTestApp(t, Options{StartScreen: ScreenUseCase})
	m, _ = send(t, m, runeKey("s"))
	if m.CurrentScreen != ScreenSteps {
		t.Fatalf("CurrentScreen = %q, want steps", m.CurrentScreen)
	}

	m, _ = newTestApp(t, Options{StartScreen: ScreenUseCase})
	m, _ = send(t, m, keyEsc)
	if m.CurrentScreen != ScreenLanding {
		t.Errorf("CurrentScreen = %q, want landing", m.CurrentScreen)
	}
}

func TestUseCaseOpensAtTop(t *testing.T) {
	m, _ := newTestApp(t, Options{StartScreen: ScreenUseCase})
	uc := testBundle(t).UseCase

	if off := m.UseCase.viewport.YOffset; off != 0 {
		t.Fatalf("YOffset = %d after sizing, want 0", off)
	}
	view := plain(m.View())
	for _, want := range []string{uc.Title, "Tools", uc.ToolsNote[:20]} {
		if !strings.Contains(view, want) {
			t.Errorf("use case view missing %q", want)
		}
	}

	// A second resize keeps the top in view
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if off := m.UseCase.viewport.YOffset; off != 0 {
		t.Errorf("YOffset = %d after resize, want 0", off)
	}
}

func TestUseCaseSelectionScrollsIntoView(t *testing.T) {
	m, _ := newTestApp(t, Options{StartScreen: ScreenUseCase})

	m, _ = send(t, m, keyTab)
	_, line := m.UseCase.buildContent()
	vp := m.UseCase.viewport
	if line < vp.YOffset || line >= vp.YOffset+vp.Height {
		t.Errorf("selected header at line %d outside view [%d, %d)", line, vp.YOffset, vp.YOffset+vp.Height)
	}
	title := m.UseCase.Sections()[m.UseCase.Selected].Title
	if view := plain(m.View()); !strings.Contains(view, title) {
		t.Errorf("view missing selected section %q", title)
	}
}
