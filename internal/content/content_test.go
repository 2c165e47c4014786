package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	require.Len(t, b.Tutorial.Steps, 7)
	require.Equal(t, 95, b.Tutorial.TotalMinutes())
	require.Equal(t, "Request Secure Access", b.Tutorial.Steps[0].Title)
	require.Equal(t, KindRequestAccess, b.Tutorial.Steps[0].Kind)
	require.Equal(t, KindGeneric, b.Tutorial.Steps[5].Kind)
	require.NotEmpty(t, b.Tutorial.Resources)

	require.Len(t, b.Git.Commands, 25)
	require.Len(t, b.Git.Tags, 3)
	require.False(t, b.Git.OSAware)

	require.Len(t, b.Terminal.Commands, 12)
	require.True(t, b.Terminal.OSAware)

	require.Equal(t, "Create a Frontend Website", b.UseCase.Title)
	require.Len(t, b.UseCase.Agenda, 3)
	require.Len(t, b.UseCase.Plan, 7)
	require.Equal(t, 145, b.UseCase.PlanMinutes())
}

func TestDefaultIsShared(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestGitCategoriesInOrder(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	want := []string{
		"Getting Started",
		"Basic Workflow",
		"Syncing with Remote",
		"Branching",
		"Advanced Branching",
		"Viewing History",
		"Undoing Changes",
	}
	require.Equal(t, want, b.Git.Categories())
}

func TestCatalogTagInfo(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	info, ok := b.Git.TagInfo("red")
	require.True(t, ok)
	require.Equal(t, "Important Actions", info.Label)
	require.Equal(t, "#EF4444", info.Color)

	_, ok = b.Git.TagInfo("blue")
	require.False(t, ok)
}

func TestStepKindText(t *testing.T) {
	for _, k := range StepKinds() {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var got StepKind
		require.NoError(t, got.UnmarshalText(text))
		require.Equal(t, k, got)
	}
}

func TestParseStepKind(t *testing.T) {
	tests := []struct {
		in      string
		want    StepKind
		wantErr bool
	}{
		{"", KindGeneric, false},
		{"generic", KindGeneric, false},
		{"Install-Node", KindInstallNode, false},
		{" setup-copilot ", KindSetupCopilot, false},
		{"install-python", KindGeneric, true},
	}
	for _, tt := range tests {
		got, err := ParseStepKind(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}

func TestUnknownKindRejectedByYAML(t *testing.T) {
	var s Step
	err := yaml.Unmarshal([]byte("title: x\nkind: install-cobol\n"), &s)
	require.Error(t, err)
	require.Contains(t, err.Error(), "install-cobol")
}

func TestOSMatches(t *testing.T) {
	require.True(t, OSBoth.Matches(OSMac))
	require.True(t, OSBoth.Matches(OSWindows))
	require.True(t, OS("").Matches(OSWindows))
	require.True(t, OSMac.Matches(OSMac))
	require.False(t, OSMac.Matches(OSWindows))
	require.False(t, OSWindows.Matches(OSMac))
}

func TestParseOS(t *testing.T) {
	for in, want := range map[string]OS{"mac": OSMac, "darwin": OSMac, "macOS": OSMac, "Windows": OSWindows, "win": OSWindows} {
		got, err := ParseOS(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseOS("linux")
	require.Error(t, err)
}

func TestLoadValidationErrors(t *testing.T) {
	fsys := validFS(t)
	fsys[StepsFile] = &fstest.MapFile{Data: []byte("title: Empty\nsteps: []\n")}
	fsys[GitFile] = &fstest.MapFile{Data: []byte(`
title: Git
tags:
  - tag: green
    label: Starting Points
commands:
  - command: git init
    category: Getting Started
    tag: orange
  - command: ""
    category: Basic Workflow
  - command: ls
    category: Misc
    os: linux
`)}

	_, err := Load(fsys)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoSteps))
	msg := err.Error()
	require.Contains(t, msg, `tag "orange" is not declared`)
	require.Contains(t, msg, "commands[1]: command is required")
	require.Contains(t, msg, `os "linux"`)
}

func TestLoadCatalogIDs(t *testing.T) {
	tests := []struct {
		name string
		git  string
		want string
	}{
		{"missing id", "title: Git\ncommands: []\n", "git.yaml: id is required"},
		{"shared id", "id: terminal\ntitle: Git\ncommands: []\n", `id "terminal" is used by both catalogs`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := validFS(t)
			fsys[GitFile] = &fstest.MapFile{Data: []byte(tt.git)}

			_, err := Load(fsys)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadDirRejectsSharedCatalogID(t *testing.T) {
	dir := t.TempDir()
	git := "id: terminal\ntitle: Git\ncommands:\n  - command: git init\n    category: Getting Started\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, GitFile), []byte(git), 0o644))

	_, err := LoadDir(dir)
	require.ErrorContains(t, err, "used by both catalogs")
}

func TestLoadStepErrors(t *testing.T) {
	fsys := validFS(t)
	fsys[StepsFile] = &fstest.MapFile{Data: []byte(`
title: T
steps:
  - title: ""
    estimated_time: 5
    content: body
  - title: Negative
    estimated_time: -1
  - title: Fine
    content: ok
`)}

	_, err := Load(fsys)
	require.Error(t, err)
	msg := err.Error()
	require.Contains(t, msg, "steps[0]: title is required")
	require.Contains(t, msg, "steps[1] \"Negative\": estimated_time must not be negative")
	require.Contains(t, msg, "steps[1] \"Negative\": content or guide is required")
	require.NotContains(t, msg, "Fine")
}

func TestLoadMissingFile(t *testing.T) {
	fsys := validFS(t)
	delete(fsys, UseCaseFile)

	_, err := Load(fsys)
	require.Error(t, err)
	require.Contains(t, err.Error(), UseCaseFile)
}

func TestLoadDirOverlay(t *testing.T) {
	dir := t.TempDir()
	steps := `
title: Custom
steps:
  - title: Only Step
    estimated_time: 3
    content: just one
    instructions: [do it]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, StepsFile), []byte(steps), 0o644))

	b, err := LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, "Custom", b.Tutorial.Title)
	require.Len(t, b.Tutorial.Steps, 1)

	// Untouched files come from the embedded copy.
	require.Len(t, b.Git.Commands, 25)
	require.Equal(t, "Create a Frontend Website", b.UseCase.Title)
}

func TestLoadDirErrors(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "steps.yaml")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = LoadDir(file)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a directory")
}

func TestLoadDirEmptyUsesDefault(t *testing.T) {
	b, err := LoadDir("")
	require.NoError(t, err)
	d, err := Default()
	require.NoError(t, err)
	require.Same(t, d, b)
}

func TestExportDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content")

	written, err := ExportDefaults(dir, false)
	require.NoError(t, err)
	require.Len(t, written, len(Files()))

	// Second export without overwrite keeps the existing files.
	require.NoError(t, os.WriteFile(filepath.Join(dir, GitFile), []byte("edited"), 0o644))
	written, err = ExportDefaults(dir, false)
	require.NoError(t, err)
	require.Empty(t, written)

	data, err := os.ReadFile(filepath.Join(dir, GitFile))
	require.NoError(t, err)
	require.Equal(t, "edited", string(data))

	written, err = ExportDefaults(dir, true)
	require.NoError(t, err)
	require.Len(t, written, len(Files()))

	b, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, b.Git.Commands, 25)
}

// validFS returns an in-memory copy of the embedded content.
func validFS(t *testing.T) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{}
	for _, name := range Files() {
		data, err := embedded.ReadFile("data/" + name)
		require.NoError(t, err)
		fsys[name] = &fstest.MapFile{Data: data}
	}
	return fsys
}
