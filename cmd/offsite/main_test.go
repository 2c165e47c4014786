package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/muurk/offsite/internal/config"
	"github.com/muurk/offsite/internal/content"
	"github.com/muurk/offsite/internal/wizard/tui"
)

// run executes the CLI with args and returns its plain-text output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("OFFSITE_LOG_LEVEL", "")
	t.Setenv("OFFSITE_LOG_FILE", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return ansi.Strip(out.String()), err
}

func TestStepsCommand(t *testing.T) {
	out, err := run(t, "steps", "--format", "json")
	require.NoError(t, err)

	var tutorial content.Tutorial
	require.NoError(t, json.Unmarshal([]byte(out), &tutorial))
	require.Len(t, tutorial.Steps, 7)
	require.Equal(t, content.KindRequestAccess, tutorial.Steps[0].Kind)

	out, err = run(t, "steps", "--format", "compact")
	require.NoError(t, err)
	require.Contains(t, out, "~95 min total")
	require.NotContains(t, out, "Resources")

	out, err = run(t, "steps")
	require.NoError(t, err)
	require.Contains(t, out, "Resources")
	require.Contains(t, out, "Request Secure Access")
}

func TestStepsCommandRejectsFormat(t *testing.T) {
	_, err := run(t, "steps", "--format", "xml")
	require.ErrorContains(t, err, `unknown format "xml"`)
}

func TestCommandsFilteredByTag(t *testing.T) {
	out, err := run(t, "commands", "git", "--tag", "red", "--format", "json")
	require.NoError(t, err)

	var got jsonCatalog
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []string{"red"}, got.Filters)
	require.NotEmpty(t, got.Groups)
	for _, g := range got.Groups {
		require.NotEmpty(t, g.Commands, "empty group %q", g.Category)
		for _, c := range g.Commands {
			require.Equal(t, "red", c.Tag, "command %q", c.Command)
		}
	}
}

func TestCommandsTagsCombineWithOr(t *testing.T) {
	out, err := run(t, "commands", "git", "--tag", "red,green", "--format", "json")
	require.NoError(t, err)

	var got jsonCatalog
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []string{"green", "red"}, got.Filters)

	seen := map[string]bool{}
	for _, g := range got.Groups {
		for _, c := range g.Commands {
			seen[c.Tag] = true
		}
	}
	require.Equal(t, map[string]bool{"green": true, "red": true}, seen)
}

func TestCommandsTerminalByOS(t *testing.T) {
	out, err := run(t, "commands", "terminal", "--os", "windows", "--format", "json")
	require.NoError(t, err)

	var got jsonCatalog
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, content.OSWindows, got.OS)
	for _, g := range got.Groups {
		for _, c := range g.Commands {
			require.NotEqual(t, content.OSMac, c.OS, "command %q", c.Command)
		}
	}

	out, err = run(t, "commands", "terminal", "--os", "mac")
	require.NoError(t, err)
	require.Contains(t, out, "macOS")
	require.Contains(t, out, "Cmd + Space")
}

func TestCommandsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown reference", []string{"commands", "docker"}, `unknown reference "docker"`},
		{"unknown tag", []string{"commands", "git", "--tag", "blue"}, `unknown tag "blue"`},
		{"untagged catalog", []string{"commands", "terminal", "--tag", "red"}, "has no tags"},
		{"bad os", []string{"commands", "terminal", "--os", "beos"}, "unknown operating system"},
		{"missing arg", []string{"commands"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	require.Contains(t, out, "Content is valid")
	require.Contains(t, out, "built-in")

	dir := t.TempDir()
	bad := "title: Broken\nsteps:\n  - title: One\n    estimated_time: 5\n    kind: install-cobol\n    content: x\n    instructions: [a]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, content.StepsFile), []byte(bad), 0o644))

	out, err = run(t, "validate", dir)
	require.ErrorIs(t, err, errInvalidContent)
	require.Contains(t, out, "Content is invalid")
	require.Contains(t, out, "cobol")
}

func TestContentExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content")

	out, err := run(t, "content", "export", dir)
	require.NoError(t, err)
	require.Contains(t, out, "Content exported")
	for _, name := range content.Files() {
		require.FileExists(t, filepath.Join(dir, name))
	}

	out, err = run(t, "content", "export", dir)
	require.NoError(t, err)
	require.Contains(t, out, "Nothing exported")

	// Exported content loads back
	out, err = run(t, "--content", dir, "validate")
	require.NoError(t, err)
	require.Contains(t, out, dir)
}

func TestConfigCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-color", "config", "path"})
	require.NoError(t, cmd.Execute())
	path := strings.TrimSpace(out.String())
	require.Equal(t, filepath.Join(xdg, "offsite", "config.yaml"), path)

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-color", "config", "init", "--defaults"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, ansi.Strip(out.String()), "Preferences saved")

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultPreferences(), cfg.Prefs())

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-color", "config", "show"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "markdown_style: auto")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "offsite "), out)

	out, err = run(t, "version", "--format", "json")
	require.NoError(t, err)
	require.Contains(t, out, `"go_version"`)
}

func TestGuideNeedsTerminal(t *testing.T) {
	_, err := run(t, "--start", "steps")
	require.True(t, errors.Is(err, errNotInteractive), "err = %v", err)

	_, err = run(t, "--start", "dashboard")
	require.ErrorContains(t, err, "unknown screen")

	_, err = run(t, "--step", "42")
	require.ErrorContains(t, err, "out of range")
}

func guideCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "offsite"}
	cmd.Flags().StringVar(&o.start, "start", "", "")
	cmd.Flags().IntVar(&o.step, "step", 0, "")
	cmd.Flags().StringVar(&o.os, "os", "", "")
	cmd.Flags().StringVar(&o.markdownStyle, "markdown-style", "", "")
	return cmd
}

func TestGuideOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		prefs   config.Preferences
		want    tui.Options
		wantErr string
	}{
		{
			name:  "preferences apply",
			prefs: config.Preferences{StartScreen: "usecase", DefaultOS: "windows", MarkdownStyle: "dark", ShowFullHelp: true},
			want:  tui.Options{StartScreen: tui.ScreenUseCase, DefaultOS: content.OSWindows, MarkdownStyle: "dark", ShowFullHelp: true},
		},
		{
			name:  "flags override preferences",
			args:  []string{"--start", "/step-by-step", "--os", "mac", "--markdown-style", "notty"},
			prefs: config.Preferences{StartScreen: "usecase", DefaultOS: "windows", MarkdownStyle: "dark"},
			want:  tui.Options{StartScreen: tui.ScreenSteps, DefaultOS: content.OSMac, MarkdownStyle: "notty"},
		},
		{
			name:  "step implies steps screen",
			args:  []string{"--step", "4"},
			prefs: config.Preferences{StartScreen: "landing", MarkdownStyle: "auto"},
			want:  tui.Options{StartScreen: tui.ScreenSteps, StartStep: 4, MarkdownStyle: "auto"},
		},
		{
			name:  "explicit start wins over step",
			args:  []string{"--start", "landing", "--step", "2"},
			prefs: config.Preferences{MarkdownStyle: "auto"},
			want:  tui.Options{StartScreen: tui.ScreenLanding, StartStep: 2, MarkdownStyle: "auto"},
		},
		{
			name:    "negative step",
			args:    []string{"--step", "-1"},
			wantErr: "--step must be 1 or greater",
		},
		{
			name:    "bad markdown style",
			args:    []string{"--markdown-style", "sepia"},
			wantErr: "markdown_style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &rootOptions{}
			cmd := guideCmd(o)
			require.NoError(t, cmd.ParseFlags(tt.args))

			got, err := guideOptions(cmd, o, &tt.prefs)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
