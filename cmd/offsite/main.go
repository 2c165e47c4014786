// Offsite is a terminal onboarding guide for the off-site activity.
//
// It walks participants through the environment setup steps, previews the
// activity agenda, and provides git and terminal command references with
// click-to-copy.
//
// Usage:
//
//	offsite [command] [flags]
//
// Running without arguments launches the interactive guide.
// See 'offsite --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/offsite/internal/config"
	"github.com/muurk/offsite/internal/content"
	"github.com/muurk/offsite/internal/logging"
	"github.com/muurk/offsite/internal/version"
	"github.com/muurk/offsite/internal/wizard/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	contentDir string
	logLevel   string
	logFile    string
	noColor    bool
}

// rootOptions are the flags of the interactive guide.
type rootOptions struct {
	start         string
	step          int
	os            string
	markdownStyle string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "offsite",
		Short: "Off-site activity onboarding guide",
		Long: `A terminal guide for the off-site activity.

Walks you through setting up your development environment step by step,
previews the activity agenda, and keeps git and terminal command references
one key away.

If no command is specified, the interactive guide launches automatically.
Progress is kept in memory only and resets when the guide exits.`,
		Example: `  # Start at the welcome screen
  offsite

  # Go straight to the setup steps, starting at step 3
  offsite --start steps --step 3

  # Use edited content exported with 'offsite content export'
  offsite --content ./my-content`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: run the guide when no subcommand provided
			return runGuide(cmd, g, o)
		},
	}

	// Disable automatic completion command generation
	cmd.CompletionOptions.DisableDefaultCmd = true

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.contentDir, "content", "", "Directory with steps.yaml, git.yaml, terminal.yaml and usecase.yaml overrides")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error); default from "+logging.LogLevelEnvVar)
	pf.StringVar(&g.logFile, "log-file", "", "Write logs to this file instead of stderr; default from "+logging.LogFileEnvVar)
	pf.BoolVar(&g.noColor, "no-color", false, "Disable colour output")

	f := cmd.Flags()
	f.StringVar(&o.start, "start", "", "Start screen: landing, usecase or steps (or a route such as /step-by-step)")
	f.IntVar(&o.step, "step", 0, "Step to open first (1-based); implies --start steps")
	f.StringVar(&o.os, "os", "", "Operating system for the terminal reference (mac or windows)")
	f.StringVar(&o.markdownStyle, "markdown-style", "", "Markdown style: auto, dark, light or notty")

	cmd.AddCommand(
		newStepsCmd(g),
		newCommandsCmd(g),
		newValidateCmd(g),
		newContentCmd(g),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setup initializes logging and the colour profile.
func (g *globalOptions) setup() error {
	if g.logLevel == "" && g.logFile == "" {
		if err := logging.InitializeFromEnv(); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	} else {
		if g.logLevel == "" {
			g.logLevel = os.Getenv(logging.LogLevelEnvVar)
		}
		if g.logLevel == "" {
			g.logLevel = "info"
		}
		if err := logging.InitializeWith(logging.Options{Level: g.logLevel, File: g.logFile}); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	}
	tui.ApplyColorProfile(g.noColor)
	return nil
}

// loadContent returns the embedded bundle, or the overrides from
// --content when given.
func (g *globalOptions) loadContent() (*content.Bundle, error) {
	b, err := content.LoadDir(g.contentDir)
	if err != nil {
		return nil, err
	}
	source := "embedded"
	if g.contentDir != "" {
		source = g.contentDir
	}
	logging.LogContentLoaded(source, len(b.Tutorial.Steps), len(b.Git.Commands)+len(b.Terminal.Commands))
	return b, nil
}

// guideOptions merges flags over saved preferences.
func guideOptions(cmd *cobra.Command, o *rootOptions, prefs *config.Preferences) (tui.Options, error) {
	var opts tui.Options

	start := prefs.StartScreen
	if cmd.Flags().Changed("start") {
		start = o.start
	} else if o.step > 0 {
		start = string(tui.ScreenSteps)
	}
	screen, err := tui.ParseRoute(start)
	if err != nil {
		return opts, err
	}
	opts.StartScreen = screen

	if o.step < 0 {
		return opts, fmt.Errorf("--step must be 1 or greater")
	}
	opts.StartStep = o.step

	osName := prefs.DefaultOS
	if o.os != "" {
		osName = o.os
	}
	if osName != "" {
		parsed, err := content.ParseOS(osName)
		if err != nil {
			return opts, err
		}
		opts.DefaultOS = parsed
	}

	opts.MarkdownStyle = prefs.MarkdownStyle
	if o.markdownStyle != "" {
		check := config.Preferences{MarkdownStyle: o.markdownStyle}
		if err := check.Validate(); err != nil {
			return opts, err
		}
		opts.MarkdownStyle = o.markdownStyle
	}
	opts.ShowFullHelp = prefs.ShowFullHelp
	return opts, nil
}

var errNotInteractive = errors.New("the guide needs an interactive terminal; try 'offsite steps' or 'offsite commands git'")

func runGuide(cmd *cobra.Command, g *globalOptions, o *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts, err := guideOptions(cmd, o, cfg.Prefs())
	if err != nil {
		return err
	}

	b, err := g.loadContent()
	if err != nil {
		return err
	}
	opts.Content = b

	model, err := tui.NewAppModel(opts)
	if err != nil {
		return err
	}

	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(out.Fd())) {
		return errNotInteractive
	}

	logging.Info("Starting guide", zap.String("screen", string(opts.StartScreen)), zap.Int("step", opts.StartStep))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("guide error: %w", err)
	}
	return nil
}
