package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muurk/offsite/internal/config"
	"github.com/muurk/offsite/internal/content"
	"github.com/muurk/offsite/internal/reference"
	"github.com/muurk/offsite/internal/ui"
	"github.com/muurk/offsite/internal/version"
)

// Output formats accepted by --format
const (
	formatDetailed = "detailed"
	formatCompact  = "compact"
	formatJSON     = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatDetailed, formatCompact, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown format %q (want detailed, compact or json)", format)
}

func newPrinter(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.OutOrStdout())
}

// newStepsCmd prints the tutorial steps
func newStepsCmd(g *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "List the setup tutorial steps",
		Long: `Print the environment setup steps without starting the guide.

Each step shows its estimated time and a bar for its share of the total.
The detailed format adds the description and instructions of every step.`,
		Example: `  # Full checklist
  offsite steps

  # One line per step
  offsite steps --format compact

  # JSON for scripting
  offsite steps --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			b, err := g.loadContent()
			if err != nil {
				return err
			}
			return printSteps(newPrinter(cmd), &b.Tutorial, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatDetailed, "Output format (detailed, compact, json)")
	return cmd
}

func printSteps(p *ui.Printer, t *content.Tutorial, format string) error {
	if format == formatJSON {
		return p.PrintJSON(t)
	}

	checklist := ui.NewChecklist(t.Steps).SetWidth(p.Width())
	checklist.Detailed = format == formatDetailed
	if format == formatDetailed {
		p.PrintHeader(t.Title, t.Description,
			ui.Param{Key: "Steps", Value: strconv.Itoa(len(t.Steps))},
			ui.Param{Key: "Time", Value: fmt.Sprintf("~%d min", t.TotalMinutes())},
		)
		p.Newline()
	}
	p.Println(checklist.Render())

	if format == formatDetailed && len(t.Resources) > 0 {
		p.Newline()
		p.Println(ui.CategoryStyle.Render("Resources"))
		for _, r := range t.Resources {
			line := fmt.Sprintf("  %s %s: %s", ui.BulletMarker, r.Title, r.Description)
			if r.URL != "" {
				line += " (" + r.URL + ")"
			}
			p.Println(line)
		}
	}
	return nil
}

// newCommandsCmd prints one reference catalog
func newCommandsCmd(g *globalOptions) *cobra.Command {
	var (
		format string
		tags   []string
		osName string
	)
	cmd := &cobra.Command{
		Use:   "commands <git|terminal>",
		Short: "Print a command reference",
		Long: `Print the git or terminal command reference grouped by category.

Tag filters combine with OR: a command is shown when it carries any of the
given tags. The terminal reference is filtered by operating system, which
defaults to the one you are running.`,
		Example: `  # All git commands
  offsite commands git

  # Only the commands that save and publish code
  offsite commands git --tag red

  # Windows terminal commands as JSON
  offsite commands terminal --os windows --format json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"git", "terminal"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			b, err := g.loadContent()
			if err != nil {
				return err
			}
			cat, err := catalogByID(b, args[0])
			if err != nil {
				return err
			}
			panel, err := filteredPanel(cat, tags, osName)
			if err != nil {
				return err
			}
			return printCatalog(newPrinter(cmd), panel, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatDetailed, "Output format (detailed, compact, json)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Show only commands with these tags (repeatable)")
	cmd.Flags().StringVar(&osName, "os", "", "Operating system for OS-aware references (mac or windows)")
	return cmd
}

func catalogByID(b *content.Bundle, id string) (*content.Catalog, error) {
	for _, c := range []*content.Catalog{&b.Git, &b.Terminal} {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown reference %q (want %s or %s)", id, b.Git.ID, b.Terminal.ID)
}

// filteredPanel builds a panel with the given tag filters and OS selection.
func filteredPanel(cat *content.Catalog, tags []string, osName string) (*reference.Panel, error) {
	panel := reference.New(cat)
	for _, tag := range tags {
		if _, ok := cat.TagInfo(tag); !ok {
			known := make([]string, len(cat.Tags))
			for i, t := range cat.Tags {
				known[i] = t.Tag
			}
			if len(known) == 0 {
				return nil, fmt.Errorf("the %s reference has no tags", cat.ID)
			}
			return nil, fmt.Errorf("unknown tag %q (want one of %s)", tag, strings.Join(known, ", "))
		}
		if !panel.IsFilterActive(tag) {
			panel.ToggleFilter(tag)
		}
	}
	if osName != "" {
		selected, err := content.ParseOS(osName)
		if err != nil {
			return nil, err
		}
		panel.SetOS(selected)
	}
	return panel, nil
}

// jsonGroup is the JSON form of one category of visible commands.
type jsonGroup struct {
	Category string            `json:"category"`
	Commands []content.Command `json:"commands"`
}

type jsonCatalog struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	OS      content.OS  `json:"os,omitempty"`
	Filters []string    `json:"filters,omitempty"`
	Groups  []jsonGroup `json:"groups"`
}

func printCatalog(p *ui.Printer, panel *reference.Panel, format string) error {
	cat := panel.Catalog()
	if format == formatJSON {
		out := jsonCatalog{
			ID:      cat.ID,
			Title:   cat.Title,
			Filters: panel.ActiveFilters(),
			Groups:  []jsonGroup{},
		}
		if cat.OSAware {
			out.OS = panel.OS()
		}
		for _, g := range panel.Groups() {
			out.Groups = append(out.Groups, jsonGroup{Category: g.Category, Commands: g.Commands})
		}
		return p.PrintJSON(out)
	}

	view := ui.NewCatalogView(panel)
	view.Width = p.Width()
	view.Compact = format == formatCompact
	if !view.Compact {
		var params []ui.Param
		if cat.OSAware {
			params = append(params, ui.Param{Key: "OS", Value: panel.OS().Label()})
		}
		params = append(params, ui.Param{Key: "Commands", Value: strconv.Itoa(len(panel.Visible()))})
		p.PrintHeader(cat.Title, cat.Subtitle, params...)
		p.Newline()
	}
	p.Println(view.Render())
	return nil
}

var errInvalidContent = errors.New("content validation failed")

// newValidateCmd checks a content directory
func newValidateCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate content files",
		Long: `Load and validate a content directory without starting the guide.

Files missing from the directory fall back to the built-in content, so a
directory may override only some of them. With no directory the built-in
content is checked.`,
		Example: `  offsite validate ./my-content
  offsite --content ./my-content validate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				g.contentDir = args[0]
			}
			p := newPrinter(cmd)
			b, err := g.loadContent()
			if err != nil {
				p.PrintError("Content is invalid", err,
					"Compare your files with 'offsite content export <dir>'",
					"Step kinds are generic, request-access, install-vscode, install-node, install-git or setup-copilot",
					"Command tags must be declared in the tags list of the same file",
				)
				return errInvalidContent
			}

			source := "built-in"
			if g.contentDir != "" {
				source = g.contentDir
			}
			p.PrintSuccess("Content is valid",
				ui.Param{Key: "Source", Value: source},
				ui.Param{Key: "Steps", Value: strconv.Itoa(len(b.Tutorial.Steps))},
				ui.Param{Key: "Git commands", Value: strconv.Itoa(len(b.Git.Commands))},
				ui.Param{Key: "Terminal commands", Value: strconv.Itoa(len(b.Terminal.Commands))},
			)
			return nil
		},
	}
}

// newContentCmd groups content helpers
func newContentCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Work with content files",
	}

	var force bool
	export := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write the built-in content files to a directory",
		Long: `Write steps.yaml, git.yaml, terminal.yaml and usecase.yaml to a directory
so they can be edited and loaded back with --content.

Existing files are kept unless --force is given.`,
		Example: `  offsite content export ./my-content
  offsite --content ./my-content`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := content.ExportDefaults(args[0], force)
			if err != nil {
				return err
			}
			p := newPrinter(cmd)
			if len(written) == 0 {
				p.PrintWarning("Nothing exported",
					ui.Param{Key: "Directory", Value: args[0]},
					ui.Param{Key: "Hint", Value: "all files already exist; use --force to overwrite"},
				)
				return nil
			}
			details := make([]ui.Param, len(written))
			for i, path := range written {
				details[i] = ui.Param{Key: "Wrote", Value: path}
			}
			p.PrintSuccess("Content exported", details...)
			return nil
		},
	}
	export.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	cmd.AddCommand(export)
	return cmd
}

// newConfigCmd manages the preferences file
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage preferences",
		Long: `Manage the offsite preferences file.

Preferences cover display defaults only. Tutorial progress is never saved.`,
	}

	var defaults bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create or update the preferences file",
		Example: `  # Answer a few questions
  offsite config init

  # Write the defaults without asking
  offsite config init --defaults`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Reload()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if defaults {
				cfg = config.NewConfig()
			} else if err := runPreferencesForm(cfg.Prefs()); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			path, _ := config.GetConfigPath()
			newPrinter(cmd).PrintSuccess("Preferences saved", ui.Param{Key: "Path", Value: path})
			return nil
		},
	}
	initCmd.Flags().BoolVar(&defaults, "defaults", false, "Write default preferences without prompting")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Reload()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			data, err := cfg.Marshal()
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			path, _ := config.GetConfigPath()
			p := newPrinter(cmd)
			p.Println("# " + path)
			p.Print(string(data))
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the preferences file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			newPrinter(cmd).Println(path)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd, pathCmd)
	return cmd
}

// newForm creates a form, falling back to accessible mode without a TTY
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeCharm())
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}

func runPreferencesForm(prefs *config.Preferences) error {
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Operating system for the terminal reference").
				Options(
					huh.NewOption("Follow this computer", ""),
					huh.NewOption("macOS", "mac"),
					huh.NewOption("Windows", "windows"),
				).
				Value(&prefs.DefaultOS),
			huh.NewSelect[string]().
				Title("Screen to open on start").
				Options(
					huh.NewOption("Welcome", "landing"),
					huh.NewOption("Use case preview", "usecase"),
					huh.NewOption("Setup steps", "steps"),
				).
				Value(&prefs.StartScreen),
			huh.NewSelect[string]().
				Title("Markdown style for step guides").
				Options(
					huh.NewOption("Match the terminal background", config.MarkdownAuto),
					huh.NewOption("Dark", config.MarkdownDark),
					huh.NewOption("Light", config.MarkdownLight),
					huh.NewOption("Plain text", config.MarkdownNoTTY),
				).
				Value(&prefs.MarkdownStyle),
			huh.NewConfirm().
				Title("Show the full key help on start?").
				Value(&prefs.ShowFullHelp).
				Affirmative("Yes").
				Negative("No"),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("preferences form: %w", err)
	}
	return nil
}

// newVersionCmd prints build information
func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			if format == formatJSON {
				return p.PrintJSON(version.Get())
			}
			p.Println("offsite " + version.Full())
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatDetailed, "Output format (detailed, json)")
	return cmd
}
