package config

import (
	"fmt"
	"slices"
)

// CurrentVersion is the only config file version this build understands.
const CurrentVersion = 1

// Markdown styles accepted by Preferences.MarkdownStyle.
const (
	MarkdownAuto  = "auto"
	MarkdownDark  = "dark"
	MarkdownLight = "light"
	MarkdownNoTTY = "notty"
)

// Config represents the entire user configuration file.
type Config struct {
	Version     int          `yaml:"version"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
}

// Preferences represents application-wide user preferences.
// Tutorial progress is deliberately absent: it is never written to disk.
type Preferences struct {
	DefaultOS     string `yaml:"default_os,omitempty"`   // "mac" or "windows"; empty follows the running OS
	StartScreen   string `yaml:"start_screen,omitempty"` // "landing", "usecase" or "steps"
	MarkdownStyle string `yaml:"markdown_style"`         // auto, dark, light or notty
	ShowFullHelp  bool   `yaml:"show_full_help"`         // Expand the key help footer on start
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version:     CurrentVersion,
		Preferences: DefaultPreferences(),
	}
}

// DefaultPreferences returns the preferences used when no file exists.
func DefaultPreferences() *Preferences {
	return &Preferences{
		StartScreen:   "landing",
		MarkdownStyle: MarkdownAuto,
	}
}

// MarkdownStyles lists the accepted markdown styles.
func MarkdownStyles() []string {
	return []string{MarkdownAuto, MarkdownDark, MarkdownLight, MarkdownNoTTY}
}

// Validate checks preference values.
func (p *Preferences) Validate() error {
	if p.DefaultOS != "" && p.DefaultOS != "mac" && p.DefaultOS != "windows" {
		return fmt.Errorf("default_os %q must be mac or windows", p.DefaultOS)
	}
	if p.StartScreen != "" && !slices.Contains([]string{"landing", "usecase", "steps"}, p.StartScreen) {
		return fmt.Errorf("start_screen %q must be landing, usecase or steps", p.StartScreen)
	}
	if p.MarkdownStyle != "" && !slices.Contains(MarkdownStyles(), p.MarkdownStyle) {
		return fmt.Errorf("markdown_style %q must be one of %v", p.MarkdownStyle, MarkdownStyles())
	}
	return nil
}

// Prefs returns the preferences, filling in defaults if the section is
// missing from the file.
func (c *Config) Prefs() *Preferences {
	if c.Preferences == nil {
		c.Preferences = DefaultPreferences()
	}
	if c.Preferences.MarkdownStyle == "" {
		c.Preferences.MarkdownStyle = MarkdownAuto
	}
	return c.Preferences
}
