// Package config provides user preference management for offsite.
//
// This package manages a small YAML file holding display preferences: the
// default operating system for the terminal reference panel, the screen
// the TUI opens on, the markdown style and whether the full key help is
// shown. Command-line flags override every value.
//
// Tutorial progress is never stored. Each run starts on step one with
// nothing marked complete.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/offsite/config.yaml or $HOME/.config/offsite/config.yaml
//   - macOS: $HOME/.config/offsite/config.yaml
//   - Windows: %LOCALAPPDATA%\offsite\config.yaml
//
// # File Format
//
//	version: 1
//	preferences:
//	  default_os: windows
//	  start_screen: steps
//	  markdown_style: auto
//	  show_full_help: false
//
// A file with any other version fails with ErrUnsupportedVersion.
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	cfg.Prefs().DefaultOS = "mac"
//	if err := cfg.Save(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// The global config uses sync.Once for safe initialization across goroutines.
// File writes are protected by a mutex and performed atomically.
package config
