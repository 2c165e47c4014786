package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "offsite"
	configFile = "config.yaml"
)

// ErrUnsupportedVersion is returned when the file's version is not
// CurrentVersion.
var ErrUnsupportedVersion = errors.New("unsupported config version")

var (
	// Global config instance (loaded lazily), guarded by globalMu
	globalMu        sync.Mutex
	globalConfig    *Config
	globalConfigErr error
	globalLoaded    bool

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/offsite or $HOME/.config/offsite
//   - macOS: $HOME/.config/offsite
//   - Windows: %LOCALAPPDATA%\offsite
func GetConfigDir() (string, error) {
	return configDirFor(runtime.GOOS)
}

func configDirFor(goos string) (string, error) {
	var baseDir string

	switch goos {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load loads the configuration from the default path.
// If the file doesn't exist, returns a new default config.
// Multiple calls return the same instance.
func Load() (*Config, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if !globalLoaded {
		globalConfig, globalConfigErr = loadDefault()
		globalLoaded = true
	}
	return globalConfig, globalConfigErr
}

// Reload discards the cached config and reads it from disk again.
func Reload() (*Config, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig, globalConfigErr = loadDefault()
	globalLoaded = true
	return globalConfig, globalConfigErr
}

func loadDefault() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, cfg.Version, CurrentVersion)
	}
	if err := cfg.Prefs().Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path.
// Performs an atomic write to prevent corruption on crash.
func (c *Config) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := c.Prefs().Validate(); err != nil {
		return err
	}

	// Create directory with user-only permissions (0700)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# offsite configuration file
# Display preferences only. Tutorial progress is never saved.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// Marshal returns the YAML form of the config without the file header.
func (c *Config) Marshal() ([]byte, error) {
	c.Prefs()
	return yaml.Marshal(c)
}
