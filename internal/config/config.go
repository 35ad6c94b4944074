// Package config handles XDG configuration directory and file paths.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// SettingsFile holds the API endpoint and user settings.
	SettingsFile = "config.json"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"

	// ManifestFile is the default precache manifest filename.
	ManifestFile = "precache.txt"

	// DefaultCacheName is the versioned resource cache name. Bumping it
	// on deploy abandons the old cache wholesale.
	DefaultCacheName = "todo-app-v1"

	// DefaultBaseURL is the task API endpoint used when config.json
	// doesn't override it.
	DefaultBaseURL = "http://localhost:5002"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `json:"-"`

	// BaseURL is the task API endpoint.
	BaseURL string `json:"base_url"`

	// Origin is the page origin for cache same-origin checks. Defaults
	// to BaseURL.
	Origin string `json:"origin"`

	// UserID is attached to created tasks.
	UserID string `json:"user_id"`

	// CacheName names the resource cache version.
	CacheName string `json:"cache_name"`

	// Debug enables debug logging.
	Debug bool `json:"-"`

	// Quiet suppresses informational output.
	Quiet bool `json:"-"`
}

// New creates a Config rooted at configDir (default XDG location when
// empty) and applies settings from config.json if present.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:       dir,
		BaseURL:   DefaultBaseURL,
		CacheName: DefaultCacheName,
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	if cfg.Origin == "" {
		cfg.Origin = cfg.BaseURL
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// loadSettings overlays config.json onto the defaults. A missing file is
// fine; a malformed one is an error the user should see.
func (c *Config) loadSettings() error {
	data, err := os.ReadFile(c.SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.CacheName == "" {
		c.CacheName = DefaultCacheName
	}
	return nil
}

// SettingsPath returns the path to config.json.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TokenPath returns the path to the stored bearer token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// ManifestPath returns the path to the precache manifest.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Dir, ManifestFile)
}

// CacheDir returns the directory holding the resource cache database.
func (c *Config) CacheDir() string {
	return filepath.Join(c.Dir, "cache")
}

// LogDir returns the directory for rotating log files.
func (c *Config) LogDir() string {
	return filepath.Join(c.Dir, "logs")
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Token reads the stored bearer token. An empty string means requests go
// out unauthenticated.
func (c *Config) Token() string {
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		return ""
	}
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.AccessToken
}

// Manifest reads the precache manifest at the default path.
func (c *Config) Manifest() ([]string, error) {
	return ReadManifest(c.ManifestPath())
}

// ReadManifest reads a precache manifest: one URL per line, blank lines
// and #-comments skipped.
func ReadManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
