// ABOUTME: Intervals configuration management with backend selection.
// ABOUTME: Handles preferences, environment overrides and the storage backend factory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/intervals/internal/charm"
	"github.com/harperreed/intervals/internal/storage"
)

// Backend names accepted in the config file and INTERVALS_BACKEND.
const (
	BackendCharm  = "charm"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Environment variables that override the config file.
const (
	EnvBackend = "INTERVALS_BACKEND"
	EnvDataDir = "INTERVALS_DATA_DIR"
)

// Config stores intervals tool configuration.
type Config struct {
	// Backend selects the storage backend: "charm" (default), "badger" or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local storage.
	// Badger keeps its files in DataDir/badger. Supports ~ expansion.
	// Defaults to ~/.local/share/intervals.
	DataDir string `json:"data_dir,omitempty"`

	// CharmHost overrides the Charm server used for sync.
	CharmHost string `json:"charm_host,omitempty"`

	// SpeechCommand is a text-to-speech program such as "say" or "espeak".
	// Empty means cues are only printed.
	SpeechCommand string `json:"speech_command,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`

	// LogFile sends logs to a rotating file instead of stderr.
	LogFile string `json:"log_file,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "charm".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendCharm
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// GetLogFile returns the log file path with ~ expanded.
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// ApplyEnv overlays environment overrides onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
}

// OpenStorage creates a Store on the configured backend.
func (c *Config) OpenStorage(logger *log.Logger) (*storage.Store, error) {
	backend, err := c.openBackend(logger)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("opened storage", "backend", c.GetBackend())
	}
	return storage.New(backend, logger), nil
}

func (c *Config) openBackend(logger *log.Logger) (storage.Backend, error) {
	switch backend := c.GetBackend(); backend {
	case BackendCharm:
		client, err := charm.InitClient(c.CharmHost)
		if err != nil {
			return nil, fmt.Errorf("initialize charm client: %w", err)
		}
		return client, nil
	case BackendBadger:
		return storage.OpenBadger(filepath.Join(c.GetDataDir(), "badger"), logger)
	case BackendMemory:
		return storage.OpenBadgerInMemory(logger)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "intervals", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(GetConfigPath())
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
