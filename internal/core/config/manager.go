// Package config provides configuration management for mythic.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the directory name used under the XDG base directories
	AppDir = "mythic"
	// ConfigFile is the filename for the mythic configuration
	ConfigFile = "config.yaml"
	// StoreFile is the filename for the bottle store snapshot
	StoreFile = "bottles.yaml"
	// BottlesDirName is the container directory holding bottle prefixes
	BottlesDirName = "Bottles"
)

// DefaultConfigPath returns the config file location under XDG_CONFIG_HOME
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppDir, ConfigFile)
}

// DefaultDataDir returns the data directory under XDG_DATA_HOME
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppDir)
}

// DefaultBottlesDir returns the default bottle container directory
func DefaultBottlesDir() string {
	return filepath.Join(DefaultDataDir(), BottlesDirName)
}

// Manager handles the mythic configuration file
type Manager struct {
	configPath string
	dataDir    string
}

// NewManager creates a configuration manager using the XDG default paths
func NewManager() *Manager {
	return &Manager{
		configPath: DefaultConfigPath(),
		dataDir:    DefaultDataDir(),
	}
}

// NewManagerAt creates a configuration manager rooted at explicit paths.
// Used by tests and by callers overriding the config location.
func NewManagerAt(configPath, dataDir string) *Manager {
	return &Manager{
		configPath: configPath,
		dataDir:    dataDir,
	}
}

// Load reads the configuration from disk
func (m *Manager) Load() (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("mythic not initialized. Run 'mythic init' first")
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", m.configPath, err)
	}

	applyDefaults(&config)
	return &config, nil
}

// Save writes the configuration to disk
func (m *Manager) Save(config *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// IsInitialized checks if mythic has been initialized
func (m *Manager) IsInitialized() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// ConfigPath returns the configuration file path
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// StorePath returns the bottle store snapshot path
func (m *Manager) StorePath() string {
	return filepath.Join(m.dataDir, StoreFile)
}

// applyDefaults fills zero-value fields after a successful load, so old
// config files keep working when new fields are added.
func applyDefaults(config *Config) {
	if config.Version == "" {
		config.Version = "1"
	}
	if config.Wine.Binary == "" {
		config.Wine.Binary = "wine"
	}
	if config.Bottles.Directory == "" {
		config.Bottles.Directory = DefaultBottlesDir()
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
}
