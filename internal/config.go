package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Configuration {
	return Configuration{
		Color:          "ffffff",
		ImagePath:      "",
		Tile:           false,
		ShowClock:      true,
		FontPath:       "",
		HideCursor:     true,
		RedrawOnResume: true,
	}
}

// ConfigDir returns the directory holding ringlock's config files
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "/tmp"
		}
		base = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(base, "ringlock")
}

// FindConfigFile returns the first existing default config file, or "" if none exists
func FindConfigFile() string {
	dir := ConfigDir()
	for _, name := range []string{"config.json", "config.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(path string, config *Configuration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), config); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// SaveConfig saves the current configuration to the specified file path
func SaveConfig(path string, config Configuration) error {
	if err := validateConfig(&config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return fmt.Errorf("failed to encode config as TOML: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateConfig checks if the configuration is valid
func validateConfig(config *Configuration) error {
	if !isHexColor(config.Color) {
		return fmt.Errorf("color %q is not six hex digits", config.Color)
	}

	if config.ImagePath != "" {
		if _, err := os.Stat(config.ImagePath); err != nil {
			return fmt.Errorf("background image not accessible: %w", err)
		}
	}

	if config.FontPath != "" {
		if _, err := os.Stat(config.FontPath); err != nil {
			return fmt.Errorf("font not accessible: %w", err)
		}
	}

	return nil
}

// GenerateDefaultConfigFile creates a default configuration file if it doesn't exist
func GenerateDefaultConfigFile() (string, error) {
	configDir := ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.json")
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := SaveConfig(configPath, DefaultConfig()); err != nil {
		return "", fmt.Errorf("failed to save default config: %w", err)
	}

	return configPath, nil
}
