package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the portal connection settings and credentials for dvsctl.
type Config struct {
	// Host is the portal hostname the client connects to over HTTPS.
	Host string `yaml:"host"`
	// BaseURL overrides the derived https://{host}/DVSWebAPI/api/ base URL.
	// Needed for plain-HTTP targets such as a local simulator.
	BaseURL string `yaml:"base-url,omitempty"`
	// Identifier is the permit report code used to log in.
	Identifier string `yaml:"identifier"`
	Password   string `yaml:"password"`
}

// DefaultConfig points at a locally running simulator.
func DefaultConfig() *Config {
	return &Config{
		Host:    "localhost:8080",
		BaseURL: "http://localhost:8080/DVSWebAPI/api/",
	}
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "dvsctl", "config.yaml"), nil
}

// LoadConfig loads the configuration, falling back to defaults when no
// config file exists yet. Saving is left to the login command.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig writes the configuration. The file holds the portal password,
// so it is created readable by the owner only.
func SaveConfig(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
