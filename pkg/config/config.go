package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/user/stigscore/pkg/xccdf"
)

type ProviderConfig struct {
	APIKey string `json:"api_key" yaml:"api_key"`
}

type Config struct {
	Thresholds       xccdf.Thresholds          `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	FailOn           []string                  `json:"fail_on,omitempty" yaml:"fail_on,omitempty"`
	SelectedProvider string                    `json:"selected_provider" yaml:"selected_provider"`
	SelectedModel    string                    `json:"selected_model" yaml:"selected_model"`
	Providers        map[string]ProviderConfig `json:"providers" yaml:"providers"`
}

var pathOverride string

// SetConfigPath makes LoadConfig and SaveConfig use path instead of ~/.stigscore/config.yaml.
func SetConfigPath(path string) {
	pathOverride = path
}

func GetConfigPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".stigscore")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func defaultConfig() *Config {
	return &Config{
		SelectedProvider: "gemini",
		SelectedModel:    "gemini-pro",
		Providers:        make(map[string]ProviderConfig),
	}
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600 permissions for security (api keys)
	return os.WriteFile(path, data, 0600)
}

func (c *Config) SetAPIKey(provider, key string) {
	p := c.Providers[provider]
	p.APIKey = key
	c.Providers[provider] = p
}

func (c *Config) GetAPIKey(provider string) string {
	return c.Providers[provider].APIKey
}

// ResolveThresholds layers overrides on top of the configured thresholds,
// then fills whatever is still unset with the defaults.
func (c *Config) ResolveThresholds(overrides xccdf.Thresholds) xccdf.Thresholds {
	return overrides.Merge(c.Thresholds).Merge(xccdf.DefaultThresholds())
}
