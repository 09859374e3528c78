package app

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/MockingJay-dev/BrainVault/core/config"
	coredatabase "github.com/MockingJay-dev/BrainVault/core/database"
)

const defaultTimezone = "Australia/Adelaide"

// VaultConfig holds note-taking specific settings.
type VaultConfig struct {
	// Timezone fixes the wall clock used for note timestamps.
	Timezone string `yaml:"timezone" envconfig:"VAULT_TIMEZONE"`
}

// Config aggregates the reusable core configuration with the vault's own
// database and domain sections.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Vault    VaultConfig         `yaml:"vault"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config { return &c.Core }

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if cfg.Vault.Timezone == "" {
		cfg.Vault.Timezone = defaultTimezone
	}
	if _, err := time.LoadLocation(cfg.Vault.Timezone); err != nil {
		return nil, fmt.Errorf("invalid vault.timezone %q: %w", cfg.Vault.Timezone, err)
	}
	return &cfg, nil
}
