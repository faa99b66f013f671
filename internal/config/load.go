package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/imamik/akslab/internal/envstate"
)

// LoadFile reads and parses the configuration from a YAML file, fills
// defaults, applies environment-variable overrides, and validates.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the default config file path if it exists in the
// current directory.
func FindConfigFile() (string, error) {
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		return "", fmt.Errorf("config file %s not found", DefaultConfigFile)
	}
	return DefaultConfigFile, nil
}

func (c *Config) applyDefaults() {
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.Storage.ContainerName == "" {
		c.Storage.ContainerName = DefaultContainerName
	}
	if c.Storage.SKU == "" {
		c.Storage.SKU = DefaultStorageSKU
	}
	if c.Registry.SKU == "" {
		c.Registry.SKU = DefaultRegistrySKU
	}
	if c.Cluster.NodeCount == 0 {
		c.Cluster.NodeCount = DefaultNodeCount
	}
	if c.Cluster.VMSize == "" {
		c.Cluster.VMSize = DefaultVMSize
	}
	if c.Identity.Kind == "" {
		c.Identity.Kind = IdentityManaged
	}
	if c.Identity.Name == "" {
		c.Identity.Name = DefaultIdentityName
	}
	if c.Identity.RoleName == "" {
		c.Identity.RoleName = DefaultRoleName
	}
	if c.ServiceAccount.Namespace == "" {
		c.ServiceAccount.Namespace = DefaultNamespace
	}
	if c.ServiceAccount.Name == "" {
		c.ServiceAccount.Name = DefaultServiceAccount
	}
	if c.Image.Tag == "" {
		c.Image.Tag = DefaultImageTag
	}
	if c.StateFile == "" {
		c.StateFile = envstate.DefaultFile
	}
}

// applyEnvOverrides honors the toggle/override environment variables the lab
// scripts documented. Each has a config-file equivalent; the environment
// wins.
func (c *Config) applyEnvOverrides() {
	if v, ok := boolFromEnv(EnvCreateRegistry); ok {
		c.Registry.Create = v
	}
	if v, ok := boolFromEnv(EnvAttachRegistry); ok {
		c.Registry.Attach = v
	}
	if v := os.Getenv(EnvImageTag); v != "" {
		c.Image.Tag = v
	}
	if v := os.Getenv(EnvImageOverride); v != "" {
		c.Image.Override = v
	}
	if v := os.Getenv(EnvStateFile); v != "" {
		c.StateFile = v
	}
}

// boolFromEnv parses the y/n style toggles the lab scripts used, also
// accepting true/false.
func boolFromEnv(name string) (bool, bool) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	switch v {
	case "y", "yes", "true", "1":
		return true, true
	case "n", "no", "false", "0":
		return false, true
	default:
		return false, false
	}
}
