// Package config loads engine settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"auto-assigner/internal/autoassign"
	"auto-assigner/internal/change"
	"auto-assigner/internal/diagnostic"
	"auto-assigner/internal/resolve"
)

// Environment variables overriding file settings.
const (
	EnvAssetRoot   = "AUTOASSIGN_ASSET_ROOT"
	EnvFingerprint = "AUTOASSIGN_FINGERPRINT"
	EnvAssetOrder  = "AUTOASSIGN_ASSET_ORDER"
)

// Config is the on-disk configuration.
type Config struct {
	// AssetRoot is the folder asset scope hints are relative to.
	AssetRoot string `yaml:"asset_root,omitempty"`
	// Fingerprint is "deep" or "shallow".
	Fingerprint string `yaml:"fingerprint,omitempty"`
	// AssetOrder is "index" or "path".
	AssetOrder string `yaml:"asset_order,omitempty"`
	// PauseOnViolation defaults to true when unset.
	PauseOnViolation *bool `yaml:"pause_on_violation,omitempty"`
	// LogAssignments defaults to true when unset.
	LogAssignments *bool  `yaml:"log_assignments,omitempty"`
	LogPrefix      string `yaml:"log_prefix,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML configuration file. An empty path yields
// the defaults. Environment overrides are applied in both cases.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		c := Default()
		applyEnv(c)

		return c, c.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}

	applyEnv(c)

	return c, c.Validate()
}

// Parse parses YAML data into a Config and fills in defaults. Environment
// overrides are not applied.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.AssetRoot == "" {
		c.AssetRoot = resolve.DefaultAssetRoot
	}

	if c.Fingerprint == "" {
		c.Fingerprint = string(change.ModeDeep)
	}

	if c.AssetOrder == "" {
		c.AssetOrder = string(resolve.OrderIndex)
	}

	if c.PauseOnViolation == nil {
		c.PauseOnViolation = ptr(true)
	}

	if c.LogAssignments == nil {
		c.LogAssignments = ptr(true)
	}

	if c.LogPrefix == "" {
		c.LogPrefix = diagnostic.DefaultPrefix
	}
}

func applyEnv(c *Config) {
	c.AssetRoot = envOr(EnvAssetRoot, c.AssetRoot)
	c.Fingerprint = envOr(EnvFingerprint, c.Fingerprint)
	c.AssetOrder = envOr(EnvAssetOrder, c.AssetOrder)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func ptr[T any](v T) *T {
	return &v
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := change.ParseMode(c.Fingerprint); err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}

	if _, err := resolve.ParseAssetOrder(c.AssetOrder); err != nil {
		return fmt.Errorf("asset_order: %w", err)
	}

	return nil
}

// Coordinator converts the file settings to a coordinator configuration.
func (c *Config) Coordinator() (autoassign.Config, error) {
	mode, err := change.ParseMode(c.Fingerprint)
	if err != nil {
		return autoassign.Config{}, fmt.Errorf("fingerprint: %w", err)
	}

	order, err := resolve.ParseAssetOrder(c.AssetOrder)
	if err != nil {
		return autoassign.Config{}, fmt.Errorf("asset_order: %w", err)
	}

	return autoassign.Config{
		Fingerprint:      mode,
		PauseOnViolation: c.PauseOnViolation == nil || *c.PauseOnViolation,
		Resolve: resolve.Config{
			AssetRoot:      c.AssetRoot,
			AssetOrder:     order,
			LogAssignments: c.LogAssignments == nil || *c.LogAssignments,
		},
	}, nil
}
