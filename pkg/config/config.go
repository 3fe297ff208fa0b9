// Package config decodes the handful of tunables this layer treats as
// "implementation constants": the size caps spec.md calls out plus the
// host node's hardfork activation map, following the teacher's
// ProtocolConfiguration/hardfork idiom.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LimitsConfig carries the size caps the interop layer and storage
// namespace enforce.
type LimitsConfig struct {
	MaxItemSize        int `yaml:"MaxItemSize"`
	MaxArraySize       int `yaml:"MaxArraySize"`
	MaxStorageKeyLen   int `yaml:"MaxStorageKeyLen"`
	MaxStorageValueLen int `yaml:"MaxStorageValueLen"`
	SecondsPerBlock    int `yaml:"SecondsPerBlock"`
}

// Config is the top-level decoded configuration.
type Config struct {
	Limits    LimitsConfig      `yaml:"Limits"`
	Hardforks map[string]uint32 `yaml:"Hardforks"`
	Logger    Logger            `yaml:"Logger"`
}

// Default returns the configuration matching spec.md's stated defaults.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxItemSize:        1024 * 1024,
			MaxArraySize:       2048,
			MaxStorageKeyLen:   1024,
			MaxStorageValueLen: 65535,
			SecondsPerBlock:    15,
		},
		Hardforks: map[string]uint32{},
	}
}

// Load reads and decodes a YAML configuration file, starting from
// Default() so an omitted section keeps its default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every hardfork name in the activation map is
// known, and rejects an obviously unreasonable Logger configuration.
func (c *Config) Validate() error {
	for name := range c.Hardforks {
		if !IsHardforkValid(name) {
			return fmt.Errorf("unknown hardfork: %s", name)
		}
	}
	return c.Logger.Validate()
}
