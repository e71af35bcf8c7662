// Package config holds the korobin command-line configuration.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/woozymasta/korobin"
)

const (
	// DefaultConfigPath is the default filesystem path for the configuration file.
	DefaultConfigPath = "/etc/korobin/config.toml"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
)

type Config struct {
	// LogLevel is a logrus level name (e.g. debug, info, warn).
	LogLevel string `toml:"log_level"`

	DecompressConfig DecompressConfig `toml:"decompress"`
	ArchiveConfig    ArchiveConfig    `toml:"archive"`
}

// DecompressConfig mirrors korobin.Options.
type DecompressConfig struct {
	// VerifyMagic rejects containers whose fixed header fields are not 1, 8, 1.
	VerifyMagic bool `toml:"verify_magic"`
	// NormalizeEditUser rewrites the EDITUSER 3 marker to 2 after decoding.
	NormalizeEditUser bool `toml:"normalize_edit_user"`
}

type ArchiveConfig struct {
	// Concurrency is the number of slots processed in parallel; 0 means unlimited.
	Concurrency int `toml:"concurrency"`
}

// NewConfig returns an initialized Config with default values set.
func NewConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		DecompressConfig: DecompressConfig{
			VerifyMagic:       true,
			NormalizeEditUser: true,
		},
	}
}

// NewConfigFromToml loads cfgPath over the defaults. A missing file at
// DefaultConfigPath yields the defaults.
func NewConfigFromToml(cfgPath string) (*Config, error) {
	f, err := os.Open(cfgPath)
	if err != nil {
		if os.IsNotExist(err) && cfgPath == DefaultConfigPath {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to open config file %q: %w", cfgPath, err)
	}
	defer f.Close()

	cfg := NewConfig()
	if err = toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file %q: %w", cfgPath, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.ArchiveConfig.Concurrency < 0 {
		return nil, fmt.Errorf("invalid archive concurrency %d in %q", cfg.ArchiveConfig.Concurrency, cfgPath)
	}

	return cfg, nil
}

// Options returns the codec options described by the configuration.
func (c *Config) Options() *korobin.Options {
	return &korobin.Options{
		VerifyMagic:       c.DecompressConfig.VerifyMagic,
		NormalizeEditUser: c.DecompressConfig.NormalizeEditUser,
	}
}
