package home

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultVersion is written into a fresh config file on first access.
const DefaultVersion = "0.1.0"

// Config is the global, per-user CLI configuration stored at
// ~/.vira/config.yml.
type Config struct {
	Version string `yaml:"version"`
	Verbose bool   `yaml:"verbose"`
}

func defaultConfig() Config {
	return Config{Version: DefaultVersion, Verbose: false}
}

// LoadConfig reads the global config, writing the defaults first when the
// file does not exist yet. A present-but-malformed file is an error, never
// silently replaced.
func (h *Home) LoadConfig() (Config, error) {
	data, err := os.ReadFile(h.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		cfg := defaultConfig()
		if err := h.SaveConfig(cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("home: read config: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("home: parse %s: %w", h.ConfigPath(), err)
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	return cfg, nil
}

// SaveConfig writes the config file atomically enough for a single-writer
// CLI: temp file in the same directory, then rename.
func (h *Home) SaveConfig(cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("home: encode config: %w", err)
	}

	tmp, err := os.CreateTemp(h.Root, configName+".*")
	if err != nil {
		return fmt.Errorf("home: write config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("home: write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("home: write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.ConfigPath()); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("home: write config: %w", err)
	}
	return nil
}
