package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and merges configuration from global and project paths.
// Order of precedence (highest to lowest): project config, global config,
// defaults. Missing files are not errors; malformed JSON returns an error.
func Load(globalPath, projectPath string) (*Config, error) {
	cfg := DefaultConfig()

	if globalPath != "" {
		if err := mergeConfigFile(cfg, globalPath); err != nil {
			return nil, fmt.Errorf("loading global config: %w", err)
		}
	}

	if projectPath != "" {
		if err := mergeConfigFile(cfg, projectPath); err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
	}

	return cfg, nil
}

// LoadDefault loads configuration from conventional paths.
// Global: ~/.agentboard/config.json
// Project: .agentboard/config.json (relative to cwd)
func LoadDefault() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	globalPath := filepath.Join(homeDir, ".agentboard", "config.json")
	projectPath := filepath.Join(".agentboard", "config.json")

	return Load(globalPath, projectPath)
}

// mergeConfigFile reads a JSON config file and merges it into the base
// config. Missing files are silently skipped.
func mergeConfigFile(base *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	// Only set fields the file actually carries, so a sparse project file
	// does not zero out global settings.
	if loaded.Source.Mode != "" {
		base.Source.Mode = loaded.Source.Mode
	}
	if loaded.Source.DBPath != "" {
		base.Source.DBPath = loaded.Source.DBPath
	}
	if loaded.Source.BaseURL != "" {
		base.Source.BaseURL = loaded.Source.BaseURL
	}
	if loaded.Dashboard.PollIntervalMS > 0 {
		base.Dashboard.PollIntervalMS = loaded.Dashboard.PollIntervalMS
	}
	if loaded.Dashboard.AnimationMS > 0 {
		base.Dashboard.AnimationMS = loaded.Dashboard.AnimationMS
	}
	if loaded.Dashboard.DefaultFilter != "" {
		base.Dashboard.DefaultFilter = loaded.Dashboard.DefaultFilter
	}
	if set := headerSetting(data); set != nil {
		base.Dashboard.ShowHeader = *set
	}
	if loaded.Debug {
		base.Debug = true
	}

	return nil
}

// headerSetting extracts dashboard.show_header if the file carries it.
// A plain bool can't distinguish "absent" from "false", so this one field
// is probed against the raw document.
func headerSetting(data []byte) *bool {
	var probe struct {
		Dashboard struct {
			ShowHeader *bool `json:"show_header"`
		} `json:"dashboard"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}
	return probe.Dashboard.ShowHeader
}
