package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".wpscripts.yml"

// Config is the top-level wpscripts configuration.
type Config struct {
	Scan      ScanConfig      `yaml:"scan"`
	Scripts   ScriptsConfig   `yaml:"scripts"`
	Checklist ChecklistConfig `yaml:"checklist"`
}

// Load reads configuration from a YAML file.
// If path is empty, it tries the default file.
// Returns sensible defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Scan:      DefaultScanConfig(),
		Scripts:   DefaultScriptsConfig(),
		Checklist: DefaultChecklistConfig(),
	}
}
