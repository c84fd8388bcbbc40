package config

// RuleConfig declares an extra tag/attribute rule for the pattern scanner.
// Exactly one of Contains or Missing must be set.
type RuleConfig struct {
	Name      string `yaml:"name"`
	Heading   string `yaml:"heading"`
	Tag       string `yaml:"tag"`
	Attribute string `yaml:"attribute"`

	// Contains fails a match whose attribute value contains this substring.
	Contains string `yaml:"contains,omitempty"`
	// Missing fails a match whose attribute value does not contain this substring.
	Missing string `yaml:"missing,omitempty"`
}

// ScanConfig holds pattern scanner configuration.
type ScanConfig struct {
	Dir                 string       `yaml:"dir"`
	Extension           string       `yaml:"extension"`
	Exclude             []string     `yaml:"exclude"`
	Disable             []string     `yaml:"disable"`
	Rules               []RuleConfig `yaml:"rules"`
	Secrets             bool         `yaml:"secrets"`
	ContinueOnReadError bool         `yaml:"continue_on_read_error"`
	TargetBranch        string       `yaml:"target_branch"`
}

// DefaultScanConfig returns production defaults.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Dir:       "./patterns",
		Extension: "php",
		Exclude:   []string{},
	}
}
