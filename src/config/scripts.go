package config

// ScriptsConfig locates the external tools wrapped by the phpcs, phpcbf,
// phpunit and npm commands.
type ScriptsConfig struct {
	// VendorDir is Composer's vendor-dir. The project root is its parent.
	VendorDir string `yaml:"vendor_dir"`

	// Package is the path of this toolkit inside vendor, which ships the
	// phpcs/phpcbf/phpunit binaries and the ruleset.
	Package string `yaml:"package"`

	// Standard is the phpcs ruleset, relative to the project root.
	Standard string `yaml:"standard"`

	// PHPUnitConfig is the phpunit configuration, relative to the project root.
	PHPUnitConfig string `yaml:"phpunit_config"`

	// NPM is the npm executable.
	NPM string `yaml:"npm"`
}

// DefaultScriptsConfig returns production defaults.
func DefaultScriptsConfig() ScriptsConfig {
	return ScriptsConfig{
		VendorDir:     "vendor",
		Package:       "bcgov/wordpress-scripts",
		Standard:      "./vendor/bcgov/wordpress-scripts/wordpress.xml",
		PHPUnitConfig: "phpunit.xml",
		NPM:           "npm",
	}
}

// ChecklistConfig holds production checklist settings.
type ChecklistConfig struct {
	// File is the checklist output, relative to the project root.
	File string `yaml:"file"`

	// Timezone is the IANA zone used for the "Created at" header.
	Timezone string `yaml:"timezone"`
}

// DefaultChecklistConfig returns production defaults.
func DefaultChecklistConfig() ChecklistConfig {
	return ChecklistConfig{
		File:     "checklist.md",
		Timezone: "America/Vancouver",
	}
}
