package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var identifierRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.\-]*$`)

// attributeRe restricts tag and attribute names to what HTML allows
// unquoted, so they can be embedded in a rule pattern literally.
var attributeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9:_\-]*$`)

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	// ── Scan ──────────────────────────────────────────────────────────────

	if cfg.Scan.Dir == "" {
		errs = append(errs, "scan.dir: must not be empty")
	}
	if cfg.Scan.Extension == "" {
		errs = append(errs, "scan.extension: must not be empty")
	} else if strings.HasPrefix(cfg.Scan.Extension, ".") {
		warnings = append(warnings, fmt.Sprintf("scan.extension: %q has a leading dot, it will be ignored", cfg.Scan.Extension))
		cfg.Scan.Extension = strings.TrimPrefix(cfg.Scan.Extension, ".")
	}

	for i, pattern := range cfg.Scan.Exclude {
		if _, matchErr := filepath.Match(strings.ReplaceAll(pattern, "**", "*"), ""); matchErr != nil {
			errs = append(errs, fmt.Sprintf("scan.exclude[%d]: invalid glob %q: %v", i, pattern, matchErr))
		}
	}

	ruleNames := make(map[string]bool)
	for i, r := range cfg.Scan.Rules {
		rpath := fmt.Sprintf("scan.rules[%d]", i)

		if r.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: name is required", rpath))
		} else if !isIdentifier(r.Name) {
			errs = append(errs, fmt.Sprintf("%s: name %q is not a valid identifier (must match [a-zA-Z][a-zA-Z0-9_.\\-]*)", rpath, r.Name))
		} else if ruleNames[r.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate rule name %q", rpath, r.Name))
		} else {
			ruleNames[r.Name] = true
		}

		if !attributeRe.MatchString(r.Tag) {
			errs = append(errs, fmt.Sprintf("%s: tag %q is not a valid tag name", rpath, r.Tag))
		}
		if !attributeRe.MatchString(r.Attribute) {
			errs = append(errs, fmt.Sprintf("%s: attribute %q is not a valid attribute name", rpath, r.Attribute))
		}

		switch {
		case r.Contains == "" && r.Missing == "":
			errs = append(errs, fmt.Sprintf("%s: one of contains or missing is required", rpath))
		case r.Contains != "" && r.Missing != "":
			errs = append(errs, fmt.Sprintf("%s: contains and missing are mutually exclusive", rpath))
		}

		if r.Heading == "" {
			warnings = append(warnings, fmt.Sprintf("%s: no heading, report will use the rule name", rpath))
		}
	}

	// ── Scripts ───────────────────────────────────────────────────────────

	if cfg.Scripts.VendorDir == "" {
		errs = append(errs, "scripts.vendor_dir: must not be empty")
	}

	// ── Checklist ─────────────────────────────────────────────────────────

	if cfg.Checklist.Timezone != "" {
		if _, tzErr := time.LoadLocation(cfg.Checklist.Timezone); tzErr != nil {
			warnings = append(warnings, fmt.Sprintf("checklist.timezone: %q not available, falling back to local time", cfg.Checklist.Timezone))
		}
	}
	if filepath.IsAbs(cfg.Checklist.File) || strings.Contains(cfg.Checklist.File, "..") {
		errs = append(errs, fmt.Sprintf("checklist.file: %q must be a path inside the project root", cfg.Checklist.File))
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}

func isIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}
