// Package entrypoint locates the PHP file that boots a theme or plugin,
// which the PHPUnit bootstrap loads before the WordPress test suite.
package entrypoint

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ignoredNames are root PHP files that never boot a plugin.
var ignoredNames = []string{"index", "uninstall"}

var (
	ErrNotFound  = errors.New("no entrypoint php file found; plugins should have a <plugin-name>.php and themes should have a functions.php")
	ErrAmbiguous = errors.New("multiple potential entrypoint php files found")
)

// Find returns the entrypoint among root/*.php. A theme's functions.php
// wins; otherwise exactly one file not named index or uninstall must remain.
func Find(root string) (string, error) {
	files, err := filepath.Glob(filepath.Join(root, "*.php"))
	if err != nil {
		return "", err
	}
	sort.Strings(files)

	var candidates []string
	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".php")
		if name == "functions" {
			return f, nil
		}
		if isIgnored(name) {
			continue
		}
		candidates = append(candidates, f)
	}

	switch len(candidates) {
	case 0:
		return "", ErrNotFound
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%w; allowed *.php files in project root: <plugin-name>, %s (found %s)",
			ErrAmbiguous, strings.Join(ignoredNames, ", "), strings.Join(baseNames(candidates), ", "))
	}
}

func isIgnored(name string) bool {
	for _, n := range ignoredNames {
		if name == n {
			return true
		}
	}
	return false
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
