package scan

import (
	"path/filepath"
	"strings"
)

// MatchGlob matches a glob pattern supporting ** against a forward-slash path.
func MatchGlob(pattern, path string) bool { return matchGlob(pattern, path) }

// matchGlob extends filepath.Match with "**" (zero or more path segments).
// Patterns without "**" delegate directly to filepath.Match.
func matchGlob(pattern, path string) bool {
	if !strings.Contains(pattern, "**") {
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	idx := strings.Index(pattern, "**")
	prefix := pattern[:idx]
	suffix := strings.TrimLeft(pattern[idx+2:], "/")

	if prefix != "" {
		prefix = strings.TrimRight(prefix, "/")
		if path != prefix && !strings.HasPrefix(path, prefix+"/") {
			return false
		}
		path = strings.TrimPrefix(path, prefix)
		path = strings.TrimLeft(path, "/")
	}

	if suffix == "" {
		return true
	}

	// Try the suffix against every tail: "a/b/c", "b/c", "c".
	parts := strings.Split(path, "/")
	for i := 0; i <= len(parts); i++ {
		if matchGlob(suffix, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

// normalizeSlashPath converts a path to forward slashes and strips leading "./".
func normalizeSlashPath(p string) string {
	p = filepath.ToSlash(p)
	return strings.TrimPrefix(p, "./")
}

// excluded reports whether rel (relative to the scan root) matches any pattern.
// Patterns containing "/" or "**" match the full path; others the base name.
func excluded(patterns []string, rel string) bool {
	if len(patterns) == 0 {
		return false
	}
	normPath := normalizeSlashPath(rel)
	baseName := filepath.Base(normPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if strings.Contains(pattern, "/") || strings.Contains(pattern, "**") {
			if matchGlob(pattern, normPath) {
				return true
			}
		} else if matchGlob(pattern, baseName) {
			return true
		}
	}
	return false
}
