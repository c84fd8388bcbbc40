package scan

import "testing"

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.php", "a.php", true},
		{"*.php", "dir/a.php", false},
		{"legacy/**", "legacy/a.php", true},
		{"legacy/**", "legacy/x/y/a.php", true},
		{"legacy/**", "current/a.php", false},
		{"**/draft.php", "draft.php", true},
		{"**/draft.php", "a/b/draft.php", true},
		{"**/*.php", "a/b/c.php", true},
		{"**/*.php", "a/b/c.html", false},
	}

	for _, tt := range tests {
		if got := MatchGlob(tt.pattern, tt.path); got != tt.want {
			t.Errorf("MatchGlob(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestExcluded(t *testing.T) {
	patterns := []string{"draft-*.php", "legacy/**"}

	tests := []struct {
		rel  string
		want bool
	}{
		{"draft-home.php", true},
		{"nested/draft-home.php", true},
		{"./legacy/old.php", true},
		{"legacy", true},
		{"legacy-notes.php", false},
		{"home.php", false},
	}

	for _, tt := range tests {
		if got := excluded(patterns, tt.rel); got != tt.want {
			t.Errorf("excluded(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}

	if excluded(nil, "anything.php") {
		t.Error("no patterns excludes nothing")
	}
}
