package scan

import (
	"testing"

	"github.com/bcgov/wordpress-scripts/src/config"
)

func TestRuleMatch(t *testing.T) {
	r := NewRule("iframe-src", "iframe:", "iframe", "src", Contains("localhost"))

	value, ok := r.Match(`<iframe width="600" src="http://localhost/embed"></iframe>`)
	if !ok {
		t.Fatal("expected a match")
	}
	if value != "http://localhost/embed" {
		t.Errorf("value = %q", value)
	}
	if _, ok := r.Match(`<iframe>`); ok {
		t.Error("tag without attribute must not match")
	}
}

func TestRuleQuotesMetacharacters(t *testing.T) {
	r := NewRule("x", "x:", "a.b", "data-x", Contains("bad"))

	if r.Fails(`<aXb data-x="bad">`) {
		t.Error("tag name must match literally")
	}
	if !r.Fails(`<a.b data-x="bad">`) {
		t.Error("literal tag should match")
	}
}

func TestRuleFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		rc      config.RuleConfig
		line    string
		fails   bool
		heading string
		wantErr bool
	}{
		{
			name:    "contains",
			rc:      config.RuleConfig{Name: "video-src", Tag: "video", Attribute: "src", Contains: "localhost"},
			line:    `<video controls src="http://localhost/a.mp4">`,
			fails:   true,
			heading: "video-src:",
		},
		{
			name:    "missing",
			rc:      config.RuleConfig{Name: "source-src", Heading: "Missing PHP in <source src>:", Tag: "source", Attribute: "src", Missing: "php"},
			line:    `<source type="video/mp4" src="a.mp4">`,
			fails:   true,
			heading: "Missing PHP in <source src>:",
		},
		{
			name:    "both predicates",
			rc:      config.RuleConfig{Name: "x", Tag: "a", Attribute: "href", Contains: "a", Missing: "b"},
			wantErr: true,
		},
		{
			name:    "no predicate",
			rc:      config.RuleConfig{Name: "x", Tag: "a", Attribute: "href"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := RuleFromConfig(tt.rc)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := r.Fails(tt.line); got != tt.fails {
				t.Errorf("Fails = %v, want %v", got, tt.fails)
			}
			if r.Heading() != tt.heading {
				t.Errorf("Heading = %q, want %q", r.Heading(), tt.heading)
			}
			if !r.DefaultEnabled() {
				t.Error("config rules are enabled")
			}
		})
	}
}

// unregisterAfter restores the global registry when the test ends, so
// scanners built by later tests see only the real checks.
func unregisterAfter(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := make(map[string]func() Check, len(registry))
	for k, v := range registry {
		saved[k] = v
	}
	savedOrder := append([]string(nil), order...)
	registryMu.Unlock()

	t.Cleanup(func() {
		registryMu.Lock()
		defer registryMu.Unlock()
		registry = saved
		order = savedOrder
	})
}

func TestRegister(t *testing.T) {
	unregisterAfter(t)
	Register("test-register", func() Check { return NewRule("test-register", "t:", "b", "id", Contains("x")) })

	c, err := Get("test-register")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.Name() != "test-register" {
		t.Errorf("Name = %q", c.Name())
	}

	names := All()
	if names[len(names)-1] != "test-register" {
		t.Errorf("All() = %v, want registration order", names)
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("test-register", func() Check { return nil })
}

func TestRegisterIsUndoneBetweenTests(t *testing.T) {
	for _, name := range All() {
		if name == "test-register" {
			t.Fatalf("All() = %v still holds a test-only check", All())
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("does-not-exist"); err == nil {
		t.Error("expected error for unknown check")
	}
}

func TestFailureString(t *testing.T) {
	if got := (Failure{File: "patterns/a.php", Line: 3}).String(); got != "patterns/a.php (Line 3)" {
		t.Errorf("got %q", got)
	}
	if got := (Failure{File: "patterns/a.php"}).String(); got != "patterns/a.php" {
		t.Errorf("got %q", got)
	}
}
