package scan

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/bcgov/wordpress-scripts/src/config"
)

// Check is the interface every per-line pattern check implements.
type Check interface {
	Name() string
	Heading() string // report heading, e.g. "Missing PHP in <img src>:"
	DefaultEnabled() bool
	Fails(line string) bool
}

// Preparer is implemented by checks that need one-time setup that can fail.
// The scanner calls Prepare once before the walk starts.
type Preparer interface {
	Prepare() error
}

// Rule matches the first <tag ... attribute="value"> on a line and hands the
// captured value to a predicate. A true predicate is a failure.
type Rule struct {
	name      string
	heading   string
	pattern   *regexp.Regexp
	predicate func(value string) bool
	enabled   bool
}

// NewRule builds a tag/attribute rule. The pattern is
// <tag[^>]+attribute="([^"]*)"; only its first match on a line is evaluated.
func NewRule(name, heading, tag, attribute string, predicate func(value string) bool) *Rule {
	expr := `<` + regexp.QuoteMeta(tag) + `[^>]+` + regexp.QuoteMeta(attribute) + `="([^"]*)"`
	return &Rule{
		name:      name,
		heading:   heading,
		pattern:   regexp.MustCompile(expr),
		predicate: predicate,
		enabled:   true,
	}
}

// Contains is a predicate that fails values containing substr.
func Contains(substr string) func(string) bool {
	return func(v string) bool { return strings.Contains(v, substr) }
}

// Missing is a predicate that fails values not containing substr.
func Missing(substr string) func(string) bool {
	return func(v string) bool { return !strings.Contains(v, substr) }
}

// RuleFromConfig builds a rule declared under scan.rules.
func RuleFromConfig(rc config.RuleConfig) (*Rule, error) {
	var predicate func(string) bool
	switch {
	case rc.Contains != "" && rc.Missing == "":
		predicate = Contains(rc.Contains)
	case rc.Missing != "" && rc.Contains == "":
		predicate = Missing(rc.Missing)
	default:
		return nil, fmt.Errorf("scan: rule %s: exactly one of contains or missing is required", rc.Name)
	}
	heading := rc.Heading
	if heading == "" {
		heading = rc.Name + ":"
	}
	return NewRule(rc.Name, heading, rc.Tag, rc.Attribute, predicate), nil
}

func (r *Rule) Name() string         { return r.name }
func (r *Rule) Heading() string      { return r.heading }
func (r *Rule) DefaultEnabled() bool { return r.enabled }

// Match returns the attribute value of the first qualifying tag on line.
func (r *Rule) Match(line string) (string, bool) {
	m := r.pattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Fails reports whether line holds a qualifying tag whose value fails the predicate.
func (r *Rule) Fails(line string) bool {
	value, ok := r.Match(line)
	if !ok {
		return false
	}
	return r.predicate(value)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Check{}
	order      []string
)

// Register adds a check constructor to the global registry.
// Called from init() in the rules package.
func Register(name string, constructor func() Check) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("scan: duplicate check registration: %s", name))
	}
	registry[name] = constructor
	order = append(order, name)
}

// Get returns a new instance of the named check.
func Get(name string) (Check, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("scan: unknown check: %s", name)
	}
	return ctor(), nil
}

// All returns the names of all registered checks in registration order,
// which is also the order their report sections appear in.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, len(order))
	copy(names, order)
	return names
}
