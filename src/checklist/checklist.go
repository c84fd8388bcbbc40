// Package checklist generates the post-production checklist.md for a theme
// or plugin: it runs the automated checks in order, stops at the first
// failure, asks the release questions, and writes the result.
package checklist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/bcgov/wordpress-scripts/src/config"
	"github.com/bcgov/wordpress-scripts/src/output"
)

const (
	markPassed = "✓"
	markFailed = "Fail"

	// createdAtLayout matches PHP's date('Y-m-d g:i a').
	createdAtLayout = "2006-01-02 3:04 pm"
)

// Runner is the subset of scripts.Runner the checklist drives.
type Runner interface {
	PHPCS(ctx context.Context, event string) (int, error)
	PHPUnit(ctx context.Context, silent bool) (int, error)
	NPM(ctx context.Context, script string, silent bool) (int, error)
}

// Check is one automated checklist step.
type Check struct {
	Name string
	Item string // checklist line, after "* [<mark>] "
	Hint string // remediation printed when the check fails
	Run  func(ctx context.Context) (int, error)
}

// Question is one release question asked after every check passed.
type Question struct {
	Prompt string
	Item   string
}

// Questions are asked in order; answers are prepended to the checklist.
var Questions = []Question{
	{"Is your version in composer.json the correct version? (Default Yes)", "Updated version in composer.json"},
	{"Is your version in your style.css or plugin file the correct version? (Default Yes)", "Updated version in style.css or plugin file"},
	{"Did you update the CHANGELOG.md to include jira tickets? (Default Yes)", "Updated CHANGELOG.md to include jira ticket"},
	{"Update README.md if applicable? (Default Yes)", "Updated README.md for new functionality"},
	{"Built assets if applicable? (Default Yes)", "Built assets for production (npm run build:production)"},
}

// CommonItems is the static checklist for the shared common library.
var CommonItems = []string{
	"[] Updated version in composer.json",
	"[] Updated CHANGELOG.md to include jira ticket",
	"[] Updated README.md for new functionality",
	"[] Verified coding standards (phpcs)",
	"[] Run PHP tests",
}

// Generator runs the checks and writes the checklist.
type Generator struct {
	Runner   Runner
	Prompter Prompter
	Config   config.ChecklistConfig

	// Root is the project root; checklist.md and composer.json live here.
	Root string

	// Event is the name of the invoking Composer script, e.g. "production".
	Event string

	Out   io.Writer
	Color bool
	Now   func() time.Time
}

// Result is the outcome of one generator run.
type Result struct {
	Items    []string
	Failed   string // name of the failing check, empty on success
	ExitCode int    // exit code of the failing check
	Path     string
}

// Checks returns the automated checks in the order they run.
func (g *Generator) Checks() []Check {
	return []Check{
		{
			Name: "phpcs",
			Item: "Verified coding standards (phpcs)",
			Hint: "PHP Coding standards failed, no errors or warnings allowed, exceptions can be removed by using this comment //phpcs:ignore",
			Run:  func(ctx context.Context) (int, error) { return g.Runner.PHPCS(ctx, g.phpcsEvent()) },
		},
		{
			Name: "phpUnit",
			Item: "Run PHP tests",
			Hint: "PHP Unit tests failed.",
			Run:  func(ctx context.Context) (int, error) { return g.Runner.PHPUnit(ctx, true) },
		},
		{
			Name: "lintJs",
			Item: "Lint javascript",
			Hint: "Javascript linting failed.",
			Run:  func(ctx context.Context) (int, error) { return g.Runner.NPM(ctx, "lint:js", true) },
		},
		{
			Name: "lintCss",
			Item: "Lint CSS",
			Hint: "Style linting failed.",
			Run:  func(ctx context.Context) (int, error) { return g.Runner.NPM(ctx, "lint:css", true) },
		},
		{
			Name: "testJs",
			Item: "Javascript Tests",
			Hint: "Javascript tests failed.",
			Run:  func(ctx context.Context) (int, error) { return g.Runner.NPM(ctx, "test", true) },
		},
	}
}

// phpcsEvent is the Composer event phpcs runs under. Only "production" and
// "checklist" skip the TODO sniff; an unnamed run counts as "checklist".
func (g *Generator) phpcsEvent() string {
	if g.Event == "" {
		return "checklist"
	}
	return g.Event
}

// Run executes the checks, asks the questions when all passed, and writes
// the checklist file either way. A failing check is reported through
// Result.Failed and Result.ExitCode, not as an error.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	if g.Event != "production" {
		output.Console(g.Out, "Ensure that you run `composer production`", output.LevelWarning, g.Color)
	}
	output.Console(g.Out, "\nCreating checklist.md...\n", output.LevelInfo, g.Color)

	for _, c := range g.Checks() {
		code, err := c.Run(ctx)
		if err != nil {
			output.Console(g.Out, err.Error(), output.LevelError, g.Color)
		}

		item := formatItem(mark(code), c.Item)
		res.Items = append(res.Items, item)
		output.Console(g.Out, item, output.LevelInfo, g.Color)

		if code != 0 {
			output.Console(g.Out, fmt.Sprintf("*** FAIL ***\nTests Failed on %s please fix issues and re-run\n%s\n", c.Name, c.Hint), output.LevelError, g.Color)
			res.Failed = c.Name
			res.ExitCode = code
			break
		}
	}

	if res.Failed == "" {
		g.reportComposerVersion()

		answers := make([]string, 0, len(Questions))
		for _, q := range Questions {
			answer, err := g.Prompter.Select(ctx, q.Prompt, []string{"yes", "no"}, "yes")
			if err != nil {
				return nil, fmt.Errorf("checklist: %w", err)
			}
			answers = append(answers, formatItem(answer, q.Item))
		}
		res.Items = append(answers, res.Items...)
		output.Console(g.Out, "\nChecklist created successfully!!!", output.LevelInfo, g.Color)
	}

	res.Path = filepath.Join(g.Root, g.Config.File)
	if err := os.WriteFile(res.Path, []byte(g.Render(res.Items)), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.Path, err)
	}

	return res, nil
}

// Render produces the checklist.md content: a timestamp header, a blank
// line, then one item per line.
func (g *Generator) Render(items []string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	ts := now()
	if g.Config.Timezone != "" {
		if loc, err := time.LoadLocation(g.Config.Timezone); err == nil {
			ts = ts.In(loc)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Created at %s\n\n", ts.Format(createdAtLayout))
	b.WriteString(strings.Join(items, "\n"))
	b.WriteString("\n")
	return b.String()
}

// reportComposerVersion prints the composer.json version so the first
// question can be answered without opening the file.
func (g *Generator) reportComposerVersion() {
	v, err := ComposerVersion(g.Root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return
	case err != nil:
		output.Console(g.Out, err.Error(), output.LevelWarning, g.Color)
	default:
		output.Console(g.Out, "composer.json version: "+v.Original(), output.LevelInfo, g.Color)
	}
}

// ComposerVersion reads and parses the version field of root/composer.json.
func ComposerVersion(root string) (*semver.Version, error) {
	data, err := os.ReadFile(filepath.Join(root, "composer.json"))
	if err != nil {
		return nil, err
	}

	var manifest struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("composer.json: %w", err)
	}
	if manifest.Version == "" {
		return nil, fmt.Errorf("composer.json: no version field")
	}

	v, err := semver.NewVersion(manifest.Version)
	if err != nil {
		return nil, fmt.Errorf("composer.json: version %q is not valid semver: %w", manifest.Version, err)
	}
	return v, nil
}

// PrintCommon writes the static common-library checklist.
func PrintCommon(w io.Writer) {
	fmt.Fprint(w, "****** CHECKLIST ******\n\n")
	fmt.Fprint(w, strings.Join(CommonItems, "\n")+"\n\n")
}

func mark(code int) string {
	if code == 0 {
		return markPassed
	}
	return markFailed
}

func formatItem(mark, item string) string {
	return fmt.Sprintf("* [%s] %s", mark, item)
}
