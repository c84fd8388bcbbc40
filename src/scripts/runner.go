// Package scripts runs the external tools wrapped by the Composer entry
// points: PHP_CodeSniffer, PHPUnit and npm scripts. Every tool's exit code
// is relayed unmodified; nothing is retried.
package scripts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/bcgov/wordpress-scripts/src/config"
)

// excludeTodoSniff is dropped from phpcs runs made for a release so TODO
// comments do not block it.
const excludeTodoSniff = "--exclude=Generic.Commenting.Todo"

// ExecFunc builds the command for a tool invocation.
type ExecFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Runner invokes the wrapped tools.
type Runner struct {
	Config config.ScriptsConfig
	Stdout io.Writer
	Stderr io.Writer
	Exec   ExecFunc
}

// NewRunner creates a Runner with default output writers.
func NewRunner(cfg config.ScriptsConfig) *Runner {
	return &Runner{
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Exec:   exec.CommandContext,
	}
}

// ProjectRoot is the theme or plugin root, the parent of the vendor dir.
func (r *Runner) ProjectRoot() string {
	return path.Dir(strings.TrimRight(r.Config.VendorDir, "/"))
}

// bin returns the path of a tool shipped in this package's own vendor dir.
func (r *Runner) bin(name string) string {
	return path.Join(r.Config.VendorDir, r.Config.Package, "vendor", "bin", name)
}

// source is the directory phpcs and phpcbf inspect.
func (r *Runner) source() string {
	return r.ProjectRoot() + "/"
}

// ExcludesTodo reports whether a phpcs run for the named Composer event
// skips the TODO sniff. Release events do.
func ExcludesTodo(event string) bool {
	return event == "production" || event == "checklist"
}

func (r *Runner) installedPathsArgs() []string {
	wpcs := path.Join(r.Config.VendorDir, r.Config.Package, "vendor", "wp-coding-standards", "wpcs") + "/"
	return []string{"--config-set", "installed_paths", wpcs}
}

// PHPCSArgs returns the phpcs arguments for a check run for event.
func (r *Runner) PHPCSArgs(event string) []string {
	args := []string{"-ps", "--standard=" + r.Config.Standard, "--colors"}
	if ExcludesTodo(event) {
		args = append(args, excludeTodoSniff)
	}
	return append(args, r.source())
}

// PHPCBFArgs returns the phpcbf arguments.
func (r *Runner) PHPCBFArgs() []string {
	return []string{"-ps", "--standard=" + r.Config.Standard, "--colors", r.source()}
}

// PHPUnitArgs returns the phpunit arguments.
func (r *Runner) PHPUnitArgs() []string {
	return []string{"--configuration", path.Join(r.ProjectRoot(), r.Config.PHPUnitConfig), "--coverage-text"}
}

// PHPCS checks the project against the WordPress coding standards.
func (r *Runner) PHPCS(ctx context.Context, event string) (int, error) {
	r.configureStandards(ctx)
	return r.run(ctx, false, r.bin("phpcs"), r.PHPCSArgs(event)...)
}

// PHPCBF fixes what it can of the coding standard violations.
func (r *Runner) PHPCBF(ctx context.Context) (int, error) {
	r.configureStandards(ctx)
	return r.run(ctx, false, r.bin("phpcbf"), r.PHPCBFArgs()...)
}

// PHPUnit runs the PHP test suite. silent discards the tool's output.
func (r *Runner) PHPUnit(ctx context.Context, silent bool) (int, error) {
	return r.run(ctx, silent, r.bin("phpunit"), r.PHPUnitArgs()...)
}

// NPM runs an npm script by name. silent discards the tool's output.
func (r *Runner) NPM(ctx context.Context, script string, silent bool) (int, error) {
	if script == "" {
		return 1, fmt.Errorf("npm: script name is required")
	}
	return r.run(ctx, silent, r.Config.NPM, "run", script)
}

// configureStandards registers the WordPress standards with phpcs. Its
// output is shown ahead of the check's; the exit code is ignored.
func (r *Runner) configureStandards(ctx context.Context) {
	if code, err := r.run(ctx, false, r.bin("phpcs"), r.installedPathsArgs()...); err != nil || code != 0 {
		slog.Debug("phpcs installed_paths setup failed", "code", code, "error", err)
	}
}

// run executes the tool and returns its exit code. The error is non-nil
// only when the tool could not be started, in which case the code is 1.
func (r *Runner) run(ctx context.Context, silent bool, name string, args ...string) (int, error) {
	slog.Debug("exec", "cmd", name+" "+strings.Join(args, " "))

	cmd := r.Exec(ctx, name, args...)
	if silent {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code > 0 {
				return code, nil
			}
			return 1, nil // killed by a signal
		}
		return 1, fmt.Errorf("running %s: %w", name, err)
	}
	return 0, nil
}
