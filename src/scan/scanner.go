package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bcgov/wordpress-scripts/src/config"
)

// SecretsCheck is the opt-in check enabled by scan.secrets.
const SecretsCheck = "secrets"

// Scanner walks a pattern directory and runs every check on every line of
// every file with the configured extension. A scan is strictly sequential.
type Scanner struct {
	Config config.ScanConfig
	Root   string
	Checks []Check

	// Include, when set, limits which files are checked. Files it rejects
	// are skipped entirely and not counted.
	Include func(path string) bool

	Logger *slog.Logger
}

// NewScanner creates a scanner over root with the default-enabled checks,
// minus scan.disable, plus the rules declared in config.
func NewScanner(cfg config.ScanConfig, root string) (*Scanner, error) {
	if root == "" {
		root = cfg.Dir
	}

	disabled := make(map[string]bool, len(cfg.Disable))
	for _, name := range cfg.Disable {
		disabled[name] = true
	}

	var checks []Check
	for _, name := range All() {
		if disabled[name] {
			continue
		}
		c, err := Get(name)
		if err != nil {
			return nil, err
		}
		if c.DefaultEnabled() || (name == SecretsCheck && cfg.Secrets) {
			checks = append(checks, c)
		}
	}

	for _, rc := range cfg.Rules {
		if disabled[rc.Name] {
			continue
		}
		r, err := RuleFromConfig(rc)
		if err != nil {
			return nil, err
		}
		checks = append(checks, r)
	}

	if len(checks) == 0 {
		return nil, fmt.Errorf("no pattern checks enabled")
	}

	for _, c := range checks {
		if p, ok := c.(Preparer); ok {
			if err := p.Prepare(); err != nil {
				return nil, fmt.Errorf("preparing %s: %w", c.Name(), err)
			}
		}
	}

	return &Scanner{
		Config: cfg,
		Root:   root,
		Checks: checks,
	}, nil
}

// CheckNames returns the names of the active checks.
func (s *Scanner) CheckNames() []string {
	names := make([]string, len(s.Checks))
	for i, c := range s.Checks {
		names[i] = c.Name()
	}
	return names
}

// Scan walks the root depth-first and returns the accumulated result.
// A missing root or unreadable directory yields a *DirectoryAccessError.
// An unreadable file yields a *FileReadError unless
// Config.ContinueOnReadError is set, in which case the file is recorded
// as failed and the walk goes on.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	info, err := os.Stat(s.Root)
	if err != nil {
		return nil, &DirectoryAccessError{Path: s.Root, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryAccessError{Path: s.Root, Err: fmt.Errorf("not a directory")}
	}

	res := newResult(s.Root, s.Checks)
	visited := make(map[string]bool)
	if err := s.walk(ctx, s.Root, res, visited); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Scanner) walk(ctx context.Context, dir string, res *Result, visited map[string]bool) error {
	// Symlinked directories are followed, so guard against cycles by
	// canonical path.
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		if abs, absErr := filepath.Abs(real); absErr == nil {
			real = abs
		}
		if visited[real] {
			s.logger().Warn("skipping already visited directory", "dir", dir, "target", real)
			return nil
		}
		visited[real] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return &DirectoryAccessError{Path: dir, Err: err}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}
		path := filepath.Join(dir, name)

		if s.isExcluded(path) {
			s.logger().Debug("excluded", "path", path)
			continue
		}

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			if target, statErr := os.Stat(path); statErr == nil {
				isDir = target.IsDir()
			}
		}

		if isDir {
			if err := s.walk(ctx, path, res, visited); err != nil {
				return err
			}
			continue
		}

		if filepath.Ext(name) != "."+s.Config.Extension {
			continue
		}
		if s.Include != nil && !s.Include(path) {
			continue
		}

		if err := s.checkFile(path, res); err != nil {
			var readErr *FileReadError
			if !s.Config.ContinueOnReadError || !errors.As(err, &readErr) {
				return err
			}
			s.logger().Warn("recording unreadable file as failed", "file", path, "error", readErr.Err)
			res.record(unreadableRule, unreadableHeading, Failure{File: path, Rule: unreadableRule})
			res.Failed++
		}
	}

	return nil
}

// checkFile counts the file, runs every check on every line, and marks the
// file passed or failed exactly once.
func (s *Scanner) checkFile(path string, res *Result) error {
	res.TotalFiles++
	res.Files = append(res.Files, path)

	f, err := os.Open(path)
	if err != nil {
		return &FileReadError{Path: path, Err: err}
	}
	defer f.Close()

	s.logger().Debug("checking", "file", path)

	failed := false
	reader := bufio.NewReader(f)
	lineNum := 0

	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			lineNum++
			for _, c := range s.Checks {
				if c.Fails(line) {
					res.record(c.Name(), c.Heading(), Failure{File: path, Line: lineNum, Rule: c.Name()})
					failed = true
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return &FileReadError{Path: path, Err: readErr}
		}
	}

	if failed {
		res.Failed++
	} else {
		res.Passed++
	}
	return nil
}

func (s *Scanner) isExcluded(path string) bool {
	if len(s.Config.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(s.Root, path)
	if err != nil {
		return false
	}
	return excluded(s.Config.Exclude, rel)
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
