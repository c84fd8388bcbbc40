package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bcgov/wordpress-scripts/src/output"
	"github.com/bcgov/wordpress-scripts/src/scan"
	_ "github.com/bcgov/wordpress-scripts/src/scan/rules"
)

var (
	scanDir                 string
	scanChanged             bool
	scanJUnit               string
	scanContinueOnReadError bool
	scanWatch               bool
)

var scanPatternsCmd = &cobra.Command{
	Use:   "scan-patterns",
	Short: "Scan block patterns for hard-coded markup",
	Long: `Scan every PHP file under the patterns directory for:

  - <img> tags whose src does not go through PHP (hard-coded asset URLs)
  - <a> tags whose href points at localhost

Prints the number of files scanned, passed and failed, then every failure
as "<path> (Line <n>)". Exits 1 if any file failed, 2 if the scan itself
could not complete.

With --watch, the scan re-runs whenever a pattern file changes until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runScanPatterns,
}

func init() {
	scanPatternsCmd.Flags().StringVar(&scanDir, "dir", "", "patterns directory (default: from config, then ./patterns)")
	scanPatternsCmd.Flags().BoolVar(&scanChanged, "changed", false, "only scan files changed against the target branch")
	scanPatternsCmd.Flags().StringVar(&scanJUnit, "junit", "", "write a JUnit XML report to this path")
	scanPatternsCmd.Flags().BoolVar(&scanContinueOnReadError, "continue-on-read-error", false, "record unreadable files as failed instead of aborting")
	scanPatternsCmd.Flags().BoolVar(&scanWatch, "watch", false, "re-scan whenever a pattern file changes")

	rootCmd.AddCommand(scanPatternsCmd)
}

func runScanPatterns(cmd *cobra.Command, args []string) error {
	scanCfg := cfg.Scan
	if scanContinueOnReadError {
		scanCfg.ContinueOnReadError = true
	}

	scanner, err := scan.NewScanner(scanCfg, scanDir)
	if err != nil {
		return &ExitError{Code: scan.ExitError, Err: err}
	}
	slog.Debug("pattern checks", "checks", scanner.CheckNames(), "dir", scanner.Root)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if scanChanged {
		rootDir, err := os.Getwd()
		if err != nil {
			return &ExitError{Code: scan.ExitError, Err: fmt.Errorf("getting working directory: %w", err)}
		}
		delta := &scan.Delta{RootDir: rootDir, TargetBranch: scanCfg.TargetBranch}
		changed, err := delta.ChangedFiles(ctx)
		if err != nil {
			slog.Warn("delta failed, scanning all files", "error", err)
		}
		scanner.Include = scan.DeltaFilter(rootDir, changed)
	}

	w := os.Stdout
	output.CIHeader(os.Stderr)

	if scanWatch {
		err := scanner.Watch(ctx, func(res *scan.Result, err error) {
			if err != nil {
				slog.Error("scan failed", "error", err)
				return
			}
			output.Report(w, res, useColor())
		})
		if err != nil {
			return &ExitError{Code: scan.ExitError, Err: err}
		}
		return nil
	}

	start := time.Now()
	res, err := scanner.Scan(ctx)
	if err != nil {
		return &ExitError{Code: scan.ExitError, Err: err}
	}
	elapsed := time.Since(start)

	output.SectionStart(w, "wp_patterns", "Pattern scan")
	output.Report(w, res, useColor())
	output.SectionEnd(w, "wp_patterns")

	if scanJUnit != "" {
		if jErr := output.WritePatternJUnit(scanJUnit, res, elapsed); jErr != nil {
			slog.Warn("failed to write junit report", "error", jErr)
		}
	}

	if code := res.ExitCode(); code != scan.ExitPassed {
		return &ExitError{Code: code}
	}
	return nil
}
