package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bcgov/wordpress-scripts/src/config"
	"github.com/bcgov/wordpress-scripts/src/output"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wpscripts",
	Short: "WordPress theme and plugin scripts",
	Long: `wpscripts runs the coding standards, tests, npm scripts, pattern scan and
production checklist for WordPress themes and plugins.

Exit Codes:
  0 - Success
  1 - Checks failed (or the wrapped tool's own non-zero code)
  2 - Scan error (missing pattern directory, unreadable file, bad config)`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}
		// A project .env may set WPSCRIPTS_TARGET_BRANCH, NO_COLOR and the
		// like; it never overrides the real environment.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return &ExitError{Code: 2, Err: fmt.Errorf("loading config: %w", err)}
		}
		warnings, err := config.Validate(cfg)
		for _, w := range warnings {
			slog.Warn("config", "warning", w)
		}
		if err != nil {
			return &ExitError{Code: 2, Err: fmt.Errorf("invalid config: %w", err)}
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .wpscripts.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		return err
	}
	return nil
}

func useColor() bool {
	return !noColor && output.UseColor()
}
