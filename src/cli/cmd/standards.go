package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bcgov/wordpress-scripts/src/scripts"
)

var phpcsEvent string

var phpcsCmd = &cobra.Command{
	Use:   "phpcs",
	Short: "Check WordPress coding standards",
	Long: `Run PHP_CodeSniffer with the WordPress ruleset against the project root.

When invoked for the "production" or "checklist" event, TODO comments are
not reported. The exit code is phpcs's own.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exitCode(scripts.NewRunner(cfg.Scripts).PHPCS(context.Background(), phpcsEvent))
	},
}

var phpcbfCmd = &cobra.Command{
	Use:   "phpcbf",
	Short: "Fix WordPress coding standard violations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exitCode(scripts.NewRunner(cfg.Scripts).PHPCBF(context.Background()))
	},
}

func init() {
	phpcsCmd.Flags().StringVar(&phpcsEvent, "event", "", "invoking Composer script name (production and checklist skip the TODO sniff)")

	rootCmd.AddCommand(phpcsCmd)
	rootCmd.AddCommand(phpcbfCmd)
}
