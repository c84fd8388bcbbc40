package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bcgov/wordpress-scripts/src/scripts"
)

var (
	phpunitSilent bool
	npmSilent     bool
)

var phpunitCmd = &cobra.Command{
	Use:   "phpunit",
	Short: "Run the PHP unit tests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exitCode(scripts.NewRunner(cfg.Scripts).PHPUnit(context.Background(), phpunitSilent))
	},
}

var npmCmd = &cobra.Command{
	Use:   "npm <script>",
	Short: "Run an npm script",
	Long: `Run "npm run <script>", e.g. lint:js, lint:css or test.
The exit code is npm's own.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return exitCode(scripts.NewRunner(cfg.Scripts).NPM(context.Background(), args[0], npmSilent))
	},
}

func init() {
	phpunitCmd.Flags().BoolVar(&phpunitSilent, "silent", false, "discard phpunit output")
	npmCmd.Flags().BoolVar(&npmSilent, "silent", false, "discard npm output")

	rootCmd.AddCommand(phpunitCmd)
	rootCmd.AddCommand(npmCmd)
}
