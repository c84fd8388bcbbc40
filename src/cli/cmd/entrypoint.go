package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bcgov/wordpress-scripts/src/entrypoint"
)

var entrypointCmd = &cobra.Command{
	Use:   "entrypoint [dir]",
	Short: "Print the theme or plugin entrypoint file",
	Long: `Print the PHP file that boots the theme or plugin in dir (default: the
project root). A theme's functions.php wins; a plugin must have exactly one
root PHP file besides index.php and uninstall.php.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		path, err := entrypoint.Find(dir)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(entrypointCmd)
}
