package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bcgov/wordpress-scripts/src/output"
	"github.com/bcgov/wordpress-scripts/src/scan"
	_ "github.com/bcgov/wordpress-scripts/src/scan/rules"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the pattern checks and whether they are active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner, err := scan.NewScanner(cfg.Scan, "")
		if err != nil {
			return err
		}

		active := make(map[string]bool, len(scanner.Checks))
		for _, name := range scanner.CheckNames() {
			active[name] = true
		}

		var all []scan.Check
		for _, name := range scan.All() {
			c, err := scan.Get(name)
			if err != nil {
				return err
			}
			all = append(all, c)
		}
		// Config rules are active by construction.
		for _, c := range scanner.Checks {
			if _, err := scan.Get(c.Name()); err != nil {
				all = append(all, c)
			}
		}

		output.ChecksTable(os.Stdout, all, active, useColor())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
