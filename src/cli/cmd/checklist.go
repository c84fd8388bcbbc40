package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bcgov/wordpress-scripts/src/checklist"
	"github.com/bcgov/wordpress-scripts/src/output"
	"github.com/bcgov/wordpress-scripts/src/scripts"
)

var (
	checklistEvent  string
	checklistCommon bool
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Generate the post-production checklist",
	Long: `Run phpcs, phpunit, npm lint:js, lint:css and test in order, stopping at
the first failure. When everything passes, ask the release questions.
The result is written to checklist.md in the project root.

With --common, print the static checklist for the common library instead.`,
	Args: cobra.NoArgs,
	RunE: runChecklist,
}

func init() {
	checklistCmd.Flags().StringVar(&checklistEvent, "event", "checklist", "invoking Composer script name")
	checklistCmd.Flags().BoolVar(&checklistCommon, "common", false, "print the common library checklist")

	rootCmd.AddCommand(checklistCmd)
}

func runChecklist(cmd *cobra.Command, args []string) error {
	if checklistCommon {
		checklist.PrintCommon(os.Stdout)
		return nil
	}

	var prompter checklist.Prompter = checklist.NewConsolePrompter(os.Stdin, os.Stdout)
	if !output.IsInteractive() {
		slog.Debug("no terminal, answering checklist questions with defaults")
		prompter = checklist.DefaultPrompter{}
	}

	runner := scripts.NewRunner(cfg.Scripts)
	gen := &checklist.Generator{
		Runner:   runner,
		Prompter: prompter,
		Config:   cfg.Checklist,
		Root:     runner.ProjectRoot(),
		Event:    checklistEvent,
		Out:      os.Stdout,
		Color:    useColor(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	res, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	if res.Failed != "" {
		return &ExitError{Code: res.ExitCode, Err: fmt.Errorf("checklist: %s failed, see %s", res.Failed, res.Path)}
	}
	return nil
}
