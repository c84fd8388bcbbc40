package main

import (
	"errors"
	"os"
	_ "time/tzdata"

	"github.com/bcgov/wordpress-scripts/src/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
