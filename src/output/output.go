package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorOrange = "\033[38;5;214m"
)

// Level selects the emphasis of a console message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

func colorize(text, color string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	return color + text + colorReset
}

// Console writes msg on its own line, coloured by level: warnings yellow,
// errors red, info plain.
func Console(w io.Writer, msg string, level Level, color bool) {
	switch level {
	case LevelWarning:
		msg = colorize(msg, colorYellow, color)
	case LevelError:
		msg = colorize(msg, colorRed, color)
	}
	fmt.Fprintln(w, msg)
}

// IsInteractive reports whether a human can answer prompts: stdin is a
// terminal and this is not a CI run.
func IsInteractive() bool {
	if IsCI() {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}
