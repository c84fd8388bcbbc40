package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// sectionWidth is the length of the rules drawn around a section body.
const sectionWidth = 61

const colorDim = "\033[2;36m"

// Section frames a block of rows under a titled rule:
//
//	── Pattern checks ───────────────
//	│ row
//	└───────────────────────────────
type Section struct {
	w io.Writer
}

// NewSection writes the title rule and returns the section.
func NewSection(w io.Writer, title string, color bool) *Section {
	head := "── " + title + " "
	fill := sectionWidth + 2 - utf8.RuneCountInString(head)
	if fill < 1 {
		fill = 1
	}
	fmt.Fprintf(w, "\n    %s\n", colorize(head+strings.Repeat("─", fill), colorDim, color))
	return &Section{w: w}
}

// Row writes one line of the section body.
func (s *Section) Row(format string, args ...any) {
	fmt.Fprintf(s.w, "    │ %s\n", fmt.Sprintf(format, args...))
}

// Separator divides the body.
func (s *Section) Separator() {
	fmt.Fprintf(s.w, "    ├%s\n", strings.Repeat("─", sectionWidth))
}

// Close writes the bottom rule.
func (s *Section) Close() {
	fmt.Fprintf(s.w, "    └%s\n", strings.Repeat("─", sectionWidth))
}

// activeMark is ✓ for an enabled item and ⊘ for a disabled one.
func activeMark(active, color bool) string {
	if active {
		return colorize("✓", colorGreen, color)
	}
	return colorize("⊘", colorYellow, color)
}
