package output

import (
	"io"

	"github.com/bcgov/wordpress-scripts/src/scan"
)

// ChecksTable lists pattern checks in a section, marking the active ones.
func ChecksTable(w io.Writer, all []scan.Check, active map[string]bool, color bool) {
	sec := NewSection(w, "Pattern checks", color)
	for _, c := range all {
		sec.Row("%-14s%s  %s", c.Name(), activeMark(active[c.Name()], color), c.Heading())
	}
	sec.Separator()
	sec.Row("%d of %d active", len(active), len(all))
	sec.Close()
}
