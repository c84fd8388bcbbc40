package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bcgov/wordpress-scripts/src/scan"
)

// Report writes the pattern scan summary and failure listing.
//
// Counts always print. The "Failed files:" block appears only when some
// category has failures, and each category only when it has entries.
// Categories are separated by a blank line and the report ends with one.
// Paths and counts are HTML-escaped; headings are written as-is.
func Report(w io.Writer, res *scan.Result, color bool) {
	fmt.Fprintf(w, "Total files scanned: %s\n", EscapeHTML(strconv.Itoa(res.TotalFiles)))
	fmt.Fprintln(w, colorize("Files passed: "+EscapeHTML(strconv.Itoa(res.Passed)), colorGreen, color))
	fmt.Fprintln(w, colorize("Files failed: "+EscapeHTML(strconv.Itoa(res.Failed)), colorRed, color))

	if res.HasFailures() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, colorize("Failed files:", colorYellow, color))

		printed := 0
		for _, cat := range res.Categories {
			if len(cat.Failures) == 0 {
				continue
			}
			if printed > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, colorize(cat.Heading, colorYellow, color))
			for _, f := range cat.Failures {
				fmt.Fprintln(w, colorize(EscapeHTML(f.String()), colorOrange, color))
			}
			printed++
		}
	}

	fmt.Fprintln(w)
}
