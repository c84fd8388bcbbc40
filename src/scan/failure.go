package scan

import "fmt"

// Failure is a single rule violation at a file and 1-based line.
// Line is 0 for file-level failures (unreadable files).
type Failure struct {
	File string
	Line int
	Rule string
}

// String renders the failure the way the report lists it.
func (f Failure) String() string {
	if f.Line == 0 {
		return f.File
	}
	return fmt.Sprintf("%s (Line %d)", f.File, f.Line)
}

// Category groups the failures recorded by one check, in discovery order.
type Category struct {
	Rule     string
	Heading  string
	Failures []Failure
}
