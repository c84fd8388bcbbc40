package scan

// Exit codes of the pattern scan.
const (
	ExitPassed = 0
	ExitFailed = 1
	ExitError  = 2
)

const (
	unreadableRule    = "unreadable"
	unreadableHeading = "Unreadable files:"
)

// Result is the aggregate of one full scan. It is built up while the
// walk runs and must be treated as read-only once Scan returns.
type Result struct {
	Root       string
	TotalFiles int
	Passed     int
	Failed     int
	Files      []string
	Categories []Category
}

func newResult(root string, checks []Check) *Result {
	res := &Result{Root: root}
	for _, c := range checks {
		res.Categories = append(res.Categories, Category{Rule: c.Name(), Heading: c.Heading()})
	}
	return res
}

// Failures returns the failures recorded for the named rule.
func (r *Result) Failures(rule string) []Failure {
	for _, c := range r.Categories {
		if c.Rule == rule {
			return c.Failures
		}
	}
	return nil
}

// HasFailures reports whether any category recorded a failure.
func (r *Result) HasFailures() bool {
	for _, c := range r.Categories {
		if len(c.Failures) > 0 {
			return true
		}
	}
	return false
}

// ExitCode is ExitPassed when no file failed, ExitFailed otherwise.
func (r *Result) ExitCode() int {
	if r.Failed > 0 {
		return ExitFailed
	}
	return ExitPassed
}

func (r *Result) record(rule, heading string, f Failure) {
	for i := range r.Categories {
		if r.Categories[i].Rule == rule {
			r.Categories[i].Failures = append(r.Categories[i].Failures, f)
			return
		}
	}
	r.Categories = append(r.Categories, Category{Rule: rule, Heading: heading, Failures: []Failure{f}})
}
