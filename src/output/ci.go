package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bcgov/wordpress-scripts/src/scan"
)

// IsCI reports whether a CI runner set CI=true.
func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// SectionStart opens a collapsible GitLab job log section. It writes
// nothing on other runners.
func SectionStart(w io.Writer, id, name string) {
	gitlabMarker(w, "section_start", id, name)
}

// SectionEnd closes the section opened with the same id.
func SectionEnd(w io.Writer, id string) {
	gitlabMarker(w, "section_end", id, "")
}

func gitlabMarker(w io.Writer, kind, id, name string) {
	if !IsGitLabCI() {
		return
	}
	fmt.Fprintf(w, "\033[0K%s:%d:%s\r\033[0K%s\n", kind, time.Now().Unix(), id, name)
}

// JUnit XML types for CI test reporting.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// BuildPatternJUnit converts a scan result to JUnit suites.
// Each check becomes a test suite, each scanned file a test case.
func BuildPatternJUnit(res *scan.Result, elapsed time.Duration) JUnitTestSuites {
	root := JUnitTestSuites{
		Name: "wpscripts-patterns",
		Time: fmt.Sprintf("%.3f", elapsed.Seconds()),
	}

	perSuite := "0.000"
	if len(res.Categories) > 0 {
		perSuite = fmt.Sprintf("%.3f", elapsed.Seconds()/float64(len(res.Categories)))
	}

	for _, cat := range res.Categories {
		byFile := make(map[string][]scan.Failure)
		for _, f := range cat.Failures {
			byFile[f.File] = append(byFile[f.File], f)
		}

		suite := JUnitTestSuite{
			Name: "wpscripts/patterns/" + cat.Rule,
			Time: perSuite,
		}

		for _, file := range res.Files {
			tc := JUnitTestCase{
				Name:      file,
				Classname: "wpscripts.patterns." + cat.Rule,
				Time:      "0.000",
			}
			if ff := byFile[file]; len(ff) > 0 {
				lines := make([]string, 0, len(ff))
				for _, f := range ff {
					lines = append(lines, "  "+f.String())
				}
				tc.Failure = &JUnitFailure{
					Message: fmt.Sprintf("%d failure(s) in %s", len(ff), file),
					Type:    cat.Rule,
					Body:    cat.Heading + "\n" + strings.Join(lines, "\n"),
				}
				suite.Failures++
				root.Failures++
			}
			suite.Cases = append(suite.Cases, tc)
			suite.Tests++
			root.Tests++
		}

		root.Suites = append(root.Suites, suite)
	}

	return root
}

// WritePatternJUnit writes the scan result as JUnit XML to path.
func WritePatternJUnit(path string, res *scan.Result, elapsed time.Duration) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	f.WriteString(xml.Header)
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(BuildPatternJUnit(res, elapsed)); err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}
	f.WriteString("\n")

	return nil
}

// CIHeader prints a compact pipeline context line at the start of a CI run.
func CIHeader(w io.Writer) {
	if !IsCI() {
		return
	}
	parts := []string{}
	if ref := os.Getenv("CI_COMMIT_REF_NAME"); ref != "" {
		parts = append(parts, fmt.Sprintf("ref=%s", ref))
	}
	if sha := os.Getenv("CI_COMMIT_SHORT_SHA"); sha != "" {
		parts = append(parts, fmt.Sprintf("sha=%s", sha))
	} else if sha := os.Getenv("CI_COMMIT_SHA"); sha != "" && len(sha) >= 8 {
		parts = append(parts, fmt.Sprintf("sha=%s", sha[:8]))
	} else if sha := os.Getenv("GITHUB_SHA"); sha != "" && len(sha) >= 8 {
		parts = append(parts, fmt.Sprintf("sha=%s", sha[:8]))
	}
	if pipe := os.Getenv("CI_PIPELINE_ID"); pipe != "" {
		parts = append(parts, fmt.Sprintf("pipeline=%s", pipe))
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "  ci: %s\n", strings.Join(parts, "  "))
	}
}
