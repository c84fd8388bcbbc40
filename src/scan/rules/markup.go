package rules

import "github.com/bcgov/wordpress-scripts/src/scan"

// Rule names of the markup checks.
const (
	ImgSrc    = "img-src"
	AnchorRef = "a-href"
)

// Both are registered from one init so the img section always precedes
// the href section in the report.
func init() {
	scan.Register(ImgSrc, func() scan.Check { return NewImgSrc() })
	scan.Register(AnchorRef, func() scan.Check { return NewAnchorHref() })
}

// NewImgSrc flags <img src> values that do not go through PHP, i.e.
// hard-coded asset URLs in a pattern instead of a theme-relative path.
func NewImgSrc() *scan.Rule {
	return scan.NewRule(ImgSrc, "Missing PHP in <img src>:", "img", "src", scan.Missing("php"))
}

// NewAnchorHref flags <a href> values pointing at a local development site.
func NewAnchorHref() *scan.Rule {
	return scan.NewRule(AnchorRef, "Containing 'localhost' in <a href>:", "a", "href", scan.Contains("localhost"))
}
