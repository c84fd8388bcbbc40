package output

import "strings"

// htmlReplacer mirrors PHP's htmlspecialchars with ENT_QUOTES.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML entity-escapes text before it reaches a terminal or CI log,
// where it may end up rendered in a web view.
func EscapeHTML(text string) string {
	return htmlReplacer.Replace(text)
}
