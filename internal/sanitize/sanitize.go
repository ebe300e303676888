// Package sanitize escapes user-authored text before it enters rendered
// output. Escaping happens exactly once, at submission time; re-escaping
// already-escaped text double-escapes the ampersands.
package sanitize

import "strings"

var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Text replaces the five markup-significant characters with their entity
// forms. Everything else, whitespace and Unicode included, passes through
// unchanged. Total over all strings; not idempotent.
func Text(s string) string {
	return replacer.Replace(s)
}
