package completeness

import (
	"regexp"
	"strings"
)

// Leading-preamble patterns a continuation fragment may wrongly repeat.
var (
	leadingDoctypeRe  = regexp.MustCompile(`(?i)^\s*<!doctype[^>]*>`)
	leadingHTMLOpenRe = regexp.MustCompile(`(?i)^\s*<html[^>]*>`)
	leadingHeadRe     = regexp.MustCompile(`(?is)^\s*<head[^>]*>.*?</head>`)
	leadingBodyOpenRe = regexp.MustCompile(`(?i)^\s*<body[^>]*>`)

	bodyCloseRe = regexp.MustCompile(`(?i)</body>`)
	htmlCloseRe = regexp.MustCompile(`(?i)</html>`)
)

// Merge splices a continuation fragment onto a truncated artifact.
//
// Generators frequently restart the document instead of resuming it, so
// any preamble the partial already contains is stripped from the front
// of the fragment before concatenation. The result always carries
// exactly one closing body and html tag. The operation is purely
// textual and tolerates malformed input on either side; pattern-based
// stripping is best-effort and can misjudge fragments whose preamble is
// itself truncated.
func (p *Protocol) Merge(partial, fragment string) string {
	lowerPartial := strings.ToLower(partial)

	fragment = strings.TrimLeft(fragment, " \t\r\n")
	if strings.Contains(lowerPartial, "<!doctype") {
		fragment = leadingDoctypeRe.ReplaceAllString(fragment, "")
		fragment = strings.TrimLeft(fragment, " \t\r\n")
	}
	if strings.Contains(lowerPartial, "<html") {
		fragment = leadingHTMLOpenRe.ReplaceAllString(fragment, "")
		fragment = strings.TrimLeft(fragment, " \t\r\n")
	}
	if strings.Contains(lowerPartial, "<head") {
		fragment = leadingHeadRe.ReplaceAllString(fragment, "")
		fragment = strings.TrimLeft(fragment, " \t\r\n")
	}
	if strings.Contains(lowerPartial, "<body") {
		fragment = leadingBodyOpenRe.ReplaceAllString(fragment, "")
		fragment = strings.TrimLeft(fragment, " \t\r\n")
	}

	merged := partial + fragment

	// Normalize the document closers: drop every occurrence, then close
	// once at the end. Duplicate or misplaced closers from either side
	// collapse into the single canonical pair.
	merged = bodyCloseRe.ReplaceAllString(merged, "")
	merged = htmlCloseRe.ReplaceAllString(merged, "")
	merged = strings.TrimRight(merged, " \t\r\n")

	return merged + "\n</body>\n</html>"
}
