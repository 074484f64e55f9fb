package ingest

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// htmlToText flattens provider-supplied description HTML into plain text:
// tags dropped, the four basic entities unescaped, surrounding space trimmed.
// Provider APIs ship simple markup, so a full HTML parse is not warranted here;
// page-level extraction goes through internal/extract instead.
func htmlToText(html string) string {
	if html == "" {
		return ""
	}
	text := tagRe.ReplaceAllString(html, "")
	r := strings.NewReplacer("&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">")
	return strings.TrimSpace(r.Replace(text))
}
