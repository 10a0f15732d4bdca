// Package htmldoc wraps a rendered body fragment into a complete,
// self-contained HTML document with the viewer stylesheet and the
// collapse/expand script inlined.
package htmldoc

import (
	_ "embed"
	"strings"
)

//go:embed assets/jsonview.css
var stylesheet string

//go:embed assets/jsonview.js
var script string

var titleEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// Document builds a full HTML page around body. The title is HTML-escaped;
// the body fragment is inserted verbatim and must already be HTML-safe.
func Document(title, body string) string {
	if title == "" {
		title = "JSON Document"
	}

	var b strings.Builder
	b.Grow(len(body) + len(stylesheet) + len(script) + 256)
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(titleEscaper.Replace(title))
	b.WriteString("</title>\n<style>\n")
	b.WriteString(stylesheet)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n<script>\n")
	b.WriteString(script)
	b.WriteString("</script>\n</body>\n</html>\n")
	return b.String()
}
