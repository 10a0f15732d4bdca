package render

import (
	"fmt"
	"strings"
)

// htmlEncoder neutralizes the HTML-significant characters. Replacer scans
// left to right in a single pass, so entities introduced for one character
// are never re-encoded for another; listing '&' first documents the order
// dependency all the same.
var htmlEncoder = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// jsonEscape applies JSON string-escaping rules to s, producing the form
// that would appear between quotes in a JSON document.
func jsonEscape(s string) string {
	if !needsJSONEscape(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func needsJSONEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' || s[i] < 0x20 {
			return true
		}
	}
	return false
}

// escape makes s safe to embed in HTML text or attribute content: JSON
// string-escaping first, then HTML entity encoding. The order matters; run
// the other way, the backslashes introduced by JSON escaping could split
// entities apart.
func escape(s string) string {
	return htmlEncoder.Replace(jsonEscape(s))
}
