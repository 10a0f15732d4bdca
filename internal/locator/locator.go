// Package locator turns a JSON parse failure into a diagnostic HTML view:
// the parser's message, normalized and escaped, plus the original text with
// the offending line and column highlighted when the message names one.
package locator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Location is the rendered error view. Line and Column are 1-based and zero
// when the parser's message carried no usable position.
type Location struct {
	// Message is the HTML-safe normalized parser message.
	Message string
	// Body is the HTML fragment holding the (possibly highlighted) text.
	Body string
	// Title is the plain-text normalized message, for the document shell.
	Title string

	Line   int
	Column int
}

// posPattern extracts the 1-based position a parser message names. When the
// message format changes this silently stops matching and the view degrades
// to unhighlighted text, which is the defined fallback.
var posPattern = regexp.MustCompile(`line (\d+) column (\d+)`)

// noise lists implementation-specific vocabulary stripped from parser
// messages before display.
var noise = strings.NewReplacer(
	"parsing: ", "",
	"JSON.parse: ", "",
	" of the JSON data", "",
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// Locate builds the error view for err against the original document text.
// NUL bytes are replaced with U+FFFD before any other processing.
func Locate(err error, original string) Location {
	original = strings.ReplaceAll(original, "\x00", "�")

	msg := normalize(err)
	loc := Location{
		Message: htmlEscaper.Replace(msg),
		Title:   msg,
	}

	m := posPattern.FindStringSubmatch(msg)
	if m == nil {
		loc.Body = htmlEscaper.Replace(original)
		return loc
	}

	// The pattern admits only digits, so these cannot fail.
	loc.Line, _ = strconv.Atoi(m[1])
	loc.Column, _ = strconv.Atoi(m[2])
	loc.Body = highlight(original, loc.Line, loc.Column)
	return loc
}

func normalize(err error) string {
	if err == nil {
		return "unknown error"
	}
	return noise.Replace(err.Error())
}

// highlight escapes text line by line, wrapping the target line in an
// errorline span and the single character at the target column in an
// errorcolumn span. Line terminators are preserved so the text re-renders
// faithfully.
func highlight(text string, line, col int) string {
	lines := strings.SplitAfter(text, "\n")

	var b strings.Builder
	b.Grow(len(text) + 64)
	for i, l := range lines {
		if i+1 != line {
			b.WriteString(htmlEscaper.Replace(l))
			continue
		}
		b.WriteString(`<span class="errorline">`)
		before, at, after := splitAtColumn(l, col)
		b.WriteString(htmlEscaper.Replace(before))
		if at != "" {
			b.WriteString(`<span class="errorcolumn">`)
			b.WriteString(htmlEscaper.Replace(at))
			b.WriteString(`</span>`)
		}
		b.WriteString(htmlEscaper.Replace(after))
		b.WriteString(`</span>`)
	}
	return b.String()
}

// splitAtColumn cuts one line into the text before the 1-based byte column,
// the full rune at it, and the rest. A column past the end of the line
// yields an empty middle.
func splitAtColumn(line string, col int) (before, at, after string) {
	i := col - 1
	if i < 0 {
		i = 0
	}
	if i >= len(line) {
		return line, "", ""
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return line[:i], line[i : i+size], line[i+size:]
}
