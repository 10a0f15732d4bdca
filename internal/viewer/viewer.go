// Package viewer runs the full pipeline for one document: number
// preservation, parse, and either the rendered tree or the error view. It
// is the single place where a parse failure is caught.
package viewer

import (
	"strings"

	"github.com/mcncl/jsonview/internal/encoder"
	"github.com/mcncl/jsonview/internal/locator"
	"github.com/mcncl/jsonview/internal/parser"
	"github.com/mcncl/jsonview/internal/render"
)

// Result is the outcome of processing one document. Body is always a
// renderable HTML fragment; parse failure is a Result, not an error.
type Result struct {
	Body  string
	Title string
	// Failed reports that the document did not parse and Body holds the
	// diagnostic view.
	Failed bool
}

// Process renders raw JSON text to an HTML fragment. On success the body is
// one json container holding the rendered tree; on failure it is one error
// container followed by one json container holding the highlighted source.
func Process(raw string) Result {
	encoded := encoder.Encode(raw)

	doc, err := parser.ParseString(encoded)
	if err == nil {
		return Result{
			Body: `<div id="json">` + render.Render(doc.Root, render.RootPath) + `</div>`,
		}
	}

	// The encoded text's offsets are shifted by marker doubling and the
	// quotes wrapped around numbers, so re-parse the original to get an
	// error positioned in original coordinates. If the original somehow
	// parses, fall back to the encoded-parse error as is.
	if _, rerr := parser.ParseString(raw); rerr != nil {
		err = rerr
	}

	loc := locator.Locate(err, raw)

	var b strings.Builder
	b.WriteString(`<div id="error">`)
	b.WriteString(loc.Message)
	b.WriteString(`</div><div id="json">`)
	b.WriteString(loc.Body)
	b.WriteString(`</div>`)

	return Result{Body: b.String(), Title: loc.Title, Failed: true}
}
