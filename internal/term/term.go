// Package term renders a parsed JSON value tree as ANSI-colorized text for
// terminal output. Ordering and number preservation match the HTML
// renderer; there are no collapse affordances.
package term

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/mcncl/jsonview/internal/encoder"
	"github.com/mcncl/jsonview/internal/models"
)

// Renderer holds the color configuration for terminal output. The zero
// value is not usable; construct with NewRenderer.
type Renderer struct {
	Indent string

	Key  *color.Color
	Str  *color.Color
	Num  *color.Color
	Bool *color.Color
	Null *color.Color
}

// NewRenderer returns a Renderer with the default palette.
func NewRenderer() *Renderer {
	return &Renderer{
		Indent: "  ",
		Key:    color.New(color.FgBlue, color.Bold),
		Str:    color.New(color.FgGreen),
		Num:    color.New(color.FgCyan),
		Bool:   color.New(color.FgRed),
		Null:   color.New(color.FgRed),
	}
}

// Render returns the colorized, indented text form of v.
func (r *Renderer) Render(v models.Value) string {
	var b strings.Builder
	r.write(&b, v, 0)
	return b.String()
}

func (r *Renderer) write(b *strings.Builder, v models.Value, depth int) {
	switch val := v.(type) {
	case nil:
		b.WriteString(r.Null.Sprint("null"))
	case bool:
		b.WriteString(r.Bool.Sprint(strconv.FormatBool(val)))
	case json.Number:
		b.WriteString(r.Num.Sprint(val.String()))
	case string:
		r.writeString(b, val)
	case models.Array:
		r.writeArray(b, val, depth)
	case models.Object:
		r.writeObject(b, val, depth)
	}
}

func (r *Renderer) writeString(b *strings.Builder, s string) {
	if rest, ok := strings.CutPrefix(s, encoder.Marker); ok && encoder.IsNumberLiteral(rest) {
		b.WriteString(r.Num.Sprint(rest))
		return
	}
	s = strings.ReplaceAll(s, encoder.Marker+encoder.Marker, encoder.Marker)
	b.WriteString(r.Str.Sprint(quote(s)))
}

func (r *Renderer) writeArray(b *strings.Builder, arr models.Array, depth int) {
	if len(arr) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteString("[\n")
	for i, elem := range arr {
		r.indent(b, depth+1)
		r.write(b, elem, depth+1)
		if i < len(arr)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	r.indent(b, depth)
	b.WriteByte(']')
}

func (r *Renderer) writeObject(b *strings.Builder, obj models.Object, depth int) {
	if len(obj) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for i, m := range obj {
		r.indent(b, depth+1)
		b.WriteString(r.Key.Sprint(quote(m.Key)))
		b.WriteString(": ")
		r.write(b, m.Value, depth+1)
		if i < len(obj)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	r.indent(b, depth)
	b.WriteByte('}')
}

func (r *Renderer) indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(r.Indent)
	}
}

// quote produces a JSON-style quoted form of s. Terminal output has no
// markup to protect, so strconv's escaping is close enough.
func quote(s string) string {
	return strconv.Quote(s)
}
