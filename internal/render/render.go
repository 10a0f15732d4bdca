// Package render converts a parsed JSON value tree into an HTML fragment
// with collapsible arrays and objects, styled tokens per value kind, and
// per-property path expressions for copy-path affordances.
package render

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonview/internal/encoder"
	"github.com/mcncl/jsonview/internal/models"
)

// RootPath is the literal marker at the root of every path expression.
const RootPath = "json"

// bareName matches object keys that extend the path expression without
// quoting.
var bareName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$-]*$`)

// urlPattern matches absolute http, https and file URLs with no whitespace.
var urlPattern = regexp.MustCompile(`(?i)^(?:https?|file)://\S+$`)

// frame is one unit of pending output: either a literal HTML chunk or a
// value still to be rendered at a given path.
type frame struct {
	lit     string
	value   models.Value
	path    string
	isValue bool
}

// Render converts value into an HTML fragment. It is a pure function of its
// inputs and never fails; values outside the JSON kinds render as nothing.
// Traversal uses an explicit work list so arbitrarily deep documents cannot
// exhaust the call stack; output order is identical to a recursive descent.
func Render(value models.Value, path string) string {
	var b strings.Builder
	stack := []frame{{value: value, path: path, isValue: true}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f.isValue {
			b.WriteString(f.lit)
			continue
		}
		stack = renderValue(&b, stack, f.value, f.path)
	}
	return b.String()
}

// renderValue emits leaf values directly and expands composites onto the
// work list. It returns the (possibly grown) stack.
func renderValue(b *strings.Builder, stack []frame, value models.Value, path string) []frame {
	switch v := value.(type) {
	case nil:
		b.WriteString(`<span class="null">null</span>`)
	case bool:
		if v {
			b.WriteString(`<span class="bool">true</span>`)
		} else {
			b.WriteString(`<span class="bool">false</span>`)
		}
	case json.Number:
		writeNumber(b, v.String())
	case float64:
		writeNumber(b, strconv.FormatFloat(v, 'g', -1, 64))
	case int:
		writeNumber(b, strconv.Itoa(v))
	case int64:
		writeNumber(b, strconv.FormatInt(v, 10))
	case string:
		writeString(b, v)
	case models.Array:
		stack = expandArray(b, stack, v, path)
	case models.Object:
		stack = expandObject(b, stack, v, path)
	}
	return stack
}

func writeNumber(b *strings.Builder, lit string) {
	b.WriteString(`<span class="num">`)
	b.WriteString(lit)
	b.WriteString(`</span>`)
}

// writeString handles the three string shapes: a preserved number (marker
// prefix plus an exact JSON number literal) renders unquoted as a number;
// an absolute URL renders as a link; everything else is a quoted string.
// Doubled markers introduced by the encoder are collapsed back to one.
func writeString(b *strings.Builder, s string) {
	if rest, ok := strings.CutPrefix(s, encoder.Marker); ok && encoder.IsNumberLiteral(rest) {
		writeNumber(b, rest)
		return
	}

	s = strings.ReplaceAll(s, encoder.Marker+encoder.Marker, encoder.Marker)

	if urlPattern.MatchString(s) {
		href := escape(s)
		b.WriteString(`<a href="`)
		b.WriteString(href)
		b.WriteString(`"><span class="string">&quot;`)
		b.WriteString(href)
		b.WriteString(`&quot;</span></a>`)
		return
	}

	b.WriteString(`<span class="string">&quot;`)
	b.WriteString(escape(s))
	b.WriteString(`&quot;</span>`)
}

// expandArray emits the array opening and queues each element as a list
// item. Empty arrays render as a bare bracket pair with no collapsible
// wrapper.
func expandArray(b *strings.Builder, stack []frame, arr models.Array, path string) []frame {
	if len(arr) == 0 {
		b.WriteString(`<span class="array">[ ]</span>`)
		return stack
	}

	b.WriteString(`<span class="collapser"></span>[<ul class="array collapsible">`)

	ops := make([]frame, 0, len(arr)*3+1)
	for i, elem := range arr {
		ops = append(ops, frame{lit: `<li>`})
		ops = append(ops, frame{value: elem, path: path + "[" + strconv.Itoa(i) + "]", isValue: true})
		if i < len(arr)-1 {
			ops = append(ops, frame{lit: `,</li>`})
		} else {
			ops = append(ops, frame{lit: `</li>`})
		}
	}
	ops = append(ops, frame{lit: `</ul>]`})

	return pushReversed(stack, ops)
}

// expandObject emits the object opening and queues each member as a list
// item with its property label. Empty objects render as a bare brace pair.
func expandObject(b *strings.Builder, stack []frame, obj models.Object, path string) []frame {
	if len(obj) == 0 {
		b.WriteString(`<span class="obj">{ }</span>`)
		return stack
	}

	b.WriteString(`<span class="collapser"></span>{<ul class="obj collapsible">`)

	ops := make([]frame, 0, len(obj)*3+1)
	for i, m := range obj {
		childPath, label := propLabel(path, m.Key)
		ops = append(ops, frame{lit: `<li>` + label + `: `})
		ops = append(ops, frame{value: m.Value, path: childPath, isValue: true})
		if i < len(obj)-1 {
			ops = append(ops, frame{lit: `,</li>`})
		} else {
			ops = append(ops, frame{lit: `</li>`})
		}
	}
	ops = append(ops, frame{lit: `</ul>}`})

	return pushReversed(stack, ops)
}

// propLabel builds the label span for an object key and the path the value
// under it is rendered at. Bare identifier keys carry the extended path in
// the label's title attribute; any other key renders as a quoted label and
// the child keeps the parent path.
func propLabel(path, key string) (childPath, label string) {
	esc := escape(key)
	if bareName.MatchString(key) {
		childPath = path + "." + key
		label = `<span class="prop" title="` + htmlEncoder.Replace(childPath) + `">&quot;` + esc + `&quot;</span>`
		return childPath, label
	}
	return path, `<span class="prop quoted">&quot;` + esc + `&quot;</span>`
}

// pushReversed appends ops to the stack in reverse so they pop in forward
// order.
func pushReversed(stack, ops []frame) []frame {
	for i := len(ops) - 1; i >= 0; i-- {
		stack = append(stack, ops[i])
	}
	return stack
}
