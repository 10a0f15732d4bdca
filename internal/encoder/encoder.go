// Package encoder rewrites raw JSON text so that numeric literals survive
// standard parsing without losing precision. Each number that appears as an
// actual JSON value (not inside a string literal) is wrapped as a string
// prefixed with a marker rune; the renderer strips the marker and presents
// the original digit sequence.
package encoder

import (
	"regexp"
	"strings"
)

// Marker is the zero width rune used to tag a JSON string as a preserved
// number. Occurrences already present in the input are doubled so the
// renderer can tell an injected tag from document content.
const Marker = "\u200b"

// numberPattern matches the standard JSON number grammar: optional minus,
// integer part with no leading zero (unless exactly 0), optional fraction,
// optional exponent.
var numberPattern = regexp.MustCompile(`-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`)

// exactNumber anchors numberPattern to a whole string.
var exactNumber = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?$`)

// IsNumberLiteral reports whether s is exactly a JSON number literal. No
// surrounding whitespace, no empty string, no hex.
func IsNumberLiteral(s string) bool {
	return s != "" && exactNumber.MatchString(s)
}

// scanState carries the quote-parity scan between successive number matches
// so the text is only ever walked once per Encode call.
type scanState struct {
	// offset is the index up to which the text has been scanned.
	offset int
	// inString is true when offset lies inside an unterminated string
	// literal.
	inString bool
	// slashes counts the consecutive backslashes immediately before offset.
	// An odd count means the next quote is escaped and does not toggle
	// inString.
	slashes int
}

// advance walks text from s.offset up to (not including) to, toggling
// inString on each unescaped double quote. It is a pure step function: the
// input state is not modified.
func (s scanState) advance(text string, to int) scanState {
	for i := s.offset; i < to; i++ {
		switch text[i] {
		case '\\':
			s.slashes++
		case '"':
			if s.slashes%2 == 0 {
				s.inString = !s.inString
			}
			s.slashes = 0
		default:
			s.slashes = 0
		}
	}
	s.offset = to
	return s
}

// skip moves the scan past a number match. Number literals contain no quotes
// or backslashes, so parity is unaffected.
func (s scanState) skip(to int) scanState {
	s.offset = to
	s.slashes = 0
	return s
}

// Encode returns raw rewritten so that a standard JSON parser preserves
// every numeric literal's digit sequence. Markers already present in the
// input are doubled first; numbers found outside string literals are then
// wrapped as marker-prefixed strings. Numbers inside string literals are
// left untouched. Malformed input passes through mostly unchanged and will
// surface as a parse error downstream.
func Encode(raw string) string {
	text := strings.ReplaceAll(raw, Marker, Marker+Marker)

	matches := numberPattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(matches)*(len(Marker)+2))

	st := scanState{}
	emitted := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		st = st.advance(text, start)
		b.WriteString(text[emitted:start])
		if st.inString {
			b.WriteString(text[start:end])
		} else {
			b.WriteByte('"')
			b.WriteString(Marker)
			b.WriteString(text[start:end])
			b.WriteByte('"')
		}
		st = st.skip(end)
		emitted = end
	}
	b.WriteString(text[emitted:])
	return b.String()
}
