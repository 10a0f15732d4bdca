package models

// Value is a generic type to represent any parsed JSON value.
// This can be a string, json.Number, boolean, nil, Object, or Array.
type Value interface{}

// Member is a single key/value pair inside an Object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object as an ordered sequence of members.
// A plain map would discard the document's key order, which the renderer
// must reproduce, so members are kept in insertion order.
type Object []Member

// Array represents a JSON array, which is a slice of Values.
type Array []Value

// Get returns the value for key and whether it was present.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the object's keys in document order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Document holds a parsed JSON document ready for rendering.
type Document struct {
	Root Value
}
