package config

// OrderedMap is a string-to-string map that remembers insertion order, used
// for dynamic variables and constants where the spec's merge rules are
// defined in terms of "base entries first, then new entries appended".
type OrderedMap struct {
	keys   []string
	values map[string]string
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: map[string]string{}}
}

// Set inserts or overwrites key. Overwriting an existing key does not move
// it to the end.
func (m *OrderedMap) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// AsMap returns a plain map snapshot, discarding order. Used where a
// downstream consumer (value provider resolution) only needs name/value
// pairs.
func (m *OrderedMap) AsMap() map[string]string {
	out := make(map[string]string, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k]
	}
	return out
}

// Clone returns a deep copy.
func (m *OrderedMap) Clone() *OrderedMap {
	out := NewOrderedMap()
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

// Merge returns a new OrderedMap with base's entries first (in base's
// order), then other's entries layered on top: other's value wins on
// collision, and keys unique to other are appended after all of base's
// keys. This is the ordering the spec's override/import merge rules call
// for (§4.3).
func Merge(base, other *OrderedMap) *OrderedMap {
	out := base.Clone()
	if other == nil {
		return out
	}
	for _, k := range other.keys {
		out.Set(k, other.values[k])
	}
	return out
}
