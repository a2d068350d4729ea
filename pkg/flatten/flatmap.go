package flatten

// Map is a flat key→value map that preserves first-insertion order, so field
// lists derived from a sample keep a stable ordering across runs.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap constructs an empty ordered flat map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores value under key. Re-setting an existing key keeps its original
// position.
func (m *Map) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len reports the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}
