package tempearly

// OrderedMap is the insertion-ordered string-keyed map backbone used
// by Class/Instance attribute storage (the in-language Map built-in
// uses ValueMap instead): iteration order is always insertion order.
// Grounded on the json package's Pair-slice object representation
// (json/json.go), generalized with an index for O(1) lookup since
// Class/Instance attribute access is on the hot path of every method
// call, where json.Value's linear Key scan would be too slow.
type OrderedMap struct {
	keys  []string
	vals  []*Value
	index map[string]int
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{index: make(map[string]int)}
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap) Get(key string) (*Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

// Set inserts or updates key. An update keeps the key's original
// position; a fresh key is appended, preserving insertion order.
func (m *OrderedMap) Set(key string, v *Value) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = v
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
}

// Delete removes key, shifting later entries down to keep indices and
// order consistent.
func (m *OrderedMap) Delete(key string) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	delete(m.index, key)
	for k, idx := range m.index {
		if idx > i {
			m.index[k] = idx - 1
		}
	}
	return true
}

func (m *OrderedMap) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The caller must not mutate
// the returned slice.
func (m *OrderedMap) Keys() []string { return m.keys }

// Each calls fn for every entry in insertion order; fn returning false
// stops iteration early.
func (m *OrderedMap) Each(fn func(key string, v *Value) bool) {
	for i, k := range m.keys {
		if !fn(k, m.vals[i]) {
			return
		}
	}
}

// Clone makes a shallow copy (same *Value pointers, independent
// backing slices/index).
func (m *OrderedMap) Clone() *OrderedMap {
	c := NewOrderedMap()
	for i, k := range m.keys {
		c.Set(k, m.vals[i])
	}
	return c
}
