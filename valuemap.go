package tempearly

// valueMapEntry is one hash bucket slot, keeping the original key Value
// (not its stringified form) alongside the stored value.
type valueMapEntry struct {
	hash  uint64
	key   *Value
	value *Value
}

// ValueMap is Map's backing store (C7): a hash-bucketed, insertion-
// ordered key/value table keyed by Hash/Equal dispatch instead of
// Stringify, so keys of any type (not just strings) compare and hash
// the way the language's own equality does (original_source/src/api/map.cc's
// MapObject/Entry design).
type ValueMap struct {
	buckets map[uint64][]*valueMapEntry
	order   []*valueMapEntry
}

// NewValueMap returns an empty ValueMap.
func NewValueMap() *ValueMap {
	return &ValueMap{buckets: make(map[uint64][]*valueMapEntry)}
}

// find locates the entry matching key, resolving hash collisions with
// Equal dispatch.
func (m *ValueMap) find(i *Interpreter, key *Value) (*valueMapEntry, uint64, error) {
	h, err := i.Hash(key)
	if err != nil {
		return nil, 0, err
	}
	for _, e := range m.buckets[h] {
		eq, err := i.Equal(e.key, key)
		if err != nil {
			return nil, 0, err
		}
		if eq {
			return e, h, nil
		}
	}
	return nil, h, nil
}

// Get returns the value stored under key, if any.
func (m *ValueMap) Get(i *Interpreter, key *Value) (*Value, bool, error) {
	e, _, err := m.find(i, key)
	if err != nil {
		return nil, false, err
	}
	if e == nil {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores value under key, replacing any existing entry without
// disturbing its insertion position.
func (m *ValueMap) Set(i *Interpreter, key, value *Value) error {
	e, h, err := m.find(i, key)
	if err != nil {
		return err
	}
	if e != nil {
		e.value = value
		return nil
	}
	e = &valueMapEntry{hash: h, key: key, value: value}
	m.buckets[h] = append(m.buckets[h], e)
	m.order = append(m.order, e)
	return nil
}

// Delete removes the entry stored under key, reporting whether one was
// found.
func (m *ValueMap) Delete(i *Interpreter, key *Value) (bool, error) {
	e, h, err := m.find(i, key)
	if err != nil {
		return false, err
	}
	if e == nil {
		return false, nil
	}
	bucket := m.buckets[h]
	for idx, be := range bucket {
		if be == e {
			m.buckets[h] = append(bucket[:idx], bucket[idx+1:]...)
			break
		}
	}
	for idx, oe := range m.order {
		if oe == e {
			m.order = append(m.order[:idx], m.order[idx+1:]...)
			break
		}
	}
	return true, nil
}

// Clear removes every entry.
func (m *ValueMap) Clear() {
	m.buckets = make(map[uint64][]*valueMapEntry)
	m.order = nil
}

// Len returns the number of entries.
func (m *ValueMap) Len() int { return len(m.order) }

// Each walks entries in insertion order; visit returning false stops
// iteration early.
func (m *ValueMap) Each(visit func(key, value *Value) bool) {
	for _, e := range m.order {
		if !visit(e.key, e.value) {
			return
		}
	}
}

// Clone returns a shallow copy sharing no backing storage with m.
func (m *ValueMap) Clone() *ValueMap {
	out := NewValueMap()
	for _, e := range m.order {
		ne := &valueMapEntry{hash: e.hash, key: e.key, value: e.value}
		out.buckets[ne.hash] = append(out.buckets[ne.hash], ne)
		out.order = append(out.order, ne)
	}
	return out
}
