package runes

// ByteString is an immutable ordered sequence of bytes, used for the
// Binary value case (raw file contents, request bodies, and the like)
// where rune-level semantics don't apply.
type ByteString struct {
	b []byte
}

// NewBytes builds a ByteString by copying b so the caller's backing
// array can be reused/mutated freely afterward.
func NewBytes(b []byte) ByteString {
	cp := make([]byte, len(b))
	copy(cp, b)
	return ByteString{b: cp}
}

// Bytes exposes the underlying bytes read-only.
func (b ByteString) Bytes() []byte { return b.b }

// Len returns the byte length.
func (b ByteString) Len() int { return len(b.b) }

// Equal compares byte-wise.
func (b ByteString) Equal(other ByteString) bool {
	if len(b.b) != len(other.b) {
		return false
	}
	for i := range b.b {
		if b.b[i] != other.b[i] {
			return false
		}
	}
	return true
}

// Concat returns a new ByteString holding b followed by other.
func (b ByteString) Concat(other ByteString) ByteString {
	out := make([]byte, 0, len(b.b)+len(other.b))
	out = append(out, b.b...)
	out = append(out, other.b...)
	return ByteString{b: out}
}

// Hash folds the bytes with the same djb2 recurrence used for String.
func (b ByteString) Hash() uint64 {
	var h uint64 = 5381
	for _, c := range b.b {
		h = ((h << 5) + h) + uint64(c)
	}
	return h
}

// String renders the bytes as Latin-1-ish text for debugging; it is not
// used for the in-language __str__ contract (Binary has no implicit
// text decoding per the object model).
func (b ByteString) String() string { return string(b.b) }
