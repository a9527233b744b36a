// Package runes implements Tempearly's immutable Unicode string and
// byte-string primitives: rune-indexed, hash-cached, reference-shared
// on slice. It is the C1 layer the rest of the interpreter builds on.
package runes

import (
	"strings"
	"unicode/utf8"
)

// replacementRune is substituted for any byte sequence that doesn't decode
// to a valid UTF-8 rune, per the legacy 1-6 byte decoder below.
const replacementRune = utf8.RuneError

// String is an immutable, reference-shared sequence of runes with a
// lazily computed, cached hash. Slicing shares the backing array; no
// operation here ever mutates runes in place.
type String struct {
	runes []rune
	hash  uint64
	hashd bool
}

// Empty is the canonical zero-length String.
var Empty = String{}

// New builds a String from native Go text, decoding with the permissive
// legacy decoder (see Decode).
func New(s string) String {
	return String{runes: Decode(s)}
}

// FromRunes wraps an existing rune slice without copying. Callers must
// not mutate the slice afterward; the standard way to obtain one safely
// is via Slice, Concat or New.
func FromRunes(rs []rune) String {
	return String{runes: rs}
}

// Decode implements a permissive legacy UTF-8 decoder: it accepts 1-6 byte
// sequences (pre-RFC3629 UTF-8 allowed sequences up to U+7FFFFFFF) and
// substitutes U+FFFD for anything that doesn't decode cleanly, always
// consuming at least one byte so decoding terminates.
func Decode(s string) []rune {
	out := make([]rune, 0, len(s))
	b := []byte(s)
	for i := 0; i < len(b); {
		r, size := decodeRuneLegacy(b[i:])
		out = append(out, r)
		i += size
	}
	return out
}

// decodeRuneLegacy decodes a single rune from the front of b using a
// 1-6 byte continuation scheme. Invalid leading/continuation bytes
// yield (U+FFFD, 1) so the caller always advances.
func decodeRuneLegacy(b []byte) (rune, int) {
	if len(b) == 0 {
		return replacementRune, 0
	}
	c0 := b[0]
	switch {
	case c0 < 0x80:
		return rune(c0), 1
	case c0&0xE0 == 0xC0:
		return decodeN(b, 2, 0x1F)
	case c0&0xF0 == 0xE0:
		return decodeN(b, 3, 0x0F)
	case c0&0xF8 == 0xF0:
		return decodeN(b, 4, 0x07)
	case c0&0xFC == 0xF8:
		return decodeN(b, 5, 0x03)
	case c0&0xFE == 0xFC:
		return decodeN(b, 6, 0x01)
	default:
		return replacementRune, 1
	}
}

func decodeN(b []byte, n int, mask byte) (rune, int) {
	if len(b) < n {
		return replacementRune, 1
	}
	r := rune(b[0] & mask)
	for i := 1; i < n; i++ {
		c := b[i]
		if c&0xC0 != 0x80 {
			return replacementRune, 1
		}
		r = r<<6 | rune(c&0x3F)
	}
	return r, n
}

// Encode produces the UTF-8 encoded form of s, silently skipping any
// rune that would encode to a surrogate, a noncharacter, or a value
// above U+10FFFF.
func (s String) Encode() string {
	var b strings.Builder
	b.Grow(len(s.runes))
	for _, r := range s.runes {
		if !encodable(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func encodable(r rune) bool {
	if r < 0 || r > 0x10FFFF {
		return false
	}
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	if r >= 0xFDD0 && r <= 0xFDEF {
		return false
	}
	if r&0xFFFE == 0xFFFE {
		return false
	}
	return true
}

// Len returns the number of runes.
func (s String) Len() int { return len(s.runes) }

// At returns the rune at index i. Panics on out-of-range, mirroring
// slice semantics; callers that accept untrusted indices must bounds
// check first (the interpreter raises IndexError/KeyError there).
func (s String) At(i int) rune { return s.runes[i] }

// Slice returns the half-open range [i:j), sharing storage with s.
func (s String) Slice(i, j int) String {
	return String{runes: s.runes[i:j]}
}

// Runes exposes the underlying rune slice read-only; callers must not
// mutate it.
func (s String) Runes() []rune { return s.runes }

// Concat returns a new String holding s followed by other; this is the
// one operation guaranteed to copy rather than share.
func (s String) Concat(other String) String {
	out := make([]rune, 0, len(s.runes)+len(other.runes))
	out = append(out, s.runes...)
	out = append(out, other.runes...)
	return String{runes: out}
}

// Repeat concatenates s with itself n times (n <= 0 yields Empty).
func (s String) Repeat(n int) String {
	if n <= 0 {
		return Empty
	}
	out := make([]rune, 0, len(s.runes)*n)
	for i := 0; i < n; i++ {
		out = append(out, s.runes...)
	}
	return String{runes: out}
}

// hashRunes computes the djb2-style hash over a rune sequence.
func hashRunes(rs []rune) uint64 {
	var h uint64 = 5381
	for _, r := range rs {
		h = ((h << 5) + h) + uint64(r) // h*33 + r
	}
	return h
}

// Hash returns the cached djb2 hash, computing it on first use.
func (s *String) Hash() uint64 {
	if !s.hashd {
		s.hash = hashRunes(s.runes)
		s.hashd = true
	}
	return s.hash
}

// Equal compares rune-wise, short-circuiting on cached hash when both
// sides have already computed one.
func (s String) Equal(other String) bool {
	if s.hashd && other.hashd && s.hash != other.hash {
		return false
	}
	if len(s.runes) != len(other.runes) {
		return false
	}
	for i := range s.runes {
		if s.runes[i] != other.runes[i] {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or 1 per lexicographic rune comparison.
func (s String) Compare(other String) int {
	n := len(s.runes)
	if len(other.runes) < n {
		n = len(other.runes)
	}
	for i := 0; i < n; i++ {
		if s.runes[i] != other.runes[i] {
			if s.runes[i] < other.runes[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(s.runes) < len(other.runes):
		return -1
	case len(s.runes) > len(other.runes):
		return 1
	default:
		return 0
	}
}

// StartsWith reports whether s begins with prefix.
func (s String) StartsWith(prefix String) bool {
	if len(prefix.runes) > len(s.runes) {
		return false
	}
	return s.Slice(0, len(prefix.runes)).Equal(prefix)
}

// IndexOf returns the first rune-index of needle in s starting at
// from, or -1 if not found.
func (s String) IndexOf(needle String, from int) int {
	if from < 0 {
		from = 0
	}
	if len(needle.runes) == 0 {
		if from <= len(s.runes) {
			return from
		}
		return -1
	}
	for i := from; i+len(needle.runes) <= len(s.runes); i++ {
		if s.Slice(i, i+len(needle.runes)).Equal(needle) {
			return i
		}
	}
	return -1
}

// Trim removes leading and trailing runes present in cutset.
func (s String) Trim(cutset string) String {
	return New(strings.Trim(s.Encode(), cutset))
}

// Reverse returns s with its runes in the opposite order.
func (s String) Reverse() String {
	n := len(s.runes)
	out := make([]rune, n)
	for idx, r := range s.runes {
		out[n-1-idx] = r
	}
	return String{runes: out}
}

// Chomp removes a single trailing line ending (CRLF, LF or CR) if
// present.
func (s String) Chomp() String {
	n := len(s.runes)
	if n == 0 {
		return s
	}
	if n > 1 && s.runes[n-2] == '\r' && s.runes[n-1] == '\n' {
		return s.Slice(0, n-2)
	}
	if s.runes[n-1] == '\n' || s.runes[n-1] == '\r' {
		return s.Slice(0, n-1)
	}
	return s
}

// Chop removes the trailing rune, regardless of what it is.
func (s String) Chop() String {
	if len(s.runes) == 0 {
		return s
	}
	return s.Slice(0, len(s.runes)-1)
}

// String implements fmt.Stringer via the UTF-8 encoding, for debug
// output and %v formatting.
func (s String) String() string { return s.Encode() }
