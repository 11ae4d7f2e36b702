// Package runeutil provides Unicode-aware string operations used throughout
// replkit for rune-indexed cursor math and terminal display-width
// accounting. Byte indices are never assumed to equal rune indices.
package runeutil

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TabWidth is the display width assigned to a tab character. The original
// implementation leaves this undecided (spec Open Question); replkit treats
// it as caller-configurable with a conventional default.
var TabWidth = 8

// RuneCount returns the number of Unicode scalar values in s.
func RuneCount(s string) int {
	return len([]rune(s))
}

// DisplayWidth returns the terminal column width of s, using the East Asian
// Width property for wide/full characters, zero for combining marks and
// control characters, and TabWidth for tab characters.
func DisplayWidth(s string) int {
	width := 0
	for _, r := range s {
		switch {
		case r == '\t':
			width += TabWidth
		case r == '\n':
			// no width contribution; the renderer treats newline as a line break
		default:
			width += runewidth.RuneWidth(r)
		}
	}
	return width
}

// RuneSlice returns the substring spanning runes [a, b). It never splits a
// scalar and returns "" for any invalid or empty range.
func RuneSlice(s string, a, b int) string {
	if a >= b {
		return ""
	}
	runes := []rune(s)
	if a < 0 {
		a = 0
	}
	if b > len(runes) {
		b = len(runes)
	}
	if a >= b {
		return ""
	}
	return string(runes[a:b])
}

// CharAtRuneIndex returns the rune at index i, and false if i is out of
// range.
func CharAtRuneIndex(s string, i int) (rune, bool) {
	if i < 0 {
		return 0, false
	}
	for j, r := range s {
		_ = j
		if i == 0 {
			return r, true
		}
		i--
	}
	return 0, false
}

// ByteIndexFromRuneIndex converts a rune index into the corresponding byte
// offset within s. An out-of-range index returns len(s).
func ByteIndexFromRuneIndex(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	i := 0
	for byteIdx := range s {
		if i == runeIndex {
			return byteIdx
		}
		i++
	}
	return len(s)
}

// NextGraphemeEnd returns the rune index of the end of the grapheme cluster
// starting at pos, using Unicode text segmentation. This replaces the
// teacher's zero-width-rune heuristic (screen.go's NextGraphemeEnd) with a
// proper UAX #29 boundary. A pos at or past the end of s returns the rune
// count of s.
func NextGraphemeEnd(s string, pos int) int {
	runes := []rune(s)
	if pos >= len(runes) {
		return len(runes)
	}
	remainder := string(runes[pos:])
	gr := uniseg.NewGraphemes(remainder)
	if !gr.Next() {
		return pos
	}
	return pos + len([]rune(gr.Str()))
}

// PrevGraphemeStart returns the rune index of the start of the grapheme
// cluster ending at pos.
func PrevGraphemeStart(s string, pos int) int {
	runes := []rune(s)
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	head := string(runes[:pos])

	lastStart := 0
	runeOffset := 0
	gr := uniseg.NewGraphemes(head)
	for gr.Next() {
		lastStart = runeOffset
		runeOffset += len([]rune(gr.Str()))
	}
	return lastStart
}
