// Package document implements the immutable text/cursor snapshot described
// in spec.md §3-4.4. Grounded on original_source/crates/prompt-core's
// Document type, cross-bred with petermattis-prompt/screen.go's word and
// line boundary math.
package document

import (
	"strings"
	"unicode"

	"github.com/go-replkit/replkit/key"
	"github.com/go-replkit/replkit/runeutil"
)

// Document is an immutable snapshot of a buffer's text, cursor, and last key
// stroke. All methods are pure queries; nothing on Document mutates it.
type Document struct {
	text          string
	cursorPos     int
	lastKeyStroke *key.Key
}

// New constructs a Document. cursorPos is a rune index and is clamped into
// [0, rune_count(text)].
func New(text string, cursorPos int, lastKeyStroke *key.Key) Document {
	n := runeutil.RuneCount(text)
	if cursorPos < 0 {
		cursorPos = 0
	}
	if cursorPos > n {
		cursorPos = n
	}
	return Document{text: text, cursorPos: cursorPos, lastKeyStroke: lastKeyStroke}
}

// Text returns the full text.
func (d Document) Text() string { return d.text }

// CursorPosition returns the rune index of the cursor.
func (d Document) CursorPosition() int { return d.cursorPos }

// LastKeyStroke returns the key that produced this document state, if any.
func (d Document) LastKeyStroke() (key.Key, bool) {
	if d.lastKeyStroke == nil {
		return key.NotDefined, false
	}
	return *d.lastKeyStroke, true
}

// TextBeforeCursor returns the text preceding the cursor.
func (d Document) TextBeforeCursor() string {
	return runeutil.RuneSlice(d.text, 0, d.cursorPos)
}

// TextAfterCursor returns the text following the cursor.
func (d Document) TextAfterCursor() string {
	n := runeutil.RuneCount(d.text)
	return runeutil.RuneSlice(d.text, d.cursorPos, n)
}

// CurrentLine returns the line (delimited by '\n') containing the cursor.
func (d Document) CurrentLine() string {
	before := d.TextBeforeCursor()
	after := d.TextAfterCursor()

	lineStart := strings.LastIndexByte(before, '\n') + 1
	lineEndRel := strings.IndexByte(after, '\n')

	line := before[lineStart:]
	if lineEndRel == -1 {
		line += after
	} else {
		line += after[:lineEndRel]
	}
	return line
}

// GetWordBeforeCursor returns the run of non-whitespace runes immediately
// preceding the cursor, stopping at the first whitespace rune scanning
// backward.
func (d Document) GetWordBeforeCursor() string {
	before := []rune(d.TextBeforeCursor())
	end := len(before)
	start := end
	for start > 0 && !unicode.IsSpace(before[start-1]) {
		start--
	}
	return string(before[start:end])
}

// GetWordAfterCursor returns the run of non-whitespace runes immediately
// following the cursor.
func (d Document) GetWordAfterCursor() string {
	after := []rune(d.TextAfterCursor())
	end := 0
	for end < len(after) && !unicode.IsSpace(after[end]) {
		end++
	}
	return string(after[:end])
}

// DisplayCursorPosition returns the terminal column of the cursor within the
// current line: the sum of display widths of the runes of the current line
// preceding the cursor.
func (d Document) DisplayCursorPosition() int {
	before := d.TextBeforeCursor()
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return runeutil.DisplayWidth(before[lineStart:])
}
