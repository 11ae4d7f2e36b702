// Package buffer implements the mutable editor state described in
// spec.md §3-4.4: multiple working lines, a rune cursor, a preferred column
// for vertical motion, and a lazily rebuilt cached Document. Grounded on
// original_source/crates/prompt-core/src/buffer.rs's working-lines/cache
// model, with the growable-rune-slice insertion strategy from
// petermattis-prompt/screen.go's Insert/EraseTo.
package buffer

import (
	"errors"
	"fmt"

	"github.com/go-replkit/replkit/document"
	"github.com/go-replkit/replkit/key"
	"github.com/go-replkit/replkit/runeutil"
)

// ErrInvalidWorkingIndex is returned by SetWorkingIndex when the requested
// index is out of range.
var ErrInvalidWorkingIndex = errors.New("buffer: invalid working index")

// InvalidWorkingIndexError carries the offending index and the permitted
// maximum, per spec.md §8.
type InvalidWorkingIndexError struct {
	Index int
	Max   int
}

func (e *InvalidWorkingIndexError) Error() string {
	return fmt.Sprintf("invalid working index %d (max %d)", e.Index, e.Max)
}

func (e *InvalidWorkingIndexError) Unwrap() error { return ErrInvalidWorkingIndex }

// Buffer is the mutable editor state. The zero value is not directly usable;
// construct with New.
type Buffer struct {
	workingLines  []string
	workingIndex  int
	cursorPos     int
	preferredCol  *int
	lastKeyStroke *key.Key

	cached      document.Document
	cacheValid  bool
}

// New returns an empty Buffer: one empty working line, cursor at 0.
func New() *Buffer {
	return &Buffer{workingLines: []string{""}}
}

// Text returns the text of the current working line.
func (b *Buffer) Text() string { return b.workingLines[b.workingIndex] }

// CursorPosition returns the rune index of the cursor within the current
// line.
func (b *Buffer) CursorPosition() int { return b.cursorPos }

// WorkingIndex returns the index of the active working line.
func (b *Buffer) WorkingIndex() int { return b.workingIndex }

// WorkingLineCount returns the number of working lines.
func (b *Buffer) WorkingLineCount() int { return len(b.workingLines) }

// PreferredColumn returns the remembered rune column for vertical motion, if
// one is set.
func (b *Buffer) PreferredColumn() (int, bool) {
	if b.preferredCol == nil {
		return 0, false
	}
	return *b.preferredCol, true
}

// SetText replaces the current working line's text, clamping the cursor
// into the new bounds.
func (b *Buffer) SetText(text string) {
	b.workingLines[b.workingIndex] = text
	if n := runeutil.RuneCount(text); b.cursorPos > n {
		b.cursorPos = n
	}
	b.invalidate()
}

// SetCursorPosition moves the cursor to position, clamped to
// [0, rune_count(text)].
func (b *Buffer) SetCursorPosition(position int) {
	n := runeutil.RuneCount(b.Text())
	if position < 0 {
		position = 0
	}
	if position > n {
		position = n
	}
	b.cursorPos = position
	b.invalidate()
}

// SetLastKeyStroke records the key that produced the current state, used by
// Document.LastKeyStroke for context-aware key handling (e.g. tab-repeat
// completion cycling).
func (b *Buffer) SetLastKeyStroke(k key.Key) {
	b.lastKeyStroke = &k
	b.invalidate()
}

// InsertText inserts text at the cursor. If overwrite is true, a matching
// rune count is deleted starting at the cursor first. If moveCursor is
// true, the cursor advances past the inserted text.
func (b *Buffer) InsertText(text string, overwrite, moveCursor bool) {
	if text == "" {
		return
	}
	cur := []rune(b.Text())
	inserted := []rune(text)

	if overwrite {
		end := b.cursorPos + len(inserted)
		if end > len(cur) {
			end = len(cur)
		}
		cur = append(cur[:b.cursorPos], cur[end:]...)
	}

	merged := make([]rune, 0, len(cur)+len(inserted))
	merged = append(merged, cur[:b.cursorPos]...)
	merged = append(merged, inserted...)
	merged = append(merged, cur[b.cursorPos:]...)

	b.workingLines[b.workingIndex] = string(merged)
	if moveCursor {
		b.cursorPos += len(inserted)
	}
	b.preferredCol = nil
	b.invalidate()
}

// DeleteBeforeCursor removes at most n runes to the left of the cursor,
// moving the cursor left by however many were actually removed. Returns the
// removed text.
func (b *Buffer) DeleteBeforeCursor(n int) string {
	if n <= 0 {
		return ""
	}
	start := b.cursorPos - n
	if start < 0 {
		start = 0
	}
	cur := []rune(b.Text())
	removed := string(cur[start:b.cursorPos])
	cur = append(cur[:start], cur[b.cursorPos:]...)
	b.workingLines[b.workingIndex] = string(cur)
	b.cursorPos = start
	b.preferredCol = nil
	b.invalidate()
	return removed
}

// DeleteAfterCursor removes at most n runes to the right of the cursor.
// Returns the removed text.
func (b *Buffer) DeleteAfterCursor(n int) string {
	if n <= 0 {
		return ""
	}
	cur := []rune(b.Text())
	end := b.cursorPos + n
	if end > len(cur) {
		end = len(cur)
	}
	removed := string(cur[b.cursorPos:end])
	cur = append(cur[:b.cursorPos], cur[end:]...)
	b.workingLines[b.workingIndex] = string(cur)
	b.preferredCol = nil
	b.invalidate()
	return removed
}

// CursorLeft moves the cursor left by up to n runes, clamping at 0.
func (b *Buffer) CursorLeft(n int) {
	pos := b.cursorPos - n
	if pos < 0 {
		pos = 0
	}
	b.cursorPos = pos
	b.preferredCol = nil
	b.invalidate()
}

// CursorRight moves the cursor right by up to n runes, clamping at the end
// of text.
func (b *Buffer) CursorRight(n int) {
	max := runeutil.RuneCount(b.Text())
	pos := b.cursorPos + n
	if pos > max {
		pos = max
	}
	b.cursorPos = pos
	b.preferredCol = nil
	b.invalidate()
}

// AddWorkingLine appends a new working line. If switchTo is true, it becomes
// the active line, the cursor resets to 0, and the preferred column is
// cleared. This is the multi-line-editing / history-like swap mechanism
// spec.md §3 describes for working_lines; persisting entries across process
// runs is explicitly out of scope (spec.md §1 Non-goals: "Not a history
// store").
func (b *Buffer) AddWorkingLine(line string, switchTo bool) {
	b.workingLines = append(b.workingLines, line)
	if switchTo {
		b.workingIndex = len(b.workingLines) - 1
		b.cursorPos = 0
		b.preferredCol = nil
	}
	b.invalidate()
}

// SetWorkingIndex switches the active working line, resetting the cursor to
// 0. Returns InvalidWorkingIndexError if index is out of range.
func (b *Buffer) SetWorkingIndex(index int) error {
	if index < 0 || index >= len(b.workingLines) {
		return &InvalidWorkingIndexError{Index: index, Max: len(b.workingLines) - 1}
	}
	b.workingIndex = index
	b.cursorPos = 0
	// last_key_stroke is deliberately left unchanged across line switches;
	// spec.md §9 Open Questions leaves this undecided and we preserve it.
	b.invalidate()
	return nil
}

// Document returns the cached Document consistent with the buffer's current
// state, rebuilding it only if the cache was invalidated by a prior
// mutator.
func (b *Buffer) Document() document.Document {
	if !b.cacheValid {
		b.cached = document.New(b.Text(), b.cursorPos, b.lastKeyStroke)
		b.cacheValid = true
	}
	return b.cached
}

// DisplayCursorPosition is a convenience wrapper over Document().
func (b *Buffer) DisplayCursorPosition() int {
	return b.Document().DisplayCursorPosition()
}

// SetPreferredColumn remembers a rune column for consumers implementing
// vertical cursor motion across wrapped/multi-line text (spec.md §3); the
// Buffer itself has no notion of visual rows, so it only stores the value.
func (b *Buffer) SetPreferredColumn(col int) {
	b.preferredCol = &col
}

// ClearPreferredColumn forgets the remembered vertical-motion column.
func (b *Buffer) ClearPreferredColumn() {
	b.preferredCol = nil
}

func (b *Buffer) invalidate() {
	b.cacheValid = false
}
