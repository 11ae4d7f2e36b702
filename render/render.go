// Package render implements the diff-friendly screen painter of
// spec.md §4.8: it redraws the prompt prefix, the buffer's text, the cursor,
// and an optional suggestion menu using only the minimal escape-sequence
// contract petermattis-prompt/screen.go documents (relative cursor motion,
// home, erase-line-to-right, erase-screen). The wrapping algorithm and
// cursor-diffing strategy are generalized from screen.go's
// renderText/moveCursor pair to read from an external document.Document
// rather than an internal mutable rune buffer, since buffer.Buffer now owns
// the text.
package render

import (
	"bytes"
	"strconv"

	"github.com/go-replkit/replkit/completion"
	"github.com/go-replkit/replkit/document"
	"github.com/go-replkit/replkit/runeutil"
)

// Renderer paints a prompt prefix, the current document, and an optional
// suggestion menu to a terminal, tracking what it previously drew so it can
// redraw with a minimal escape sequence diff.
type Renderer struct {
	width, height int

	// cursorX, cursorY track the terminal's actual cursor position as of the
	// end of the last Render, used to compute relative motion on the next
	// Render.
	cursorX, cursorY int
	// maxY is the highest row index touched by the last render, used to erase
	// stale trailing lines when a render produces fewer rows than before.
	maxY int

	lastFrame Frame
	outbuf    bytes.Buffer
}

// New constructs a Renderer for a terminal of the given size. Call SetSize on
// resize.
func New(width, height int) *Renderer {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return &Renderer{width: width, height: height}
}

// SetSize updates the renderer's known terminal dimensions.
func (r *Renderer) SetSize(width, height int) {
	if width <= 0 {
		width = 1
	}
	r.width, r.height = width, height
}

// Frame is a snapshot of what the last Render call painted: the prefix, the
// document text and cursor, and the menu state if any. It exists so an
// external golden-snapshot tool can diff renders without re-deriving this
// information from the raw escape-sequence bytes Render returns; Renderer
// itself never reads a Frame back, so field order here is free to stay
// stable across releases.
type Frame struct {
	Prefix       string
	Text         string
	CursorOffset int
	Menu         *Menu
}

// LastFrame returns the Frame describing the most recent Render call, or the
// zero Frame if Render has never been called.
func (r *Renderer) LastFrame() Frame { return r.lastFrame }

// Menu describes the suggestion popup rendered below the input line.
type Menu struct {
	Suggestions []completion.Suggestion
	Selected    int // index into Suggestions, or -1 for none selected
	MaxRows     int // 0 means unbounded (clamped to the terminal height)
}

// Render repaints prefix+text+cursor and, if menu is non-nil, a suggestion
// list below it. It returns the bytes to write to the terminal; callers pass
// them to an io.Writer (e.g. a terminal.Output's WriteText, or a pty/file for
// tests).
func (r *Renderer) Render(prefix string, doc document.Document, menu *Menu) []byte {
	r.outbuf.Reset()

	// Return the cursor to the top-left of the previously rendered region so
	// the redraw always starts from a known position.
	r.moveCursor(0, 0)
	r.outbuf.WriteString("\r")

	text := prefix + doc.Text()
	cursorOffset := runeutil.RuneCount(prefix) + doc.CursorPosition()

	rows := wrapRows(text, r.width)
	rowsUsed := r.writeRows(rows)

	menuRows := 0
	if menu != nil && len(menu.Suggestions) > 0 {
		menuRows = r.writeMenu(menu)
	}

	totalRows := rowsUsed + menuRows
	bottom := totalRows - 1
	for y := totalRows; y <= r.maxY; y++ {
		r.outbuf.WriteString("\r\n")
		r.outbuf.WriteString(eraseLineToRight)
		bottom = y
	}
	if totalRows > 0 {
		r.maxY = totalRows - 1
	} else {
		r.maxY = 0
	}

	// Move from wherever writeRows/writeMenu left the cursor (the bottom of
	// the rendered region) back up to the text cursor's row.
	r.outbuf.WriteString("\r")
	r.cursorX, r.cursorY = 0, bottom
	cursorRow, cursorCol := cellForOffset(rows, cursorOffset)
	r.moveCursor(cursorCol, cursorRow)

	r.lastFrame = Frame{
		Prefix:       prefix,
		Text:         doc.Text(),
		CursorOffset: doc.CursorPosition(),
		Menu:         menu,
	}

	return append([]byte(nil), r.outbuf.Bytes()...)
}

// writeRows emits the wrapped rows of text, erasing to end of line after
// each, and returns the number of terminal rows they occupy.
func (r *Renderer) writeRows(rows []row) int {
	for i, row := range rows {
		if i > 0 {
			r.outbuf.WriteString("\r\n")
		}
		r.outbuf.WriteString(row.text)
		r.outbuf.WriteString(eraseLineToRight)
	}
	return len(rows)
}

func (r *Renderer) writeMenu(menu *Menu) int {
	max := menu.MaxRows
	if max <= 0 || max > len(menu.Suggestions) {
		max = len(menu.Suggestions)
	}
	if max > r.height {
		max = r.height
	}
	for i := 0; i < max; i++ {
		r.outbuf.WriteString("\r\n")
		s := menu.Suggestions[i]
		line := s.Text
		if s.Description != "" {
			line += "  " + s.Description
		}
		if i == menu.Selected {
			r.outbuf.WriteString(selectedAttr)
			r.outbuf.WriteString(line)
			r.outbuf.WriteString(resetAttr)
		} else {
			r.outbuf.WriteString(line)
		}
		r.outbuf.WriteString(eraseLineToRight)
	}
	return max
}

const (
	eraseLineToRight = "\x1b[K"
	selectedAttr     = "\x1b[7m"
	resetAttr        = "\x1b[0m"
)

// moveCursor emits a minimal relative-motion sequence from the renderer's
// last known cursor position to (x, y), mirroring
// petermattis-prompt/screen.go's screen.moveCursor.
func (r *Renderer) moveCursor(x, y int) {
	switch {
	case y < r.cursorY:
		writeRel(&r.outbuf, r.cursorY-y, "A")
	case y > r.cursorY:
		writeRel(&r.outbuf, y-r.cursorY, "B")
	}
	switch {
	case x < r.cursorX:
		writeRel(&r.outbuf, r.cursorX-x, "D")
	case x > r.cursorX:
		writeRel(&r.outbuf, x-r.cursorX, "C")
	}
	r.cursorX, r.cursorY = x, y
}

func writeRel(buf *bytes.Buffer, n int, suffix string) {
	if n <= 0 {
		return
	}
	buf.WriteString("\x1b[")
	if n > 1 {
		buf.WriteString(strconv.Itoa(n))
	}
	buf.WriteString(suffix)
}

// row is one physical terminal row produced by wrapRows: text is what gets
// written, and runesConsumed is how many runes of the original input string
// this row accounts for (including a trailing '\n' that caused the row
// break, which is itself not part of text).
type row struct {
	text          string
	runesConsumed int
}

// wrapRows splits text on '\n' and further wraps each resulting line so no
// rendered row exceeds width display columns, matching
// petermattis-prompt/screen.go's fitGraphemes wrapping behavior. The
// returned rows' runesConsumed values sum to runeutil.RuneCount(text).
func wrapRows(text string, width int) []row {
	if width <= 0 {
		width = 1
	}
	runes := []rune(text)
	var out []row
	col := 0
	start := 0
	for i := 0; i <= len(runes); i++ {
		if i == len(runes) {
			out = append(out, row{text: string(runes[start:i]), runesConsumed: i - start})
			break
		}
		if runes[i] == '\n' {
			out = append(out, row{text: string(runes[start:i]), runesConsumed: i - start + 1})
			start = i + 1
			col = 0
			continue
		}
		w := runeutil.DisplayWidth(string(runes[i]))
		if col+w > width && col > 0 {
			out = append(out, row{text: string(runes[start:i]), runesConsumed: i - start})
			start = i
			col = 0
		}
		col += w
	}
	if len(out) == 0 {
		out = []row{{}}
	}
	return out
}

// cellForOffset finds the (rowIndex, col) of the rune at cursorOffset within
// the wrapped rows.
func cellForOffset(rows []row, cursorOffset int) (rowIndex, col int) {
	remaining := cursorOffset
	for i, rw := range rows {
		runes := []rune(rw.text)
		if remaining <= runeutil.RuneCount(rw.text) {
			c := 0
			n := remaining
			if n > len(runes) {
				n = len(runes)
			}
			for _, ch := range runes[:n] {
				c += runeutil.DisplayWidth(string(ch))
			}
			return i, c
		}
		remaining -= rw.runesConsumed
		if i == len(rows)-1 {
			c := 0
			for _, ch := range runes {
				c += runeutil.DisplayWidth(string(ch))
			}
			return i, c
		}
	}
	return 0, 0
}
