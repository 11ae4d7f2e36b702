// Package keyparser decodes a raw terminal byte stream into a lazy sequence
// of key.Event values. It is an incremental state machine grounded on
// petermattis-prompt/input.go's parseKey and restructured per spec.md §4.3
// around explicit Normal/Escape/CSI/OSC/DCS/BracketedPaste states so that
// partial escape sequences can be buffered across Feed calls.
package keyparser

import (
	"unicode/utf8"

	"github.com/go-replkit/replkit/key"
	"github.com/go-replkit/replkit/seqtable"
)

type state int

const (
	stateNormal state = iota
	stateEscape
	stateCSI
	stateOSC
	stateDCS
	statePaste
)

const (
	bel  = 0x07
	esc  = 0x1b
	bksp = 0x08
	del  = 0x7f
)

// Parser is an incremental decoder. It is not safe for concurrent use; a
// Prompt/input backend owns exactly one per input stream.
type Parser struct {
	table *seqtable.Table
	st    state
	// buf accumulates bytes of an in-progress sequence (everything from the
	// initial ESC onward, or the whole bracketed-paste run) across calls to
	// Feed.
	buf []byte
	// utf8buf accumulates bytes of an in-progress multi-byte UTF-8 scalar in
	// stateNormal.
	utf8buf []byte
}

// New constructs a Parser using the default sequence table.
func New() *Parser {
	return &Parser{table: seqtable.Default, st: stateNormal}
}

// NewWithTable constructs a Parser using the given sequence table. Outside
// package seqtable the only populated table available is seqtable.Default,
// since seqtable.New takes that package's unexported entry type.
func NewWithTable(t *seqtable.Table) *Parser {
	return &Parser{table: t, st: stateNormal}
}

// Reset clears all internal buffering and returns the parser to Normal
// state, discarding any partial sequence.
func (p *Parser) Reset() {
	p.st = stateNormal
	p.buf = p.buf[:0]
	p.utf8buf = p.utf8buf[:0]
}

// Feed drains as many complete events as possible from b, appended to the
// parser's own carry-over buffer from previous partial calls. Any leftover
// bytes that form an incomplete sequence remain buffered internally.
func (p *Parser) Feed(b []byte) []key.Event {
	var events []key.Event
	for _, c := range b {
		events = p.step(c, events)
	}
	return events
}

// Flush resolves any pending partial sequence using the bare-escape and
// incomplete-UTF8-drop rules, returning any terminal events. PosixBackend
// calls it only when its read loop ends with an error other than
// cancellation (such as end of input); it does not flush on a timer.
func (p *Parser) Flush() []key.Event {
	var events []key.Event

	switch p.st {
	case stateEscape:
		if len(p.buf) == 1 {
			// A bare ESC with nothing following: spec §4.3 bare-escape resolution.
			events = append(events, key.Event{Key: key.Escape, RawBytes: append([]byte(nil), p.buf...)})
			p.Reset()
			return events
		}
		// We have ESC plus at least one more byte that didn't yet match a known
		// sequence exactly; try the longest match we can find, else treat it as
		// an alt-prefixed sequence.
		if k, n, ok := p.table.LongestMatch(p.buf[1:]); ok {
			raw := append([]byte(nil), p.buf[:1+n]...)
			events = append(events, key.Event{Key: k, RawBytes: raw})
			p.buf = p.buf[1+n:]
			if len(p.buf) == 0 {
				p.Reset()
			}
			return events
		}
		events = append(events, key.Event{Key: key.NotDefined, RawBytes: append([]byte(nil), p.buf...)})
		p.Reset()

	case stateNormal:
		if len(p.utf8buf) > 0 {
			// Incomplete UTF-8 at end of stream: dropped per spec §4.3.
			events = append(events, key.Event{Key: key.Ignore, RawBytes: append([]byte(nil), p.utf8buf...)})
			p.utf8buf = p.utf8buf[:0]
		}

	case stateCSI, stateOSC, stateDCS, statePaste:
		// Incomplete multi-byte sequence with no terminator yet: nothing
		// sensible to emit besides dropping it as Ignore, preserving the raw
		// bytes seen so far for diagnostics.
		if len(p.buf) > 0 {
			events = append(events, key.Event{Key: key.Ignore, RawBytes: append([]byte(nil), p.buf...)})
		}
		p.Reset()
	}

	return events
}

func (p *Parser) step(c byte, events []key.Event) []key.Event {
	switch p.st {
	case stateNormal:
		return p.stepNormal(c, events)
	case stateEscape:
		return p.stepEscape(c, events)
	case stateCSI:
		return p.stepCSI(c, events)
	case stateOSC:
		return p.stepOSC(c, events)
	case stateDCS:
		return p.stepDCS(c, events)
	case statePaste:
		return p.stepPaste(c, events)
	}
	return events
}

func (p *Parser) stepNormal(c byte, events []key.Event) []key.Event {
	if len(p.utf8buf) > 0 {
		p.utf8buf = append(p.utf8buf, c)
		if utf8.FullRune(p.utf8buf) {
			r, size := utf8.DecodeRune(p.utf8buf)
			if r == utf8.RuneError && size <= 1 {
				events = append(events, key.Event{Key: key.Ignore, RawBytes: append([]byte(nil), p.utf8buf...)})
			} else {
				events = append(events, key.Event{Key: key.NotDefined, RawBytes: append([]byte(nil), p.utf8buf...), Text: string(r)})
			}
			p.utf8buf = p.utf8buf[:0]
		} else if len(p.utf8buf) >= utf8.UTFMax {
			events = append(events, key.Event{Key: key.Ignore, RawBytes: append([]byte(nil), p.utf8buf...)})
			p.utf8buf = p.utf8buf[:0]
		}
		return events
	}

	switch {
	case c == esc:
		p.st = stateEscape
		p.buf = append(p.buf[:0], c)

	case c == '\r':
		events = append(events, key.Event{Key: key.Enter, RawBytes: []byte{c}})

	case c == '\n':
		events = append(events, key.Event{Key: key.ControlJ, RawBytes: []byte{c}})

	case c == '\t':
		events = append(events, key.Event{Key: key.Tab, RawBytes: []byte{c}})

	case c == bksp || c == del:
		events = append(events, key.Event{Key: key.Backspace, RawBytes: []byte{c}})

	case c <= 0x1f:
		events = append(events, key.Event{Key: controlKey(c), RawBytes: []byte{c}})

	case c < 0x80:
		events = append(events, key.Event{Key: key.NotDefined, RawBytes: []byte{c}, Text: string(rune(c))})

	default:
		// Start of a multi-byte UTF-8 scalar (or a stray continuation byte,
		// which utf8.DecodeRune will report as RuneError and we drop).
		p.utf8buf = append(p.utf8buf[:0], c)
		if utf8.FullRune(p.utf8buf) {
			r, _ := utf8.DecodeRune(p.utf8buf)
			if r == utf8.RuneError {
				events = append(events, key.Event{Key: key.Ignore, RawBytes: append([]byte(nil), p.utf8buf...)})
			} else {
				events = append(events, key.Event{Key: key.NotDefined, RawBytes: append([]byte(nil), p.utf8buf...), Text: string(r)})
			}
			p.utf8buf = p.utf8buf[:0]
		}
	}
	return events
}

func controlKey(c byte) key.Key {
	switch c {
	case 0x00:
		return key.ControlSpace
	case 0x1c:
		return key.ControlBackslash
	case 0x1d:
		return key.ControlSquareClose
	case 0x1e:
		return key.ControlCircumflex
	case 0x1f:
		return key.ControlUnderscore
	}
	if c >= 0x01 && c <= 0x1a {
		return key.Key(int(key.ControlA) + int(c) - 1)
	}
	return key.NotDefined
}

func (p *Parser) stepEscape(c byte, events []key.Event) []key.Event {
	p.buf = append(p.buf, c)
	switch c {
	case '[':
		p.st = stateCSI
	case 'O':
		p.st = stateCSI // SS3: reuses the CSI accumulator; the table disambiguates.
	case ']':
		p.st = stateOSC
	case 'P':
		p.st = stateDCS
	default:
		// Alt-prefixed single character: ESC + printable byte.
		if c < 0x80 {
			raw := append([]byte(nil), p.buf...)
			events = append(events, key.Event{Key: key.NotDefined, RawBytes: raw, Text: "ESC" + string(rune(c))})
		} else {
			raw := append([]byte(nil), p.buf...)
			events = append(events, key.Event{Key: key.NotDefined, RawBytes: raw})
		}
		p.Reset()
	}
	return events
}

func (p *Parser) stepCSI(c byte, events []key.Event) []key.Event {
	p.buf = append(p.buf, c)

	if len(p.buf) >= 3 && p.buf[1] == '[' && p.buf[2] == 'M' {
		// X10 mouse report: ESC [ M plus three raw bytes, forwarded whole.
		if len(p.buf) == 6 {
			events = append(events, key.Event{Key: key.Vt100MouseEvent, RawBytes: append([]byte(nil), p.buf...)})
			p.Reset()
		}
		return events
	}

	isParam := c >= 0x30 && c <= 0x3f
	isIntermediate := c >= 0x20 && c <= 0x2f
	isFinal := c >= 0x40 && c <= 0x7e

	if !isFinal && !(isParam || isIntermediate) {
		// A byte that can't belong to this sequence at all; bail out as
		// NotDefined carrying what we accumulated, then reprocess c from
		// Normal state (it might be the start of a fresh sequence/char).
		raw := append([]byte(nil), p.buf[:len(p.buf)-1]...)
		events = append(events, key.Event{Key: key.NotDefined, RawBytes: raw})
		p.Reset()
		return p.stepNormal(c, events)
	}

	if !isFinal {
		// Parameter or intermediate byte: keep accumulating. Bracketed-paste
		// start/end need no special case here; '~' is their final byte, so
		// the final-byte branch below handles them.
		return events
	}

	if c == 'R' && len(p.buf) > 1 && p.buf[1] == '[' {
		// Generic cursor-position report, ESC [ r ; c R: the row/col digits
		// vary per reply, so this can't live in the fixed sequence table the
		// way the other CSI forms do.
		raw := append([]byte(nil), p.buf...)
		events = append(events, key.Event{Key: key.CPRResponse, RawBytes: raw})
		p.Reset()
		return events
	}

	if (c == 'M' || c == 'm') && len(p.buf) > 3 && p.buf[1] == '[' && p.buf[2] == '<' {
		// SGR mouse report: ESC [ < b ; x ; y M (press) or m (release).
		events = append(events, key.Event{Key: key.Vt100MouseEvent, RawBytes: append([]byte(nil), p.buf...)})
		p.Reset()
		return events
	}

	// Final byte received: resolve the whole accumulated sequence.
	k, n, ok := p.table.LongestMatch(p.buf)
	if ok && n == len(p.buf) {
		if k == key.BracketedPaste && len(p.buf) > 0 && p.buf[len(p.buf)-2] == '0' {
			// This was the start delimiter ESC[200~: enter paste collection.
			p.st = statePaste
			p.buf = p.buf[:0]
			return events
		}
		raw := append([]byte(nil), p.buf...)
		events = append(events, key.Event{Key: k, RawBytes: raw})
		p.Reset()
		return events
	}

	raw := append([]byte(nil), p.buf...)
	events = append(events, key.Event{Key: key.NotDefined, RawBytes: raw})
	p.Reset()
	return events
}

func (p *Parser) stepOSC(c byte, events []key.Event) []key.Event {
	p.buf = append(p.buf, c)
	if c == bel {
		events = append(events, key.Event{Key: key.Ignore, RawBytes: append([]byte(nil), p.buf...)})
		p.Reset()
		return events
	}
	if c == esc {
		// Possible start of ST (ESC \); wait for the backslash.
		return events
	}
	if c == '\\' && len(p.buf) >= 2 && p.buf[len(p.buf)-2] == esc {
		events = append(events, key.Event{Key: key.Ignore, RawBytes: append([]byte(nil), p.buf...)})
		p.Reset()
	}
	return events
}

func (p *Parser) stepDCS(c byte, events []key.Event) []key.Event {
	p.buf = append(p.buf, c)
	if c == esc {
		events = append(events, key.Event{Key: key.Ignore, RawBytes: append([]byte(nil), p.buf...)})
		p.Reset()
	}
	return events
}

// pasteTerminator is the bracketed-paste end delimiter.
const pasteTerminator = "\x1b[201~"

func (p *Parser) stepPaste(c byte, events []key.Event) []key.Event {
	p.buf = append(p.buf, c)

	if len(p.buf) >= len(pasteTerminator) &&
		string(p.buf[len(p.buf)-len(pasteTerminator):]) == pasteTerminator {
		content := p.buf[:len(p.buf)-len(pasteTerminator)]
		raw := append([]byte(nil), p.buf...)
		events = append(events, key.Event{Key: key.BracketedPaste, RawBytes: raw, Text: string(content)})
		p.Reset()
	}
	return events
}
