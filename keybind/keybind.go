// Package keybind implements the key-handling pipeline of spec.md §4.9: an
// ordered (key.Key, Action) binding table consulted exact-match-first, then
// an Any-key fallback, then a default-action ladder (printable insertion,
// ignore otherwise). Grounded on petermattis-prompt/bind.go's
// command/baseCommands table, generalized from its rune+modifier-bitmask
// keys to the key.Key enum the decoder now produces, and its
// kill_ring.go, adapted in killring.go to operate on buffer.Buffer directly
// instead of the teacher's internal screen type.
package keybind

import (
	"io"

	"github.com/go-replkit/replkit/buffer"
	"github.com/go-replkit/replkit/key"
)

// ErrAccept signals that the bound action considers the current input
// complete (the teacher's cmdFinishOrEnter/io.EOF convention).
var ErrAccept = io.EOF

// ErrInterrupt signals that the bound action wants to abandon the current
// input entirely (the teacher's cmdCancel-on-empty-buffer convention).
var ErrInterrupt = io.ErrClosedPipe

// Context is the mutable state an Action observes and acts on.
type Context struct {
	Buf      *buffer.Buffer
	Event    key.Event
	KillRing *KillRing
}

// Action is a single bound behavior. Returning a non-nil error stops the key
// loop; ErrAccept and ErrInterrupt carry specific meaning to a Prompt's read
// loop, any other error propagates as a failure.
type Action func(ctx *Context) error

// Binding pairs a key with the action it triggers.
type Binding struct {
	Key    key.Key
	Action Action
}

// Table is an ordered list of bindings consulted exact-match-first. key.Any
// may appear once as a catch-all fallback, consulted after every exact
// binding has been checked and missed.
type Table struct {
	exact map[key.Key]Action
	any   Action
}

// NewTable builds a Table from bindings. A key.Any binding, if present,
// becomes the fallback; if it's not last in bindings that's fine, it's
// still only ever consulted after all exact matches miss. When a key is
// bound more than once, the first binding wins.
func NewTable(bindings []Binding) *Table {
	t := &Table{exact: make(map[key.Key]Action, len(bindings))}
	for _, b := range bindings {
		if b.Key == key.Any {
			if t.any == nil {
				t.any = b.Action
			}
			continue
		}
		if _, seen := t.exact[b.Key]; !seen {
			t.exact[b.Key] = b.Action
		}
	}
	return t
}

// Dispatch resolves an action for ev.Key via exact match, then the Any
// fallback, then the default ladder (DefaultAction), and invokes it.
func (t *Table) Dispatch(ctx *Context) error {
	if a, ok := t.exact[ctx.Event.Key]; ok {
		return a(ctx)
	}
	if t.any != nil {
		return t.any(ctx)
	}
	return DefaultAction(ctx)
}

// DefaultAction is the bottom of the ladder: insert printable text carried
// by the event, or do nothing for control/navigation keys with no binding.
func DefaultAction(ctx *Context) error {
	if !ctx.Event.HasText() {
		return nil
	}
	if !isPrintable(ctx.Event.Text) {
		return nil
	}
	ctx.Buf.InsertText(ctx.Event.Text, false, true)
	return nil
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' {
			return false
		}
		if r == 0x7f {
			return false
		}
	}
	return true
}
