package keybind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-replkit/replkit/buffer"
	"github.com/go-replkit/replkit/key"
)

func newCtx(ev key.Event) (*Context, *buffer.Buffer) {
	b := buffer.New()
	return &Context{Buf: b, Event: ev, KillRing: &KillRing{}}, b
}

func TestDefaultActionInsertsPrintable(t *testing.T) {
	ctx, b := newCtx(key.Event{Key: key.NotDefined, Text: "x"})
	require.NoError(t, DefaultAction(ctx))
	require.Equal(t, "x", b.Text())
}

func TestTableExactMatchBeatsDefault(t *testing.T) {
	table := NewTable(DefaultBindings())
	ctx, b := newCtx(key.Event{Key: key.ControlK})
	b.SetText("hello world")
	b.SetCursorPosition(5)
	require.NoError(t, table.Dispatch(ctx))
	require.Equal(t, "hello", b.Text())
}

func TestKillLineThenYank(t *testing.T) {
	table := NewTable(DefaultBindings())
	ctx, b := newCtx(key.Event{Key: key.ControlK})
	b.SetText("hello world")
	b.SetCursorPosition(5)
	require.NoError(t, table.Dispatch(ctx))
	require.Equal(t, "hello", b.Text())

	ctx.Event = key.Event{Key: key.ControlY}
	require.NoError(t, table.Dispatch(ctx))
	require.Equal(t, "hello world", b.Text())
}

func TestBackwardWordMotion(t *testing.T) {
	table := NewTable(DefaultBindings())
	ctx, b := newCtx(key.Event{Key: key.ControlLeft})
	b.SetText("foo bar")
	b.SetCursorPosition(7)
	require.NoError(t, table.Dispatch(ctx))
	require.Equal(t, 4, b.CursorPosition())
}

func TestExitOrDeleteCharOnEmptyAccepts(t *testing.T) {
	table := NewTable(DefaultBindings())
	ctx, _ := newCtx(key.Event{Key: key.ControlD})
	err := table.Dispatch(ctx)
	require.True(t, errors.Is(err, ErrAccept))
}

func TestControlCClearsLine(t *testing.T) {
	table := NewTable(DefaultBindings())
	ctx, b := newCtx(key.Event{Key: key.ControlC})
	b.SetText("abc")
	require.NoError(t, table.Dispatch(ctx))
	require.Equal(t, "", b.Text())
}

func TestMoveBeginningAndEndOfLine(t *testing.T) {
	table := NewTable(DefaultBindings())
	ctx, b := newCtx(key.Event{Key: key.ControlA})
	b.SetText("one\ntwo")
	b.SetCursorPosition(6)
	require.NoError(t, table.Dispatch(ctx))
	require.Equal(t, 4, b.CursorPosition())

	ctx.Event = key.Event{Key: key.ControlE}
	require.NoError(t, table.Dispatch(ctx))
	require.Equal(t, 7, b.CursorPosition())
}
