package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyBuffer(t *testing.T) {
	b := New()
	require.Equal(t, "", b.Text())
	require.Equal(t, 0, b.CursorPosition())
}

func TestInsertTextCJK(t *testing.T) {
	b := New()
	b.InsertText("こん", false, true)
	require.Equal(t, "こん", b.Text())
	require.Equal(t, 2, b.CursorPosition())
	require.Equal(t, 4, b.DisplayCursorPosition())

	b.CursorLeft(1)
	require.Equal(t, 1, b.CursorPosition())
	require.Equal(t, 2, b.DisplayCursorPosition())
}

func TestSetCursorPositionClamps(t *testing.T) {
	b := New()
	b.SetText("hello")
	b.SetCursorPosition(1 << 30)
	require.Equal(t, 5, b.CursorPosition())
}

func TestSetWorkingIndexInvalid(t *testing.T) {
	b := New()
	err := b.SetWorkingIndex(5)
	require.Error(t, err)
	var wantErr *InvalidWorkingIndexError
	require.ErrorAs(t, err, &wantErr)
	require.Equal(t, 5, wantErr.Index)
	require.Equal(t, 0, wantErr.Max)
}

func TestAddWorkingLineSwitchesAndResetsCursor(t *testing.T) {
	b := New()
	b.SetText("first")
	b.SetCursorPosition(3)
	b.AddWorkingLine("second", true)
	require.Equal(t, "second", b.Text())
	require.Equal(t, 0, b.CursorPosition())
	require.Equal(t, 2, b.WorkingLineCount())
}

func TestDeleteBeforeAfterCursor(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursorPosition(5)

	removed := b.DeleteBeforeCursor(100)
	require.Equal(t, "hello", removed)
	require.Equal(t, " world", b.Text())
	require.Equal(t, 0, b.CursorPosition())

	removed = b.DeleteAfterCursor(1)
	require.Equal(t, " ", removed)
	require.Equal(t, "world", b.Text())
}

func TestCacheCoherence(t *testing.T) {
	b := New()
	b.SetText("abc")
	b.SetCursorPosition(2)
	doc := b.Document()
	require.Equal(t, "abc", doc.Text())
	require.Equal(t, 2, doc.CursorPosition())

	b.InsertText("X", false, true)
	doc = b.Document()
	require.Equal(t, "abXc", doc.Text())
	require.Equal(t, 3, doc.CursorPosition())
}

func TestInsertTextOverwrite(t *testing.T) {
	b := New()
	b.SetText("abcdef")
	b.SetCursorPosition(2)
	b.InsertText("XY", true, true)
	require.Equal(t, "abXYef", b.Text())
	require.Equal(t, 4, b.CursorPosition())
}
