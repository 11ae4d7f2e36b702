package keybind

import (
	"github.com/go-replkit/replkit/key"
	"github.com/go-replkit/replkit/runeutil"
)

// DefaultBindings returns the binding table adapted from
// petermattis-prompt/bind.go's defaultBindings string, translated from its
// rune+modifier-bitmask keys to key.Key values and from its (*state)-shaped
// commands to Action.
//
// The key.Tab entry never fires when this table is driven by Prompt: its
// handleEvent intercepts key.Tab before dispatch to drive the completion
// menu, regardless of which table WithBindings installs. It's kept for
// callers that drive a Table directly without going through Prompt, where
// no such interception exists.
func DefaultBindings() []Binding {
	return []Binding{
		{key.ControlA, moveBeginningOfLine},
		{key.Home, moveBeginningOfLine},
		{key.ControlE, moveEndOfLine},
		{key.End, moveEndOfLine},
		{key.ControlB, backwardChar},
		{key.Left, backwardChar},
		{key.ControlF, forwardChar},
		{key.Right, forwardChar},
		{key.ControlLeft, backwardWord},
		{key.ControlRight, forwardWord},
		{key.ControlH, backwardDeleteChar},
		{key.Backspace, backwardDeleteChar},
		{key.ControlD, exitOrDeleteChar},
		{key.Delete, deleteChar},
		{key.ControlK, killLine},
		{key.ControlU, backwardKillLine},
		{key.ControlW, backwardKillWord},
		{key.ControlY, yank},
		{key.ControlT, transposeChars},
		{key.ControlC, clearLine},
		{key.Enter, finishOrEnter},
		{key.ControlJ, insertNewline},
		{key.Tab, tab},
	}
}

func moveBeginningOfLine(ctx *Context) error {
	doc := ctx.Buf.Document()
	lineStart := doc.CursorPosition() - runeutil.RuneCount(currentLineBeforeCursor(ctx))
	ctx.Buf.SetCursorPosition(lineStart)
	return nil
}

func currentLineBeforeCursor(ctx *Context) string {
	before := ctx.Buf.Document().TextBeforeCursor()
	idx := lastIndexByte(before, '\n')
	return before[idx+1:]
}

func lastIndexByte(s string, b byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func moveEndOfLine(ctx *Context) error {
	doc := ctx.Buf.Document()
	lineStart := doc.CursorPosition() - runeutil.RuneCount(currentLineBeforeCursor(ctx))
	lineEnd := lineStart + runeutil.RuneCount(doc.CurrentLine())
	ctx.Buf.SetCursorPosition(lineEnd)
	return nil
}

func backwardChar(ctx *Context) error {
	ctx.Buf.CursorLeft(1)
	return nil
}

func forwardChar(ctx *Context) error {
	ctx.Buf.CursorRight(1)
	return nil
}

func backwardWord(ctx *Context) error {
	word := ctx.Buf.Document().GetWordBeforeCursor()
	ctx.Buf.CursorLeft(runeutil.RuneCount(word))
	return nil
}

func forwardWord(ctx *Context) error {
	word := ctx.Buf.Document().GetWordAfterCursor()
	ctx.Buf.CursorRight(runeutil.RuneCount(word))
	return nil
}

func backwardDeleteChar(ctx *Context) error {
	ctx.KillRing.NotKilling()
	ctx.KillRing.NotYanking()
	ctx.Buf.DeleteBeforeCursor(1)
	return nil
}

func deleteChar(ctx *Context) error {
	ctx.KillRing.NotKilling()
	ctx.KillRing.NotYanking()
	ctx.Buf.DeleteAfterCursor(1)
	return nil
}

func exitOrDeleteChar(ctx *Context) error {
	if ctx.Buf.Text() == "" {
		return ErrAccept
	}
	return deleteChar(ctx)
}

func killLine(ctx *Context) error {
	ctx.KillRing.NotYanking()
	n := runeutil.RuneCount(ctx.Buf.Document().TextAfterCursor())
	if e := ctx.Buf.DeleteAfterCursor(n); e != "" {
		ctx.KillRing.Append(e)
	}
	return nil
}

func backwardKillLine(ctx *Context) error {
	ctx.KillRing.NotYanking()
	n := runeutil.RuneCount(ctx.Buf.Document().TextBeforeCursor())
	if e := ctx.Buf.DeleteBeforeCursor(n); e != "" {
		ctx.KillRing.Prepend(e)
	}
	return nil
}

func backwardKillWord(ctx *Context) error {
	ctx.KillRing.NotYanking()
	word := ctx.Buf.Document().GetWordBeforeCursor()
	if e := ctx.Buf.DeleteBeforeCursor(runeutil.RuneCount(word)); e != "" {
		ctx.KillRing.Prepend(e)
	}
	return nil
}

func yank(ctx *Context) error {
	ctx.KillRing.NotKilling()
	text := ctx.KillRing.Yank()
	if text != "" {
		ctx.Buf.InsertText(text, false, true)
	}
	return nil
}

func transposeChars(ctx *Context) error {
	doc := ctx.Buf.Document()
	pos := doc.CursorPosition()
	if pos == 0 {
		return nil
	}
	before := []rune(doc.TextBeforeCursor())
	after := []rune(doc.TextAfterCursor())
	if len(after) == 0 {
		if len(before) < 2 {
			return nil
		}
		before[len(before)-1], before[len(before)-2] = before[len(before)-2], before[len(before)-1]
		ctx.Buf.SetText(string(before) + string(after))
		return nil
	}
	prev := before[len(before)-1]
	next := after[0]
	before[len(before)-1] = next
	after[0] = prev
	ctx.Buf.SetText(string(before) + string(after))
	ctx.Buf.CursorRight(1)
	return nil
}

// clearLine is the default SIGINT-equivalent behavior: discard the current
// line and keep reading, rather than exiting. A Prompt's ExitChecker is
// consulted ahead of dispatch for callers that want Control-C to actually
// terminate the loop instead.
func clearLine(ctx *Context) error {
	ctx.KillRing.NotKilling()
	ctx.KillRing.NotYanking()
	ctx.Buf.SetText("")
	return nil
}

func finishOrEnter(ctx *Context) error {
	return ErrAccept
}

func insertNewline(ctx *Context) error {
	ctx.Buf.InsertText("\n", false, true)
	return nil
}

func tab(ctx *Context) error {
	ctx.Buf.InsertText("\t", false, true)
	return nil
}
