//go:build windows

package terminal

import (
	"golang.org/x/sys/windows"

	"github.com/go-replkit/replkit/sanitize"
)

// windowsOutput implements Output against the legacy (non-VT) Windows
// console API rather than ANSI escape sequences: cursor motion via
// SetConsoleCursorPosition, clearing via FillConsoleOutputCharacter/
// FillConsoleOutputAttribute, and styling via SetConsoleTextAttribute,
// grounded on
// phoenix-tui-phoenix/terminal/infrastructure/windows/console.go's direct
// Win32-call approach for the same console-handle shape posixOutput drives
// through termenv/ANSI. Text itself still goes through WriteConsole rather
// than a VT writer, since windows_stub.go's WindowsBackend targets consoles
// without ENABLE_VIRTUAL_TERMINAL_PROCESSING.
type windowsOutput struct {
	h         windows.Handle
	origAttrs uint16
}

func newWindowsOutput(h windows.Handle) *windowsOutput {
	o := &windowsOutput{h: h}
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err == nil {
		o.origAttrs = info.Attributes
	}
	return o
}

func (o *windowsOutput) writeRaw(s string) error {
	u16, err := windows.UTF16FromString(s)
	if err != nil {
		return &IOError{Op: "UTF16FromString", Err: err}
	}
	if len(u16) == 0 {
		return nil
	}
	// UTF16FromString NUL-terminates; WriteConsole wants the rune count
	// without it.
	var written uint32
	if err := windows.WriteConsole(o.h, &u16[0], uint32(len(u16)-1), &written, nil); err != nil {
		return &IOError{Op: "WriteConsole", Err: err}
	}
	return nil
}

func (o *windowsOutput) WriteText(s string) error {
	return o.writeRaw(s)
}

func (o *windowsOutput) WriteSafeText(s string) error {
	return o.WriteText(sanitize.Sanitize(s, sanitize.AllowBasicFormatting))
}

func (o *windowsOutput) WriteStyledText(s string, style Style) error {
	if err := o.SetStyle(style); err != nil {
		return err
	}
	if err := o.WriteText(s); err != nil {
		return err
	}
	return o.ResetStyle()
}

func (o *windowsOutput) bufferInfo() (windows.ConsoleScreenBufferInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(o.h, &info); err != nil {
		return info, &IOError{Op: "GetConsoleScreenBufferInfo", Err: err}
	}
	return info, nil
}

func (o *windowsOutput) MoveCursorTo(row, col int) error {
	return windows.SetConsoleCursorPosition(o.h, windows.Coord{X: int16(col), Y: int16(row)})
}

func (o *windowsOutput) MoveCursorRelative(dr, dc int) error {
	info, err := o.bufferInfo()
	if err != nil {
		return err
	}
	pos := info.CursorPosition
	return windows.SetConsoleCursorPosition(o.h, windows.Coord{
		X: pos.X + int16(dc),
		Y: pos.Y + int16(dr),
	})
}

func (o *windowsOutput) Clear(ct ClearType) error {
	info, err := o.bufferInfo()
	if err != nil {
		return err
	}

	width := int(info.Size.X)
	fill := func(start windows.Coord, n int) error {
		if n <= 0 {
			return nil
		}
		if _, err := fillConsoleOutputCharacter(o.h, ' ', uint32(n), start); err != nil {
			return &IOError{Op: "FillConsoleOutputCharacter", Err: err}
		}
		if _, err := fillConsoleOutputAttribute(o.h, info.Attributes, uint32(n), start); err != nil {
			return &IOError{Op: "FillConsoleOutputAttribute", Err: err}
		}
		return nil
	}

	switch ct {
	case ClearAll:
		total := width * int(info.Size.Y)
		if err := fill(windows.Coord{}, total); err != nil {
			return err
		}
		return windows.SetConsoleCursorPosition(o.h, windows.Coord{})
	case ClearFromCursor:
		cur := info.CursorPosition
		onLine := width - int(cur.X)
		if err := fill(cur, onLine); err != nil {
			return err
		}
		below := width * int(info.Size.Y-cur.Y-1)
		return fill(windows.Coord{X: 0, Y: cur.Y + 1}, below)
	case ClearToCursor:
		cur := info.CursorPosition
		above := width * int(cur.Y)
		if err := fill(windows.Coord{}, above); err != nil {
			return err
		}
		return fill(windows.Coord{X: 0, Y: cur.Y}, int(cur.X)+1)
	case ClearCurrentLine:
		return fill(windows.Coord{X: 0, Y: info.CursorPosition.Y}, width)
	case ClearFromCursorToEndOfLine:
		cur := info.CursorPosition
		return fill(cur, width-int(cur.X))
	case ClearFromBeginningOfLineToCursor:
		cur := info.CursorPosition
		return fill(windows.Coord{X: 0, Y: cur.Y}, int(cur.X)+1)
	default:
		return &UnsupportedFeatureError{Feature: "Clear", Platform: "windows legacy console"}
	}
}

// ansiToWinAttr maps the 16 ANSI color indices (0-7 normal, 8-15 bright,
// in the usual black/red/green/yellow/blue/magenta/cyan/white order) onto
// the Win32 console's FOREGROUND_*/BACKGROUND_* bit layout (bit0=blue,
// bit1=green, bit2=red, bit3=intensity).
var ansiToWinAttr = [16]uint16{
	0x0, 0x4, 0x2, 0x6, 0x1, 0x5, 0x3, 0x7,
	0x8, 0xc, 0xa, 0xe, 0x9, 0xd, 0xb, 0xf,
}

func winColorAttr(c Color) (uint16, bool) {
	switch c.Mode {
	case Color8, Color16:
		return ansiToWinAttr[c.Index%16], true
	case Color256:
		// No 256-color palette on the legacy console: indices 0-15 map
		// directly; the 6x6x6 cube and the gray ramp are converted to RGB and
		// quantized to the nearest basic 16 entries like ColorRGB.
		i := int(c.Index)
		switch {
		case i < 16:
			return ansiToWinAttr[i], true
		case i >= 232:
			v := uint8(8 + (i-232)*10)
			return nearestWinAttr(v, v, v), true
		}
		i -= 16
		lvl := [6]uint8{0, 95, 135, 175, 215, 255}
		return nearestWinAttr(lvl[i/36], lvl[i/6%6], lvl[i%6]), true
	case ColorRGB:
		return nearestWinAttr(c.R, c.G, c.B), true
	default:
		return 0, false
	}
}

func nearestWinAttr(r, g, b uint8) uint16 {
	var attr uint16
	const half = 128
	if b >= half {
		attr |= 0x1
	}
	if g >= half {
		attr |= 0x2
	}
	if r >= half {
		attr |= 0x4
	}
	if r > 192 || g > 192 || b > 192 {
		attr |= 0x8
	}
	return attr
}

func (o *windowsOutput) SetStyle(style Style) error {
	attr := o.origAttrs
	if fg, ok := winColorAttr(style.Foreground); ok {
		attr = attr&^0xf | fg
	}
	if bg, ok := winColorAttr(style.Background); ok {
		attr = attr&^0xf0 | (bg << 4)
	}
	if style.Bold {
		attr |= 0x8
	}
	if style.Reverse {
		attr = (attr&0xf)<<4 | (attr&0xf0)>>4 | (attr &^ 0xff)
	}
	return setConsoleTextAttribute(o.h, attr)
	// Italic, Underline, Strikethrough, Dim have no legacy console
	// attribute equivalent; they're silently dropped rather than erroring,
	// matching the "best-effort" scope this backend is documented as.
}

func (o *windowsOutput) ResetStyle() error {
	return setConsoleTextAttribute(o.h, o.origAttrs)
}

func (o *windowsOutput) SetAlternateScreen(bool) error {
	return &UnsupportedFeatureError{Feature: "alternate screen", Platform: "windows legacy console"}
}

func (o *windowsOutput) SetCursorVisible(visible bool) error {
	info, err := getConsoleCursorInfo(o.h)
	if err != nil {
		return &IOError{Op: "GetConsoleCursorInfo", Err: err}
	}
	if info.size == 0 {
		info.size = 25
	}
	if visible {
		info.visible = 1
	} else {
		info.visible = 0
	}
	if err := setConsoleCursorInfo(o.h, info); err != nil {
		return &IOError{Op: "SetConsoleCursorInfo", Err: err}
	}
	return nil
}

// Flush is a no-op: WriteConsole writes land immediately, there's no
// userspace buffering to drain the way posixOutput's bufio.Writer needs.
func (o *windowsOutput) Flush() error { return nil }

func (o *windowsOutput) GetCursorPosition() (row, col int, err error) {
	info, err := o.bufferInfo()
	if err != nil {
		return 0, 0, err
	}
	return int(info.CursorPosition.Y), int(info.CursorPosition.X), nil
}
