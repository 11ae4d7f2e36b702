//go:build windows

// Windows legacy backend: console mode bits and ReadConsoleInputW via
// golang.org/x/sys/windows, grounded on
// original_source/crates/replkit-core/src/console.rs's WindowsLegacyConsole
// variant (spec.md §9 notes the pre-VT Windows console as a distinct
// dispatch target from the POSIX and Windows-VT paths). Only key and
// window-buffer-size events are decoded here; mouse and bracketed-paste
// input are not decoded, and this package has no VT-sequence input path for
// Windows consoles.
package terminal

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/windows"

	"github.com/go-replkit/replkit/key"
)

// WindowsBackend is the Backend implementation for the legacy (non-VT)
// Windows console API.
type WindowsBackend struct {
	inHandle  windows.Handle
	outHandle windows.Handle

	origInMode  uint32
	origOutMode uint32

	mu struct {
		sync.Mutex
		onKey    KeyCallback
		onResize ResizeCallback
	}

	running atomic.Bool
	stop    chan struct{}
	done    chan struct{}
	output  *windowsOutput
}

// NewWindowsBackend constructs a backend over the process's standard input
// and output console handles.
func NewWindowsBackend() (*WindowsBackend, error) {
	in, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return nil, &IOError{Op: "GetStdHandle(stdin)", Err: err}
	}
	out, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return nil, &IOError{Op: "GetStdHandle(stdout)", Err: err}
	}
	b := &WindowsBackend{inHandle: in, outHandle: out}
	b.output = newWindowsOutput(out)
	return b, nil
}

func (b *WindowsBackend) EnableRawMode() (*RawModeGuard, error) {
	var inMode, outMode uint32
	if err := windows.GetConsoleMode(b.inHandle, &inMode); err != nil {
		return nil, &IOError{Op: "GetConsoleMode(in)", Err: err}
	}
	if err := windows.GetConsoleMode(b.outHandle, &outMode); err != nil {
		return nil, &IOError{Op: "GetConsoleMode(out)", Err: err}
	}
	b.origInMode, b.origOutMode = inMode, outMode

	raw := inMode &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT)
	raw |= windows.ENABLE_WINDOW_INPUT
	if err := windows.SetConsoleMode(b.inHandle, raw); err != nil {
		return nil, &IOError{Op: "SetConsoleMode(in)", Err: err}
	}

	return NewRawModeGuard(func() error {
		if err := windows.SetConsoleMode(b.inHandle, b.origInMode); err != nil {
			return &IOError{Op: "SetConsoleMode(in) restore", Err: err}
		}
		return nil
	}), nil
}

func (b *WindowsBackend) GetWindowSize() (Size, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(b.outHandle, &info); err != nil {
		return Size{}, &IOError{Op: "GetConsoleScreenBufferInfo", Err: err}
	}
	w := int(info.Window.Right-info.Window.Left) + 1
	h := int(info.Window.Bottom-info.Window.Top) + 1
	return Size{Width: w, Height: h}, nil
}

func (b *WindowsBackend) OnKey(cb KeyCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.onKey = cb
}

func (b *WindowsBackend) OnResize(cb ResizeCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.onResize = cb
}

func (b *WindowsBackend) IsRunning() bool { return b.running.Load() }

func (b *WindowsBackend) Capabilities() Capabilities {
	return Capabilities{
		TrueColor:         false,
		Color256:          false,
		CursorPositionGet: true,
		AlternateScreen:   false,
		BracketedPaste:    false,
		MouseEvents:       false,
	}
}

func (b *WindowsBackend) Output() Output { return b.output }

func (b *WindowsBackend) StartEventLoop() error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	go b.readLoop()
	return nil
}

func (b *WindowsBackend) StopEventLoop() error {
	if !b.running.CompareAndSwap(true, false) {
		return ErrNotRunning
	}
	close(b.stop)
	<-b.done
	return nil
}

func (b *WindowsBackend) readLoop() {
	defer close(b.done)
	var lastSize Size
	if sz, err := b.GetWindowSize(); err == nil {
		lastSize = sz
		b.emitResize(sz)
	}

	records := make([]windows.InputRecord, 32)
	for {
		select {
		case <-b.stop:
			return
		default:
		}

		var n uint32
		if err := windows.ReadConsoleInput(b.inHandle, records, &n); err != nil {
			return
		}
		for _, rec := range records[:n] {
			switch rec.EventType {
			case windows.KEY_EVENT:
				ke := rec.KeyEvent()
				if !ke.KeyDown {
					continue
				}
				if ev, ok := decodeWindowsKeyEvent(ke); ok {
					b.emitKey(ev)
				}
			case windows.WINDOW_BUFFER_SIZE_EVENT:
				if sz, err := b.GetWindowSize(); err == nil && sz != lastSize {
					lastSize = sz
					b.emitResize(sz)
				}
			}
		}
	}
}

func (b *WindowsBackend) emitKey(ev key.Event) {
	b.mu.Lock()
	cb := b.mu.onKey
	b.mu.Unlock()
	if cb != nil {
		cb(ev)
	}
}

func (b *WindowsBackend) emitResize(sz Size) {
	b.mu.Lock()
	cb := b.mu.onResize
	b.mu.Unlock()
	if cb != nil {
		cb(sz)
	}
}

// decodeWindowsKeyEvent maps a legacy KEY_EVENT_RECORD to a key.Event,
// covering the arrow/navigation/control-character surface this crate's
// POSIX path decodes from escape sequences. Printable characters arrive
// pre-decoded in the UnicodeChar field rather than as UTF-8 bytes.
func decodeWindowsKeyEvent(ke windows.KeyEventRecord) (key.Event, bool) {
	if ke.UnicodeChar == 0 {
		switch ke.VirtualKeyCode {
		case windows.VK_LEFT:
			return key.Event{Key: key.Left}, true
		case windows.VK_RIGHT:
			return key.Event{Key: key.Right}, true
		case windows.VK_UP:
			return key.Event{Key: key.Up}, true
		case windows.VK_DOWN:
			return key.Event{Key: key.Down}, true
		case windows.VK_HOME:
			return key.Event{Key: key.Home}, true
		case windows.VK_END:
			return key.Event{Key: key.End}, true
		case windows.VK_DELETE:
			return key.Event{Key: key.Delete}, true
		case windows.VK_INSERT:
			return key.Event{Key: key.Insert}, true
		case windows.VK_PRIOR:
			return key.Event{Key: key.PageUp}, true
		case windows.VK_NEXT:
			return key.Event{Key: key.PageDown}, true
		}
		return key.Event{}, false
	}

	c := rune(ke.UnicodeChar)
	switch c {
	case '\r':
		return key.Event{Key: key.Enter, Text: "\r"}, true
	case '\t':
		return key.Event{Key: key.Tab, Text: "\t"}, true
	case 0x7f, '\b':
		return key.Event{Key: key.Backspace}, true
	}
	if c < 0x20 {
		return key.Event{Key: key.NotDefined, RawBytes: []byte{byte(c)}}, true
	}
	return key.Event{Key: key.NotDefined, Text: string(c)}, true
}
