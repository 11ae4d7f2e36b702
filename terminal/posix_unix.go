//go:build !windows

// POSIX backend: raw mode and window size via golang.org/x/term (the same
// pairing petermattis-prompt/prompt.go uses, term.MakeRaw/term.GetSize), a
// cancelable read loop via github.com/muesli/cancelreader so StopEventLoop
// can unblock a pending Read without closing the underlying fd, and resize
// notification via SIGWINCH exactly as prompt.go's updateSize goroutine
// does.
package terminal

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"

	"github.com/go-replkit/replkit/key"
	"github.com/go-replkit/replkit/keyparser"
)

// PosixBackend is the Backend implementation for Linux/macOS/BSD terminals.
type PosixBackend struct {
	fd  int
	in  *os.File
	out *os.File

	mu struct {
		sync.Mutex
		onKey    KeyCallback
		onResize ResizeCallback
	}

	rd      cancelreader.CancelReader
	running atomic.Bool
	winch   chan os.Signal
	done    chan struct{}
	output  *posixOutput
}

// NewPosixBackend constructs a backend over in/out, which must be *os.File
// values backed by a real tty for raw mode and SIGWINCH to apply.
func NewPosixBackend(in, out *os.File) *PosixBackend {
	b := &PosixBackend{in: in, out: out, fd: int(in.Fd())}
	b.output = newPosixOutput(in, out)
	return b
}

func (b *PosixBackend) EnableRawMode() (*RawModeGuard, error) {
	if !isatty.IsTerminal(uintptr(b.fd)) {
		return nil, &UnsupportedFeatureError{Feature: "raw mode", Platform: "a non-terminal file descriptor"}
	}
	saved, err := term.MakeRaw(b.fd)
	if err != nil {
		return nil, &IOError{Op: "MakeRaw", Err: err}
	}
	return NewRawModeGuard(func() error {
		if err := term.Restore(b.fd, saved); err != nil {
			return &IOError{Op: "Restore", Err: err}
		}
		return nil
	}), nil
}

func (b *PosixBackend) GetWindowSize() (Size, error) {
	w, h, err := term.GetSize(b.fd)
	if err != nil {
		return Size{}, &IOError{Op: "GetSize", Err: err}
	}
	return Size{Width: w, Height: h}, nil
}

func (b *PosixBackend) OnKey(cb KeyCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.onKey = cb
}

func (b *PosixBackend) OnResize(cb ResizeCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.onResize = cb
}

func (b *PosixBackend) IsRunning() bool { return b.running.Load() }

func (b *PosixBackend) Capabilities() Capabilities {
	if !isatty.IsTerminal(uintptr(b.fd)) {
		return Capabilities{}
	}
	return Capabilities{
		TrueColor:         true,
		Color256:          true,
		CursorPositionGet: true,
		AlternateScreen:   true,
		BracketedPaste:    true,
		MouseEvents:       true,
	}
}

func (b *PosixBackend) Output() Output { return b.output }

func (b *PosixBackend) StartEventLoop() error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	rd, err := cancelreader.NewReader(b.in)
	if err != nil {
		b.running.Store(false)
		return &IOError{Op: "NewReader", Err: err}
	}
	b.rd = rd
	b.done = make(chan struct{})

	b.winch = make(chan os.Signal, 1)
	signal.Notify(b.winch, syscall.SIGWINCH)

	go b.resizeLoop()
	go b.readLoop()

	if sz, err := b.GetWindowSize(); err == nil {
		b.emitResize(sz)
	}
	return nil
}

func (b *PosixBackend) StopEventLoop() error {
	if !b.running.CompareAndSwap(true, false) {
		return ErrNotRunning
	}
	signal.Stop(b.winch)
	close(b.winch)
	b.rd.Cancel()
	<-b.done
	return b.rd.Close()
}

func (b *PosixBackend) resizeLoop() {
	for range b.winch {
		if sz, err := b.GetWindowSize(); err == nil {
			b.emitResize(sz)
		}
	}
}

func (b *PosixBackend) readLoop() {
	defer close(b.done)

	p := keyparser.New()
	var buf [256]byte
	for {
		n, err := b.rd.Read(buf[:])
		if n > 0 {
			for _, ev := range p.Feed(buf[:n]) {
				b.emitKey(ev)
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) {
				for _, ev := range p.Flush() {
					b.emitKey(ev)
				}
			}
			return
		}
	}
}

func (b *PosixBackend) emitKey(ev key.Event) {
	b.mu.Lock()
	cb := b.mu.onKey
	b.mu.Unlock()
	if cb != nil {
		cb(ev)
	}
}

func (b *PosixBackend) emitResize(sz Size) {
	b.mu.Lock()
	cb := b.mu.onResize
	b.mu.Unlock()
	if cb != nil {
		cb(sz)
	}
}
