package terminal

import (
	"sync"
	"sync/atomic"

	"github.com/go-replkit/replkit/key"
)

// BridgeBackend is a host-driven backend for embedding contexts (an IDE
// panel, a remote pty proxy, a test harness) where key and resize events
// arrive from the host rather than from a local tty, and raw mode /
// GetCursorPosition have no meaning. Grounded on
// original_source/crates/replkit-core/src/console.rs's BridgeConsole
// variant, which forwards host-delivered events instead of polling a
// descriptor directly (spec.md §9's "dynamic dispatch for backends").
type BridgeBackend struct {
	out Output

	mu struct {
		sync.Mutex
		onKey    KeyCallback
		onResize ResizeCallback
		size     Size
	}
	running atomic.Bool
}

// NewBridgeBackend constructs a BridgeBackend writing through out.
func NewBridgeBackend(out Output) *BridgeBackend {
	b := &BridgeBackend{out: out}
	b.mu.size = Size{Width: 80, Height: 24}
	return b
}

func (b *BridgeBackend) EnableRawMode() (*RawModeGuard, error) {
	return NewRawModeGuard(func() error { return nil }), nil
}

func (b *BridgeBackend) GetWindowSize() (Size, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mu.size, nil
}

func (b *BridgeBackend) OnKey(cb KeyCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.onKey = cb
}

func (b *BridgeBackend) OnResize(cb ResizeCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mu.onResize = cb
}

func (b *BridgeBackend) StartEventLoop() error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	return nil
}

func (b *BridgeBackend) StopEventLoop() error {
	if !b.running.CompareAndSwap(true, false) {
		return ErrNotRunning
	}
	return nil
}

func (b *BridgeBackend) IsRunning() bool { return b.running.Load() }

func (b *BridgeBackend) Capabilities() Capabilities {
	return Capabilities{}
}

func (b *BridgeBackend) Output() Output { return b.out }

// InjectKey delivers a host-observed key event to the registered callback.
// The host is responsible for decoding raw bytes into a key.Event (e.g. via
// keyparser.Parser) before calling this.
func (b *BridgeBackend) InjectKey(ev key.Event) {
	b.mu.Lock()
	cb := b.mu.onKey
	b.mu.Unlock()
	if cb != nil {
		cb(ev)
	}
}

// InjectResize delivers a host-observed size change.
func (b *BridgeBackend) InjectResize(sz Size) {
	b.mu.Lock()
	b.mu.size = sz
	cb := b.mu.onResize
	b.mu.Unlock()
	if cb != nil {
		cb(sz)
	}
}
