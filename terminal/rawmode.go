package terminal

import "sync"

// RawModeGuard restores a terminal's original mode exactly once. It is
// returned by Backend.EnableRawMode, mirroring petermattis-prompt's
// term.MakeRaw/term.Restore pairing but wrapped so Restore is idempotent and
// safe to call from a defer even if invoked twice.
type RawModeGuard struct {
	once    sync.Once
	restore func() error
	err     error
}

// NewRawModeGuard wraps restore so it runs at most once.
func NewRawModeGuard(restore func() error) *RawModeGuard {
	return &RawModeGuard{restore: restore}
}

// Restore returns the terminal to its pre-raw-mode state. Safe to call
// multiple times; only the first call has effect, and every call observes
// that call's result.
func (g *RawModeGuard) Restore() error {
	g.once.Do(func() {
		g.err = g.restore()
	})
	return g.err
}
