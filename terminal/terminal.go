// Package terminal implements the platform input/output backends of
// spec.md §4.6-4.7: a raw-mode guard, a multiplexed event loop delivering
// key and resize callbacks, and a styled-output writer with cursor control,
// clears, and alternate-screen support. Grounded on
// petermattis-prompt/prompt.go's term.MakeRaw/SIGWINCH loop and
// original_source/crates/replkit-core/src/console.rs's capability-set
// design (spec.md §9 "dynamic dispatch for backends").
package terminal

import (
	"errors"
	"fmt"

	"github.com/go-replkit/replkit/key"
)

// Error kinds per spec.md §7.
var (
	ErrAlreadyRunning = errors.New("terminal: event loop already running")
	ErrNotRunning     = errors.New("terminal: event loop not running")
)

// UnsupportedFeatureError is returned when a capability isn't available on
// the active backend (e.g. SetAlternateScreen on the Windows legacy console).
type UnsupportedFeatureError struct {
	Feature  string
	Platform string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("terminal: %s unsupported on %s", e.Feature, e.Platform)
}

// IOError wraps an underlying OS-level failure from raw-mode entry/restore,
// read/write, or poll/wait.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("terminal: %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// Size is a terminal's dimensions in character cells.
type Size struct {
	Width, Height int
}

// ClearType selects which region of the screen a Clear call erases, per
// spec.md §4.7.
type ClearType int

const (
	ClearAll ClearType = iota
	ClearFromCursor
	ClearToCursor
	ClearCurrentLine
	ClearFromCursorToEndOfLine
	ClearFromBeginningOfLineToCursor
)

// Color represents an 8/16/256/RGB foreground or background color. Exactly
// one of the fields is meaningful, selected by Mode.
type Color struct {
	Mode ColorMode
	// Index is used for Color8/Color16/Color256.
	Index uint8
	// R, G, B are used for ColorRGB.
	R, G, B uint8
}

// ColorMode selects which of Color's fields is populated.
type ColorMode int

const (
	ColorNone ColorMode = iota
	Color8
	Color16
	Color256
	ColorRGB
)

// Style describes text attributes for a styled write, per spec.md §4.7.
type Style struct {
	Foreground Color
	Background Color

	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Dim           bool
	Reverse       bool
}

// Capabilities describes what a backend instance supports, queried once by
// consumers deciding how to degrade gracefully (spec.md §9).
type Capabilities struct {
	TrueColor         bool
	Color256          bool
	CursorPositionGet bool
	AlternateScreen   bool
	BracketedPaste    bool
	MouseEvents       bool
}

// KeyCallback is invoked from the backend's worker thread for every decoded
// key event.
type KeyCallback func(key.Event)

// ResizeCallback is invoked from the backend's worker thread whenever the
// terminal size changes (and once at event-loop start, if queryable).
type ResizeCallback func(Size)

// Backend is the capability set described in spec.md §9: a tagged-variant
// dispatch point (posix / windows-legacy / windows-vt / bridge) behind a
// single interface consumers program against.
type Backend interface {
	// EnableRawMode puts the terminal into raw mode, returning a guard that
	// restores the original attributes on Restore. Nothing restores them
	// automatically (RawModeGuard sets no finalizer), so callers must call
	// Restore explicitly.
	EnableRawMode() (*RawModeGuard, error)

	// GetWindowSize returns the current terminal dimensions.
	GetWindowSize() (Size, error)

	// OnKey registers the callback invoked for each decoded key event.
	// Register it before StartEventLoop; a later call replaces the previous
	// callback.
	OnKey(KeyCallback)

	// OnResize registers the callback invoked for each resize event.
	OnResize(ResizeCallback)

	// StartEventLoop begins the worker thread. Returns ErrAlreadyRunning if
	// already started.
	StartEventLoop() error

	// StopEventLoop signals the worker thread to exit and joins it. Returns
	// ErrNotRunning if not started.
	StopEventLoop() error

	// IsRunning reports whether the event loop is currently active.
	IsRunning() bool

	// Capabilities describes what this backend instance supports.
	Capabilities() Capabilities

	// Output returns the output half of this backend.
	Output() Output
}

// Output is the styled-write / cursor-control / clear / alt-screen surface
// of spec.md §4.7.
type Output interface {
	WriteText(s string) error
	WriteStyledText(s string, style Style) error
	// WriteSafeText runs the sanitizer under AllowBasicFormatting before
	// writing, per spec.md §4.7.
	WriteSafeText(s string) error

	MoveCursorTo(row, col int) error
	MoveCursorRelative(dr, dc int) error
	Clear(ClearType) error

	SetStyle(Style) error
	ResetStyle() error

	SetAlternateScreen(bool) error
	SetCursorVisible(bool) error

	Flush() error

	// GetCursorPosition queries the terminal for the cursor's row/col via a
	// CPR exchange. Returns UnsupportedFeatureError on backends that cannot
	// perform the round trip (e.g. a host-driven bridge with no direct tty).
	GetCursorPosition() (row, col int, err error)
}
