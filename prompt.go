// Package replkit composes the decoder, buffer, renderer, key-handling
// pipeline, and platform backend into the read-eval-print loop of
// spec.md §4.10. Grounded on petermattis-prompt/prompt.go's
// ReadLine/processInputLocked structure: SIGWINCH-driven resize, a
// raw-mode guard held for the duration of a read, and a render-on-every-
// keystroke loop, restructured around the composed packages instead of the
// teacher's single internal screen/bind/kill_ring trio.
package replkit

import (
	"sync"

	"github.com/go-replkit/replkit/buffer"
	"github.com/go-replkit/replkit/completion"
	"github.com/go-replkit/replkit/key"
	"github.com/go-replkit/replkit/keybind"
	"github.com/go-replkit/replkit/render"
	"github.com/go-replkit/replkit/terminal"
)

// Prompt reads lines of input from a terminal, with cursor movement,
// deletion, a kill ring, tab completion, and multi-line continuation.
type Prompt struct {
	backend   terminal.Backend
	prefix    string
	completor completion.Completor
	table     *keybind.Table
	killRing  *keybind.KillRing
	exitChecker ExitChecker
	executor    Executor

	maxSuggestionRows int

	mu struct {
		sync.Mutex
		buf      *buffer.Buffer
		renderer *render.Renderer
		menu     *render.Menu
	}
}

// New constructs a Prompt from options. Without WithBackend, it drives
// os.Stdin/os.Stdout through the platform's default backend.
func New(options ...Option) *Prompt {
	p := &Prompt{
		killRing:          &keybind.KillRing{},
		maxSuggestionRows: 8,
	}
	p.table = keybind.NewTable(keybind.DefaultBindings())

	for _, opt := range options {
		opt.apply(p)
	}

	if p.backend == nil {
		p.backend = defaultBackend()
	}
	p.mu.buf = buffer.New()
	p.mu.renderer = render.New(80, 24)
	return p
}

// Close releases any resources the Prompt's backend holds.
func (p *Prompt) Close() error {
	if p.backend.IsRunning() {
		return p.backend.StopEventLoop()
	}
	return nil
}

// ReadLine reads and returns a single logical line of input (which may span
// multiple terminal rows if the exit checker requests continuation).
// Control-C clears the current line and keeps reading unless a configured
// ExitChecker asks it to abort, in which case ReadLine returns
// ErrInterrupted.
func (p *Prompt) ReadLine() (string, error) {
	guard, err := p.backend.EnableRawMode()
	if err != nil {
		return "", err
	}
	defer guard.Restore()

	if sz, err := p.backend.GetWindowSize(); err == nil {
		p.mu.Lock()
		p.mu.renderer.SetSize(sz.Width, sz.Height)
		p.mu.Unlock()
	}

	p.mu.Lock()
	p.mu.buf = buffer.New()
	p.mu.menu = nil
	p.mu.Unlock()

	events := make(chan key.Event, 64)
	resizes := make(chan terminal.Size, 8)
	p.backend.OnKey(func(ev key.Event) { events <- ev })
	p.backend.OnResize(func(sz terminal.Size) { resizes <- sz })

	if err := p.backend.StartEventLoop(); err != nil {
		return "", err
	}
	defer p.backend.StopEventLoop()

	p.render()

	for {
		select {
		case sz := <-resizes:
			p.mu.Lock()
			p.mu.renderer.SetSize(sz.Width, sz.Height)
			p.mu.Unlock()
			p.render()

		case ev := <-events:
			text, done, err := p.handleEvent(ev)
			if done {
				return text, err
			}
		}
	}
}

// Run repeatedly calls ReadLine and invokes the Executor with each accepted
// line, until the Executor returns a non-nil error or ReadLine returns
// ErrInterrupted.
func (p *Prompt) Run() error {
	for {
		line, err := p.ReadLine()
		if err != nil {
			return err
		}
		if p.executor == nil {
			continue
		}
		if err := p.executor(line); err != nil {
			return err
		}
	}
}

func (p *Prompt) handleEvent(ev key.Event) (text string, done bool, err error) {
	debugPrintf("event: %+v\n", ev)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.mu.buf.SetLastKeyStroke(ev.Key)

	// SIGINT-equivalent: the default binding for Control-C clears the line
	// and keeps reading. An ExitChecker can override that by returning true
	// here, in which case the whole loop aborts instead.
	if ev.Key == key.ControlC && p.exitChecker != nil && p.exitChecker(p.mu.buf.Text(), false) {
		p.finishLocked()
		return "", true, ErrInterrupted
	}

	if ev.Key == key.Tab {
		p.updateSuggestionsLocked()
		p.renderLocked()
		return "", false, nil
	}

	ctx := &keybind.Context{Buf: p.mu.buf, Event: ev, KillRing: p.killRing}
	dispatchErr := p.table.Dispatch(ctx)
	p.mu.menu = nil

	switch dispatchErr {
	case nil:
		p.renderLocked()
		return "", false, nil
	case keybind.ErrAccept:
		accepted := p.mu.buf.Text()
		if ev.Key == key.Enter && p.exitChecker != nil && !p.exitChecker(accepted, true) {
			p.mu.buf.InsertText("\n", false, true)
			p.renderLocked()
			return "", false, nil
		}
		p.finishLocked()
		return accepted, true, nil
	case keybind.ErrInterrupt:
		p.finishLocked()
		return "", true, ErrInterrupted
	default:
		return "", true, dispatchErr
	}
}

func (p *Prompt) updateSuggestionsLocked() {
	if p.completor == nil {
		return
	}
	suggestions := p.completor.Complete(p.mu.buf.Document())
	if len(suggestions) == 0 {
		p.mu.menu = nil
		return
	}
	p.mu.menu = &render.Menu{
		Suggestions: suggestions,
		Selected:    -1,
		MaxRows:     p.maxSuggestionRows,
	}
}

func (p *Prompt) finishLocked() {
	out := p.mu.renderer
	p.mu.buf.SetCursorPosition(1 << 30)
	_ = p.backend.Output().WriteText(string(out.Render(p.prefix, p.mu.buf.Document(), nil)))
	_ = p.backend.Output().WriteText("\r\n")
	_ = p.backend.Output().Flush()
}

func (p *Prompt) render() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderLocked()
}

func (p *Prompt) renderLocked() {
	out := p.mu.renderer.Render(p.prefix, p.mu.buf.Document(), p.mu.menu)
	_ = p.backend.Output().WriteText(string(out))
	_ = p.backend.Output().Flush()
}
