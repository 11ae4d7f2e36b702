package replkit

import (
	"github.com/go-replkit/replkit/completion"
	"github.com/go-replkit/replkit/keybind"
	"github.com/go-replkit/replkit/terminal"
)

// Option configures a Prompt, following the functional-options pattern
// petermattis-prompt/options.go uses (an Option interface with an
// unexported apply method, rather than a struct-of-fields config).
type Option interface {
	apply(p *Prompt)
}

type backendOption struct{ b terminal.Backend }

func (o backendOption) apply(p *Prompt) { p.backend = o.b }

// WithBackend overrides the platform backend a Prompt drives. Without this
// option, New picks NewPosixBackend(os.Stdin, os.Stdout) on non-Windows
// platforms.
func WithBackend(b terminal.Backend) Option {
	return backendOption{b}
}

type prefixOption struct{ prefix string }

func (o prefixOption) apply(p *Prompt) { p.prefix = o.prefix }

// WithPrefix sets the text displayed before the input on every render.
func WithPrefix(prefix string) Option {
	return prefixOption{prefix}
}

type completorOption struct{ c completion.Completor }

func (o completorOption) apply(p *Prompt) { p.completor = o.c }

// WithCompletor installs the suggestion provider consulted on Tab.
func WithCompletor(c completion.Completor) Option {
	return completorOption{c}
}

type bindingsOption struct{ bindings []keybind.Binding }

func (o bindingsOption) apply(p *Prompt) { p.table = keybind.NewTable(o.bindings) }

// WithBindings replaces the default key bindings entirely. Most callers
// should build on keybind.DefaultBindings(), replacing an entry to rebind
// its key (the first binding of a key wins) and appending entries for new
// keys, rather than supply a table from scratch.
func WithBindings(bindings []keybind.Binding) Option {
	return bindingsOption{bindings}
}

// ExitChecker is consulted at the two points a Prompt would otherwise decide
// on its own whether to keep reading: with breakline=true, after Enter, to
// decide whether the accumulated text should be submitted (true) or a
// newline inserted so reading continues (false) — generalizing
// petermattis-prompt/bind.go's cmdFinishOrEnter / WithInputFinished, which
// only has the Enter case. With breakline=false, after Control-C, to decide
// whether the whole Prompt should abort with ErrInterrupted (true) instead
// of its default behavior of clearing the line and continuing (false).
type ExitChecker func(text string, breakline bool) bool

type exitCheckerOption struct{ fn ExitChecker }

func (o exitCheckerOption) apply(p *Prompt) { p.exitChecker = o.fn }

// WithExitChecker installs the callback consulted on Enter.
func WithExitChecker(fn ExitChecker) Option {
	return exitCheckerOption{fn}
}

// Executor is invoked by Run with each accepted line of input.
type Executor func(text string) error

type executorOption struct{ fn Executor }

func (o executorOption) apply(p *Prompt) { p.executor = o.fn }

// WithExecutor installs the callback Run invokes for each accepted line.
func WithExecutor(fn Executor) Option {
	return executorOption{fn}
}

type maxSuggestionRowsOption struct{ n int }

func (o maxSuggestionRowsOption) apply(p *Prompt) { p.maxSuggestionRows = o.n }

// WithMaxSuggestionRows bounds how many completion suggestions are painted
// at once below the input line.
func WithMaxSuggestionRows(n int) Option {
	return maxSuggestionRowsOption{n}
}
