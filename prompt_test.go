package replkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-replkit/replkit/completion"
	"github.com/go-replkit/replkit/key"
	"github.com/go-replkit/replkit/terminal"
)

// discardOutput is a terminal.Output that throws away everything it's given,
// enough to drive a Prompt end to end without a real tty.
type discardOutput struct{}

func (discardOutput) WriteText(string) error                      { return nil }
func (discardOutput) WriteStyledText(string, terminal.Style) error { return nil }
func (discardOutput) WriteSafeText(string) error                   { return nil }
func (discardOutput) MoveCursorTo(int, int) error                  { return nil }
func (discardOutput) MoveCursorRelative(int, int) error            { return nil }
func (discardOutput) Clear(terminal.ClearType) error                { return nil }
func (discardOutput) SetStyle(terminal.Style) error                 { return nil }
func (discardOutput) ResetStyle() error                             { return nil }
func (discardOutput) SetAlternateScreen(bool) error                 { return nil }
func (discardOutput) SetCursorVisible(bool) error                   { return nil }
func (discardOutput) Flush() error                                  { return nil }
func (discardOutput) GetCursorPosition() (int, int, error)          { return 0, 0, nil }

func feedText(b *terminal.BridgeBackend, s string) {
	for _, r := range s {
		b.InjectKey(key.Event{Key: key.NotDefined, Text: string(r)})
	}
}

func waitRunning(t *testing.T, b *terminal.BridgeBackend) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if b.IsRunning() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("backend never started")
}

func TestReadLineAcceptsOnEnter(t *testing.T) {
	backend := terminal.NewBridgeBackend(discardOutput{})
	p := New(WithBackend(backend), WithPrefix("> "))

	done := make(chan struct{})
	var line string
	var err error
	go func() {
		line, err = p.ReadLine()
		close(done)
	}()

	waitRunning(t, backend)
	feedText(backend, "hello")
	backend.InjectKey(key.Event{Key: key.Enter})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLine did not return")
	}
	require.NoError(t, err)
	require.Equal(t, "hello", line)
}

func TestControlCClearsLineByDefault(t *testing.T) {
	backend := terminal.NewBridgeBackend(discardOutput{})
	p := New(WithBackend(backend))

	done := make(chan struct{})
	var line string
	var err error
	go func() {
		line, err = p.ReadLine()
		close(done)
	}()

	waitRunning(t, backend)
	feedText(backend, "abc")
	backend.InjectKey(key.Event{Key: key.ControlC})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		text := p.mu.buf.Text()
		p.mu.Unlock()
		if text == "" {
			break
		}
		time.Sleep(time.Millisecond)
	}
	p.mu.Lock()
	require.Equal(t, "", p.mu.buf.Text())
	p.mu.Unlock()

	feedText(backend, "xyz")
	backend.InjectKey(key.Event{Key: key.Enter})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLine did not return")
	}
	require.NoError(t, err)
	require.Equal(t, "xyz", line)
}

func TestReadLineInterruptOnControlCWithExitChecker(t *testing.T) {
	backend := terminal.NewBridgeBackend(discardOutput{})
	p := New(WithBackend(backend), WithExitChecker(func(text string, breakline bool) bool {
		return !breakline
	}))

	done := make(chan struct{})
	var err error
	go func() {
		_, err = p.ReadLine()
		close(done)
	}()

	waitRunning(t, backend)
	feedText(backend, "abc")
	backend.InjectKey(key.Event{Key: key.ControlC})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLine did not return")
	}
	require.ErrorIs(t, err, ErrInterrupted)
}

func TestExitCheckerCanRequestContinuation(t *testing.T) {
	backend := terminal.NewBridgeBackend(discardOutput{})
	calls := 0
	p := New(WithBackend(backend), WithExitChecker(func(text string, breakline bool) bool {
		calls++
		return calls > 1
	}))

	done := make(chan struct{})
	var line string
	var err error
	go func() {
		line, err = p.ReadLine()
		close(done)
	}()

	waitRunning(t, backend)
	feedText(backend, "a")
	backend.InjectKey(key.Event{Key: key.Enter})
	feedText(backend, "b")
	backend.InjectKey(key.Event{Key: key.Enter})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLine did not return")
	}
	require.NoError(t, err)
	require.Equal(t, "a\nb", line)
}

func TestCompletorPopulatesMenuOnTab(t *testing.T) {
	backend := terminal.NewBridgeBackend(discardOutput{})
	p := New(WithBackend(backend), WithCompletor(completion.NewStaticCompletor("help", "history", "halt")))

	done := make(chan struct{})
	go func() {
		p.ReadLine()
		close(done)
	}()

	waitRunning(t, backend)
	feedText(backend, "he")
	backend.InjectKey(key.Event{Key: key.Tab})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		menu := p.mu.menu
		p.mu.Unlock()
		if menu != nil {
			require.Len(t, menu.Suggestions, 1)
			backend.InjectKey(key.Event{Key: key.Enter})
			<-done
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("menu was never populated")
}
