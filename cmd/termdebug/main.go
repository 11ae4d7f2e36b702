// Command termdebug runs a subprocess under a pty and logs every byte that
// crosses it, the same way petermattis-prompt/cmd/termdebug did, but decodes
// the stdin side through replkit's own keyparser.Parser so the debug log
// shows the key.Event sequence an input backend would actually produce
// instead of just the raw escape bytes.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/go-replkit/replkit/key"
	"github.com/go-replkit/replkit/keyparser"
)

func debugCopy(dst io.Writer, src io.Reader, debug io.Writer, name string) {
	buf := make([]byte, 4096)
	for {
		nr, errR := src.Read(buf)
		if nr > 0 {
			fmt.Fprintf(debug, "%s: %q\n", name, buf[:nr])
			nw, errW := dst.Write(buf[:nr])
			if nw < 0 || nr < nw {
				fmt.Fprintf(debug, "%s: invalid write (nr=%d, nw=%d)\n", name, nr, nw)
			}
			if errW != nil {
				fmt.Fprintf(debug, "%s: write error: %+v\n", name, errW)
				break
			}
			if nr != nw {
				fmt.Fprintf(debug, "%s: short write (nr=%d, nw=%d)\n", name, nr, nw)
				break
			}
		}
		if errR != nil {
			if errR != io.EOF {
				fmt.Fprintf(debug, "%s: read error: %+v\n", name, errR)
			}
			break
		}
	}
}

// debugCopyDecoded is debugCopy's stdin-side variant: it feeds everything
// read from src through a keyparser.Parser and logs the decoded key.Event
// stream alongside the raw bytes, so the log reads the way a BridgeBackend
// consumer would see it rather than as an opaque byte dump.
func debugCopyDecoded(dst io.Writer, src io.Reader, debug io.Writer, name string) {
	p := keyparser.New()
	buf := make([]byte, 4096)
	for {
		nr, errR := src.Read(buf)
		if nr > 0 {
			fmt.Fprintf(debug, "%s: %q\n", name, buf[:nr])
			for _, ev := range p.Feed(buf[:nr]) {
				logEvent(debug, name, ev)
			}
			nw, errW := dst.Write(buf[:nr])
			if nw < 0 || nr < nw {
				fmt.Fprintf(debug, "%s: invalid write (nr=%d, nw=%d)\n", name, nr, nw)
			}
			if errW != nil {
				fmt.Fprintf(debug, "%s: write error: %+v\n", name, errW)
				break
			}
			if nr != nw {
				fmt.Fprintf(debug, "%s: short write (nr=%d, nw=%d)\n", name, nr, nw)
				break
			}
		}
		if errR != nil {
			if errR != io.EOF {
				fmt.Fprintf(debug, "%s: read error: %+v\n", name, errR)
			}
			break
		}
	}
	for _, ev := range p.Flush() {
		logEvent(debug, name, ev)
	}
}

func logEvent(debug io.Writer, name string, ev key.Event) {
	if ev.Text != "" {
		fmt.Fprintf(debug, "%s: key=%s text=%q\n", name, ev.Key, ev.Text)
		return
	}
	fmt.Fprintf(debug, "%s: key=%s\n", name, ev.Key)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <command> [<args>]\n", os.Args[0])
		os.Exit(1)
	}

	c := exec.Command(os.Args[1], os.Args[2:]...)

	// Reads the same REPLKIT_DEBUG variable as debug.go, but uses its value
	// as a path as given (a bare name lands in the working directory, not
	// os.TempDir()), defaulting to the same debug.txt filename the teacher's
	// termdebug hardcoded.
	path := os.Getenv("REPLKIT_DEBUG")
	if path == "" {
		path = "debug.txt"
	}
	debug, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer debug.Close()

	// Start the command with a pty.
	ptmx, err := pty.Start(c)
	if err != nil {
		panic(err)
	}
	// Make sure to close the pty at the end.
	defer func() { _ = ptmx.Close() }() // Best effort.

	// Handle pty size.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	go func() {
		for range ch {
			if err := pty.InheritSize(os.Stdin, ptmx); err != nil {
				log.Printf("error resizing pty: %s", err)
			}
		}
	}()
	ch <- syscall.SIGWINCH                        // Initial resize.
	defer func() { signal.Stop(ch); close(ch) }() // Cleanup signals when done.

	// Set stdin in raw mode.
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		panic(err)
	}
	defer func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }() // Best effort.

	// Copy stdin to the pty, decoding through keyparser as it goes, and the
	// pty to stdout.
	// NOTE: The goroutine will keep reading until the next keystroke before returning.
	go func() {
		debugCopyDecoded(ptmx, os.Stdin, debug, "stdin")
	}()

	debugCopy(os.Stdout, ptmx, debug, "stdout")
}
