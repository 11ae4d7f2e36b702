//go:build !windows

package replkit

import (
	"os"

	"github.com/go-replkit/replkit/terminal"
)

func defaultBackend() terminal.Backend {
	return terminal.NewPosixBackend(os.Stdin, os.Stdout)
}
