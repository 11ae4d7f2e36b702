//go:build windows

package replkit

import "github.com/go-replkit/replkit/terminal"

func defaultBackend() terminal.Backend {
	b, err := terminal.NewWindowsBackend()
	if err != nil {
		panic(err)
	}
	return b
}
