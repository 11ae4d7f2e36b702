package replkit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Debug tracing is grounded on petermattis-prompt/debug.go's
// env-var-gated, sync.Once-initialized sink: nothing is opened unless
// REPLKIT_DEBUG names a file to write to. A bare file name is created under
// os.TempDir().
var dbg = struct {
	sync.Once
	w   io.WriteCloser
	err error
}{}

func initDebug() {
	path := os.Getenv("REPLKIT_DEBUG")
	if path == "" {
		return
	}
	if filepath.Base(path) == path {
		path = filepath.Join(os.TempDir(), path)
	}
	f, err := os.Create(path)
	if err != nil {
		dbg.err = err
		return
	}
	dbg.w = f
}

func debugPrintf(format string, args ...interface{}) {
	dbg.Do(initDebug)
	if dbg.w == nil {
		return
	}
	fmt.Fprintf(dbg.w, format, args...)
}
