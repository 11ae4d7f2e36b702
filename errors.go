package replkit

import "errors"

// ErrInterrupted is returned by ReadLine/Run when a configured ExitChecker
// asks the read to abort on Control-C (see ExitChecker's breakline=false
// case), mirroring petermattis-prompt/prompt.go's io.EOF-on-cancel
// convention but with a distinct sentinel so callers can tell "end of
// input" apart from "user pressed the interrupt key."
var ErrInterrupted = errors.New("replkit: interrupted")
