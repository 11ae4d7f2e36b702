package seqtable

import "github.com/go-replkit/replkit/key"

// buildEntries enumerates every escape sequence this decoder recognizes.
// Grounded on petermattis-prompt/input.go's supportedSeqs map, extended to
// the full key.Key vocabulary (shift-arrows, F-keys, CPR, mouse, bracketed
// paste) named by spec.md §6.
func buildEntries() []entry {
	e := []entry{
		// Arrows: SS3 and CSI forms, plus ctrl/alt variants.
		{[]byte("\x1bOA"), key.Up},
		{[]byte("\x1bOB"), key.Down},
		{[]byte("\x1bOC"), key.Right},
		{[]byte("\x1bOD"), key.Left},
		{[]byte("\x1b[A"), key.Up},
		{[]byte("\x1b[B"), key.Down},
		{[]byte("\x1b[C"), key.Right},
		{[]byte("\x1b[D"), key.Left},
		{[]byte("\x1bOa"), key.ControlUp},
		{[]byte("\x1bOb"), key.ControlDown},
		{[]byte("\x1bOc"), key.ControlRight},
		{[]byte("\x1bOd"), key.ControlLeft},
		{[]byte("\x1b[1;5A"), key.ControlUp},
		{[]byte("\x1b[1;5B"), key.ControlDown},
		{[]byte("\x1b[1;5C"), key.ControlRight},
		{[]byte("\x1b[1;5D"), key.ControlLeft},
		{[]byte("\x1b[1;2A"), key.ShiftUp},
		{[]byte("\x1b[1;2B"), key.ShiftDown},
		{[]byte("\x1b[1;2C"), key.ShiftRight},
		{[]byte("\x1b[1;2D"), key.ShiftLeft},
		{[]byte("\x1b[1;3A"), key.Up},
		{[]byte("\x1b[1;3B"), key.Down},
		{[]byte("\x1b[1;3C"), key.Right},
		{[]byte("\x1b[1;3D"), key.Left},
		{[]byte("\x1b[1;9A"), key.Up},
		{[]byte("\x1b[1;9B"), key.Down},
		{[]byte("\x1b[1;9C"), key.Right},
		{[]byte("\x1b[1;9D"), key.Left},

		// Home/End.
		{[]byte("\x1bOH"), key.Home},
		{[]byte("\x1bOF"), key.End},
		{[]byte("\x1b[H"), key.Home},
		{[]byte("\x1b[F"), key.End},
		{[]byte("\x1b[1~"), key.Home},
		{[]byte("\x1b[7~"), key.Home},
		{[]byte("\x1b[4~"), key.End},
		{[]byte("\x1b[8~"), key.End},

		// Insert/Delete/PageUp/PageDown.
		{[]byte("\x1b[2~"), key.Insert},
		{[]byte("\x1b[3~"), key.Delete},
		{[]byte("\x1b[3;2~"), key.ShiftDelete},
		{[]byte("\x1b[3;5~"), key.ControlDelete},
		{[]byte("\x1b[5~"), key.PageUp},
		{[]byte("\x1b[6~"), key.PageDown},

		// BackTab.
		{[]byte("\x1b[Z"), key.BackTab},

		// Function keys: SS3 forms F1-F4, CSI-tilde for F1-F20.
		{[]byte("\x1bOP"), key.F1},
		{[]byte("\x1bOQ"), key.F2},
		{[]byte("\x1bOR"), key.F3},
		{[]byte("\x1bOS"), key.F4},
		{[]byte("\x1b[11~"), key.F1},
		{[]byte("\x1b[12~"), key.F2},
		{[]byte("\x1b[13~"), key.F3},
		{[]byte("\x1b[14~"), key.F4},
		{[]byte("\x1b[15~"), key.F5},
		{[]byte("\x1b[17~"), key.F6},
		{[]byte("\x1b[18~"), key.F7},
		{[]byte("\x1b[19~"), key.F8},
		{[]byte("\x1b[20~"), key.F9},
		{[]byte("\x1b[21~"), key.F10},
		{[]byte("\x1b[23~"), key.F11},
		{[]byte("\x1b[24~"), key.F12},
		{[]byte("\x1b[25~"), key.F13},
		{[]byte("\x1b[26~"), key.F14},
		{[]byte("\x1b[28~"), key.F15},
		{[]byte("\x1b[29~"), key.F16},
		{[]byte("\x1b[31~"), key.F17},
		{[]byte("\x1b[32~"), key.F18},
		{[]byte("\x1b[33~"), key.F19},
		{[]byte("\x1b[34~"), key.F20},

		// Cursor Position Report response: ESC [ row ; col R. Row/col are
		// variable digits, so this is just a concrete anchor entry for tests;
		// keyparser.stepCSI matches the general pattern directly.
		{[]byte("\x1b[1;1R"), key.CPRResponse},

		// Mouse prefixes (forwarded opaque; the parser captures the full
		// variable-length sequence once it sees these introducers).
		{[]byte("\x1b[M"), key.Vt100MouseEvent},
		{[]byte("\x1b[<"), key.Vt100MouseEvent},

		// Bracketed paste delimiters.
		{[]byte("\x1b[200~"), key.BracketedPaste},
		{[]byte("\x1b[201~"), key.BracketedPaste},
	}
	return e
}
