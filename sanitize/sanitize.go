// Package sanitize implements the untrusted-text filter described in
// spec.md §4.5, grounded on original_source/crates/replkit-core/src/
// console.rs's SafeTextFilter state machine. Sequence-boundary detection
// follows the same CSI/OSC/DCS introducer classification muesli/ansi uses
// for measuring (rather than stripping) ANSI runs.
package sanitize

import (
	"fmt"
	"strings"
)

// Policy selects how control bytes and escape sequences are handled.
type Policy int

const (
	// RemoveAll drops every escape sequence and every control byte except
	// Tab/LF/CR, which pass through unchanged.
	RemoveAll Policy = iota
	// RemoveDangerous drops CSI/OSC/DCS sequences and most control bytes but
	// passes Tab/LF/CR through unchanged.
	RemoveDangerous
	// EscapeAll rewrites every control byte and escape sequence as a visible
	// \xNN escape instead of dropping it.
	EscapeAll
	// AllowBasicFormatting passes Tab/LF/CR, BEL and BS through and drops
	// escape sequences and all other control bytes.
	AllowBasicFormatting
)

type state int

const (
	stateNormal state = iota
	stateEscape
	stateCSI
	stateOSC
	stateDCS
)

const esc = 0x1b

// Filter is a stateful sanitizer. Construct with New and call Write
// incrementally, or use Sanitize for a one-shot pass.
type Filter struct {
	policy Policy
	st     state
	seq    strings.Builder
}

// New constructs a Filter for policy.
func New(policy Policy) *Filter {
	return &Filter{policy: policy}
}

// Sanitize runs policy over the entirety of s in one pass.
func Sanitize(s string, policy Policy) string {
	f := New(policy)
	return f.Write(s)
}

// Write processes s and returns the sanitized output. The Filter retains
// state across calls so a caller may feed text incrementally (e.g. as it
// streams in) and still correctly handle a sequence split across calls.
func (f *Filter) Write(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		f.step(c, &out)
	}
	return out.String()
}

func (f *Filter) step(c byte, out *strings.Builder) {
	switch f.st {
	case stateNormal:
		f.stepNormal(c, out)
	case stateEscape:
		f.stepEscape(c, out)
	case stateCSI:
		f.stepSequence(c, out, isCSIFinal(c))
	case stateOSC:
		f.stepOSC(c, out)
	case stateDCS:
		f.stepSequence(c, out, c == esc)
	}
}

func isCSIFinal(c byte) bool { return c >= 0x40 && c <= 0x7e }

func (f *Filter) stepNormal(c byte, out *strings.Builder) {
	if c == esc {
		f.st = stateEscape
		f.seq.Reset()
		f.seq.WriteByte(c)
		return
	}

	switch {
	case c == '\t' || c == '\n' || c == '\r':
		switch f.policy {
		case EscapeAll:
			fmt.Fprintf(out, "\\x%02X", c)
		default:
			out.WriteByte(c)
		}

	case c == 0x07 || c == 0x08:
		switch f.policy {
		case EscapeAll:
			fmt.Fprintf(out, "\\x%02X", c)
		case AllowBasicFormatting:
			out.WriteByte(c)
		default:
			// dropped
		}

	case c <= 0x1f || c == 0x7f:
		switch f.policy {
		case EscapeAll:
			fmt.Fprintf(out, "\\x%02X", c)
		default:
			// dropped under RemoveAll, RemoveDangerous, and
			// AllowBasicFormatting alike
		}

	default:
		out.WriteByte(c)
	}
}

func (f *Filter) stepEscape(c byte, out *strings.Builder) {
	f.seq.WriteByte(c)
	switch c {
	case '[':
		f.st = stateCSI
	case ']':
		f.st = stateOSC
	case 'P':
		f.st = stateDCS
	default:
		f.emitSeqDone(out)
		f.st = stateNormal
	}
}

func (f *Filter) stepSequence(c byte, out *strings.Builder, final bool) {
	f.seq.WriteByte(c)
	if final {
		f.emitSeqDone(out)
		f.st = stateNormal
	}
}

func (f *Filter) stepOSC(c byte, out *strings.Builder) {
	f.seq.WriteByte(c)
	if c == 0x07 {
		f.emitSeqDone(out)
		f.st = stateNormal
		return
	}
	s := f.seq.String()
	if len(s) >= 2 && s[len(s)-1] == '\\' && s[len(s)-2] == esc {
		f.emitSeqDone(out)
		f.st = stateNormal
	}
}

func (f *Filter) emitSeqDone(out *strings.Builder) {
	if f.policy == EscapeAll {
		for i := 0; i < f.seq.Len(); i++ {
			fmt.Fprintf(out, "\\x%02X", f.seq.String()[i])
		}
	}
	f.seq.Reset()
}
