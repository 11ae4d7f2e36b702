package terminal

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/go-replkit/replkit/sanitize"
)

// posixOutput implements Output by writing ANSI escape sequences to a
// buffered writer. Cursor motion and clear codes follow the exact sequence
// set petermattis-prompt/prompt.go documents as the minimal terminal
// contract (cursor-up ESC[A, cursor-down ESC[B, cursor-right ESC[C,
// cursor-left ESC[D, cursor-home ESC[H, erase-line-to-right ESC[K,
// erase-screen ESC[2J); styling, alternate-screen, and cursor-visibility
// sequences are emitted through github.com/muesli/termenv so the codes stay
// consistent with its color-profile downsampling.
type posixOutput struct {
	in      *os.File
	out     *os.File
	w       *bufio.Writer
	profile termenv.Profile
}

func newPosixOutput(in, out *os.File) *posixOutput {
	return &posixOutput{
		in:      in,
		out:     out,
		w:       bufio.NewWriter(out),
		profile: termenv.ColorProfile(),
	}
}

func (o *posixOutput) WriteText(s string) error {
	_, err := o.w.WriteString(s)
	return err
}

func (o *posixOutput) WriteSafeText(s string) error {
	return o.WriteText(sanitize.Sanitize(s, sanitize.AllowBasicFormatting))
}

func (o *posixOutput) WriteStyledText(s string, style Style) error {
	if err := o.SetStyle(style); err != nil {
		return err
	}
	if err := o.WriteText(s); err != nil {
		return err
	}
	return o.ResetStyle()
}

func (o *posixOutput) MoveCursorTo(row, col int) error {
	_, err := fmt.Fprintf(o.w, "\x1b[%d;%dH", row+1, col+1)
	return err
}

func (o *posixOutput) MoveCursorRelative(dr, dc int) error {
	if dr > 0 {
		fmt.Fprintf(o.w, "\x1b[%dB", dr)
	} else if dr < 0 {
		fmt.Fprintf(o.w, "\x1b[%dA", -dr)
	}
	if dc > 0 {
		fmt.Fprintf(o.w, "\x1b[%dC", dc)
	} else if dc < 0 {
		fmt.Fprintf(o.w, "\x1b[%dD", -dc)
	}
	return nil
}

func (o *posixOutput) Clear(ct ClearType) error {
	var seq string
	switch ct {
	case ClearAll:
		seq = "\x1b[2J\x1b[H"
	case ClearFromCursor:
		seq = "\x1b[0J"
	case ClearToCursor:
		seq = "\x1b[1J"
	case ClearCurrentLine:
		seq = "\x1b[2K"
	case ClearFromCursorToEndOfLine:
		seq = "\x1b[K"
	case ClearFromBeginningOfLineToCursor:
		seq = "\x1b[1K"
	default:
		return &UnsupportedFeatureError{Feature: "Clear", Platform: "posix"}
	}
	_, err := o.w.WriteString(seq)
	return err
}

func (o *posixOutput) SetStyle(style Style) error {
	var codes []string
	if style.Bold {
		codes = append(codes, "1")
	}
	if style.Dim {
		codes = append(codes, "2")
	}
	if style.Italic {
		codes = append(codes, "3")
	}
	if style.Underline {
		codes = append(codes, "4")
	}
	if style.Reverse {
		codes = append(codes, "7")
	}
	if style.Strikethrough {
		codes = append(codes, "9")
	}
	if style.Foreground.Mode != ColorNone {
		codes = append(codes, o.profile.Color(colorSeqArg(style.Foreground)).Sequence(false))
	}
	if style.Background.Mode != ColorNone {
		codes = append(codes, o.profile.Color(colorSeqArg(style.Background)).Sequence(true))
	}
	for _, code := range codes {
		if _, err := fmt.Fprintf(o.w, "%s%sm", termenv.CSI, code); err != nil {
			return err
		}
	}
	return nil
}

func colorSeqArg(c Color) string {
	switch c.Mode {
	case Color8, Color16, Color256:
		return fmt.Sprintf("%d", c.Index)
	case ColorRGB:
		return colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}.Hex()
	default:
		return ""
	}
}

func (o *posixOutput) ResetStyle() error {
	_, err := o.w.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	return err
}

func (o *posixOutput) SetAlternateScreen(on bool) error {
	if on {
		_, err := o.w.WriteString(termenv.CSI + "?1049h")
		return err
	}
	_, err := o.w.WriteString(termenv.CSI + "?1049l")
	return err
}

func (o *posixOutput) SetCursorVisible(visible bool) error {
	if visible {
		_, err := o.w.WriteString(termenv.CSI + "?25h")
		return err
	}
	_, err := o.w.WriteString(termenv.CSI + "?25l")
	return err
}

func (o *posixOutput) Flush() error {
	return o.w.Flush()
}

// GetCursorPosition requests a cursor-position report (CPR) and parses the
// ESC[row;colR reply. This races with an active event loop reading from the
// same descriptor; callers that run StartEventLoop should prefer resize/key
// callbacks over polling this directly.
func (o *posixOutput) GetCursorPosition() (row, col int, err error) {
	if err := o.Flush(); err != nil {
		return 0, 0, err
	}
	if _, err := o.out.WriteString("\x1b[6n"); err != nil {
		return 0, 0, &IOError{Op: "WriteString", Err: err}
	}

	_ = o.in.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	defer o.in.SetReadDeadline(time.Time{})

	var buf [32]byte
	n, err := o.in.Read(buf[:])
	if err != nil {
		return 0, 0, &IOError{Op: "Read", Err: err}
	}

	reply := buf[:n]
	var r, c int
	if _, scanErr := fmt.Sscanf(string(reply), "\x1b[%d;%dR", &r, &c); scanErr != nil {
		return 0, 0, &IOError{Op: "parse CPR reply", Err: scanErr}
	}
	return r - 1, c - 1, nil
}
