package keyparser

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"

	"github.com/go-replkit/replkit/key"
)

// TestDecodeTableDriven drives Parser.Feed/Flush from testdata files in the
// cockroachdb/datadriven format petermattis-prompt/prompt_test.go uses for
// its own screen-rendering cases, here applied to the byte-stream decoding
// side instead: each "feed" block is a sequence of Go-quoted string literals
// (so \x1b-style escapes read naturally), and the expected output is one
// decoded key.Event per line.
func TestDecodeTableDriven(t *testing.T) {
	var p *Parser

	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		p = New()
		datadriven.RunTest(t, path, func(t *testing.T, td *datadriven.TestData) string {
			switch td.Cmd {
			case "reset":
				p = New()
				return ""

			case "feed":
				var events []key.Event
				for _, line := range strings.Split(td.Input, "\n") {
					line = strings.TrimSpace(line)
					if line == "" {
						continue
					}
					raw, err := strconv.Unquote(line)
					if err != nil {
						return fmt.Sprintf("error: bad quoted input %q: %v\n", line, err)
					}
					events = append(events, p.Feed([]byte(raw))...)
				}
				return formatEvents(events)

			case "flush":
				return formatEvents(p.Flush())
			}
			return fmt.Sprintf("error: unknown command %q\n", td.Cmd)
		})
	})
}

func formatEvents(events []key.Event) string {
	if len(events) == 0 {
		return "(none)\n"
	}
	var b strings.Builder
	for _, ev := range events {
		if ev.Text != "" {
			fmt.Fprintf(&b, "%s text=%q\n", ev.Key, ev.Text)
		} else {
			fmt.Fprintf(&b, "%s\n", ev.Key)
		}
	}
	return b.String()
}
