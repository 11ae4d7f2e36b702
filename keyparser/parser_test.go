package keyparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-replkit/replkit/key"
)

func TestArrowParsingChunked(t *testing.T) {
	p := New()

	events := p.Feed([]byte{0x1b})
	require.Empty(t, events)

	events = p.Feed([]byte{0x5b, 0x41})
	require.Len(t, events, 1)
	require.Equal(t, key.Up, events[0].Key)
	require.Equal(t, []byte{0x1b, 0x5b, 0x41}, events[0].RawBytes)
}

func TestBareEscapeFlush(t *testing.T) {
	p := New()
	events := p.Feed([]byte{0x1b})
	require.Empty(t, events)

	events = p.Flush()
	require.Len(t, events, 1)
	require.Equal(t, key.Escape, events[0].Key)
	require.Equal(t, []byte{0x1b}, events[0].RawBytes)
}

func TestBracketedPaste(t *testing.T) {
	p := New()
	events := p.Feed([]byte("\x1b[200~abc\x1b[201~"))
	require.Len(t, events, 1)
	require.Equal(t, key.BracketedPaste, events[0].Key)
	require.Equal(t, "abc", events[0].Text)
}

func TestControlAndPrintable(t *testing.T) {
	p := New()
	events := p.Feed([]byte{0x03})
	require.Len(t, events, 1)
	require.Equal(t, key.ControlC, events[0].Key)

	events = p.Feed([]byte("a"))
	require.Len(t, events, 1)
	require.Equal(t, key.NotDefined, events[0].Key)
	require.Equal(t, "a", events[0].Text)
}

func TestMultibyteUTF8(t *testing.T) {
	p := New()
	s := "こ"
	var events []key.Event
	for i := 0; i < len(s); i++ {
		events = append(events, p.Feed([]byte{s[i]})...)
	}
	require.Len(t, events, 1)
	require.Equal(t, "こ", events[0].Text)
}

func TestFeedCSIAloneThenFollowup(t *testing.T) {
	p := New()
	events := p.Feed([]byte("\x1b["))
	require.Empty(t, events)
	events = p.Feed([]byte("A"))
	require.Len(t, events, 1)
	require.Equal(t, key.Up, events[0].Key)
}

func TestRoundTripChunkedVsWhole(t *testing.T) {
	input := []byte("\x1b[A\x1b[1;5Cx\x1b[200~hi\x1b[201~\r")

	whole := New().Feed(input)

	var chunked []key.Event
	p := New()
	for _, b := range input {
		chunked = append(chunked, p.Feed([]byte{b})...)
	}

	require.Equal(t, whole, chunked)
}

func TestEventsNeverHaveEmptyRawBytesExceptIgnore(t *testing.T) {
	p := New()
	events := p.Feed([]byte("\x1b[A\x07a"))
	for _, e := range events {
		if e.Key == key.Ignore {
			continue
		}
		require.NotEmptyf(t, e.RawBytes, "event %+v has empty raw bytes", e)
	}
}
