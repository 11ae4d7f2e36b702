package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-replkit/replkit/completion"
	"github.com/go-replkit/replkit/document"
)

func TestRenderSingleLineContainsTextAndErase(t *testing.T) {
	r := New(80, 24)
	doc := document.New("hello", 5, nil)
	out := r.Render("> ", doc, nil)
	s := string(out)
	require.Contains(t, s, "> hello")
	require.Contains(t, s, eraseLineToRight)
}

func TestRenderWrapsAtWidth(t *testing.T) {
	r := New(5, 24)
	doc := document.New("abcdefgh", 8, nil)
	out := r.Render("", doc, nil)
	s := string(out)
	require.Equal(t, 2, strings.Count(s, "abcde")+strings.Count(s, "fgh"))
}

func TestRenderMenuHighlightsSelected(t *testing.T) {
	r := New(80, 24)
	doc := document.New("f", 1, nil)
	menu := &Menu{
		Suggestions: []completion.Suggestion{{Text: "foo"}, {Text: "foobar"}},
		Selected:    1,
	}
	out := r.Render("", doc, menu)
	s := string(out)
	require.Contains(t, s, "foo")
	require.Contains(t, s, "foobar")
	require.Contains(t, s, selectedAttr)
}

func TestCellForOffsetAfterNewline(t *testing.T) {
	rows := wrapRows("ab\ncd", 80)
	row, col := cellForOffset(rows, 4)
	require.Equal(t, 1, row)
	require.Equal(t, 1, col)
}

func TestWrapRowsRunesConsumedSumsToInput(t *testing.T) {
	text := "hello\nworld wrap this line please"
	rows := wrapRows(text, 10)
	total := 0
	for _, rw := range rows {
		total += rw.runesConsumed
	}
	require.Equal(t, len([]rune(text)), total)
}
