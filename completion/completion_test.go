package completion

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-replkit/replkit/document"
)

func TestStaticCompletorPrefixFilter(t *testing.T) {
	c := NewStaticCompletor("select", "insert", "update", "delete")
	doc := document.New("sel", 3, nil)
	got := c.Complete(doc)
	require.Len(t, got, 1)
	require.Equal(t, "select", got[0].Text)
}

func TestStaticCompletorEmptyWordReturnsAll(t *testing.T) {
	c := NewStaticCompletor("b", "a", "c")
	doc := document.New("", 0, nil)
	got := c.Complete(doc)
	require.Len(t, got, 3)
	require.Equal(t, "a", got[0].Text)
}

func TestFuzzyCompletorRanksSubsequence(t *testing.T) {
	c := &FuzzyCompletor{Suggestions: []Suggestion{{Text: "select"}, {Text: "insert"}}}
	doc := document.New("slt", 3, nil)
	got := c.Complete(doc)
	require.NotEmpty(t, got)
	require.Equal(t, "select", got[0].Text)
}

func TestFuncCompletorDelegates(t *testing.T) {
	c := &FuncCompletor{Func: func(doc document.Document) []Suggestion {
		return []Suggestion{{Text: doc.GetWordBeforeCursor()}}
	}}
	doc := document.New("hi", 2, nil)
	got := c.Complete(doc)
	require.Equal(t, "hi", got[0].Text)
}
