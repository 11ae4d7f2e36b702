// Package completion implements the suggestion-provider capability of
// spec.md §4.10. petermattis-prompt/completion.go only carries a TODO list
// for this ("tab completion", "show list of completions") — this package
// builds what that TODO describes, static and function-backed providers in
// the shape petermattis-prompt's command table already suggests, and a
// fuzzy-ranked provider using github.com/sahilm/fuzzy and
// github.com/samber/lo as used elsewhere in the retrieved pack for
// list filtering/scoring.
package completion

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/go-replkit/replkit/document"
)

// Suggestion is a single completion candidate.
type Suggestion struct {
	Text        string
	Description string
}

// Completor produces suggestions for the current document state.
type Completor interface {
	Complete(doc document.Document) []Suggestion
}

// CompletorFunc adapts a plain function to the Completor interface.
type CompletorFunc func(doc document.Document) []Suggestion

func (f CompletorFunc) Complete(doc document.Document) []Suggestion { return f(doc) }

// StaticCompletor returns every suggestion whose Text has the word before
// the cursor as a prefix, case-insensitively, sorted alphabetically.
type StaticCompletor struct {
	Suggestions []Suggestion
}

// NewStaticCompletor builds a StaticCompletor from texts with no descriptions.
func NewStaticCompletor(texts ...string) *StaticCompletor {
	suggestions := make([]Suggestion, len(texts))
	for i, t := range texts {
		suggestions[i] = Suggestion{Text: t}
	}
	return &StaticCompletor{Suggestions: suggestions}
}

func (c *StaticCompletor) Complete(doc document.Document) []Suggestion {
	word := doc.GetWordBeforeCursor()
	if word == "" {
		out := append([]Suggestion(nil), c.Suggestions...)
		sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
		return out
	}
	lower := strings.ToLower(word)
	matched := lo.Filter(c.Suggestions, func(s Suggestion, _ int) bool {
		return strings.HasPrefix(strings.ToLower(s.Text), lower)
	})
	sort.Slice(matched, func(i, j int) bool { return matched[i].Text < matched[j].Text })
	return matched
}

// FuzzyCompletor ranks a fixed candidate set by fuzzy match against the word
// before the cursor, using github.com/sahilm/fuzzy's subsequence scoring.
type FuzzyCompletor struct {
	Suggestions []Suggestion
}

func (c *FuzzyCompletor) Complete(doc document.Document) []Suggestion {
	word := doc.GetWordBeforeCursor()
	if word == "" {
		return append([]Suggestion(nil), c.Suggestions...)
	}

	names := lo.Map(c.Suggestions, func(s Suggestion, _ int) string { return s.Text })
	matches := fuzzy.Find(word, names)

	out := make([]Suggestion, len(matches))
	for i, m := range matches {
		out[i] = c.Suggestions[m.Index]
	}
	return out
}

// FuncCompletor calls a user-supplied function to compute suggestions fresh
// for each document state, for sources that can't be precomputed (e.g. a
// filesystem path completer or a remote lookup).
type FuncCompletor struct {
	Func func(doc document.Document) []Suggestion
}

func (c *FuncCompletor) Complete(doc document.Document) []Suggestion {
	if c.Func == nil {
		return nil
	}
	return c.Func(doc)
}
