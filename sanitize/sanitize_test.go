package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveAllDropsEscapes(t *testing.T) {
	out := Sanitize("a\x1b[31mb\x07c", RemoveAll)
	require.Equal(t, "abc", out)
}

func TestAllowBasicFormattingPassesNewlines(t *testing.T) {
	out := Sanitize("a\tb\nc\x1b[31md", AllowBasicFormatting)
	require.Equal(t, "a\tb\ncd", out)
}

func TestEscapeAllEscapesEverything(t *testing.T) {
	out := Sanitize("a\x07b", EscapeAll)
	require.Equal(t, "a\\x07b", out)
}

func TestIdempotent(t *testing.T) {
	for _, p := range []Policy{RemoveAll, RemoveDangerous, EscapeAll, AllowBasicFormatting} {
		x := "plain \x1b[31mred\x1b[0m \x07 text\ttab\nline"
		once := Sanitize(x, p)
		twice := Sanitize(once, p)
		require.Equalf(t, once, twice, "policy %d not idempotent", p)
	}
}

func TestOSCDropped(t *testing.T) {
	out := Sanitize("a\x1b]0;title\x07b", RemoveAll)
	require.Equal(t, "ab", out)
}
