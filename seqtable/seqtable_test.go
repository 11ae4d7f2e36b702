package seqtable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-replkit/replkit/key"
)

func TestLookupExact(t *testing.T) {
	result, k, n := Default.Lookup([]byte("\x1b[A"))
	require.Equal(t, Exact, result)
	require.Equal(t, key.Up, k)
	require.Equal(t, 3, n)
}

func TestLookupPrefix(t *testing.T) {
	result, _, _ := Default.Lookup([]byte("\x1b["))
	require.Equal(t, Prefix, result)
}

func TestLookupNoMatch(t *testing.T) {
	result, _, _ := Default.Lookup([]byte("\x1bQ"))
	require.Equal(t, NoMatch, result)
}

func TestLongestMatchPrefersLonger(t *testing.T) {
	k, n, ok := Default.LongestMatch([]byte("\x1b[1;5A"))
	require.True(t, ok)
	require.Equal(t, key.ControlUp, k)
	require.Equal(t, 6, n)
}
