package runeutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuneCount(t *testing.T) {
	require.Equal(t, 0, RuneCount(""))
	require.Equal(t, 5, RuneCount("hello"))
	require.Equal(t, 5, RuneCount("こんにちは"))
	require.Equal(t, 2, RuneCount("🦀🚀"))
}

func TestDisplayWidth(t *testing.T) {
	require.Equal(t, 0, DisplayWidth(""))
	require.Equal(t, 5, DisplayWidth("hello"))
	require.Equal(t, 10, DisplayWidth("こんにちは"))
	require.Equal(t, 2, DisplayWidth("🦀"))
	require.Equal(t, 0, DisplayWidth("\n"))
}

func TestRuneSlice(t *testing.T) {
	require.Equal(t, "hello", RuneSlice("hello", 0, 5))
	require.Equal(t, "ell", RuneSlice("hello", 1, 4))
	require.Equal(t, "", RuneSlice("hello", 0, 0))
	require.Equal(t, "んに", RuneSlice("こんにちは", 1, 3))
	require.Equal(t, "", RuneSlice("hello", 10, 20))
	require.Equal(t, "", RuneSlice("hello", 3, 3))
	require.Equal(t, "", RuneSlice("hello", 2, 1))

	// round-trip invariant from spec §8: slice(0,i) + slice(i,n) == s
	s := "Hello 世界 🦀"
	n := RuneCount(s)
	for i := 0; i <= n; i++ {
		require.Equal(t, s, RuneSlice(s, 0, i)+RuneSlice(s, i, n))
	}
}

func TestCharAtRuneIndex(t *testing.T) {
	r, ok := CharAtRuneIndex("hello", 0)
	require.True(t, ok)
	require.Equal(t, 'h', r)

	_, ok = CharAtRuneIndex("hello", 5)
	require.False(t, ok)

	r, ok = CharAtRuneIndex("こんにちは", 1)
	require.True(t, ok)
	require.Equal(t, 'ん', r)
}

func TestByteIndexFromRuneIndex(t *testing.T) {
	require.Equal(t, 0, ByteIndexFromRuneIndex("hello", 0))
	require.Equal(t, 2, ByteIndexFromRuneIndex("hello", 2))
	require.Equal(t, 3, ByteIndexFromRuneIndex("こんにちは", 1))
	require.Equal(t, 6, ByteIndexFromRuneIndex("こんにちは", 2))
	require.Equal(t, 5, ByteIndexFromRuneIndex("hello", 10))
	require.Equal(t, 0, ByteIndexFromRuneIndex("", 5))
}

func TestGraphemeBoundaries(t *testing.T) {
	s := "こん"
	require.Equal(t, 1, NextGraphemeEnd(s, 0))
	require.Equal(t, 1, PrevGraphemeStart(s, 2))
}
