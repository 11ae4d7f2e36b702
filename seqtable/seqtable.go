// Package seqtable maps terminal escape byte sequences onto logical keys.
// It is grounded on petermattis-prompt's input.go seqTrie, generalized to
// key.Key values and a three-way match result per spec §4.2.
package seqtable

import "github.com/go-replkit/replkit/key"

// MatchResult classifies the outcome of a Lookup.
type MatchResult int

const (
	// NoMatch means bytes cannot possibly be (a prefix of) any recognized
	// sequence.
	NoMatch MatchResult = iota
	// Prefix means bytes so far match the start of one or more recognized
	// sequences, but no sequence is complete yet; more bytes are needed.
	Prefix
	// Exact means bytes (cover a prefix of the input that) exactly matches a
	// recognized sequence.
	Exact
)

type node struct {
	children map[byte]*node
	key      key.Key
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[byte]*node)}
}

func (n *node) add(seq []byte, k key.Key) {
	cur := n
	for _, b := range seq {
		child, ok := cur.children[b]
		if !ok {
			child = newNode()
			cur.children[b] = child
		}
		cur = child
	}
	cur.terminal = true
	cur.key = k
}

// Table is a precomputed byte-sequence-to-key matcher. The zero value is not
// usable; construct one with New.
type Table struct {
	root *node
}

// entry describes one recognized sequence. Entries sharing a terminal node
// path are fine; the construction rule from spec §4.2 (no two same-key
// entries where neither is a prefix of the other, unless one length
// dominates) is satisfied because every sequence below is distinct and the
// trie naturally resolves the longest terminal reached.
type entry struct {
	seq []byte
	key key.Key
}

// Default is the sequence table recognizing every escape form spec.md §6
// enumerates: CSI/SS3 arrows, shift/ctrl-arrow variants, Home/End/Insert/
// Delete/PageUp/PageDown in both tilde and letter forms, F1-F4 (SS3),
// F1-F20 (CSI-tilde), CPR response, mouse prefixes, and bracketed-paste
// delimiters.
var Default = New(buildEntries())

// New constructs a Table from a list of (sequence, key) pairs. The entry
// type is unexported, so only this package can supply entries; other
// packages use Default (New(nil) yields an empty table).
func New(entries []entry) *Table {
	root := newNode()
	for _, e := range entries {
		root.add(e.seq, e.key)
	}
	return &Table{root: root}
}

// Lookup walks buf against the table, returning the classification and (for
// Exact) the key and number of bytes consumed.
func (t *Table) Lookup(buf []byte) (result MatchResult, k key.Key, consumed int) {
	cur := t.root
	lastExactKey := key.NotDefined
	lastExactLen := 0
	for i, b := range buf {
		child, ok := cur.children[b]
		if !ok {
			if lastExactLen > 0 {
				return Exact, lastExactKey, lastExactLen
			}
			return NoMatch, key.NotDefined, 0
		}
		cur = child
		if cur.terminal {
			lastExactKey = cur.key
			lastExactLen = i + 1
			if len(cur.children) == 0 {
				return Exact, lastExactKey, lastExactLen
			}
		}
	}
	if lastExactLen > 0 {
		// We reached end of buffer exactly on a terminal, but the node also has
		// children (a longer sequence could still match with more bytes) --
		// spec's tie-break says the longer sequence wins, so we report Prefix
		// unless the caller is done feeding (LongestMatch handles that case).
		if len(cur.children) > 0 {
			return Prefix, key.NotDefined, 0
		}
		return Exact, lastExactKey, lastExactLen
	}
	return Prefix, key.NotDefined, 0
}

// LongestMatch scans for the longest exact match that is a prefix of buf,
// per spec §4.2. Used by the parser when it must resolve a sequence without
// waiting for more bytes (e.g. at Flush time).
func (t *Table) LongestMatch(buf []byte) (k key.Key, consumed int, ok bool) {
	cur := t.root
	bestKey := key.NotDefined
	bestLen := 0
	for i, b := range buf {
		child, exists := cur.children[b]
		if !exists {
			break
		}
		cur = child
		if cur.terminal {
			bestKey = cur.key
			bestLen = i + 1
		}
	}
	if bestLen == 0 {
		return key.NotDefined, 0, false
	}
	return bestKey, bestLen, true
}
