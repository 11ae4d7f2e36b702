package keybind

import "strings"

const killRingMax = 10

// KillRing implements a fixed size kill ring, adapted from
// petermattis-prompt/kill_ring.go's killRing to operate on plain strings
// (callers own cursor/buffer interaction; this only accumulates and replays
// killed text).
type KillRing struct {
	entries []string
	killing bool
	yanking bool
}

// Append appends text to the current kill ring entry, starting a new entry
// if the previous command wasn't a kill.
func (r *KillRing) Append(e string) {
	r.maybeBeginKill()
	head := len(r.entries) - 1
	r.entries[head] += e
}

// Prepend prepends text to the current kill ring entry, starting a new
// entry if the previous command wasn't a kill.
func (r *KillRing) Prepend(e string) {
	r.maybeBeginKill()
	head := len(r.entries) - 1
	r.entries[head] = e + r.entries[head]
}

// Yank returns the current kill ring entry, or "" if empty.
func (r *KillRing) Yank() string {
	if len(r.entries) == 0 {
		return ""
	}
	r.yanking = true
	return r.entries[len(r.entries)-1]
}

// Rotate cycles the kill ring so the next-newest entry becomes current.
func (r *KillRing) Rotate() {
	if len(r.entries) == 0 {
		return
	}
	last := r.entries[len(r.entries)-1]
	copy(r.entries[1:], r.entries)
	r.entries[0] = last
}

// IsYanking reports whether the last operation was a Yank, used by
// yank-pop to decide whether it may act.
func (r *KillRing) IsYanking() bool { return r.yanking }

// NotKilling clears the kill-accumulation state; called by the dispatch
// ladder whenever a non-kill command runs.
func (r *KillRing) NotKilling() { r.killing = false }

// NotYanking clears the yank-replay state; called whenever a non-yank
// command runs.
func (r *KillRing) NotYanking() { r.yanking = false }

func (r *KillRing) maybeBeginKill() {
	if r.killing {
		return
	}
	r.killing = true
	if r.entries == nil {
		r.entries = make([]string, 0, killRingMax)
	}
	if len(r.entries) < cap(r.entries) {
		r.entries = append(r.entries, "")
	} else {
		copy(r.entries, r.entries[1:])
		r.entries[len(r.entries)-1] = ""
	}
}

func (r *KillRing) String() string {
	var buf strings.Builder
	buf.WriteString("[")
	for i := range r.entries {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(r.entries[len(r.entries)-i-1])
	}
	buf.WriteString("]")
	return buf.String()
}
