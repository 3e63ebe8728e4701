package verse

import (
	"math/rand"
	"strings"
)

// Content is the authoritative verse for one verse-scramble variant. The
// full text never leaves the server; clients only ever see tokens.
type Content struct {
	Text      string
	Reference string
}

// Tokens splits the verse into the orderable word tiles shown to the player.
func Tokens(text string) []string {
	return strings.Fields(strings.TrimSpace(text))
}

// Scramble returns a shuffled copy of tokens, deterministic for a given
// seed so a reloading player sees the same tile order. When the shuffle
// lands on the solved order it swaps the first two tiles rather than
// handing the player a pre-completed puzzle.
func Scramble(tokens []string, seed int64) []string {
	out := append([]string(nil), tokens...)
	if len(out) < 2 {
		return out
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	if equal(out, tokens) {
		out[0], out[1] = out[1], out[0]
	}

	return out
}

// Check reports whether the proposed ordering matches the verse exactly.
// All-or-nothing: partial information would leak sentence structure.
func Check(tokens, proposed []string) bool {
	return equal(tokens, proposed)
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
