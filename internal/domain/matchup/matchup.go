package matchup

import (
	"math/rand"
	"strings"
)

// Pair is one matching left/right card pair.
type Pair struct {
	Left  string
	Right string
}

// Content is the pair bank for one variant. Banks may exceed BoardPairs;
// assignment selects the pairs actually dealt.
type Content struct {
	Pairs []Pair
}

const BoardPairs = 6

// Check reports whether left and right belong to the same pair.
func Check(pairs []Pair, left, right string) bool {
	left = normalize(left)
	right = normalize(right)
	for _, p := range pairs {
		if normalize(p.Left) == left && normalize(p.Right) == right {
			return true
		}
	}

	return false
}

// Columns deals the two shuffled card columns shown to the player. The two
// columns use distinct streams from the same seed so neither column's order
// reveals the other's.
func Columns(pairs []Pair, seed int64) (lefts, rights []string) {
	lefts = make([]string, 0, len(pairs))
	rights = make([]string, 0, len(pairs))
	for _, p := range pairs {
		lefts = append(lefts, p.Left)
		rights = append(rights, p.Right)
	}

	rand.New(rand.NewSource(seed)).Shuffle(len(lefts), func(i, j int) {
		lefts[i], lefts[j] = lefts[j], lefts[i]
	})
	rand.New(rand.NewSource(seed+1)).Shuffle(len(rights), func(i, j int) {
		rights[i], rights[j] = rights[j], rights[i]
	})

	return lefts, rights
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
