package whoami

import (
	"strings"
	"unicode"
)

// Content is the authoritative answer for one who-am-I variant.
type Content struct {
	Answer string
	Hint   string
}

const MaskRune = '_'

// DefaultGuessAllowance is the number of wrong letters a player can burn
// before the scoring bonus bottoms out.
const DefaultGuessAllowance = 6

// Check returns every zero-based rune index at which the guessed letter
// occurs in the answer, case-insensitive. Non-letter guesses never match.
// Positions are rune offsets so they line up with the Mask slots the client
// renders.
func Check(answer string, letter rune) []int {
	letter = unicode.ToLower(letter)
	if !unicode.IsLetter(letter) {
		return nil
	}

	var positions []int
	idx := 0
	for _, r := range strings.ToLower(answer) {
		if r == letter {
			positions = append(positions, idx)
		}
		idx++
	}

	return positions
}

// Mask replaces every letter or digit of the answer with MaskRune, keeping
// spaces and punctuation so the client can render the word shape without
// learning any character of it.
func Mask(answer string) string {
	out := []rune(answer)
	for i, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out[i] = MaskRune
		}
	}

	return string(out)
}

// Solved reports whether the set of confirmed letters covers the answer.
func Solved(answer string, revealed map[rune]bool) bool {
	for _, r := range strings.ToLower(answer) {
		if !unicode.IsLetter(r) {
			continue
		}
		if !revealed[r] {
			return false
		}
	}

	return true
}
