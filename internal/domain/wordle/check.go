package wordle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrWrongLength = errors.New("guess has wrong length")
	ErrNotALetter  = errors.New("guess contains non-letter characters")
	ErrBadAnswer   = errors.New("answer contains characters outside a-z")
)

// Mark is the per-letter verdict for one guess position.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Content is the authoritative solution for one word-guess variant.
type Content struct {
	Answer     string
	MaxGuesses int
}

const DefaultMaxGuesses = 6

// Check scores a full-length guess against the answer with the standard
// two-pass algorithm. Pass one marks exact positions and counts the unmatched
// answer letters; pass two resolves present/absent so a solution letter is
// never counted twice across guess positions.
func Check(answer, guess string) ([]Mark, error) {
	answer = Normalize(answer)
	guess = Normalize(guess)
	// The letter counters below index by answer byte, so an answer outside
	// a-z must be refused here rather than scored.
	if !isAlpha(answer) {
		return nil, ErrBadAnswer
	}
	if len(guess) != len(answer) {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrWrongLength, len(answer), len(guess))
	}
	if !isAlpha(guess) {
		return nil, ErrNotALetter
	}

	n := len(answer)
	marks := make([]Mark, n)
	var remaining [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			marks[i] = MarkCorrect
		} else {
			remaining[answer[i]-'a']++
		}
	}

	for i := 0; i < n; i++ {
		if marks[i] == MarkCorrect {
			continue
		}
		j := guess[i] - 'a'
		if remaining[j] > 0 {
			marks[i] = MarkPresent
			remaining[j]--
		} else {
			marks[i] = MarkAbsent
		}
	}

	return marks, nil
}

// Solved reports whether every mark is correct.
func Solved(marks []Mark) bool {
	for _, m := range marks {
		if m != MarkCorrect {
			return false
		}
	}
	return len(marks) > 0
}

func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// ValidAnswer reports whether an authored answer normalizes to a non-empty
// all a-z word, the only alphabet Check can score.
func ValidAnswer(answer string) bool {
	answer = Normalize(answer)
	return answer != "" && isAlpha(answer)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
