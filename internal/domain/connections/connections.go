package connections

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

var (
	ErrWrongGroupSize = errors.New("selection must contain exactly four words")
	ErrUnknownWord    = errors.New("selected word is not on the board")
)

const (
	GroupSize       = 4
	BoardCategories = 4
	BoardWords      = GroupSize * BoardCategories

	// shuffleAttempts bounds the reject-and-retry loop; after that the last
	// unchecked shuffle stands so the call always terminates.
	shuffleAttempts = 20
)

// Category is one answer group of four words.
type Category struct {
	Name  string
	Words []string
}

// Content is the category bank for one variant. Banks may hold more than
// four categories; assignment selects the four actually played.
type Content struct {
	Categories []Category
}

// CheckResult is the minimum the client learns from one group guess.
type CheckResult struct {
	Correct  bool
	Category string
	// OneAway is set when exactly three of the four words share a category,
	// matching the hint players expect from the genre.
	OneAway bool
}

// Check compares a four-word selection against the played categories.
func Check(categories []Category, selection []string) (CheckResult, error) {
	if len(selection) != GroupSize {
		return CheckResult{}, fmt.Errorf("%w: got %d", ErrWrongGroupSize, len(selection))
	}

	picked := make(map[string]bool, GroupSize)
	for _, w := range selection {
		picked[normalize(w)] = true
	}
	if len(picked) != GroupSize {
		return CheckResult{}, fmt.Errorf("%w: duplicate words in selection", ErrWrongGroupSize)
	}

	onBoard := make(map[string]bool, BoardWords)
	best := 0
	var result CheckResult
	for _, cat := range categories {
		hits := 0
		for _, w := range cat.Words {
			onBoard[normalize(w)] = true
			if picked[normalize(w)] {
				hits++
			}
		}
		if hits > best {
			best = hits
		}
		if hits == GroupSize {
			result = CheckResult{Correct: true, Category: cat.Name}
		}
	}

	for w := range picked {
		if !onBoard[w] {
			return CheckResult{}, fmt.Errorf("%w: %s", ErrUnknownWord, w)
		}
	}

	if !result.Correct && best == GroupSize-1 {
		result.OneAway = true
	}

	return result, nil
}

// Shuffle lays out the sixteen board words so that no contiguous window of
// four tiles spells out a complete category. It retries a bounded number of
// Fisher-Yates passes and falls back to the last unchecked order rather
// than looping forever.
func Shuffle(categories []Category, seed int64) []string {
	words := make([]string, 0, BoardWords)
	for _, cat := range categories {
		words = append(words, cat.Words...)
	}

	rng := rand.New(rand.NewSource(seed))
	for attempt := 0; attempt < shuffleAttempts; attempt++ {
		rng.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
		if !hasSolvedWindow(words, categories) {
			return words
		}
	}

	return words
}

func hasSolvedWindow(words []string, categories []Category) bool {
	for start := 0; start+GroupSize <= len(words); start++ {
		window := make(map[string]bool, GroupSize)
		for _, w := range words[start : start+GroupSize] {
			window[normalize(w)] = true
		}
		for _, cat := range categories {
			if containsAll(window, cat.Words) {
				return true
			}
		}
	}

	return false
}

func containsAll(set map[string]bool, words []string) bool {
	if len(words) != len(set) {
		return false
	}
	for _, w := range words {
		if !set[normalize(w)] {
			return false
		}
	}

	return true
}

func normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}
