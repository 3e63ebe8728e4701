package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bereanlabs/daily-puzzles/internal/domain/wordle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordsearch"
)

// assignedWordleAnswer peeks at the stored assignment to learn which fixture
// variant the user drew.
func assignedWordleAnswer(t *testing.T, svc *testServices, userID string) string {
	t.Helper()
	stored, found, err := svc.assignments.GetByUserAndGame(context.Background(), userID, wordleDefinition().GameID)
	if err != nil || !found {
		t.Fatalf("assignment missing: found=%v err=%v", found, err)
	}
	for _, v := range wordleDefinition().Variants {
		if v.ID == stored.VariantID {
			return v.Wordle.Answer
		}
	}
	t.Fatalf("unknown variant %s", stored.VariantID)
	return ""
}

func TestVerifyService_Wordle(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := wordleDefinition().GameID

	if _, err := svc.assignmentSvc.Resolve(ctx, "user-1", gameID); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	answer := assignedWordleAnswer(t, svc, "user-1")

	result, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Guess: answer})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !result.Correct {
		t.Fatalf("right answer judged wrong: %+v", result)
	}
	for i, mark := range result.Marks {
		if mark != wordle.MarkCorrect {
			t.Fatalf("mark %d: got=%s want=%s", i, mark, wordle.MarkCorrect)
		}
	}

	if _, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Guess: "AB"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short guess: got=%v want=%v", err, ErrInvalidInput)
	}
}

func TestVerifyService_WhoAmI(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := whoamiDefinition().GameID

	// MOSES: S sits at positions 2 and 4.
	result, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Letter: "s"})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !result.Correct || len(result.Positions) != 2 || result.Positions[0] != 2 || result.Positions[1] != 4 {
		t.Fatalf("positions: got=%v", result.Positions)
	}

	miss, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Letter: "Z"})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if miss.Correct || len(miss.Positions) != 0 {
		t.Fatalf("miss judged a hit: %+v", miss)
	}

	if _, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Letter: "ab"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("multi-rune letter: got=%v want=%v", err, ErrInvalidInput)
	}
}

func TestVerifyService_Verse(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := verseDefinition().GameID

	right := strings.Fields(verseDefinition().Variants[0].Verse.Text)
	result, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Tokens: right})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !result.Correct {
		t.Fatalf("canonical order judged wrong")
	}

	wrong := append([]string{right[1], right[0]}, right[2:]...)
	result, err = svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Tokens: wrong})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Correct {
		t.Fatalf("swapped order judged right")
	}
}

func TestVerifyService_ConnectionsUsesAssignedSubset(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := connectionsDefinition().GameID

	if _, err := svc.assignmentSvc.Resolve(ctx, "user-1", gameID); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	stored, _, _ := svc.assignments.GetByUserAndGame(ctx, "user-1", gameID)

	wordsByCategory := map[string][]string{}
	for _, cat := range connectionsDefinition().Variants[0].Connections.Categories {
		wordsByCategory[cat.Name] = cat.Words
	}

	// A full group from the dealt board solves its category.
	first := stored.SubsetKeys[0]
	result, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Selection: wordsByCategory[first]})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !result.Correct || result.Category != first {
		t.Fatalf("group check: %+v", result)
	}

	// Three plus a stray from another dealt category is one away.
	second := stored.SubsetKeys[1]
	selection := append([]string{}, wordsByCategory[first][:3]...)
	selection = append(selection, wordsByCategory[second][0])
	result, err = svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Selection: selection})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Correct || !result.OneAway {
		t.Fatalf("one-away check: %+v", result)
	}

	// Words outside the dealt subset are unknown to this board.
	var undealt string
	for _, cat := range connectionsDefinition().Variants[0].Connections.Categories {
		dealt := false
		for _, key := range stored.SubsetKeys {
			if key == cat.Name {
				dealt = true
				break
			}
		}
		if !dealt {
			undealt = cat.Words[0]
			break
		}
	}
	badSelection := append([]string{}, wordsByCategory[first][:3]...)
	badSelection = append(badSelection, undealt)
	if _, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Selection: badSelection}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("undealt word: got=%v want=%v", err, ErrInvalidInput)
	}
}

func TestVerifyService_Matchup(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := matchupDefinition().GameID

	if _, err := svc.assignmentSvc.Resolve(ctx, "user-1", gameID); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	stored, _, _ := svc.assignments.GetByUserAndGame(ctx, "user-1", gameID)

	rightFor := map[string]string{}
	for _, p := range matchupDefinition().Variants[0].Matchup.Pairs {
		rightFor[p.Left] = p.Right
	}

	left := stored.SubsetKeys[0]
	result, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Left: left, Right: rightFor[left]})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !result.Correct {
		t.Fatalf("true pair judged wrong")
	}

	otherLeft := stored.SubsetKeys[1]
	result, err = svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Left: left, Right: rightFor[otherLeft]})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Correct {
		t.Fatalf("mismatched pair judged right")
	}
}

func TestVerifyService_WordSearch(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := wordsearchDefinition().GameID

	// AMEN runs across row 0; backwards selection counts too.
	result, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{
		Line: &wordsearch.Line{From: wordsearch.Point{Row: 0, Col: 3}, To: wordsearch.Point{Row: 0, Col: 0}},
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !result.Correct || result.Word != "AMEN" {
		t.Fatalf("backwards line: %+v", result)
	}

	miss, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{
		Line: &wordsearch.Line{From: wordsearch.Point{Row: 1, Col: 0}, To: wordsearch.Point{Row: 1, Col: 3}},
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if miss.Correct {
		t.Fatalf("CLIP is not in the word list")
	}

	if _, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{
		Line: &wordsearch.Line{From: wordsearch.Point{Row: 0, Col: 0}, To: wordsearch.Point{Row: 2, Col: 1}},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("crooked line: got=%v want=%v", err, ErrInvalidInput)
	}
}

func TestVerifyService_CrosswordGradesFilledCells(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := crosswordDefinition().GameID

	// ACTS along the top, one wrong letter at (0,1).
	entries := []GridEntry{
		{Row: 0, Col: 0, Letter: "a"},
		{Row: 0, Col: 1, Letter: "X"},
		{Row: 0, Col: 2, Letter: "T"},
		{Row: 0, Col: 3, Letter: "S"},
	}
	result, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Entries: entries})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Correct || result.CorrectCells != 3 || result.TotalCells != 12 {
		t.Fatalf("grade: %+v", result)
	}

	blocked := []GridEntry{{Row: 1, Col: 1, Letter: "A"}}
	if _, err := svc.verifySvc.Check(ctx, "user-1", gameID, CheckRequest{Entries: blocked}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blocked cell: got=%v want=%v", err, ErrInvalidInput)
	}
}

func TestVerifyService_CheckSampleNeedsNoUser(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	right := strings.Fields(verseDefinition().Variants[0].Verse.Text)

	result, err := svc.verifySvc.CheckSample(context.Background(), verseDefinition().GameID, CheckRequest{Tokens: right})
	if err != nil {
		t.Fatalf("CheckSample error: %v", err)
	}
	if !result.Correct {
		t.Fatalf("sample check failed")
	}
	if len(svc.assignments.items) != 0 {
		t.Fatalf("sample check persisted assignments")
	}
}
