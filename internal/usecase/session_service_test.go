package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSessionService_OpenWalksThePhases(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := wordleDefinition().GameID

	view, err := svc.sessionSvc.Open(ctx, "user-1", gameID)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if view.Phase != PhaseInstructions || view.Progress != nil || view.Submission != nil {
		t.Fatalf("fresh session: %+v", view)
	}
	if view.Puzzle.GameID != gameID || view.Puzzle.Wordle == nil {
		t.Fatalf("puzzle payload: %+v", view.Puzzle)
	}

	if _, err := svc.sessionSvc.Start(ctx, "user-1", gameID); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	view, err = svc.sessionSvc.Open(ctx, "user-1", gameID)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if view.Phase != PhasePlaying || view.Progress == nil {
		t.Fatalf("started session: %+v", view)
	}

	if _, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{Won: true, Mistakes: 2}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	view, err = svc.sessionSvc.Open(ctx, "user-1", gameID)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if view.Phase != PhaseSubmitted || view.Submission == nil {
		t.Fatalf("submitted session: %+v", view)
	}
}

func TestSessionService_StartKeepsTheOriginalAnchor(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := verseDefinition().GameID

	first, err := svc.sessionSvc.Start(ctx, "user-1", gameID)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := svc.sessionSvc.Start(ctx, "user-1", gameID)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if !second.StartedAt.Equal(first.StartedAt) {
		t.Fatalf("restart moved the anchor: first=%v second=%v", first.StartedAt, second.StartedAt)
	}
}

func TestSessionService_OpenFailsForUnknownGame(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	if _, err := svc.sessionSvc.Open(context.Background(), "user-1", "wordle-1999-01-01"); !errors.Is(err, ErrNoPuzzle) {
		t.Fatalf("got=%v want=%v", err, ErrNoPuzzle)
	}
}

func TestPlaySession_CoalescesSaves(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := wordleDefinition().GameID
	play := svc.sessionSvc.NewPlaySession("user-1", gameID)

	for i := 0; i < 10; i++ {
		if err := play.Save([]byte(`{"keystrokes":` + string(rune('0'+i)) + `}`)); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	// Nothing lands until the window closes; the last snapshot wins.
	deadline := time.Now().Add(2 * saveDebounceWindow)
	for {
		if item, found, _ := svc.progressSvc.Load(ctx, "user-1", gameID); found {
			if string(item.State) != `{"keystrokes":9}` {
				t.Fatalf("flushed state: got=%s", item.State)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("debounced save never flushed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPlaySession_SubmitFlushesAndSeals(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := verseDefinition().GameID
	play := svc.sessionSvc.NewPlaySession("user-1", gameID)

	if err := play.Save([]byte(`{"placed":["The"]}`)); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	result, err := play.Submit(ctx, SubmitRequest{Won: true})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if !result.Replaced {
		t.Fatalf("first submit must land")
	}

	if _, err := play.Submit(ctx, SubmitRequest{Won: true}); !errors.Is(err, ErrConflict) {
		t.Fatalf("second submit: got=%v want=%v", err, ErrConflict)
	}
	if err := play.Save([]byte("{}")); !errors.Is(err, ErrConflict) {
		t.Fatalf("save after submit: got=%v want=%v", err, ErrConflict)
	}

	// Submission cleared the snapshot and the sealed session left it gone.
	if _, found, _ := svc.progressSvc.Load(ctx, "user-1", gameID); found {
		t.Fatalf("snapshot survived the sealed session")
	}
}
