package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSubmissionService_SubmitScoresAndClearsProgress(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := connectionsDefinition().GameID

	if _, err := svc.progressSvc.Save(ctx, "user-1", gameID, []byte("{}")); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	result, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{
		Won:             true,
		Mistakes:        2,
		CategoriesFound: 4,
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if result.Submission.Score != 70 {
		t.Fatalf("score: got=%d want=70", result.Submission.Score)
	}
	if !result.Replaced || !result.Submission.Won {
		t.Fatalf("first submit: %+v", result)
	}

	if _, found, _ := svc.progressSvc.Load(ctx, "user-1", gameID); found {
		t.Fatalf("progress survived submission")
	}
}

func TestSubmissionService_KeepsBestRecord(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := connectionsDefinition().GameID

	first, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{CategoriesFound: 4, Mistakes: 2})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	// A worse retry must not displace the record.
	worse, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{CategoriesFound: 2, Mistakes: 6})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if worse.Replaced {
		t.Fatalf("worse attempt displaced the record")
	}
	if worse.Submission.Score != first.Submission.Score {
		t.Fatalf("stored score changed: got=%d want=%d", worse.Submission.Score, first.Submission.Score)
	}

	better, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{CategoriesFound: 4, Mistakes: 0})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if !better.Replaced || better.Submission.Score != 80 {
		t.Fatalf("better attempt: %+v", better)
	}
}

func TestSubmissionService_CrosswordFactsAreRecomputed(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := crosswordDefinition().GameID

	// The client claims nothing; the grid alone decides.
	entries := []GridEntry{
		{Row: 0, Col: 0, Letter: "A"},
		{Row: 0, Col: 1, Letter: "C"},
		{Row: 0, Col: 2, Letter: "T"},
		{Row: 0, Col: 3, Letter: "S"},
	}
	result, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{Entries: entries})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if result.Submission.Facts.CorrectCells != 4 || result.Submission.Facts.TotalCells != 12 {
		t.Fatalf("facts: %+v", result.Submission.Facts)
	}
	if result.Submission.Won {
		t.Fatalf("partial grid counted as a win")
	}
}

func TestSubmissionService_ClaimsAreClampedToBoard(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()

	result, err := svc.submissionSvc.Submit(ctx, "user-1", matchupDefinition().GameID, SubmitRequest{PairsFound: 99})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if result.Submission.Facts.PairsFound != 6 {
		t.Fatalf("pairs clamped: got=%d want=6", result.Submission.Facts.PairsFound)
	}
	if !result.Submission.Won {
		t.Fatalf("full board must be a win")
	}

	if _, err := svc.submissionSvc.Submit(ctx, "user-1", matchupDefinition().GameID, SubmitRequest{Mistakes: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative mistakes: got=%v want=%v", err, ErrInvalidInput)
	}
}

func TestSubmissionService_LostWordleConsumesAllowance(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()

	result, err := svc.submissionSvc.Submit(ctx, "user-1", wordleDefinition().GameID, SubmitRequest{Won: false, Mistakes: 1})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if result.Submission.Score != 0 || result.Submission.Won {
		t.Fatalf("lost wordle scored: %+v", result.Submission)
	}
}

func TestSubmissionService_ClockAnchorsOnFirstSave(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := verseDefinition().GameID

	started := time.Now().Add(-90 * time.Second)
	svc.submissionSvc.now = func() time.Time { return started.Add(90 * time.Second) }

	if _, err := svc.progressSvc.Save(ctx, "user-1", gameID, []byte("{}")); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	// Backdate the anchor directly in the stub.
	item := svc.progress.items[assignmentKey("user-1", gameID)]
	item.StartedAt = started
	svc.progress.items[assignmentKey("user-1", gameID)] = item

	result, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{Won: true, TimeTakenSeconds: 5})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if result.Submission.TimeTakenSeconds != 90 {
		t.Fatalf("time taken: got=%d want=90 (server clock wins)", result.Submission.TimeTakenSeconds)
	}
}

func TestSubmissionService_NotifiesOnNewRecordOnly(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := whoamiDefinition().GameID

	if _, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{Won: true, Mistakes: 1}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	select {
	case <-svc.notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("notifier never fired")
	}

	// A no-better retry keeps the record and stays silent.
	if _, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{Won: true, Mistakes: 5}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	select {
	case <-svc.notifier.done:
		t.Fatalf("kept record must not notify")
	case <-time.After(50 * time.Millisecond):
	}

	if got := svc.notifier.count(); got != 1 {
		t.Fatalf("notifications: got=%d want=1", got)
	}
}

func TestSubmissionService_GetRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestServices()
	ctx := context.Background()
	gameID := verseDefinition().GameID

	if _, _, err := svc.submissionSvc.Get(ctx, "user-1", gameID); err != nil {
		t.Fatalf("Get before submit: %v", err)
	}

	submitted, err := svc.submissionSvc.Submit(ctx, "user-1", gameID, SubmitRequest{Won: true})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	stored, found, err := svc.submissionSvc.Get(ctx, "user-1", gameID)
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if stored.ID != submitted.Submission.ID || stored.Score != submitted.Submission.Score {
		t.Fatalf("round trip mismatch: got=%+v want=%+v", stored, submitted.Submission)
	}
}
