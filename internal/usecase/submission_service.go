package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bereanlabs/daily-puzzles/internal/domain/connections"
	"github.com/bereanlabs/daily-puzzles/internal/domain/matchup"
	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/scoring"
	"github.com/bereanlabs/daily-puzzles/internal/domain/submission"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordle"
	"github.com/bereanlabs/daily-puzzles/internal/platform/id"
)

// CompletionNotifier fans a landed submission out to interested systems
// (streak tracking, leaderboards). Implementations own their retries; a
// notify failure never fails the submission.
type CompletionNotifier interface {
	NotifyCompleted(ctx context.Context, item submission.Submission) error
}

// SubmitRequest is the client's account of a finished session. Everything
// that can be recomputed server-side is; the rest is clamped against the
// assigned content before scoring.
type SubmitRequest struct {
	Won      bool
	Mistakes int
	// TimeTakenSeconds is used only when no progress row anchors the clock.
	TimeTakenSeconds int

	CategoriesFound int         // connections
	PairsFound      int         // matchup
	WordsFound      int         // wordsearch
	Entries         []GridEntry // crossword, the final grid
}

type SubmitResult struct {
	Submission submission.Submission
	// Replaced reports whether this attempt displaced the stored record.
	// False means an earlier attempt scored at least as well and stands.
	Replaced bool
}

// SubmissionService lands finished attempts: it rebuilds the scoring facts
// from the server-held content, scores them, keeps the best record per
// (user, game), and clears the resumable snapshot.
type SubmissionService struct {
	submissions submission.Repository
	assignments *AssignmentService
	progress    *ProgressService
	notifier    CompletionNotifier
	idGenerator id.Generator
	logger      *slog.Logger
	now         func() time.Time
}

func NewSubmissionService(
	submissions submission.Repository,
	assignments *AssignmentService,
	progress *ProgressService,
	notifier CompletionNotifier,
	idGenerator id.Generator,
	logger *slog.Logger,
) *SubmissionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SubmissionService{
		submissions: submissions,
		assignments: assignments,
		progress:    progress,
		notifier:    notifier,
		idGenerator: idGenerator,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, userID, gameID string, req SubmitRequest) (SubmitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SubmissionService.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("puzzle.game_id", gameID))

	if req.Mistakes < 0 || req.TimeTakenSeconds < 0 {
		return SubmitResult{}, fmt.Errorf("%w: negative counters", ErrInvalidInput)
	}

	played, err := s.assignments.resolvePlayed(ctx, userID, gameID)
	if err != nil {
		return SubmitResult{}, err
	}

	facts, err := buildFacts(played, req)
	if err != nil {
		return SubmitResult{}, err
	}

	now := s.now()
	startedAt, timeTaken := s.sessionClock(ctx, userID, gameID, now, req.TimeTakenSeconds)
	facts.TimeTakenSeconds = timeTaken
	facts.Mistakes = req.Mistakes
	if played.GameType == puzzle.GameTypeWordle && !req.Won {
		// A lost wordle consumed the whole allowance; the claim cannot be
		// smaller.
		maxGuesses := played.Wordle.MaxGuesses
		if maxGuesses <= 0 {
			maxGuesses = wordle.DefaultMaxGuesses
		}
		if facts.Mistakes < maxGuesses {
			facts.Mistakes = maxGuesses
		}
	}

	newID, err := s.idGenerator.NewID()
	if err != nil {
		return SubmitResult{}, fmt.Errorf("generate submission id: %w", err)
	}

	item := submission.Submission{
		ID:               newID,
		UserID:           userID,
		GameID:           gameID,
		StartedAt:        startedAt,
		CompletedAt:      now,
		TimeTakenSeconds: timeTaken,
		Mistakes:         req.Mistakes,
		Score:            scoring.Score(played.GameType, facts),
		Won:              won(played.GameType, facts, req),
		Facts:            facts,
	}
	if err := item.ValidateBasic(); err != nil {
		return SubmitResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, replaced, err := s.submissions.CreateOrKeepBest(ctx, item)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("store submission: %w", err)
	}

	// The session is over either way; the snapshot has no further use.
	if err := s.progress.Clear(ctx, userID, gameID); err != nil {
		s.logger.WarnContext(ctx, "clear progress after submit",
			slog.String("game_id", gameID),
			slog.String("error", err.Error()),
		)
	}

	if replaced && s.notifier != nil {
		go s.notify(context.WithoutCancel(ctx), stored)
	}

	return SubmitResult{Submission: stored, Replaced: replaced}, nil
}

func (s *SubmissionService) Get(ctx context.Context, userID, gameID string) (submission.Submission, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "SubmissionService.Get")
	defer span.End()
	span.SetAttributes(attribute.String("puzzle.game_id", gameID))

	if userID == "" || gameID == "" {
		return submission.Submission{}, false, fmt.Errorf("%w: user id and game id are required", ErrInvalidInput)
	}

	item, found, err := s.submissions.GetByUserAndGame(ctx, userID, gameID)
	if err != nil {
		return submission.Submission{}, false, fmt.Errorf("get submission: %w", err)
	}

	return item, found, nil
}

// sessionClock anchors timing on the first progress save when one exists.
// Clients that never saved (a one-sitting win) report their own elapsed
// time, capped at 24h.
func (s *SubmissionService) sessionClock(ctx context.Context, userID, gameID string, now time.Time, reported int) (time.Time, int) {
	const maxSessionSeconds = 24 * 60 * 60

	if item, found, err := s.progress.Load(ctx, userID, gameID); err == nil && found && !item.StartedAt.IsZero() {
		elapsed := int(now.Sub(item.StartedAt) / time.Second)
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed > maxSessionSeconds {
			elapsed = maxSessionSeconds
		}
		return item.StartedAt, elapsed
	}

	if reported > maxSessionSeconds {
		reported = maxSessionSeconds
	}

	return now.Add(-time.Duration(reported) * time.Second), reported
}

// buildFacts rebuilds scoring facts from the authoritative content, trusting
// the client only where the server holds nothing to recompute from, and
// clamping those claims to what the board allows.
func buildFacts(played playedVariant, req SubmitRequest) (scoring.Facts, error) {
	var facts scoring.Facts

	switch played.GameType {
	case puzzle.GameTypeWordle:
		// Mistakes are the failed guesses; the formula needs nothing else.

	case puzzle.GameTypeConnections:
		facts.CategoriesFound = clamp(req.CategoriesFound, 0, connections.BoardCategories)

	case puzzle.GameTypeCrossword:
		correct, total, err := gradeCrossword(played.Crossword, req.Entries)
		if err != nil {
			return scoring.Facts{}, err
		}
		facts.CorrectCells = correct
		facts.TotalCells = total

	case puzzle.GameTypeMatchup:
		facts.PairsFound = clamp(req.PairsFound, 0, matchup.BoardPairs)

	case puzzle.GameTypeVerse:
		facts.Completed = req.Won

	case puzzle.GameTypeWhoAmI:
		facts.Solved = req.Won

	case puzzle.GameTypeWordSearch:
		facts.WordsFound = clamp(req.WordsFound, 0, len(played.WordSearch.Words))
		facts.AllWordsFound = facts.WordsFound == len(played.WordSearch.Words)
	}

	return facts, nil
}

func won(gameType puzzle.GameType, facts scoring.Facts, req SubmitRequest) bool {
	switch gameType {
	case puzzle.GameTypeConnections:
		return facts.CategoriesFound == connections.BoardCategories
	case puzzle.GameTypeCrossword:
		return facts.TotalCells > 0 && facts.CorrectCells == facts.TotalCells
	case puzzle.GameTypeMatchup:
		return facts.PairsFound == matchup.BoardPairs
	case puzzle.GameTypeVerse:
		return facts.Completed
	case puzzle.GameTypeWhoAmI:
		return facts.Solved
	case puzzle.GameTypeWordSearch:
		return facts.AllWordsFound
	default:
		// Wordle: whether the final guess landed is not derivable from the
		// mistake count alone.
		return req.Won
	}
}

func (s *SubmissionService) notify(ctx context.Context, item submission.Submission) {
	notifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.notifier.NotifyCompleted(notifyCtx, item); err != nil {
		s.logger.WarnContext(notifyCtx, "notify completion",
			slog.String("game_id", item.GameID),
			slog.String("error", err.Error()),
		)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
