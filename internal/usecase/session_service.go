package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bereanlabs/daily-puzzles/internal/domain/progress"
	"github.com/bereanlabs/daily-puzzles/internal/domain/submission"
)

// Phase is where a session stands in its lifecycle. Submitted wins over
// playing: once a record exists the game renders in review, whatever
// snapshot may linger.
type Phase string

const (
	PhaseInstructions Phase = "instructions"
	PhasePlaying      Phase = "playing"
	PhaseSubmitted    Phase = "submitted"
)

// SessionView is everything a client needs to render a game screen in one
// round trip.
type SessionView struct {
	Puzzle     ClientPuzzle
	Phase      Phase
	Progress   *progress.Progress
	Submission *submission.Submission
}

// SessionService composes the per-concern services into the lifecycle the
// client drives: open, start, play with coalesced saves, submit.
type SessionService struct {
	assignments *AssignmentService
	progress    *ProgressService
	submissions *SubmissionService
}

func NewSessionService(assignments *AssignmentService, progressSvc *ProgressService, submissions *SubmissionService) *SessionService {
	return &SessionService{
		assignments: assignments,
		progress:    progressSvc,
		submissions: submissions,
	}
}

// Open resolves the assigned puzzle, the resumable snapshot, and any
// standing record in parallel and derives the phase.
func (s *SessionService) Open(ctx context.Context, userID, gameID string) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "SessionService.Open")
	defer span.End()
	span.SetAttributes(attribute.String("puzzle.game_id", gameID))

	var (
		view          SessionView
		progressItem  progress.Progress
		progressFound bool
		recordItem    submission.Submission
		recordFound   bool
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		resolved, err := s.assignments.Resolve(ctx, userID, gameID)
		if err != nil {
			return err
		}
		view.Puzzle = resolved
		return nil
	})
	p.Go(func(ctx context.Context) error {
		item, found, err := s.progress.Load(ctx, userID, gameID)
		if err != nil {
			return err
		}
		progressItem, progressFound = item, found
		return nil
	})
	p.Go(func(ctx context.Context) error {
		item, found, err := s.submissions.Get(ctx, userID, gameID)
		if err != nil {
			return err
		}
		recordItem, recordFound = item, found
		return nil
	})
	if err := p.Wait(); err != nil {
		return SessionView{}, err
	}

	view.Phase = PhaseInstructions
	if progressFound {
		view.Progress = &progressItem
		view.Phase = PhasePlaying
	}
	if recordFound {
		view.Submission = &recordItem
		view.Phase = PhaseSubmitted
	}

	return view, nil
}

// Start moves a session out of the instructions screen: it anchors the
// clock by writing the initial snapshot. Starting an already started
// session keeps the original anchor.
func (s *SessionService) Start(ctx context.Context, userID, gameID string) (progress.Progress, error) {
	ctx, span := startUsecaseSpan(ctx, "SessionService.Start")
	defer span.End()
	span.SetAttributes(attribute.String("puzzle.game_id", gameID))

	// Resolving first ensures the game exists and the assignment is dealt
	// before any state lands.
	if _, err := s.assignments.Resolve(ctx, userID, gameID); err != nil {
		return progress.Progress{}, err
	}

	if existing, found, err := s.progress.Load(ctx, userID, gameID); err != nil {
		return progress.Progress{}, err
	} else if found {
		return existing, nil
	}

	return s.progress.Save(ctx, userID, gameID, []byte("{}"))
}

// saveDebounceWindow coalesces the burst of snapshots an active player
// produces into at most one write per one-second quiet period.
const saveDebounceWindow = time.Second

// PlaySession serializes the writes of one active (user, game) session:
// saves are debounced, and a submit flushes the pending save, lands the
// attempt exactly once, and drops any save that races in afterwards.
type PlaySession struct {
	userID   string
	gameID   string
	sessions *SessionService

	mu       sync.Mutex
	pending  []byte
	debounce func(func())

	submitted atomic.Bool
	saveErr   atomic.Pointer[error]
}

func (s *SessionService) NewPlaySession(userID, gameID string) *PlaySession {
	return &PlaySession{
		userID:   userID,
		gameID:   gameID,
		sessions: s,
		debounce: debounce.New(saveDebounceWindow),
	}
}

// Save schedules a snapshot write. Consecutive calls within the window
// collapse to the newest snapshot. Errors surface on the next call.
func (p *PlaySession) Save(state []byte) error {
	if p.submitted.Load() {
		return fmt.Errorf("%w: session already submitted", ErrConflict)
	}
	if errPtr := p.saveErr.Swap(nil); errPtr != nil {
		return *errPtr
	}

	p.mu.Lock()
	p.pending = state
	p.mu.Unlock()

	p.debounce(p.flush)

	return nil
}

// Submit flushes the pending snapshot, lands the attempt, and seals the
// session against further saves. Only the first call lands; later calls
// get ErrConflict.
func (p *PlaySession) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	p.flush()
	if !p.submitted.CompareAndSwap(false, true) {
		return SubmitResult{}, fmt.Errorf("%w: session already submitted", ErrConflict)
	}

	result, err := p.sessions.submissions.Submit(ctx, p.userID, p.gameID, req)
	if err != nil {
		p.submitted.Store(false)
		return SubmitResult{}, err
	}

	return result, nil
}

func (p *PlaySession) flush() {
	p.mu.Lock()
	state := p.pending
	p.pending = nil
	p.mu.Unlock()

	if len(state) == 0 || p.submitted.Load() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := p.sessions.progress.Save(ctx, p.userID, p.gameID, state); err != nil {
		p.saveErr.Store(&err)
	}
}
