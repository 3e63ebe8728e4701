package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bereanlabs/daily-puzzles/internal/domain/progress"
)

// MaxProgressStateBytes bounds the opaque snapshot a client may park on the
// server. Real snapshots for the largest grid game sit well under 8 KiB.
const MaxProgressStateBytes = 64 << 10

// ProgressService stores and recalls resumable session snapshots. The state
// blob is opaque to the server; only its size and ownership are checked.
type ProgressService struct {
	store progress.Repository
	now   func() time.Time
}

func NewProgressService(store progress.Repository) *ProgressService {
	return &ProgressService{
		store: store,
		now:   time.Now,
	}
}

func (s *ProgressService) Load(ctx context.Context, userID, gameID string) (progress.Progress, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressService.Load")
	defer span.End()
	span.SetAttributes(attribute.String("puzzle.game_id", gameID))

	if err := validateProgressKey(userID, gameID); err != nil {
		return progress.Progress{}, false, err
	}

	item, found, err := s.store.GetByUserAndGame(ctx, userID, gameID)
	if err != nil {
		return progress.Progress{}, false, fmt.Errorf("get progress: %w", err)
	}

	return item, found, nil
}

// Save upserts the snapshot. The first save for a session anchors the clock:
// StartedAt is set then and preserved on every later save.
func (s *ProgressService) Save(ctx context.Context, userID, gameID string, state []byte) (progress.Progress, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressService.Save")
	defer span.End()
	span.SetAttributes(attribute.String("puzzle.game_id", gameID))

	if err := validateProgressKey(userID, gameID); err != nil {
		return progress.Progress{}, err
	}
	if len(state) == 0 {
		return progress.Progress{}, fmt.Errorf("%w: state is required", ErrInvalidInput)
	}
	if len(state) > MaxProgressStateBytes {
		return progress.Progress{}, fmt.Errorf("%w: state exceeds %d bytes", ErrInvalidInput, MaxProgressStateBytes)
	}

	now := s.now()
	item := progress.Progress{
		UserID:    userID,
		GameID:    gameID,
		State:     state,
		StartedAt: now,
		UpdatedAt: now,
	}

	existing, found, err := s.store.GetByUserAndGame(ctx, userID, gameID)
	if err != nil {
		return progress.Progress{}, fmt.Errorf("get progress: %w", err)
	}
	if found && !existing.StartedAt.IsZero() {
		item.StartedAt = existing.StartedAt
	}

	if err := s.store.Upsert(ctx, item); err != nil {
		return progress.Progress{}, fmt.Errorf("upsert progress: %w", err)
	}

	return item, nil
}

// Clear drops the snapshot, used both by an explicit restart and after a
// submission lands. Clearing what is already absent is fine.
func (s *ProgressService) Clear(ctx context.Context, userID, gameID string) error {
	ctx, span := startUsecaseSpan(ctx, "ProgressService.Clear")
	defer span.End()
	span.SetAttributes(attribute.String("puzzle.game_id", gameID))

	if err := validateProgressKey(userID, gameID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, userID, gameID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}

	return nil
}

func validateProgressKey(userID, gameID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(gameID) == "" {
		return fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	return nil
}
