package memory

import (
	"context"
	"sync"

	"github.com/bereanlabs/daily-puzzles/internal/domain/submission"
)

type SubmissionRepository struct {
	mu    sync.RWMutex
	items map[string]submission.Submission
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{items: make(map[string]submission.Submission)}
}

func (r *SubmissionRepository) GetByUserAndGame(_ context.Context, userID, gameID string) (submission.Submission, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userGameKey(userID, gameID)]
	if !ok {
		return submission.Submission{}, false, nil
	}

	return item, true, nil
}

func (r *SubmissionRepository) CreateOrKeepBest(_ context.Context, item submission.Submission) (submission.Submission, bool, error) {
	if err := item.ValidateBasic(); err != nil {
		return submission.Submission{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := userGameKey(item.UserID, item.GameID)
	if existing, ok := r.items[key]; ok && existing.Score >= item.Score {
		return existing, false, nil
	}

	r.items[key] = item
	return item, true, nil
}
