package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/domain/progress"
)

type ProgressRepository struct {
	mu    sync.RWMutex
	items map[string]progress.Progress
}

func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{items: make(map[string]progress.Progress)}
}

func (r *ProgressRepository) GetByUserAndGame(_ context.Context, userID, gameID string) (progress.Progress, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userGameKey(userID, gameID)]
	if !ok {
		return progress.Progress{}, false, nil
	}

	return cloneProgress(item), true, nil
}

func (r *ProgressRepository) Upsert(_ context.Context, item progress.Progress) error {
	if err := item.ValidateBasic(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[userGameKey(item.UserID, item.GameID)] = cloneProgress(item)
	return nil
}

func (r *ProgressRepository) Delete(_ context.Context, userID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userGameKey(userID, gameID))
	return nil
}

func (r *ProgressRepository) ListUpdatedBefore(_ context.Context, cutoff time.Time, limit int) ([]progress.Progress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []progress.Progress
	for _, item := range r.items {
		if item.UpdatedAt.Before(cutoff) {
			out = append(out, cloneProgress(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func cloneProgress(item progress.Progress) progress.Progress {
	copied := item
	copied.State = append([]byte(nil), item.State...)
	return copied
}
