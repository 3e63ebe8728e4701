package memory

import (
	"context"
	"sync"

	"github.com/bereanlabs/daily-puzzles/internal/domain/assignment"
)

type AssignmentRepository struct {
	mu    sync.RWMutex
	items map[string]assignment.Assignment
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{items: make(map[string]assignment.Assignment)}
}

func (r *AssignmentRepository) GetByUserAndGame(_ context.Context, userID, gameID string) (assignment.Assignment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userGameKey(userID, gameID)]
	if !ok {
		return assignment.Assignment{}, false, nil
	}

	return cloneAssignment(item), true, nil
}

func (r *AssignmentRepository) Create(_ context.Context, item assignment.Assignment) (assignment.Assignment, bool, error) {
	if err := item.ValidateBasic(); err != nil {
		return assignment.Assignment{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := userGameKey(item.UserID, item.GameID)
	if existing, ok := r.items[key]; ok {
		return cloneAssignment(existing), false, nil
	}

	r.items[key] = cloneAssignment(item)
	return cloneAssignment(item), true, nil
}

func userGameKey(userID, gameID string) string {
	return userID + "::" + gameID
}

func cloneAssignment(item assignment.Assignment) assignment.Assignment {
	copied := item
	copied.SubsetKeys = append([]string(nil), item.SubsetKeys...)
	return copied
}
