package assignment

import "context"

// Repository persists variant assignments. Create must behave as
// insert-or-ignore on (user, game): when a concurrent tab already assigned,
// it returns the stored row with created=false instead of erroring.
type Repository interface {
	GetByUserAndGame(ctx context.Context, userID, gameID string) (Assignment, bool, error)
	Create(ctx context.Context, item Assignment) (Assignment, bool, error)
}
