package progress

import (
	"context"
	"time"
)

// Repository persists resumable session state. Upsert is last-write-wins;
// Delete is idempotent. ListUpdatedBefore feeds the retention sweep with
// stale rows so deletions can be fanned out.
type Repository interface {
	GetByUserAndGame(ctx context.Context, userID, gameID string) (Progress, bool, error)
	Upsert(ctx context.Context, item Progress) error
	Delete(ctx context.Context, userID, gameID string) error
	ListUpdatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]Progress, error)
}
