package submission

import "context"

// Repository persists finished attempts. CreateOrKeepBest enforces the
// one-row-per-(user, game) invariant: it inserts when absent, replaces when
// the new score strictly beats the stored one, and otherwise returns the
// stored row untouched. stored reports what now stands; replaced reports
// whether the call changed it.
type Repository interface {
	GetByUserAndGame(ctx context.Context, userID, gameID string) (Submission, bool, error)
	CreateOrKeepBest(ctx context.Context, item Submission) (stored Submission, replaced bool, err error)
}
