package puzzle

import "context"

// Repository describes read access to published puzzle definitions.
type Repository interface {
	GetByGameID(ctx context.Context, gameID string) (Definition, bool, error)
}
