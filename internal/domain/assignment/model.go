package assignment

import (
	"fmt"
	"time"
)

// Assignment durably records which variant (and, for bank games, which
// subset of its items) a player was dealt for a game. Created lazily on
// first access and immutable afterwards, so a reload always resumes the
// same instance.
type Assignment struct {
	UserID    string
	GameID    string
	VariantID string
	// SubsetKeys names the bank items actually played: category names for
	// connections, left-card texts for matchup. Empty for single-solution
	// games.
	SubsetKeys []string
	// Seed drives every presentation shuffle (tiles, columns, scramble) so
	// the derived client payload is stable across reloads.
	Seed       int64
	AssignedAt time.Time
}

func (a Assignment) ValidateBasic() error {
	if a.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if a.GameID == "" {
		return fmt.Errorf("game id is required")
	}
	if a.VariantID == "" {
		return fmt.Errorf("variant id is required")
	}

	return nil
}
