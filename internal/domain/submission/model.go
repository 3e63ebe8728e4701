package submission

import (
	"fmt"
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/domain/scoring"
)

// Submission is the immutable scored record of a finished attempt. At most
// one exists per (user, game); a later attempt replaces it only when its
// recomputed score strictly improves on the stored one.
type Submission struct {
	ID               string
	UserID           string
	GameID           string
	StartedAt        time.Time
	CompletedAt      time.Time
	TimeTakenSeconds int
	Mistakes         int
	Score            int
	Won              bool
	Facts            scoring.Facts
}

func (s Submission) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("submission id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.GameID == "" {
		return fmt.Errorf("game id is required")
	}
	if s.TimeTakenSeconds < 0 {
		return fmt.Errorf("time taken cannot be negative")
	}
	if s.Mistakes < 0 {
		return fmt.Errorf("mistakes cannot be negative")
	}

	return nil
}
