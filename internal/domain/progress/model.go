package progress

import (
	"fmt"
	"time"
)

// Progress is the resumable in-flight state of one game session. The blob
// is a game-type-specific client snapshot; the server stores it opaquely
// and deletes it the moment the session reaches a terminal state.
//
// The blob must never contain the solution or anything derivable beyond
// what the verifier already confirmed; the engine only ever writes
// player-entered state into it.
type Progress struct {
	UserID string
	GameID string
	State  []byte
	// StartedAt is set when the player leaves the instructions screen. It,
	// not assignment time, anchors the session clock.
	StartedAt time.Time
	UpdatedAt time.Time
}

func (p Progress) ValidateBasic() error {
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if p.GameID == "" {
		return fmt.Errorf("game id is required")
	}

	return nil
}
