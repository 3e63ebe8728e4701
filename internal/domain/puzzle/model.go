package puzzle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/domain/connections"
	"github.com/bereanlabs/daily-puzzles/internal/domain/crossword"
	"github.com/bereanlabs/daily-puzzles/internal/domain/matchup"
	"github.com/bereanlabs/daily-puzzles/internal/domain/verse"
	"github.com/bereanlabs/daily-puzzles/internal/domain/whoami"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordsearch"
)

var (
	ErrNoVariants     = errors.New("puzzle has no variants")
	ErrMissingContent = errors.New("variant is missing content for its game type")
	ErrBankTooSmall   = errors.New("variant bank is smaller than the board")
)

// GameType identifies one of the seven daily mini-games.
type GameType string

const (
	GameTypeWordle      GameType = "wordle"
	GameTypeConnections GameType = "connections"
	GameTypeCrossword   GameType = "crossword"
	GameTypeMatchup     GameType = "matchup"
	GameTypeVerse       GameType = "verse"
	GameTypeWhoAmI      GameType = "whoami"
	GameTypeWordSearch  GameType = "wordsearch"
)

var AllGameTypes = map[GameType]struct{}{
	GameTypeWordle:      {},
	GameTypeConnections: {},
	GameTypeCrossword:   {},
	GameTypeMatchup:     {},
	GameTypeVerse:       {},
	GameTypeWhoAmI:      {},
	GameTypeWordSearch:  {},
}

// Variant is one concrete puzzle instance among the interchangeable options
// published for a day. Exactly one content pointer is set, matching the
// definition's game type.
type Variant struct {
	ID          string
	Wordle      *wordle.Content
	Connections *connections.Content
	Crossword   *crossword.Content
	Matchup     *matchup.Content
	Verse       *verse.Content
	WhoAmI      *whoami.Content
	WordSearch  *wordsearch.Content
}

// Definition is the immutable published content for one game on one day.
// Authoring happens elsewhere; this module only ever reads definitions.
type Definition struct {
	GameID      string
	GameType    GameType
	Variants    []Variant
	PublishedAt time.Time
}

func (d Definition) Validate() error {
	if strings.TrimSpace(d.GameID) == "" {
		return fmt.Errorf("game id is required")
	}
	if _, ok := AllGameTypes[d.GameType]; !ok {
		return fmt.Errorf("unknown game type: %s", d.GameType)
	}
	if len(d.Variants) == 0 {
		return fmt.Errorf("%w: %s", ErrNoVariants, d.GameID)
	}
	for _, v := range d.Variants {
		if err := v.validateFor(d.GameType); err != nil {
			return fmt.Errorf("variant %s: %w", v.ID, err)
		}
	}

	return nil
}

func (v Variant) validateFor(gameType GameType) error {
	switch gameType {
	case GameTypeWordle:
		if v.Wordle == nil || v.Wordle.Answer == "" {
			return ErrMissingContent
		}
		if !wordle.ValidAnswer(v.Wordle.Answer) {
			return fmt.Errorf("%w: %q", wordle.ErrBadAnswer, v.Wordle.Answer)
		}
	case GameTypeConnections:
		if v.Connections == nil {
			return ErrMissingContent
		}
		if len(v.Connections.Categories) < connections.BoardCategories {
			return fmt.Errorf("%w: %d categories", ErrBankTooSmall, len(v.Connections.Categories))
		}
	case GameTypeCrossword:
		if v.Crossword == nil || len(v.Crossword.Clues) == 0 {
			return ErrMissingContent
		}
	case GameTypeMatchup:
		if v.Matchup == nil {
			return ErrMissingContent
		}
		if len(v.Matchup.Pairs) < matchup.BoardPairs {
			return fmt.Errorf("%w: %d pairs", ErrBankTooSmall, len(v.Matchup.Pairs))
		}
	case GameTypeVerse:
		if v.Verse == nil || v.Verse.Text == "" {
			return ErrMissingContent
		}
	case GameTypeWhoAmI:
		if v.WhoAmI == nil || v.WhoAmI.Answer == "" {
			return ErrMissingContent
		}
	case GameTypeWordSearch:
		if v.WordSearch == nil || len(v.WordSearch.Grid) == 0 || len(v.WordSearch.Words) == 0 {
			return ErrMissingContent
		}
	}

	return nil
}

// GameTypeFromID extracts the game type from a daily game id of the form
// "<type>-<YYYY-MM-DD>".
func GameTypeFromID(gameID string) (GameType, bool) {
	idx := strings.IndexByte(gameID, '-')
	if idx <= 0 {
		return "", false
	}
	gt := GameType(gameID[:idx])
	_, ok := AllGameTypes[gt]

	return gt, ok
}

// DailyGameID builds the id under which a game type is published for a day.
func DailyGameID(gameType GameType, day time.Time) string {
	return fmt.Sprintf("%s-%s", gameType, day.UTC().Format("2006-01-02"))
}
