package scoring

import (
	"math"

	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
)

// Facts carries everything a score formula may consume. Clients report the
// raw facts; the score itself is always recomputed here on the server.
type Facts struct {
	TimeTakenSeconds int
	Mistakes         int

	CategoriesFound int  // connections
	CorrectCells    int  // crossword
	TotalCells      int  // crossword fillable cells
	PairsFound      int  // matchup
	Completed       bool // verse scramble
	Solved          bool // who-am-I
	WordsFound      int  // word search
	AllWordsFound   bool // word search
}

// Score maps a finished attempt to its integer score, one formula per game
// type. Every formula is non-negative and never increases with more
// mistakes or more time.
func Score(gameType puzzle.GameType, f Facts) int {
	switch gameType {
	case puzzle.GameTypeWordle:
		if f.Mistakes >= 6 {
			return 0
		}
		return (6 - f.Mistakes) * 10

	case puzzle.GameTypeConnections:
		return floor0(f.CategoriesFound*20 - f.Mistakes*5)

	case puzzle.GameTypeCrossword:
		if f.TotalCells <= 0 {
			return 0
		}
		accuracy := int(math.Round(float64(f.CorrectCells) / float64(f.TotalCells) * 70))
		return accuracy + floor0(30-f.TimeTakenSeconds/60)

	case puzzle.GameTypeMatchup:
		return floor0(f.PairsFound*20 - f.Mistakes*10)

	case puzzle.GameTypeVerse:
		if !f.Completed {
			return 0
		}
		return 50 + floor0(30-f.Mistakes*5) + floor0(20-f.TimeTakenSeconds/10)

	case puzzle.GameTypeWhoAmI:
		if !f.Solved {
			return 0
		}
		return 50 + floor0(6-f.Mistakes)*5 + floor0(20-f.TimeTakenSeconds/15)

	case puzzle.GameTypeWordSearch:
		score := f.WordsFound * 10
		if f.AllWordsFound {
			score += 20
		}
		return score + floor0(30-f.TimeTakenSeconds/20)

	default:
		return 0
	}
}

func floor0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
