package usecase

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bereanlabs/daily-puzzles/internal/domain/connections"
	"github.com/bereanlabs/daily-puzzles/internal/domain/crossword"
	"github.com/bereanlabs/daily-puzzles/internal/domain/matchup"
	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/verse"
	"github.com/bereanlabs/daily-puzzles/internal/domain/whoami"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordsearch"
)

// CheckRequest carries one attempt against the assigned puzzle. The field
// matching the game type must be set; everything else is ignored.
type CheckRequest struct {
	Guess     string           // wordle
	Letter    string           // whoami
	Tokens    []string         // verse
	Selection []string         // connections
	Left      string           // matchup
	Right     string           // matchup
	Line      *wordsearch.Line // wordsearch
	Entries   []GridEntry      // crossword, the full grid as entered
}

// GridEntry is one filled crossword cell as the client holds it.
type GridEntry struct {
	Row    int
	Col    int
	Letter string
}

// CheckResult is the verifier's verdict. Correct is the headline answer;
// game-specific detail fields are populated per type.
type CheckResult struct {
	GameType puzzle.GameType
	Correct  bool

	Marks        []wordle.Mark // wordle
	Positions    []int         // whoami, revealed positions
	Category     string        // connections, solved category name
	OneAway      bool          // connections
	Word         string        // wordsearch, canonical found word
	CorrectCells int           // crossword
	TotalCells   int           // crossword
}

// VerifyService answers attempts against the server-held solution, so the
// client never learns more than the verdict it asked for.
type VerifyService struct {
	assignments *AssignmentService
}

func NewVerifyService(assignments *AssignmentService) *VerifyService {
	return &VerifyService{assignments: assignments}
}

// Check verifies an attempt against the player's assigned instance.
func (s *VerifyService) Check(ctx context.Context, userID, gameID string, req CheckRequest) (CheckResult, error) {
	ctx, span := startUsecaseSpan(ctx, "VerifyService.Check")
	defer span.End()
	span.SetAttributes(attribute.String("puzzle.game_id", gameID))

	played, err := s.assignments.resolvePlayed(ctx, userID, gameID)
	if err != nil {
		return CheckResult{}, err
	}

	return check(played, req)
}

// CheckSample verifies against the sample instance, for anonymous play.
func (s *VerifyService) CheckSample(ctx context.Context, gameID string, req CheckRequest) (CheckResult, error) {
	ctx, span := startUsecaseSpan(ctx, "VerifyService.CheckSample")
	defer span.End()

	def, err := s.assignments.definition(ctx, gameID)
	if err != nil {
		return CheckResult{}, err
	}
	played, err := resolvePlayed(def, sampleAssignment(def))
	if err != nil {
		return CheckResult{}, err
	}

	return check(played, req)
}

func check(played playedVariant, req CheckRequest) (CheckResult, error) {
	out := CheckResult{GameType: played.GameType}

	switch played.GameType {
	case puzzle.GameTypeWordle:
		marks, err := wordle.Check(played.Wordle.Answer, req.Guess)
		if err != nil {
			return CheckResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out.Marks = marks
		out.Correct = wordle.Solved(marks)

	case puzzle.GameTypeWhoAmI:
		letter, err := singleLetter(req.Letter)
		if err != nil {
			return CheckResult{}, err
		}
		out.Positions = whoami.Check(played.WhoAmI.Answer, letter)
		out.Correct = len(out.Positions) > 0

	case puzzle.GameTypeVerse:
		if len(req.Tokens) == 0 {
			return CheckResult{}, fmt.Errorf("%w: tokens are required", ErrInvalidInput)
		}
		out.Correct = verse.Check(verse.Tokens(played.Verse.Text), req.Tokens)

	case puzzle.GameTypeConnections:
		result, err := connections.Check(played.Connections, req.Selection)
		if err != nil {
			return CheckResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out.Correct = result.Correct
		out.Category = result.Category
		out.OneAway = result.OneAway

	case puzzle.GameTypeMatchup:
		if req.Left == "" || req.Right == "" {
			return CheckResult{}, fmt.Errorf("%w: left and right are required", ErrInvalidInput)
		}
		out.Correct = matchup.Check(played.Matchup, req.Left, req.Right)

	case puzzle.GameTypeWordSearch:
		if req.Line == nil {
			return CheckResult{}, fmt.Errorf("%w: line is required", ErrInvalidInput)
		}
		word, found, err := wordsearch.Check(*played.WordSearch, *req.Line)
		if err != nil {
			return CheckResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out.Word = word
		out.Correct = found

	case puzzle.GameTypeCrossword:
		correct, total, err := gradeCrossword(played.Crossword, req.Entries)
		if err != nil {
			return CheckResult{}, err
		}
		out.CorrectCells = correct
		out.TotalCells = total
		out.Correct = total > 0 && correct == total

	default:
		return CheckResult{}, fmt.Errorf("%w: unsupported game type %s", ErrInvalidInput, played.GameType)
	}

	return out, nil
}

// gradeCrossword scores a full grid against the solution overlay. Entries on
// blocked or out-of-bounds cells are rejected rather than skipped.
func gradeCrossword(content *crossword.Content, entries []GridEntry) (correct, total int, err error) {
	layout, err := crossword.NewLayout(*content)
	if err != nil {
		return 0, 0, fmt.Errorf("derive crossword layout: %w", err)
	}

	total = layout.FillableCells()
	seen := make(map[crossword.Cell]bool, len(entries))
	for _, e := range entries {
		letter, letterErr := singleLetter(e.Letter)
		if letterErr != nil {
			return 0, 0, letterErr
		}
		cell := crossword.Cell{Row: e.Row, Col: e.Col}
		meta, ok := layout.CellAt(cell)
		if !ok || !meta.Fillable {
			return 0, 0, fmt.Errorf("%w: cell (%d,%d) is not fillable", ErrInvalidInput, e.Row, e.Col)
		}
		if seen[cell] {
			return 0, 0, fmt.Errorf("%w: duplicate entry for cell (%d,%d)", ErrInvalidInput, e.Row, e.Col)
		}
		seen[cell] = true
		if u := unicode.ToUpper(letter); u < 128 && byte(u) == layout.SolutionAt(cell) {
			correct++
		}
	}

	return correct, total, nil
}

var errNotOneLetter = errors.New("expected a single letter")

func singleLetter(s string) (rune, error) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, errNotOneLetter)
	}

	return runes[0], nil
}
