package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/bereanlabs/daily-puzzles/internal/domain/connections"
	"github.com/bereanlabs/daily-puzzles/internal/domain/crossword"
	"github.com/bereanlabs/daily-puzzles/internal/domain/matchup"
	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/verse"
	"github.com/bereanlabs/daily-puzzles/internal/domain/whoami"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/wordsearch"
	qb "github.com/bereanlabs/daily-puzzles/internal/platform/querybuilder"
)

// PuzzleRepository reads published definitions. Authoring happens through a
// separate pipeline; this service only ever selects.
type PuzzleRepository struct {
	db *sqlx.DB
}

func NewPuzzleRepository(db *sqlx.DB) *PuzzleRepository {
	return &PuzzleRepository{db: db}
}

func (r *PuzzleRepository) GetByGameID(ctx context.Context, gameID string) (puzzle.Definition, bool, error) {
	query, args, err := qb.Select("*").
		From("puzzles").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return puzzle.Definition{}, false, fmt.Errorf("build get puzzle query: %w", err)
	}

	var row puzzleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return puzzle.Definition{}, false, nil
		}
		return puzzle.Definition{}, false, fmt.Errorf("get puzzle: %w", err)
	}

	def, err := definitionFromRow(row)
	if err != nil {
		return puzzle.Definition{}, false, err
	}

	return def, true, nil
}

func definitionFromRow(row puzzleTableModel) (puzzle.Definition, error) {
	var docs []variantDocument
	if err := sonic.Unmarshal([]byte(row.Variants), &docs); err != nil {
		return puzzle.Definition{}, fmt.Errorf("decode puzzle variants for %s: %w", row.GameID, err)
	}

	def := puzzle.Definition{
		GameID:      row.GameID,
		GameType:    puzzle.GameType(row.GameType),
		PublishedAt: row.PublishedAt,
		Variants:    make([]puzzle.Variant, 0, len(docs)),
	}
	for _, doc := range docs {
		def.Variants = append(def.Variants, variantFromDocument(doc))
	}
	if err := def.Validate(); err != nil {
		return puzzle.Definition{}, fmt.Errorf("stored puzzle %s is invalid: %w", row.GameID, err)
	}

	return def, nil
}

func variantFromDocument(doc variantDocument) puzzle.Variant {
	v := puzzle.Variant{ID: doc.ID}

	if doc.Wordle != nil {
		v.Wordle = &wordle.Content{
			Answer:     doc.Wordle.Answer,
			MaxGuesses: doc.Wordle.MaxGuesses,
		}
	}
	if doc.Connections != nil {
		content := connections.Content{Categories: make([]connections.Category, 0, len(doc.Connections.Categories))}
		for _, cat := range doc.Connections.Categories {
			content.Categories = append(content.Categories, connections.Category{
				Name:  cat.Name,
				Words: append([]string(nil), cat.Words...),
			})
		}
		v.Connections = &content
	}
	if doc.Crossword != nil {
		content := crossword.Content{
			Rows:  doc.Crossword.Rows,
			Cols:  doc.Crossword.Cols,
			Clues: make([]crossword.Clue, 0, len(doc.Crossword.Clues)),
		}
		for _, clue := range doc.Crossword.Clues {
			content.Clues = append(content.Clues, crossword.Clue{
				Number:    clue.Number,
				Direction: crossword.Direction(clue.Direction),
				Row:       clue.Row,
				Col:       clue.Col,
				Answer:    clue.Answer,
				Text:      clue.Text,
			})
		}
		v.Crossword = &content
	}
	if doc.Matchup != nil {
		content := matchup.Content{Pairs: make([]matchup.Pair, 0, len(doc.Matchup.Pairs))}
		for _, p := range doc.Matchup.Pairs {
			content.Pairs = append(content.Pairs, matchup.Pair{Left: p.Left, Right: p.Right})
		}
		v.Matchup = &content
	}
	if doc.Verse != nil {
		v.Verse = &verse.Content{
			Text:      doc.Verse.Text,
			Reference: doc.Verse.Reference,
		}
	}
	if doc.WhoAmI != nil {
		v.WhoAmI = &whoami.Content{
			Answer: doc.WhoAmI.Answer,
			Hint:   doc.WhoAmI.Hint,
		}
	}
	if doc.WordSearch != nil {
		v.WordSearch = &wordsearch.Content{
			Grid:  append([]string(nil), doc.WordSearch.Grid...),
			Words: append([]string(nil), doc.WordSearch.Words...),
		}
	}

	return v
}
