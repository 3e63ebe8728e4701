package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/bereanlabs/daily-puzzles/internal/domain/scoring"
	"github.com/bereanlabs/daily-puzzles/internal/domain/submission"
	qb "github.com/bereanlabs/daily-puzzles/internal/platform/querybuilder"
)

type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) GetByUserAndGame(ctx context.Context, userID, gameID string) (submission.Submission, bool, error) {
	query, args, err := submissionBaseSelectBuilder().
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("game_id", gameID),
		).
		ToSQL()
	if err != nil {
		return submission.Submission{}, false, fmt.Errorf("build get submission query: %w", err)
	}

	var row submissionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return submission.Submission{}, false, nil
		}
		return submission.Submission{}, false, fmt.Errorf("get submission: %w", err)
	}

	return submissionFromRow(row)
}

// CreateOrKeepBest inserts the attempt, replacing the stored row only when
// the new score strictly beats it. The conditional update returns no row
// when the stored record stands.
func (r *SubmissionRepository) CreateOrKeepBest(ctx context.Context, item submission.Submission) (submission.Submission, bool, error) {
	factsJSON, err := sonic.Marshal(factsToDocument(item.Facts))
	if err != nil {
		return submission.Submission{}, false, fmt.Errorf("encode submission facts: %w", err)
	}

	insertModel := submissionInsertModel{
		PublicID:         item.ID,
		UserID:           item.UserID,
		GameID:           item.GameID,
		StartedAt:        item.StartedAt,
		CompletedAt:      item.CompletedAt,
		TimeTakenSeconds: item.TimeTakenSeconds,
		Mistakes:         item.Mistakes,
		Score:            item.Score,
		Won:              item.Won,
		Facts:            string(factsJSON),
	}

	query, args, err := qb.InsertModel("submissions", insertModel, `ON CONFLICT (user_id, game_id)
DO UPDATE SET
    public_id = EXCLUDED.public_id,
    started_at = EXCLUDED.started_at,
    completed_at = EXCLUDED.completed_at,
    time_taken_seconds = EXCLUDED.time_taken_seconds,
    mistakes = EXCLUDED.mistakes,
    score = EXCLUDED.score,
    won = EXCLUDED.won,
    facts = EXCLUDED.facts
WHERE EXCLUDED.score > submissions.score
RETURNING public_id`)
	if err != nil {
		return submission.Submission{}, false, fmt.Errorf("build submission upsert query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return submission.Submission{}, false, fmt.Errorf("upsert submission: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		return item, true, nil
	}

	stored, found, err := r.GetByUserAndGame(ctx, item.UserID, item.GameID)
	if err != nil {
		return submission.Submission{}, false, err
	}
	if !found {
		return submission.Submission{}, false, fmt.Errorf("submission upsert kept best but row missing for %s/%s", item.UserID, item.GameID)
	}

	return stored, false, nil
}

func submissionFromRow(row submissionTableModel) (submission.Submission, bool, error) {
	var facts factsDocument
	if err := sonic.Unmarshal([]byte(row.Facts), &facts); err != nil {
		return submission.Submission{}, false, fmt.Errorf("decode submission facts for %s: %w", row.PublicID, err)
	}

	return submission.Submission{
		ID:               row.PublicID,
		UserID:           row.UserID,
		GameID:           row.GameID,
		StartedAt:        row.StartedAt,
		CompletedAt:      row.CompletedAt,
		TimeTakenSeconds: row.TimeTakenSeconds,
		Mistakes:         row.Mistakes,
		Score:            row.Score,
		Won:              row.Won,
		Facts:            factsFromDocument(facts),
	}, true, nil
}

func factsToDocument(f scoring.Facts) factsDocument {
	return factsDocument{
		TimeTakenSeconds: f.TimeTakenSeconds,
		Mistakes:         f.Mistakes,
		CategoriesFound:  f.CategoriesFound,
		CorrectCells:     f.CorrectCells,
		TotalCells:       f.TotalCells,
		PairsFound:       f.PairsFound,
		Completed:        f.Completed,
		Solved:           f.Solved,
		WordsFound:       f.WordsFound,
		AllWordsFound:    f.AllWordsFound,
	}
}

func factsFromDocument(doc factsDocument) scoring.Facts {
	return scoring.Facts{
		TimeTakenSeconds: doc.TimeTakenSeconds,
		Mistakes:         doc.Mistakes,
		CategoriesFound:  doc.CategoriesFound,
		CorrectCells:     doc.CorrectCells,
		TotalCells:       doc.TotalCells,
		PairsFound:       doc.PairsFound,
		Completed:        doc.Completed,
		Solved:           doc.Solved,
		WordsFound:       doc.WordsFound,
		AllWordsFound:    doc.AllWordsFound,
	}
}

func submissionBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("submissions")
}
