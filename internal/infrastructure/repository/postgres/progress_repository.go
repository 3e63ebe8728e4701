package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bereanlabs/daily-puzzles/internal/domain/progress"
	qb "github.com/bereanlabs/daily-puzzles/internal/platform/querybuilder"
)

type ProgressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) GetByUserAndGame(ctx context.Context, userID, gameID string) (progress.Progress, bool, error) {
	query, args, err := progressBaseSelectBuilder().
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("game_id", gameID),
		).
		ToSQL()
	if err != nil {
		return progress.Progress{}, false, fmt.Errorf("build get progress query: %w", err)
	}

	var row progressTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return progress.Progress{}, false, nil
		}
		return progress.Progress{}, false, fmt.Errorf("get progress: %w", err)
	}

	return progressFromRow(row), true, nil
}

func (r *ProgressRepository) Upsert(ctx context.Context, item progress.Progress) error {
	insertModel := progressInsertModel{
		UserID:    item.UserID,
		GameID:    item.GameID,
		State:     item.State,
		StartedAt: item.StartedAt,
		UpdatedAt: item.UpdatedAt,
	}

	query, args, err := qb.InsertModel("progress", insertModel, `ON CONFLICT (user_id, game_id)
DO UPDATE SET
    state = EXCLUDED.state,
    updated_at = EXCLUDED.updated_at
RETURNING started_at`)
	if err != nil {
		return fmt.Errorf("build progress upsert query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return fmt.Errorf("upsert progress: no row returned")
	}

	return nil
}

func (r *ProgressRepository) Delete(ctx context.Context, userID, gameID string) error {
	query := "DELETE FROM progress WHERE user_id = $1 AND game_id = $2"
	if _, err := r.db.ExecContext(ctx, query, userID, gameID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}

	return nil
}

func (r *ProgressRepository) ListUpdatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]progress.Progress, error) {
	query, args, err := progressBaseSelectBuilder().
		Where(qb.Lt("updated_at", cutoff)).
		OrderBy("updated_at").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stale progress query: %w", err)
	}

	var rows []progressTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stale progress: %w", err)
	}

	out := make([]progress.Progress, 0, len(rows))
	for _, row := range rows {
		out = append(out, progressFromRow(row))
	}
	return out, nil
}

func progressFromRow(row progressTableModel) progress.Progress {
	return progress.Progress{
		UserID:    row.UserID,
		GameID:    row.GameID,
		State:     append([]byte(nil), row.State...),
		StartedAt: row.StartedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func progressBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("progress")
}
