package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bereanlabs/daily-puzzles/internal/domain/assignment"
	qb "github.com/bereanlabs/daily-puzzles/internal/platform/querybuilder"
)

type AssignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) GetByUserAndGame(ctx context.Context, userID, gameID string) (assignment.Assignment, bool, error) {
	query, args, err := assignmentBaseSelectBuilder().
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("game_id", gameID),
		).
		ToSQL()
	if err != nil {
		return assignment.Assignment{}, false, fmt.Errorf("build get assignment query: %w", err)
	}

	var row assignmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return assignment.Assignment{}, false, nil
		}
		return assignment.Assignment{}, false, fmt.Errorf("get assignment: %w", err)
	}

	return assignmentFromRow(row), true, nil
}

// Create inserts unless a row already exists for (user, game); the race
// loser gets the stored row back with created=false.
func (r *AssignmentRepository) Create(ctx context.Context, item assignment.Assignment) (assignment.Assignment, bool, error) {
	insertModel := assignmentInsertModel{
		UserID:     item.UserID,
		GameID:     item.GameID,
		VariantID:  item.VariantID,
		SubsetKeys: pq.StringArray(item.SubsetKeys),
		Seed:       item.Seed,
		AssignedAt: item.AssignedAt,
	}

	query, args, err := qb.InsertModel("assignments", insertModel,
		`ON CONFLICT (user_id, game_id) DO NOTHING
RETURNING variant_id`)
	if err != nil {
		return assignment.Assignment{}, false, fmt.Errorf("build assignment insert query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return assignment.Assignment{}, false, fmt.Errorf("insert assignment: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		return item, true, nil
	}

	// The conflict path returns no row; somebody else won the insert.
	stored, found, err := r.GetByUserAndGame(ctx, item.UserID, item.GameID)
	if err != nil {
		return assignment.Assignment{}, false, err
	}
	if !found {
		return assignment.Assignment{}, false, fmt.Errorf("assignment insert conflict but row missing for %s/%s", item.UserID, item.GameID)
	}

	return stored, false, nil
}

func assignmentFromRow(row assignmentTableModel) assignment.Assignment {
	return assignment.Assignment{
		UserID:     row.UserID,
		GameID:     row.GameID,
		VariantID:  row.VariantID,
		SubsetKeys: append([]string(nil), row.SubsetKeys...),
		Seed:       row.Seed,
		AssignedAt: row.AssignedAt,
	}
}

func assignmentBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("assignments")
}
