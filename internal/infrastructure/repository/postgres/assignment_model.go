package postgres

import (
	"time"

	"github.com/lib/pq"
)

type assignmentTableModel struct {
	ID         int64          `db:"id"`
	UserID     string         `db:"user_id"`
	GameID     string         `db:"game_id"`
	VariantID  string         `db:"variant_id"`
	SubsetKeys pq.StringArray `db:"subset_keys"`
	Seed       int64          `db:"seed"`
	AssignedAt time.Time      `db:"assigned_at"`
	CreatedAt  time.Time      `db:"created_at"`
}

type assignmentInsertModel struct {
	UserID     string         `db:"user_id"`
	GameID     string         `db:"game_id"`
	VariantID  string         `db:"variant_id"`
	SubsetKeys pq.StringArray `db:"subset_keys"`
	Seed       int64          `db:"seed"`
	AssignedAt time.Time      `db:"assigned_at"`
}
