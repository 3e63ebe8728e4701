package postgres

import "time"

type progressTableModel struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	GameID    string    `db:"game_id"`
	State     []byte    `db:"state"`
	StartedAt time.Time `db:"started_at"`
	UpdatedAt time.Time `db:"updated_at"`
	CreatedAt time.Time `db:"created_at"`
}

type progressInsertModel struct {
	UserID    string    `db:"user_id"`
	GameID    string    `db:"game_id"`
	State     []byte    `db:"state"`
	StartedAt time.Time `db:"started_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
