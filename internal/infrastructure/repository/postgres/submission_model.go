package postgres

import "time"

type submissionTableModel struct {
	ID               int64     `db:"id"`
	PublicID         string    `db:"public_id"`
	UserID           string    `db:"user_id"`
	GameID           string    `db:"game_id"`
	StartedAt        time.Time `db:"started_at"`
	CompletedAt      time.Time `db:"completed_at"`
	TimeTakenSeconds int       `db:"time_taken_seconds"`
	Mistakes         int       `db:"mistakes"`
	Score            int       `db:"score"`
	Won              bool      `db:"won"`
	Facts            string    `db:"facts"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type submissionInsertModel struct {
	PublicID         string    `db:"public_id"`
	UserID           string    `db:"user_id"`
	GameID           string    `db:"game_id"`
	StartedAt        time.Time `db:"started_at"`
	CompletedAt      time.Time `db:"completed_at"`
	TimeTakenSeconds int       `db:"time_taken_seconds"`
	Mistakes         int       `db:"mistakes"`
	Score            int       `db:"score"`
	Won              bool      `db:"won"`
	Facts            string    `db:"facts"`
}

// factsDocument is the JSONB shape of the facts column.
type factsDocument struct {
	TimeTakenSeconds int  `json:"timeTakenSeconds"`
	Mistakes         int  `json:"mistakes"`
	CategoriesFound  int  `json:"categoriesFound,omitempty"`
	CorrectCells     int  `json:"correctCells,omitempty"`
	TotalCells       int  `json:"totalCells,omitempty"`
	PairsFound       int  `json:"pairsFound,omitempty"`
	Completed        bool `json:"completed,omitempty"`
	Solved           bool `json:"solved,omitempty"`
	WordsFound       int  `json:"wordsFound,omitempty"`
	AllWordsFound    bool `json:"allWordsFound,omitempty"`
}
