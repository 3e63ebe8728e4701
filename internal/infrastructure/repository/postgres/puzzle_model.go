package postgres

import (
	"time"
)

type puzzleTableModel struct {
	ID          int64     `db:"id"`
	GameID      string    `db:"game_id"`
	GameType    string    `db:"game_type"`
	Variants    string    `db:"variants"`
	PublishedAt time.Time `db:"published_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// variantDocument is the JSONB shape of one variant inside the variants
// column. Exactly one content document is present, matching the row's
// game_type.
type variantDocument struct {
	ID          string               `json:"id"`
	Wordle      *wordleDocument      `json:"wordle,omitempty"`
	Connections *connectionsDocument `json:"connections,omitempty"`
	Crossword   *crosswordDocument   `json:"crossword,omitempty"`
	Matchup     *matchupDocument     `json:"matchup,omitempty"`
	Verse       *verseDocument       `json:"verse,omitempty"`
	WhoAmI      *whoAmIDocument      `json:"whoami,omitempty"`
	WordSearch  *wordSearchDocument  `json:"wordsearch,omitempty"`
}

type wordleDocument struct {
	Answer     string `json:"answer"`
	MaxGuesses int    `json:"maxGuesses,omitempty"`
}

type connectionsDocument struct {
	Categories []connectionsCategoryDocument `json:"categories"`
}

type connectionsCategoryDocument struct {
	Name  string   `json:"name"`
	Words []string `json:"words"`
}

type crosswordDocument struct {
	Rows  int                     `json:"rows"`
	Cols  int                     `json:"cols"`
	Clues []crosswordClueDocument `json:"clues"`
}

type crosswordClueDocument struct {
	Number    int    `json:"number"`
	Direction string `json:"direction"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Answer    string `json:"answer"`
	Text      string `json:"text"`
}

type matchupDocument struct {
	Pairs []matchupPairDocument `json:"pairs"`
}

type matchupPairDocument struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type verseDocument struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

type whoAmIDocument struct {
	Answer string `json:"answer"`
	Hint   string `json:"hint"`
}

type wordSearchDocument struct {
	Grid  []string `json:"grid"`
	Words []string `json:"words"`
}
