package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/domain/progress"
	"github.com/bereanlabs/daily-puzzles/internal/domain/submission"
	"github.com/bereanlabs/daily-puzzles/internal/usecase"
)

// GetGame opens a session: the client-safe puzzle plus where the player
// stands (phase, resumable progress, landed submission) in one round trip.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	view, err := h.sessionService.Open(ctx, principal.UserID, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "open session failed", "game_id", gameID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionViewToDTO(ctx, view))
}

// GetSample serves the unauthenticated preview instance. Nothing about the
// caller is recorded.
func (h *Handler) GetSample(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSample")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	clientPuzzle, err := h.assignmentService.Sample(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "sample puzzle failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, puzzleToDTO(ctx, clientPuzzle))
}

type sessionViewDTO struct {
	Puzzle     puzzleDTO      `json:"puzzle"`
	Phase      string         `json:"phase"`
	Progress   *progressDTO   `json:"progress,omitempty"`
	Submission *submissionDTO `json:"submission,omitempty"`
}

type puzzleDTO struct {
	GameID   string `json:"gameId"`
	GameType string `json:"gameType"`

	Wordle      *wordleDTO      `json:"wordle,omitempty"`
	WhoAmI      *whoAmIDTO      `json:"whoAmI,omitempty"`
	Verse       *verseDTO       `json:"verse,omitempty"`
	Connections *connectionsDTO `json:"connections,omitempty"`
	Matchup     *matchupDTO     `json:"matchup,omitempty"`
	WordSearch  *wordSearchDTO  `json:"wordSearch,omitempty"`
	Crossword   *crosswordDTO   `json:"crossword,omitempty"`
}

type wordleDTO struct {
	WordLength int `json:"wordLength"`
	MaxGuesses int `json:"maxGuesses"`
}

type whoAmIDTO struct {
	Mask       string `json:"mask"`
	WordLength int    `json:"wordLength"`
	Hint       string `json:"hint,omitempty"`
}

type verseDTO struct {
	Tokens    []string `json:"tokens"`
	Reference string   `json:"reference"`
}

type connectionsDTO struct {
	Words []string `json:"words"`
}

type matchupDTO struct {
	Lefts  []string `json:"lefts"`
	Rights []string `json:"rights"`
}

type wordSearchDTO struct {
	Grid  []string `json:"grid"`
	Words []string `json:"words"`
}

type crosswordDTO struct {
	Rows  int                  `json:"rows"`
	Cols  int                  `json:"cols"`
	Cells [][]crosswordCellDTO `json:"cells"`
	Clues []crosswordClueDTO   `json:"clues"`
}

type crosswordCellDTO struct {
	Fillable bool `json:"fillable"`
	Number   int  `json:"number,omitempty"`
}

type crosswordClueDTO struct {
	Number    int    `json:"number"`
	Direction string `json:"direction"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Length    int    `json:"length"`
	Text      string `json:"text"`
}

type progressDTO struct {
	State     json.RawMessage `json:"state"`
	StartedAt string          `json:"startedAt"`
	UpdatedAt string          `json:"updatedAt"`
}

type submissionDTO struct {
	ID               string `json:"id"`
	GameID           string `json:"gameId"`
	Score            int    `json:"score"`
	Won              bool   `json:"won"`
	Mistakes         int    `json:"mistakes"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
	StartedAt        string `json:"startedAt,omitempty"`
	CompletedAt      string `json:"completedAt"`
}

func sessionViewToDTO(ctx context.Context, view usecase.SessionView) sessionViewDTO {
	ctx, span := startSpan(ctx, "httpapi.sessionViewToDTO")
	defer span.End()

	dto := sessionViewDTO{
		Puzzle: puzzleToDTO(ctx, view.Puzzle),
		Phase:  string(view.Phase),
	}
	if view.Progress != nil {
		p := progressToDTO(ctx, *view.Progress)
		dto.Progress = &p
	}
	if view.Submission != nil {
		s := submissionToDTO(ctx, *view.Submission)
		dto.Submission = &s
	}

	return dto
}

func puzzleToDTO(ctx context.Context, v usecase.ClientPuzzle) puzzleDTO {
	ctx, span := startSpan(ctx, "httpapi.puzzleToDTO")
	defer span.End()

	dto := puzzleDTO{
		GameID:   v.GameID,
		GameType: string(v.GameType),
	}

	if v.Wordle != nil {
		dto.Wordle = &wordleDTO{WordLength: v.Wordle.WordLength, MaxGuesses: v.Wordle.MaxGuesses}
	}
	if v.WhoAmI != nil {
		dto.WhoAmI = &whoAmIDTO{Mask: v.WhoAmI.Mask, WordLength: v.WhoAmI.WordLength, Hint: v.WhoAmI.Hint}
	}
	if v.Verse != nil {
		dto.Verse = &verseDTO{
			Tokens:    append([]string(nil), v.Verse.Tokens...),
			Reference: v.Verse.Reference,
		}
	}
	if v.Connections != nil {
		dto.Connections = &connectionsDTO{Words: append([]string(nil), v.Connections.Words...)}
	}
	if v.Matchup != nil {
		dto.Matchup = &matchupDTO{
			Lefts:  append([]string(nil), v.Matchup.Lefts...),
			Rights: append([]string(nil), v.Matchup.Rights...),
		}
	}
	if v.WordSearch != nil {
		dto.WordSearch = &wordSearchDTO{
			Grid:  append([]string(nil), v.WordSearch.Grid...),
			Words: append([]string(nil), v.WordSearch.Words...),
		}
	}
	if v.Crossword != nil {
		dto.Crossword = crosswordToDTO(ctx, v.Crossword)
	}

	return dto
}

func crosswordToDTO(ctx context.Context, v *usecase.ClientCrossword) *crosswordDTO {
	ctx, span := startSpan(ctx, "httpapi.crosswordToDTO")
	defer span.End()

	cells := make([][]crosswordCellDTO, 0, len(v.Cells))
	for _, row := range v.Cells {
		cellRow := make([]crosswordCellDTO, 0, len(row))
		for _, cell := range row {
			cellRow = append(cellRow, crosswordCellDTO{Fillable: cell.Fillable, Number: cell.Number})
		}
		cells = append(cells, cellRow)
	}

	clues := make([]crosswordClueDTO, 0, len(v.Clues))
	for _, clue := range v.Clues {
		clues = append(clues, crosswordClueDTO{
			Number:    clue.Number,
			Direction: string(clue.Direction),
			Row:       clue.Row,
			Col:       clue.Col,
			Length:    clue.Length,
			Text:      clue.Text,
		})
	}

	return &crosswordDTO{
		Rows:  v.Rows,
		Cols:  v.Cols,
		Cells: cells,
		Clues: clues,
	}
}

func progressToDTO(ctx context.Context, item progress.Progress) progressDTO {
	ctx, span := startSpan(ctx, "httpapi.progressToDTO")
	defer span.End()

	return progressDTO{
		State:     json.RawMessage(item.State),
		StartedAt: item.StartedAt.UTC().Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func submissionToDTO(ctx context.Context, item submission.Submission) submissionDTO {
	ctx, span := startSpan(ctx, "httpapi.submissionToDTO")
	defer span.End()

	dto := submissionDTO{
		ID:               item.ID,
		GameID:           item.GameID,
		Score:            item.Score,
		Won:              item.Won,
		Mistakes:         item.Mistakes,
		TimeTakenSeconds: item.TimeTakenSeconds,
		CompletedAt:      item.CompletedAt.UTC().Format(time.RFC3339),
	}
	if !item.StartedAt.IsZero() {
		dto.StartedAt = item.StartedAt.UTC().Format(time.RFC3339)
	}

	return dto
}
