package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/bereanlabs/daily-puzzles/internal/domain/wordsearch"
	"github.com/bereanlabs/daily-puzzles/internal/usecase"
)

// CheckAnswer verifies one attempt against the server-held solution. The
// per-type request field matching the assigned game must be set.
func (h *Handler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckAnswer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	var req checkRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.verifyService.Check(ctx, principal.UserID, gameID, checkRequestToInput(ctx, req))
	if err != nil {
		h.logger.WarnContext(ctx, "check answer failed", "game_id", gameID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, checkResultToDTO(ctx, result))
}

// SubmitGame lands a finished session. The server rebuilds the scoring facts
// it can derive and keeps the best record per game.
func (h *Handler) SubmitGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitGame")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	var req submitGameRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.submissionService.Submit(ctx, principal.UserID, gameID, usecase.SubmitRequest{
		Won:              req.Won,
		Mistakes:         req.Mistakes,
		TimeTakenSeconds: req.TimeTakenSeconds,
		CategoriesFound:  req.CategoriesFound,
		PairsFound:       req.PairsFound,
		WordsFound:       req.WordsFound,
		Entries:          gridEntriesToInput(ctx, req.Entries),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit game failed", "game_id", gameID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submitResultDTO{
		Submission: submissionToDTO(ctx, result.Submission),
		Replaced:   result.Replaced,
	})
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSubmission")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	item, exists, err := h.submissionService.Get(ctx, principal.UserID, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get submission failed", "game_id", gameID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submissionToDTO(ctx, item))
}

type checkRequest struct {
	Guess     string        `json:"guess,omitempty" validate:"omitempty,max=64"`
	Letter    string        `json:"letter,omitempty" validate:"omitempty,max=8"`
	Tokens    []string      `json:"tokens,omitempty" validate:"omitempty,max=200,dive,required"`
	Selection []string      `json:"selection,omitempty" validate:"omitempty,max=16,dive,required"`
	Left      string        `json:"left,omitempty" validate:"omitempty,max=200"`
	Right     string        `json:"right,omitempty" validate:"omitempty,max=200"`
	Line      *lineDTO      `json:"line,omitempty"`
	Entries   []gridCellDTO `json:"entries,omitempty" validate:"omitempty,max=2048,dive"`
}

type lineDTO struct {
	From pointDTO `json:"from"`
	To   pointDTO `json:"to"`
}

type pointDTO struct {
	Row int `json:"row" validate:"gte=0"`
	Col int `json:"col" validate:"gte=0"`
}

type gridCellDTO struct {
	Row    int    `json:"row" validate:"gte=0"`
	Col    int    `json:"col" validate:"gte=0"`
	Letter string `json:"letter" validate:"required,max=8"`
}

type checkResultDTO struct {
	GameType string `json:"gameType"`
	Correct  bool   `json:"correct"`

	Marks        []string `json:"marks,omitempty"`
	Positions    []int    `json:"positions,omitempty"`
	Category     string   `json:"category,omitempty"`
	OneAway      bool     `json:"oneAway,omitempty"`
	Word         string   `json:"word,omitempty"`
	CorrectCells int      `json:"correctCells,omitempty"`
	TotalCells   int      `json:"totalCells,omitempty"`
}

type submitGameRequest struct {
	Won              bool          `json:"won"`
	Mistakes         int           `json:"mistakes" validate:"gte=0"`
	TimeTakenSeconds int           `json:"timeTakenSeconds" validate:"gte=0"`
	CategoriesFound  int           `json:"categoriesFound" validate:"gte=0"`
	PairsFound       int           `json:"pairsFound" validate:"gte=0"`
	WordsFound       int           `json:"wordsFound" validate:"gte=0"`
	Entries          []gridCellDTO `json:"entries,omitempty" validate:"omitempty,max=2048,dive"`
}

type submitResultDTO struct {
	Submission submissionDTO `json:"submission"`
	Replaced   bool          `json:"replaced"`
}

func checkRequestToInput(ctx context.Context, req checkRequest) usecase.CheckRequest {
	ctx, span := startSpan(ctx, "httpapi.checkRequestToInput")
	defer span.End()

	input := usecase.CheckRequest{
		Guess:     req.Guess,
		Letter:    req.Letter,
		Tokens:    append([]string(nil), req.Tokens...),
		Selection: append([]string(nil), req.Selection...),
		Left:      req.Left,
		Right:     req.Right,
		Entries:   gridEntriesToInput(ctx, req.Entries),
	}
	if req.Line != nil {
		input.Line = &wordsearch.Line{
			From: wordsearch.Point{Row: req.Line.From.Row, Col: req.Line.From.Col},
			To:   wordsearch.Point{Row: req.Line.To.Row, Col: req.Line.To.Col},
		}
	}

	return input
}

func gridEntriesToInput(ctx context.Context, cells []gridCellDTO) []usecase.GridEntry {
	ctx, span := startSpan(ctx, "httpapi.gridEntriesToInput")
	defer span.End()

	if len(cells) == 0 {
		return nil
	}
	entries := make([]usecase.GridEntry, 0, len(cells))
	for _, cell := range cells {
		entries = append(entries, usecase.GridEntry{Row: cell.Row, Col: cell.Col, Letter: cell.Letter})
	}

	return entries
}

func checkResultToDTO(ctx context.Context, result usecase.CheckResult) checkResultDTO {
	ctx, span := startSpan(ctx, "httpapi.checkResultToDTO")
	defer span.End()

	marks := make([]string, 0, len(result.Marks))
	for _, mark := range result.Marks {
		marks = append(marks, string(mark))
	}

	return checkResultDTO{
		GameType:     string(result.GameType),
		Correct:      result.Correct,
		Marks:        marks,
		Positions:    append([]int(nil), result.Positions...),
		Category:     result.Category,
		OneAway:      result.OneAway,
		Word:         result.Word,
		CorrectCells: result.CorrectCells,
		TotalCells:   result.TotalCells,
	}
}
