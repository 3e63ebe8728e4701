package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/usecase"
)

// SubmitAdvisorySignal accepts a client-observed irregularity. Acceptance
// means recorded for review, never a gameplay verdict.
func (h *Handler) SubmitAdvisorySignal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitAdvisorySignal")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	var req advisorySignalRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var observedAt time.Time
	if req.ObservedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ObservedAt)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: observedAt must be RFC3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		observedAt = parsed
	}

	if err := h.advisoryService.Submit(ctx, usecase.AdvisorySignal{
		UserID:     principal.UserID,
		GameID:     req.GameID,
		Kind:       req.Kind,
		Detail:     req.Detail,
		ObservedAt: observedAt,
	}); err != nil {
		h.logger.WarnContext(ctx, "submit advisory signal failed", "game_id", req.GameID, "kind", req.Kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

type advisorySignalRequest struct {
	GameID     string `json:"gameId" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=impossible-time state-tampering replayed-session other"`
	Detail     string `json:"detail,omitempty" validate:"omitempty,max=500"`
	ObservedAt string `json:"observedAt,omitempty"`
}
