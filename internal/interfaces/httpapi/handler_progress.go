package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProgress")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	item, exists, err := h.progressService.Load(ctx, principal.UserID, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "load progress failed", "game_id", gameID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progressToDTO(ctx, item))
}

func (h *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveProgress")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	var req saveProgressRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.progressService.Save(ctx, principal.UserID, gameID, []byte(req.State))
	if err != nil {
		h.logger.WarnContext(ctx, "save progress failed", "game_id", gameID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progressToDTO(ctx, item))
}

func (h *Handler) ClearProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearProgress")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if err := h.progressService.Clear(ctx, principal.UserID, gameID); err != nil {
		h.logger.WarnContext(ctx, "clear progress failed", "game_id", gameID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cleared"})
}

type saveProgressRequest struct {
	State json.RawMessage `json:"state" validate:"required"`
}
