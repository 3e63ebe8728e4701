package httpapi

import (
	"fmt"
	"net/http"

	"github.com/bereanlabs/daily-puzzles/internal/usecase"
)

// RunPurgeProgressJob sweeps progress rows past the retention window. The
// scheduler calls it; the route sits behind the internal job token.
func (h *Handler) RunPurgeProgressJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPurgeProgressJob")
	defer span.End()

	if h.maintenanceService == nil {
		writeError(ctx, w, fmt.Errorf("%w: maintenance service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	purged, err := h.maintenanceService.PurgeStaleProgress(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "purge stale progress failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"purged": purged})
}
