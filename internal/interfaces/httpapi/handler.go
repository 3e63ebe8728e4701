package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/bereanlabs/daily-puzzles/internal/usecase"
)

type Handler struct {
	sessionService     *usecase.SessionService
	assignmentService  *usecase.AssignmentService
	progressService    *usecase.ProgressService
	verifyService      *usecase.VerifyService
	submissionService  *usecase.SubmissionService
	advisoryService    *usecase.AdvisoryService
	maintenanceService *usecase.MaintenanceService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	sessionService *usecase.SessionService,
	assignmentService *usecase.AssignmentService,
	progressService *usecase.ProgressService,
	verifyService *usecase.VerifyService,
	submissionService *usecase.SubmissionService,
	advisoryService *usecase.AdvisoryService,
	maintenanceService *usecase.MaintenanceService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		sessionService:     sessionService,
		assignmentService:  assignmentService,
		progressService:    progressService,
		verifyService:      verifyService,
		submissionService:  submissionService,
		advisoryService:    advisoryService,
		maintenanceService: maintenanceService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func errMissingPrincipal() error {
	return fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
}

func decodeRequest(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
