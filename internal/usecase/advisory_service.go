package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// AdvisorySignal is a client-observed irregularity: an impossible solve
// time, devtools tampering, a replayed session. Signals are advisory only
// and never gate gameplay or scoring.
type AdvisorySignal struct {
	UserID     string
	GameID     string
	Kind       string
	Detail     string
	ObservedAt time.Time
}

var advisorySignalKinds = map[string]struct{}{
	"impossible-time":  {},
	"state-tampering":  {},
	"replayed-session": {},
	"other":            {},
}

// AdvisoryReporter ships signals to whatever reviews them.
type AdvisoryReporter interface {
	Report(ctx context.Context, signal AdvisorySignal) error
}

// AdvisoryService validates and forwards signals. Delivery failures are
// logged and swallowed: the advisory channel must never surface errors into
// a play session.
type AdvisoryService struct {
	reporter AdvisoryReporter
	logger   *slog.Logger
	now      func() time.Time
}

func NewAdvisoryService(reporter AdvisoryReporter, logger *slog.Logger) *AdvisoryService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AdvisoryService{
		reporter: reporter,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AdvisoryService) Submit(ctx context.Context, signal AdvisorySignal) error {
	ctx, span := startUsecaseSpan(ctx, "AdvisoryService.Submit")
	defer span.End()

	if strings.TrimSpace(signal.UserID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(signal.GameID) == "" {
		return fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if _, ok := advisorySignalKinds[signal.Kind]; !ok {
		return fmt.Errorf("%w: unknown signal kind %q", ErrInvalidInput, signal.Kind)
	}
	if signal.ObservedAt.IsZero() {
		signal.ObservedAt = s.now()
	}

	if s.reporter == nil {
		return nil
	}
	if err := s.reporter.Report(ctx, signal); err != nil {
		s.logger.WarnContext(ctx, "advisory signal delivery failed",
			slog.String("game_id", signal.GameID),
			slog.String("kind", signal.Kind),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
