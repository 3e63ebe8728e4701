package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

type reporterMock struct {
	mock.Mock
}

func (m *reporterMock) Report(ctx context.Context, signal AdvisorySignal) error {
	args := m.Called(ctx, signal)
	return args.Error(0)
}

func advisoryTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdvisoryService_Submit_ForwardsValidSignal(t *testing.T) {
	t.Parallel()

	reporter := &reporterMock{}
	svc := NewAdvisoryService(reporter, advisoryTestLogger())

	observed := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	signal := AdvisorySignal{
		UserID:     "player-1",
		GameID:     "wordle-2026-08-31",
		Kind:       "impossible-time",
		Detail:     "solved in under a second",
		ObservedAt: observed,
	}

	reporter.
		On("Report", mock.Anything, signal).
		Return(nil).
		Once()

	if err := svc.Submit(context.Background(), signal); err != nil {
		t.Fatalf("submit signal: %v", err)
	}
	reporter.AssertExpectations(t)
}

func TestAdvisoryService_Submit_DefaultsObservedAt(t *testing.T) {
	t.Parallel()

	reporter := &reporterMock{}
	svc := NewAdvisoryService(reporter, advisoryTestLogger())
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	reporter.
		On("Report", mock.Anything, mock.MatchedBy(func(s AdvisorySignal) bool {
			return s.ObservedAt.Equal(now)
		})).
		Return(nil).
		Once()

	err := svc.Submit(context.Background(), AdvisorySignal{
		UserID: "player-1",
		GameID: "connections-2026-08-31",
		Kind:   "other",
	})
	if err != nil {
		t.Fatalf("submit signal: %v", err)
	}
	reporter.AssertExpectations(t)
}

func TestAdvisoryService_Submit_RejectsUnknownKind(t *testing.T) {
	t.Parallel()

	reporter := &reporterMock{}
	svc := NewAdvisoryService(reporter, advisoryTestLogger())

	err := svc.Submit(context.Background(), AdvisorySignal{
		UserID: "player-1",
		GameID: "wordle-2026-08-31",
		Kind:   "clairvoyance",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestAdvisoryService_Submit_RequiresIdentity(t *testing.T) {
	t.Parallel()

	svc := NewAdvisoryService(nil, advisoryTestLogger())

	err := svc.Submit(context.Background(), AdvisorySignal{
		GameID: "wordle-2026-08-31",
		Kind:   "other",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing user id, got %v", err)
	}

	err = svc.Submit(context.Background(), AdvisorySignal{
		UserID: "player-1",
		Kind:   "other",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing game id, got %v", err)
	}
}

func TestAdvisoryService_Submit_SwallowsDeliveryFailure(t *testing.T) {
	t.Parallel()

	reporter := &reporterMock{}
	svc := NewAdvisoryService(reporter, advisoryTestLogger())

	reporter.
		On("Report", mock.Anything, mock.Anything).
		Return(errors.New("collector down")).
		Once()

	err := svc.Submit(context.Background(), AdvisorySignal{
		UserID: "player-1",
		GameID: "wordle-2026-08-31",
		Kind:   "state-tampering",
	})
	if err != nil {
		t.Fatalf("delivery failure must not surface, got %v", err)
	}
	reporter.AssertExpectations(t)
}

func TestAdvisoryService_Submit_NilReporterIsNoop(t *testing.T) {
	t.Parallel()

	svc := NewAdvisoryService(nil, advisoryTestLogger())

	err := svc.Submit(context.Background(), AdvisorySignal{
		UserID: "player-1",
		GameID: "wordle-2026-08-31",
		Kind:   "replayed-session",
	})
	if err != nil {
		t.Fatalf("nil reporter must be a no-op, got %v", err)
	}
}
