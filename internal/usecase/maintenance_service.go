package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/bereanlabs/daily-puzzles/internal/domain/progress"
)

const (
	// DefaultProgressRetention keeps abandoned sessions resumable for a
	// week; daily games are stale long before that.
	DefaultProgressRetention = 7 * 24 * time.Hour
	defaultPurgeBatch        = 500
	purgeWorkers             = 8
)

// MaintenanceService runs the background sweeps: today that is purging
// progress rows abandoned past the retention window.
type MaintenanceService struct {
	progress  progress.Repository
	retention time.Duration
	batch     int
	logger    *slog.Logger
	now       func() time.Time
}

func NewMaintenanceService(store progress.Repository, retention time.Duration, logger *slog.Logger) *MaintenanceService {
	if retention <= 0 {
		retention = DefaultProgressRetention
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MaintenanceService{
		progress:  store,
		retention: retention,
		batch:     defaultPurgeBatch,
		logger:    logger,
		now:       time.Now,
	}
}

// PurgeStaleProgress deletes snapshots untouched past the retention window
// and reports how many went. Deletes fan out over a bounded worker pool;
// one failed row is logged and skipped rather than aborting the sweep.
func (s *MaintenanceService) PurgeStaleProgress(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "MaintenanceService.PurgeStaleProgress")
	defer span.End()

	cutoff := s.now().Add(-s.retention)

	stale, err := s.progress.ListUpdatedBefore(ctx, cutoff, s.batch)
	if err != nil {
		return 0, fmt.Errorf("list stale progress: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	workers, err := ants.NewPool(purgeWorkers)
	if err != nil {
		return 0, fmt.Errorf("create purge pool: %w", err)
	}
	defer workers.Release()

	var (
		wg     sync.WaitGroup
		purged atomic.Int64
	)
	for _, item := range stale {
		wg.Add(1)
		task := item
		submitErr := workers.Submit(func() {
			defer wg.Done()
			if err := s.progress.Delete(ctx, task.UserID, task.GameID); err != nil {
				s.logger.WarnContext(ctx, "purge progress row",
					slog.String("game_id", task.GameID),
					slog.String("error", err.Error()),
				)
				return
			}
			purged.Add(1)
		})
		if submitErr != nil {
			wg.Done()
			return int(purged.Load()), fmt.Errorf("submit purge task: %w", submitErr)
		}
	}
	wg.Wait()

	return int(purged.Load()), nil
}
