package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bereanlabs/daily-puzzles/internal/config"
	"github.com/bereanlabs/daily-puzzles/internal/domain/assignment"
	"github.com/bereanlabs/daily-puzzles/internal/domain/progress"
	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
	"github.com/bereanlabs/daily-puzzles/internal/domain/submission"
	"github.com/bereanlabs/daily-puzzles/internal/infrastructure/account"
	"github.com/bereanlabs/daily-puzzles/internal/infrastructure/advisory"
	"github.com/bereanlabs/daily-puzzles/internal/infrastructure/events"
	"github.com/bereanlabs/daily-puzzles/internal/infrastructure/repository/memory"
	"github.com/bereanlabs/daily-puzzles/internal/infrastructure/repository/postgres"
	"github.com/bereanlabs/daily-puzzles/internal/interfaces/httpapi"
	"github.com/bereanlabs/daily-puzzles/internal/platform/cache"
	idgen "github.com/bereanlabs/daily-puzzles/internal/platform/id"
	"github.com/bereanlabs/daily-puzzles/internal/platform/resilience"
	"github.com/bereanlabs/daily-puzzles/internal/usecase"
)

type repositories struct {
	puzzles     puzzle.Repository
	assignments assignment.Repository
	progress    progress.Repository
	submissions submission.Repository
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	var notifier usecase.CompletionNotifier
	if cfg.CompletionWebhookEnabled {
		publisher, err := events.NewWebhookPublisher(events.WebhookPublisherConfig{
			URL:           cfg.CompletionWebhookURL,
			InternalToken: cfg.InternalJobToken,
			Timeout:       cfg.CompletionWebhookTimeout,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          true,
				FailureThreshold: cfg.CompletionWebhookCircuitFailureCount,
				OpenTimeout:      cfg.CompletionWebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.CompletionWebhookCircuitHalfOpenMaxReq,
			},
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("build completion webhook publisher: %w", err)
		}
		notifier = publisher
	}

	var reporter usecase.AdvisoryReporter
	if cfg.AdvisoryEnabled {
		rep, err := advisory.NewReporter(advisory.ReporterConfig{
			URL:           cfg.AdvisoryURL,
			InternalToken: cfg.InternalJobToken,
			Timeout:       cfg.AdvisoryTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("build advisory reporter: %w", err)
		}
		reporter = rep
	}

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// expire immediately: the store degrades to a singleflight
		cacheTTL = time.Nanosecond
	}

	assignmentSvc := usecase.NewAssignmentService(repos.puzzles, repos.assignments, cache.NewStore(cacheTTL))
	progressSvc := usecase.NewProgressService(repos.progress)
	submissionSvc := usecase.NewSubmissionService(
		repos.submissions,
		assignmentSvc,
		progressSvc,
		notifier,
		idgen.NewRandomGenerator(),
		logger,
	)
	sessionSvc := usecase.NewSessionService(assignmentSvc, progressSvc, submissionSvc)
	verifySvc := usecase.NewVerifyService(assignmentSvc)
	advisorySvc := usecase.NewAdvisoryService(reporter, logger)
	maintenanceSvc := usecase.NewMaintenanceService(repos.progress, cfg.ProgressRetention, logger)

	accountClient := account.NewClient(account.ClientConfig{
		BaseURL:    cfg.AccountBaseURL,
		VerifyPath: cfg.AccountVerifyPath,
		Timeout:    cfg.AccountTimeout,
		Breaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		},
	}, logger)

	handler := httpapi.NewHandler(
		sessionSvc,
		assignmentSvc,
		progressSvc,
		verifySvc,
		submissionSvc,
		advisorySvc,
		maintenanceSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, accountClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config) (repositories, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			puzzles:     postgres.NewPuzzleRepository(db),
			assignments: postgres.NewAssignmentRepository(db),
			progress:    postgres.NewProgressRepository(db),
			submissions: postgres.NewSubmissionRepository(db),
		}, nil
	case config.StorageMemory:
		puzzles := memory.NewPuzzleRepository()
		day := time.Now().UTC().Truncate(24 * time.Hour)
		for _, def := range memory.SeedDefinitions(day) {
			if err := puzzles.Put(context.Background(), def); err != nil {
				return repositories{}, fmt.Errorf("seed puzzle %s: %w", def.GameID, err)
			}
		}
		return repositories{
			puzzles:     puzzles,
			assignments: memory.NewAssignmentRepository(),
			progress:    memory.NewProgressRepository(),
			submissions: memory.NewSubmissionRepository(),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
