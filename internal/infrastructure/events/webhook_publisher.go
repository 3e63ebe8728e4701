package events

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bereanlabs/daily-puzzles/internal/domain/submission"
	"github.com/bereanlabs/daily-puzzles/internal/platform/resilience"
)

type WebhookPublisherConfig struct {
	// URL receives a POST per landed record: streak and leaderboard
	// consumers hang off it.
	URL           string
	InternalToken string
	Timeout       time.Duration
	Breaker       resilience.CircuitBreakerConfig
}

// WebhookPublisher delivers completion events over HTTP. A breaker keeps a
// dead consumer from stalling every submission's notify goroutine.
type WebhookPublisher struct {
	client        *http.Client
	url           string
	internalToken string
	breaker       *resilience.CircuitBreaker
	logger        *slog.Logger
}

// completionEvent is the wire shape of one landed record.
type completionEvent struct {
	SubmissionID     string `json:"submissionId"`
	UserID           string `json:"userId"`
	GameID           string `json:"gameId"`
	Score            int    `json:"score"`
	Won              bool   `json:"won"`
	Mistakes         int    `json:"mistakes"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
	CompletedAt      string `json:"completedAt"`
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *slog.Logger) (*WebhookPublisher, error) {
	target, err := validateHTTPURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid completion webhook url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.Breaker)

	return &WebhookPublisher{
		client:        &http.Client{Timeout: timeout},
		url:           target,
		internalToken: strings.TrimSpace(cfg.InternalToken),
		breaker: resilience.NewCircuitBreaker(
			breakerCfg.FailureThreshold,
			breakerCfg.OpenTimeout,
			breakerCfg.HalfOpenMaxReq,
		),
		logger: logger,
	}, nil
}

func (p *WebhookPublisher) NotifyCompleted(ctx context.Context, item submission.Submission) error {
	if err := p.breaker.Allow(); err != nil {
		return fmt.Errorf("completion webhook: %w", err)
	}

	event := completionEvent{
		SubmissionID:     item.ID,
		UserID:           item.UserID,
		GameID:           item.GameID,
		Score:            item.Score,
		Won:              item.Won,
		Mistakes:         item.Mistakes,
		TimeTakenSeconds: item.TimeTakenSeconds,
		CompletedAt:      item.CompletedAt.UTC().Format(time.RFC3339),
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	encoded, err := sonic.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode completion event: %w", err)
	}
	_, _ = buf.Write(encoded)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", p.url),
			attribute.String("webhook.game_id", item.GameID),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, strings.NewReader(buf.String()))
	if err != nil {
		return fmt.Errorf("create completion webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.internalToken != "" {
		req.Header.Set("X-Internal-Job-Token", p.internalToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.breaker.RecordFailure()
		return fmt.Errorf("post completion event: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		p.breaker.RecordFailure()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("post completion event status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	p.breaker.RecordSuccess()
	p.logger.InfoContext(ctx, "completion event published",
		slog.String("game_id", item.GameID),
		slog.Int("score", item.Score),
	)
	return nil
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", candidate, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("%q has empty host", candidate)
	}

	return candidate, nil
}
