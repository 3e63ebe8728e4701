package advisory

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/bereanlabs/daily-puzzles/internal/usecase"
)

type ReporterConfig struct {
	// URL receives every advisory signal as a POST.
	URL           string
	InternalToken string
	Timeout       time.Duration
}

// Reporter ships advisory signals over fasthttp. The hot path calls it
// fire-and-forget, so the client is tuned for short timeouts rather than
// retries.
type Reporter struct {
	client        *fasthttp.Client
	url           string
	internalToken string
	timeout       time.Duration
}

type signalDocument struct {
	UserID     string `json:"userId"`
	GameID     string `json:"gameId"`
	Kind       string `json:"kind"`
	Detail     string `json:"detail,omitempty"`
	ObservedAt string `json:"observedAt"`
}

func NewReporter(cfg ReporterConfig) (*Reporter, error) {
	target := strings.TrimSpace(cfg.URL)
	if target == "" {
		return nil, fmt.Errorf("advisory reporter url is required")
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return nil, fmt.Errorf("advisory reporter url %q must be http or https", target)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &Reporter{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		url:           target,
		internalToken: strings.TrimSpace(cfg.InternalToken),
		timeout:       timeout,
	}, nil
}

func (r *Reporter) Report(_ context.Context, signal usecase.AdvisorySignal) error {
	body, err := sonic.Marshal(signalDocument{
		UserID:     signal.UserID,
		GameID:     signal.GameID,
		Kind:       signal.Kind,
		Detail:     signal.Detail,
		ObservedAt: signal.ObservedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode advisory signal: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if r.internalToken != "" {
		req.Header.Set("X-Internal-Job-Token", r.internalToken)
	}
	req.SetBody(body)

	if err := r.client.DoTimeout(req, resp, r.timeout); err != nil {
		return fmt.Errorf("post advisory signal: %w", err)
	}
	if resp.StatusCode()/100 != 2 {
		return fmt.Errorf("post advisory signal status=%d", resp.StatusCode())
	}

	return nil
}
