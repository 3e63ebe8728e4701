package advisory

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/bereanlabs/daily-puzzles/internal/usecase"
)

func TestReporter_PostsSignal(t *testing.T) {
	t.Parallel()

	var gotBody atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody.Store(raw)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	reporter, err := NewReporter(ReporterConfig{URL: server.URL})
	if err != nil {
		t.Fatalf("NewReporter error: %v", err)
	}

	signal := usecase.AdvisorySignal{
		UserID:     "user-1",
		GameID:     "wordle-2026-08-31",
		Kind:       "impossible-time",
		Detail:     "solved in 600ms",
		ObservedAt: time.Now(),
	}
	if err := reporter.Report(context.Background(), signal); err != nil {
		t.Fatalf("Report error: %v", err)
	}

	var doc signalDocument
	if err := sonic.Unmarshal(gotBody.Load().([]byte), &doc); err != nil {
		t.Fatalf("decode signal: %v", err)
	}
	if doc.Kind != "impossible-time" || doc.GameID != "wordle-2026-08-31" {
		t.Fatalf("signal payload: %+v", doc)
	}
}

func TestReporter_SurfacesNon2xx(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	reporter, err := NewReporter(ReporterConfig{URL: server.URL})
	if err != nil {
		t.Fatalf("NewReporter error: %v", err)
	}
	if err := reporter.Report(context.Background(), usecase.AdvisorySignal{Kind: "other"}); err == nil {
		t.Fatalf("4xx must surface an error")
	}
}

func TestNewReporter_RejectsBadURL(t *testing.T) {
	t.Parallel()

	if _, err := NewReporter(ReporterConfig{}); err == nil {
		t.Fatalf("empty url accepted")
	}
	if _, err := NewReporter(ReporterConfig{URL: "ws://example.com"}); err == nil {
		t.Fatalf("non-http scheme accepted")
	}
}
