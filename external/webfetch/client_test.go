package webfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/platform/resilience"
	"github.com/riskibarqy/event-agenda/internal/usecase"
)

func newTestFetcher(maxRetries int) *Fetcher {
	return New(Config{
		Name:       "test",
		MaxRetries: maxRetries,
		CacheTTL:   time.Minute,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	})
}

func TestFetcher_CachesPages(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("user-agent") == "" {
			t.Errorf("expected user agent header")
		}
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	f := newTestFetcher(0)
	for range 2 {
		raw, err := f.Get(context.Background(), server.URL+"/search?q=nada")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(raw) != "<html>ok</html>" {
			t.Fatalf("unexpected body %q", raw)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one request, got %d", got)
	}
}

func TestFetcher_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("second"))
	}))
	defer server.Close()

	raw, err := newTestFetcher(1).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if string(raw) != "second" || hits.Load() != 2 {
		t.Fatalf("expected second attempt body, got %q after %d hits", raw, hits.Load())
	}
}

func TestFetcher_NotFoundKeepsBreakerClosed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer server.Close()

	f := newTestFetcher(0)
	_, err := f.Get(context.Background(), server.URL+"/a")
	if err == nil || IsTransient(err) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if state := f.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}

func TestFetcher_OpenBreakerRejects(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := newTestFetcher(0)
	if _, err := f.Get(context.Background(), server.URL+"/a"); !IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
	_, err := f.Get(context.Background(), server.URL+"/b")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected open breaker to skip the request, got %d hits", got)
	}
}

func TestFetcher_Throttled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := newTestFetcher(0)
	f.Throttled(context.Background(), "too many request")
	if _, err := f.Get(context.Background(), server.URL); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected throttled fetcher to reject, got %v", err)
	}
}
