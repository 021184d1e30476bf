// Package webfetch downloads catalogue pages for the lookup clients. Each
// client owns a Fetcher with its own circuit breaker and response cache.
package webfetch

import (
	"cmp"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/event-agenda/internal/platform/cache"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/platform/resilience"
	"github.com/riskibarqy/event-agenda/internal/usecase"
)

const (
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	maxBodyBytes     = 4 << 20
)

var errTransient = crerr.New("catalogue transient failure")

type Config struct {
	Name           string
	HTTPClient     *http.Client
	Timeout        time.Duration
	MaxRetries     int
	UserAgent      string
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Fetcher struct {
	name       string
	httpClient *http.Client
	maxRetries int
	userAgent  string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	pages      *cache.Store[[]byte]
	disabled   atomic.Bool
}

func New(cfg Config) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "catalogue"
	}

	logger = logger.Named(name).With("dependency", name)
	return &Fetcher{
		name:       name,
		httpClient: httpClient,
		maxRetries: max(cfg.MaxRetries, 0),
		userAgent:  cmp.Or(strings.TrimSpace(cfg.UserAgent), defaultUserAgent),
		logger:     logger,
		breaker: cfg.CircuitBreaker.Build(func(from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "from", string(from), "to", string(to))
		}),
		pages: cache.NewStore[[]byte](cfg.CacheTTL),
	}
}

// Get returns the body of a 2xx response for fullURL. Bodies are cached and
// concurrent requests for the same url share one download.
func (f *Fetcher) Get(ctx context.Context, fullURL string) ([]byte, error) {
	return f.pages.GetOrLoad(ctx, fullURL, func(ctx context.Context) ([]byte, error) {
		if f.disabled.Load() {
			return nil, fmt.Errorf("%w: %s is disabled after throttling", usecase.ErrDependencyUnavailable, f.name)
		}
		if err := f.breaker.Allow(); err != nil {
			stats := f.breaker.Stats()
			f.logger.DebugContext(ctx, "circuit breaker rejected request", "state", string(stats.State), "rejected", stats.Rejected)
			return nil, fmt.Errorf("%w: %s is temporarily unavailable", usecase.ErrDependencyUnavailable, f.name)
		}
		raw, err := f.executeRequest(ctx, fullURL)
		f.breaker.Record(err, IsTransient)
		return raw, err
	})
}

// Throttled disables the fetcher for the rest of the run after the remote
// side answered with a rate limit page. Cached pages are still served.
func (f *Fetcher) Throttled(ctx context.Context, reason string) {
	if f.disabled.CompareAndSwap(false, true) {
		f.logger.ErrorContext(ctx, "dependency throttled, disabling lookups", "reason", reason)
	}
	f.breaker.Trip()
}

func (f *Fetcher) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "text/html,application/xhtml+xml")
		req.Header.Set("accept-language", "es-ES,es;q=0.9")
		req.Header.Set("user-agent", f.userAgent)

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == f.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	f.logger.WarnContext(ctx, "request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// IsTransient reports whether err is worth retrying later: network errors,
// throttling and server errors.
func IsTransient(err error) bool {
	return stderrors.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	text := strings.Join(strings.Fields(string(raw)), " ")
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
