package filmaffinity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/usecase"
)

const filmPage = `<html><head><title>Vértigo (1958) - FilmAffinity</title>
<link rel="alternate" hreflang="es" href="https://www.filmaffinity.com/es/film846099.html">
<link rel="alternate" hreflang="en" href="https://www.filmaffinity.com/en/film846099.html">
</head><body><dl><dt>Año</dt><dd itemprop="datePublished">1958</dd></dl></body></html>`

const resultsPage = `<html><head><title>Búsqueda - FilmAffinity</title></head><body>
<div class="searchres">
 <div class="card"><div class="card-body"><span class="mc-year">1958</span><a href="/es/film111.html">Vértigo</a></div></div>
 <div class="card"><div class="card-body"><span class="mc-year">1960</span><a href="/es/film222.html">Vértigo</a></div></div>
</div></body></html>`

const twoHitsPage = `<html><head><title>Búsqueda - FilmAffinity</title></head><body>
<div class="searchres">
 <div class="card-body"><span class="mc-year">1958</span><a href="/es/film111.html">A</a></div>
 <div class="card-body"><span class="mc-year">1958</span><a href="/es/film333.html">B</a></div>
</div></body></html>`

func newServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Query().Get("stext")]
		if !ok {
			page = `<html><head><title>Búsqueda</title></head><body></body></html>`
		}
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:  baseURL,
		Timeout:  2 * time.Second,
		CacheTTL: time.Minute,
		Logger:   logging.NewNop(),
	})
}

func TestClient_SearchExactHit(t *testing.T) {
	t.Parallel()

	server := newServer(t, map[string]string{"Vertigo": filmPage})
	id, ok, err := newTestClient(server.URL).Search(context.Background(), 1958, "Vertigo", "Sin resultados")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !ok || id != 846099 {
		t.Fatalf("expected 846099, got %d %v", id, ok)
	}
}

func TestClient_SearchFiltersByYear(t *testing.T) {
	t.Parallel()

	server := newServer(t, map[string]string{"Vértigo": resultsPage, "Vertigo": filmPage})
	client := newTestClient(server.URL)

	id, ok, err := client.Search(context.Background(), 1960, "Vértigo")
	if err != nil || !ok || id != 222 {
		t.Fatalf("expected 222, got %d %v (%v)", id, ok, err)
	}

	_, ok, err = client.Search(context.Background(), 1958, "Vértigo", "Vertigo")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if ok {
		t.Fatalf("expected two distinct ids to be ambiguous")
	}
}

func TestClient_SearchAmbiguous(t *testing.T) {
	t.Parallel()

	server := newServer(t, map[string]string{"A": twoHitsPage})
	if _, ok, err := newTestClient(server.URL).Search(context.Background(), 1958, "A"); ok || err != nil {
		t.Fatalf("expected no id, got ok=%v err=%v", ok, err)
	}
}

func TestClient_SearchSkipsInvalidInput(t *testing.T) {
	t.Parallel()

	server := newServer(t, nil)
	client := newTestClient(server.URL)
	if _, ok, err := client.Search(context.Background(), 0, "Vertigo"); ok || err != nil {
		t.Fatalf("expected no lookup without year, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := client.Search(context.Background(), 1958); ok || err != nil {
		t.Fatalf("expected no lookup without titles, got ok=%v err=%v", ok, err)
	}
}

func TestClient_SearchDisablesAfterThrottling(t *testing.T) {
	t.Parallel()

	server := newServer(t, map[string]string{
		"Vertigo":  `<html><head><title>Too many request</title></head></html>`,
		"Psicosis": filmPage,
	})
	client := newTestClient(server.URL)

	_, _, err := client.Search(context.Background(), 1958, "Vertigo")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	_, ok, err := client.Search(context.Background(), 1958, "Psicosis")
	if ok || !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected client to stay disabled, got ok=%v err=%v", ok, err)
	}
}
