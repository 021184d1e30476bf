package goodreads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/event-agenda/internal/platform/logging"
)

const searchPage = `<html><body><table class="tableList">
<tr><td><a class="bookTitle" href="/book/show/123-nada"><span>Nada</span></a>
<span>by <a class="authorName" href="/author/1"><span>Carmen Laforet</span></a></span>
<span class="minirating">4.02 avg rating — 12,345 ratings</span></td></tr>
<tr><td><a class="bookTitle" href="/book/show/456-nada-ed"><span>Nada: edición escolar</span></a>
<a class="authorName" href="/author/1">Carmen Laforet</a>
<a class="authorName" href="/author/1">Carmen Laforet</a>
<span class="minirating">3.90 avg rating — 100 ratings</span></td></tr>
<tr><td><a class="bookTitle" href="/book/show/789-nada-que-perder"><span>Nada que perder</span></a>
<a class="authorName" href="/author/2">Otra Autora</a>
<span class="minirating">4.50 avg rating — 99,000 ratings</span></td></tr>
<tr><td><a class="bookTitle" href="/book/show/999-anon"><span>Nada</span></a></td></tr>
</table></body></html>`

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:  baseURL,
		Timeout:  2 * time.Second,
		CacheTTL: time.Minute,
		Logger:   logging.NewNop(),
	})
}

func TestClient_Find(t *testing.T) {
	t.Parallel()

	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(searchPage))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).Find(context.Background(), "'Nada', de Carmen Laforet")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 books, got %+v", got)
	}
	if got[0].URL != server.URL+"/book/show/123" || got[0].Reviews != 12345 || got[0].Rating != 4.02 {
		t.Fatalf("unexpected first book: %+v", got[0])
	}
	if len(got[1].Authors) != 1 {
		t.Fatalf("expected duplicated author to be collapsed, got %v", got[1].Authors)
	}
	if len(queries) != 1 || queries[0] != "Nada Carmen Laforet" {
		t.Fatalf("expected a single title+author query, got %v", queries)
	}
}

func TestClient_FindFallsBackToTitle(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("query") == "Nada" {
			_, _ = w.Write([]byte(searchPage))
			return
		}
		_, _ = w.Write([]byte(`<html><body><table class="tableList"></table></body></html>`))
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).Find(context.Background(), "Nada, de Carmen Laforet")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 || hits.Load() != 2 {
		t.Fatalf("expected title fallback to match, got %d books after %d requests", len(got), hits.Load())
	}
}

func TestClient_FindIgnoresPlainNames(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Errorf("unexpected request")
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).Find(context.Background(), "Presentación")
	if err != nil || got != nil {
		t.Fatalf("expected no lookup, got %v (%v)", got, err)
	}
}

func TestClient_FindPropagatesErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Find(context.Background(), "'Nada', de Carmen Laforet"); err == nil {
		t.Fatalf("expected error for forbidden search")
	}
}
